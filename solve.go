package distort

import (
	"math"
	"strconv"
)

// srcBoundary selects the source-rectangle coordinate for each corner in
// top-left, top-right, bottom-left, bottom-right order: 0 or 1 per axis,
// scaled by the rectangle dimension.
var srcBoundary = [4][2]float64{
	{0, 0},
	{1, 0},
	{0, 1},
	{1, 1},
}

// buildSystem encodes the four corner correspondences of a planar
// projective map as the dense linear system a*h = b. Rows 0-3 constrain
// the transformed x-coordinates and populate columns {0,1,2,6,7}; rows
// 4-7 constrain the y-coordinates and populate columns {3,4,5,6,7}.
// Source coordinates come from the rectangle boundary offset by the
// origin; destinations are the current corners, also origin-offset. The
// -X*u / -Y*u columns carry the homogeneous divide w' = g*x + h*y + 1,
// which is what makes the map projective rather than affine.
//
// No validation happens here: degenerate corners still yield a
// well-formed, possibly singular, system.
func (t *Transform) buildSystem(a *[8][8]float64, b *[8]float64) {
	dst := [4]Vec2{t.TopLeft, t.TopRight, t.BottomLeft, t.BottomRight}
	for i := range 4 {
		sx := srcBoundary[i][0]*t.width + t.origin.X
		sy := srcBoundary[i][1]*t.height + t.origin.Y
		u := dst[i].X + t.origin.X
		v := dst[i].Y + t.origin.Y

		a[i] = [8]float64{sx, sy, 1, 0, 0, 0, -sx * u, -sy * u}
		a[i+4] = [8]float64{0, 0, 0, sx, sy, 1, -sx * v, -sy * v}
		b[i] = u
		b[i+4] = v
	}
}

// luSolve solves the dense 8x8 system a*x = b in place via Crout-style
// LU decomposition with partial pivoting. There is no failure path: a
// zero pivot is skipped rather than reported, so a singular system
// propagates Inf/NaN into the solution and the caller's finite-matrix
// guard is the safety net.
func luSolve(a *[8][8]float64, b [8]float64) [8]float64 {
	const n = 8
	var perm [n]int
	for i := range perm {
		perm[i] = i
	}

	for j := range n {
		// Schur-complement update of column j against the already
		// eliminated rows: prefix dot product of length min(i, j).
		for i := range n {
			kmax := min(i, j)
			s := 0.0
			for k := range kmax {
				s += a[i][k] * a[k][j]
			}
			a[i][j] -= s
		}
		// Pivot on the largest magnitude at or below the diagonal.
		p := j
		for i := j + 1; i < n; i++ {
			if math.Abs(a[i][j]) > math.Abs(a[p][j]) {
				p = i
			}
		}
		if p != j {
			a[p], a[j] = a[j], a[p]
			perm[p], perm[j] = perm[j], perm[p]
		}
		if a[j][j] != 0 {
			for i := j + 1; i < n; i++ {
				a[i][j] /= a[j][j]
			}
		}
	}

	// Permute the constant vector, then forward-substitute through the
	// unit lower factor and back-substitute through the upper factor.
	var x [n]float64
	for i := range x {
		x[i] = b[perm[i]]
	}
	for i := 1; i < n; i++ {
		for k := range i {
			x[i] -= a[i][k] * x[k]
		}
	}
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			x[i] -= a[i][k] * x[k]
		}
		x[i] /= a[i][i]
	}
	return x
}

// matrixIndex maps each solved coefficient to its cell in the
// column-major 4x4 matrix: linear terms at 0,1,4,5, translation at
// 12,13, perspective divisors at 3,7. Every other cell is structurally
// fixed for a planar z=0 transform.
var matrixIndex = [8]int{0, 4, 12, 1, 5, 13, 3, 7}

// assembleMatrix places the eight solved coefficients into the fixed
// 4x4 layout, canonicalizing each one so equal transforms stringify
// identically across platforms.
func assembleMatrix(h [8]float64) [16]float64 {
	m := identityMatrix
	for i, v := range h {
		m[matrixIndex[i]] = roundCoefficient(v)
	}
	return m
}

// roundCoefficient rounds to nine decimal digits by formatting and
// re-parsing, stripping accumulated floating-point noise from the
// elimination. NaN and Inf survive the round trip untouched.
func roundCoefficient(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 9, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		// Never emit negative zero: it formats as "-0" and breaks
		// string equality between otherwise equal transforms.
		return 0
	}
	return r
}

// matrixFinite reports whether every cell is a finite number.
func matrixFinite(m [16]float64) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
