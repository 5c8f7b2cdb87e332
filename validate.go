package distort

// minCornerDistance is the smallest pairwise corner separation considered
// non-degenerate.
const minCornerDistance = 1.0

// validateQuad checks a candidate quadrilateral. The checks run in a
// fixed order and the first failure wins: a quad that is both collapsed
// and concave reports the distance error.
func validateQuad(tl, tr, bl, br Vec2) ErrorKind {
	corners := [4]Vec2{tl, tr, bl, br}
	for i := range 4 {
		for j := i + 1; j < 4; j++ {
			if corners[i].Dist(corners[j]) <= minCornerDistance {
				return ErrorDegenerateDistance
			}
		}
	}
	if !convex(tl, tr, bl, br) {
		return ErrorConcavePolygon
	}
	return ErrorNone
}

// convex reports whether the quadrilateral is convex with consistent
// winding. Both diagonal triangulations are split into their two
// triangles; every signed area must be strictly positive.
func convex(tl, tr, bl, br Vec2) bool {
	return cross(tl, tr, br) > 0 &&
		cross(br, bl, tl) > 0 &&
		cross(tr, br, bl) > 0 &&
		cross(bl, tl, tr) > 0
}

// cross returns the z-component of (b-a) x (c-a), twice the signed area
// of triangle abc. Positive for the corner winding of an undistorted
// rectangle in this package's y-down coordinate system.
func cross(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
