package distort

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vec2 is a 2D point or vector. Corner positions, offsets, and origins are
// all Vec2 values.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Vec2) Dist(q Vec2) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// identityMatrix is the fallback emitted whenever the solved quadrilateral
// is invalid. Column-major, like every matrix in this package.
var identityMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// ErrorKind classifies why the last solve fell back to the identity
// matrix. It is a state, not a Go error: degenerate geometry silently
// degrades to an undistorted result rather than failing the caller.
type ErrorKind uint8

const (
	// ErrorNone means the last solve produced a usable matrix.
	ErrorNone ErrorKind = iota
	// ErrorDegenerateDistance means two corners are within 1 unit of each
	// other, collapsing the quadrilateral.
	ErrorDegenerateDistance
	// ErrorConcavePolygon means the corners form a concave or
	// self-intersecting quadrilateral.
	ErrorConcavePolygon
	// ErrorUnstable means the solved matrix contained NaN or Inf, which
	// happens when the corner configuration is (near-)singular without
	// tripping either geometry check.
	ErrorUnstable
)

// String returns a short name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorDegenerateDistance:
		return "degenerate distance"
	case ErrorConcavePolygon:
		return "concave polygon"
	case ErrorUnstable:
		return "unstable matrix"
	}
	return "unknown"
}

// Perspective directions accepted by [Transform.ForcePerspective].
const (
	DirectionTop    = "top"
	DirectionBottom = "bottom"
	DirectionLeft   = "left"
	DirectionRight  = "right"
)

// ErrInvalidDirection is returned (wrapped) by ForcePerspective for an
// unrecognized direction.
var ErrInvalidDirection = errors.New("distort: invalid perspective direction")

// Offset positions the transform origin within the source rectangle.
// Each axis accepts "<n>%" (fraction of the dimension), "<n>px"
// (absolute units), or "" for the geometric center.
type Offset struct {
	X string
	Y string
}

// Config describes the source rectangle being distorted.
type Config struct {
	// Width and Height are the dimensions of the source rectangle.
	Width  float64
	Height float64

	// Offset positions the transform origin. Zero value centers it.
	Offset Offset

	// Surface optionally binds an image to the transform. It is the
	// default source for [DrawWarped] and is shared, not copied, by
	// Clone.
	Surface *ebiten.Image

	// DPRFix appends a device-pixel-ratio correction suffix to the
	// style string, working around blurry output on some high-density
	// displays. DPR supplies the ratio; 0 means 1.
	DPRFix bool
	DPR    float64
}

// Transform computes the 4x4 projective matrix that maps the corners of
// an axis-aligned rectangle onto four arbitrary points. Move the corners
// with the mutation operations, then call [Transform.Calculate] or
// [Transform.Update] to resolve; mutations alone never recompute the
// matrix.
//
// A Transform is not safe for concurrent mutation. Independent instances
// share no state, and a computed matrix value is safe to read from
// anywhere once returned.
type Transform struct {
	// The four destination corners. Initialized to the source rectangle
	// and freely mutable between solves.
	TopLeft     Vec2
	TopRight    Vec2
	BottomLeft  Vec2
	BottomRight Vec2

	width  float64
	height float64
	origin Vec2

	surface *ebiten.Image

	dprFix bool
	dpr    float64

	matrix  [16]float64
	errKind ErrorKind
}

// New creates a Transform for the rectangle described by cfg, with all
// four corners at their rest positions and an identity matrix.
func New(cfg Config) *Transform {
	dpr := cfg.DPR
	if dpr == 0 {
		dpr = 1
	}
	t := &Transform{
		width:   cfg.Width,
		height:  cfg.Height,
		origin:  resolveOrigin(cfg.Offset, cfg.Width, cfg.Height),
		surface: cfg.Surface,
		dprFix:  cfg.DPRFix,
		dpr:     dpr,
		matrix:  identityMatrix,
	}
	t.Reset()
	return t
}

// Reset returns all four corners to the source rectangle [0,w]x[0,h].
// The cached matrix is untouched until the next solve.
func (t *Transform) Reset() {
	t.TopLeft = Vec2{}
	t.TopRight = Vec2{X: t.width}
	t.BottomLeft = Vec2{Y: t.height}
	t.BottomRight = Vec2{X: t.width, Y: t.height}
}

// Width returns the source rectangle width.
func (t *Transform) Width() float64 { return t.width }

// Height returns the source rectangle height.
func (t *Transform) Height() float64 { return t.height }

// Surface returns the image bound to the transform, or nil.
func (t *Transform) Surface() *ebiten.Image { return t.surface }

// Corners returns the four corners in top-left, top-right, bottom-left,
// bottom-right order.
func (t *Transform) Corners() [4]Vec2 {
	return [4]Vec2{t.TopLeft, t.TopRight, t.BottomLeft, t.BottomRight}
}

// SetCorners replaces all four corners at once, in the same order as
// [Transform.Corners].
func (t *Transform) SetCorners(c [4]Vec2) {
	t.TopLeft = c[0]
	t.TopRight = c[1]
	t.BottomLeft = c[2]
	t.BottomRight = c[3]
}

// Translate moves all four corners by (dx, dy). Translating by (dx, dy)
// and then (-dx, -dy) restores the original corners within floating
// tolerance.
func (t *Transform) Translate(dx, dy float64) {
	t.TopLeft.X += dx
	t.TopLeft.Y += dy
	t.TopRight.X += dx
	t.TopRight.Y += dy
	t.BottomLeft.X += dx
	t.BottomLeft.Y += dy
	t.BottomRight.X += dx
	t.BottomRight.Y += dy
}

// TranslateX moves all four corners horizontally.
func (t *Transform) TranslateX(dx float64) { t.Translate(dx, 0) }

// TranslateY moves all four corners vertically.
func (t *Transform) TranslateY(dy float64) { t.Translate(0, dy) }

// Scale scales all four corners about the center of the source
// rectangle. Scale(1) is a no-op.
func (t *Transform) Scale(factor float64) {
	cx := t.width / 2
	cy := t.height / 2
	scale := func(p *Vec2) {
		p.X = (p.X-cx)*factor + cx
		p.Y = (p.Y-cy)*factor + cy
	}
	scale(&t.TopLeft)
	scale(&t.TopRight)
	scale(&t.BottomLeft)
	scale(&t.BottomRight)
}

// ForcePerspective nudges one pair of opposite corners apart along one
// axis to fake a perspective tilt. direction must be one of
// [DirectionTop], [DirectionBottom], [DirectionLeft], or
// [DirectionRight]; anything else returns an error wrapping
// [ErrInvalidDirection].
func (t *Transform) ForcePerspective(direction string, v float64) error {
	switch direction {
	case DirectionTop:
		t.TopLeft.X -= v
		t.TopRight.X += v
	case DirectionBottom:
		t.BottomLeft.X -= v
		t.BottomRight.X += v
	case DirectionLeft:
		t.TopLeft.Y -= v
		t.BottomLeft.Y += v
	case DirectionRight:
		t.TopRight.Y -= v
		t.BottomRight.Y += v
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
	return nil
}

// Calculate solves for the projective matrix mapping the source
// rectangle onto the current corners and returns it. If the corners are
// degenerate, concave, or numerically unstable, the identity matrix is
// returned instead and [Transform.HasErrors] reports why.
func (t *Transform) Calculate() [16]float64 {
	var a [8][8]float64
	var b [8]float64
	t.buildSystem(&a, &b)
	h := luSolve(&a, b)
	m := assembleMatrix(h)

	t.errKind = validateQuad(t.TopLeft, t.TopRight, t.BottomLeft, t.BottomRight)
	if t.errKind == ErrorNone && !matrixFinite(m) {
		t.errKind = ErrorUnstable
	}
	if t.errKind != ErrorNone {
		m = identityMatrix
	}
	t.matrix = m
	return m
}

// HasErrors reports the validity of the most recent solve. Before any
// solve it reports ErrorNone.
func (t *Transform) HasErrors() ErrorKind { return t.errKind }

// Matrix returns the most recently solved matrix without recomputing.
func (t *Transform) Matrix() [16]float64 { return t.matrix }

// Update recomputes the matrix from the current corners and returns the
// CSS-style transform string.
func (t *Transform) Update() string {
	t.Calculate()
	return t.String()
}

// String formats the cached matrix as a matrix3d(...) style string, with
// the DPR correction suffix appended when enabled. It does not resolve;
// use [Transform.Update] after mutating corners.
func (t *Transform) String() string {
	var sb strings.Builder
	sb.WriteString("matrix3d(")
	for i, v := range t.matrix {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte(')')
	if t.dprFix {
		fmt.Fprintf(&sb, " scale(%v,%v) perspective(1000px) translateZ(%vpx)",
			t.dpr, t.dpr, (1-t.dpr)*1000)
	}
	return sb.String()
}

// Equals reports whether t and other generate the same style string.
// Both transforms are resolved first.
func (t *Transform) Equals(other *Transform) bool {
	return t.Update() == other.Update()
}

// Clone returns an independent copy of the transform. Corner positions,
// the cached matrix, and the error state are deep-copied; the origin and
// the surface handle are external references and are shared.
func (t *Transform) Clone() *Transform {
	return &Transform{
		TopLeft:     t.TopLeft,
		TopRight:    t.TopRight,
		BottomLeft:  t.BottomLeft,
		BottomRight: t.BottomRight,
		width:       t.width,
		height:      t.height,
		origin:      t.origin,
		surface:     t.surface,
		dprFix:      t.dprFix,
		dpr:         t.dpr,
		matrix:      t.matrix,
		errKind:     t.errKind,
	}
}
