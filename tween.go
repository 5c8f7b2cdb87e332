package distort

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CornerTween eases the four corners of a Transform toward a destination
// quad. Call Update(dt) each frame; it writes corner positions only, so
// re-resolve the transform (Calculate or Update) whenever the matrix is
// needed. The matrix itself is never interpolated.
//
// There is no global animation manager — users drive the tween
// themselves.
type CornerTween struct {
	tweens    [8]*gween.Tween
	transform *Transform
	Done      bool
}

// TweenCorners creates a CornerTween animating t's corners from their
// current positions to the given quad (top-left, top-right, bottom-left,
// bottom-right order) over duration seconds using the easing function.
func TweenCorners(t *Transform, to [4]Vec2, duration float32, fn ease.TweenFunc) *CornerTween {
	ct := &CornerTween{transform: t}
	from := t.Corners()
	for i := range 4 {
		ct.tweens[i*2] = gween.New(float32(from[i].X), float32(to[i].X), duration, fn)
		ct.tweens[i*2+1] = gween.New(float32(from[i].Y), float32(to[i].Y), duration, fn)
	}
	return ct
}

// Update advances the tween by dt seconds and writes the eased corner
// positions into the transform. Once every axis has finished, Done is
// set and further calls are no-ops.
func (ct *CornerTween) Update(dt float32) {
	if ct.Done {
		return
	}
	var c [4]Vec2
	allDone := true
	for i := range 4 {
		x, xDone := ct.tweens[i*2].Update(dt)
		y, yDone := ct.tweens[i*2+1].Update(dt)
		c[i] = Vec2{X: float64(x), Y: float64(y)}
		if !xDone || !yDone {
			allDone = false
		}
	}
	ct.transform.SetCorners(c)
	ct.Done = allDone
}
