// Package distort computes CSS-style matrix3d perspective transforms
// that map a rectangle onto an arbitrary convex quadrilateral.
//
// A [Transform] owns the four corners of the destination quad,
// initialized to the source rectangle. Move them with [Transform.Translate],
// [Transform.Scale], [Transform.ForcePerspective], or directly, then
// resolve:
//
//	t := distort.New(distort.Config{Width: 300, Height: 200})
//	t.TopRight.Y += 40
//	t.BottomRight.Y -= 40
//	css := t.Update() // "matrix3d(...)"
//
// Mutations never recompute the matrix; only [Transform.Calculate] and
// [Transform.Update] do. Under the hood each solve builds an 8x8 linear
// system from the four corner correspondences and runs a partial-pivot
// LU decomposition.
//
// Degenerate geometry never fails the caller: if the corners collapse
// (any pair within 1 unit), go concave, or produce a non-finite matrix,
// the solve falls back to the identity matrix and [Transform.HasErrors]
// reports the reason. The only returned error in the package is
// [ErrInvalidDirection] from ForcePerspective.
//
// # Rendering
//
// For [Ebitengine] users, [DrawWarped] (or [NewWarpMesh] for more
// control) renders an image through the solved transform as a
// triangulated grid:
//
//	t.Update()
//	distort.DrawWarped(screen, img, t, 16, 16)
//
// [TweenCorners] animates the corner geometry with gween easing,
// re-solving per frame rather than interpolating matrices.
//
// Transforms are single-threaded: no locking is provided, and a
// mutate-then-solve sequence needs exclusive access. A matrix value
// returned by Calculate is a plain array and safe to share.
//
// [Ebitengine]: https://ebitengine.org
package distort
