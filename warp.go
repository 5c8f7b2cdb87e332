package distort

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Project maps a point of the source rectangle through the cached matrix
// and returns its distorted position. Resolve the transform (Calculate
// or Update) after mutating corners for the result to reflect them.
func (t *Transform) Project(x, y float64) (px, py float64) {
	m := &t.matrix
	sx := x + t.origin.X
	sy := y + t.origin.Y
	w := m[3]*sx + m[7]*sy + m[15]
	px = (m[0]*sx+m[4]*sy+m[12])/w - t.origin.X
	py = (m[1]*sx+m[5]*sy+m[13])/w - t.origin.Y
	return px, py
}

// WarpMesh is a triangulated grid of a transform's source rectangle with
// every vertex pushed through the solved projective map. Triangles are
// rasterized affinely by the GPU, so finer grids track the projective
// texture distortion more closely; 16x16 is plenty for typical use.
type WarpMesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16

	cols int
	rows int
}

// NewWarpMesh builds a cols x rows warp mesh for t, mapping texture
// coordinates to img. A nil img maps them to the source rectangle
// dimensions instead. The mesh snapshots the current matrix; rebuild it
// after the transform is re-resolved.
func NewWarpMesh(t *Transform, img *ebiten.Image, cols, rows int) *WarpMesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	imgW, imgH := t.width, t.height
	if img != nil {
		b := img.Bounds()
		imgW = float64(b.Dx())
		imgH = float64(b.Dy())
	}

	vcols := cols + 1
	vrows := rows + 1
	verts := make([]ebiten.Vertex, vcols*vrows)
	inds := make([]uint16, cols*rows*6)

	for r := range vrows {
		for c := range vcols {
			fx := float64(c) / float64(cols)
			fy := float64(r) / float64(rows)
			px, py := t.Project(fx*t.width, fy*t.height)
			verts[r*vcols+c] = ebiten.Vertex{
				DstX: float32(px), DstY: float32(py),
				SrcX: float32(fx * imgW), SrcY: float32(fy * imgH),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
		}
	}

	ii := 0
	for r := range rows {
		for c := range cols {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			inds[ii+0] = tl
			inds[ii+1] = bl
			inds[ii+2] = tr
			inds[ii+3] = tr
			inds[ii+4] = bl
			inds[ii+5] = br
			ii += 6
		}
	}

	return &WarpMesh{Vertices: verts, Indices: inds, cols: cols, rows: rows}
}

// Cols returns the number of grid columns.
func (m *WarpMesh) Cols() int { return m.cols }

// Rows returns the number of grid rows.
func (m *WarpMesh) Rows() int { return m.rows }

// Draw submits the mesh with DrawTriangles. opts may be nil.
func (m *WarpMesh) Draw(dst, src *ebiten.Image, opts *ebiten.DrawTrianglesOptions) {
	var triOp ebiten.DrawTrianglesOptions
	if opts != nil {
		triOp = *opts
	}
	dst.DrawTriangles(m.Vertices, m.Indices, src, &triOp)
}

// DrawWarped renders src distorted by t onto dst using a cols x rows
// warp mesh. A nil src falls back to the transform's bound surface; if
// there is no surface either, nothing is drawn. An invalid transform
// carries its identity fallback through, drawing the image undistorted.
func DrawWarped(dst, src *ebiten.Image, t *Transform, cols, rows int) {
	if src == nil {
		src = t.surface
	}
	if src == nil {
		return
	}
	NewWarpMesh(t, src, cols, rows).Draw(dst, src, nil)
}
