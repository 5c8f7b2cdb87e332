package distort

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func assertNear32(t *testing.T, name string, got float32, want float64) {
	t.Helper()
	if math.Abs(float64(got)-want) > 1e-3 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestProjectIdentity(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	px, py := tr.Project(33, 44)
	assertNear(t, "px", px, 33)
	assertNear(t, "py", py, 44)
}

func TestProjectCorners(t *testing.T) {
	tr := newSquare()
	tr.TopRight = Vec2{130, 20}
	tr.BottomRight = Vec2{120, 85}
	tr.Calculate()

	px, py := tr.Project(100, 0)
	if math.Abs(px-130) > 1e-5 || math.Abs(py-20) > 1e-5 {
		t.Errorf("Project(100, 0) = (%v, %v), want (130, 20)", px, py)
	}
	px, py = tr.Project(0, 0)
	if math.Abs(px) > 1e-5 || math.Abs(py) > 1e-5 {
		t.Errorf("Project(0, 0) = (%v, %v), want (0, 0)", px, py)
	}
}

func TestWarpMeshCounts(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	m := NewWarpMesh(tr, nil, 4, 3)
	if len(m.Vertices) != 5*4 {
		t.Errorf("vertices = %d, want %d", len(m.Vertices), 5*4)
	}
	if len(m.Indices) != 4*3*6 {
		t.Errorf("indices = %d, want %d", len(m.Indices), 4*3*6)
	}
	if m.Cols() != 4 || m.Rows() != 3 {
		t.Errorf("dims = %dx%d, want 4x3", m.Cols(), m.Rows())
	}
}

func TestWarpMeshClampsGrid(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	m := NewWarpMesh(tr, nil, 0, -2)
	if m.Cols() != 1 || m.Rows() != 1 {
		t.Errorf("dims = %dx%d, want 1x1", m.Cols(), m.Rows())
	}
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Errorf("counts = %d verts / %d inds, want 4 / 6", len(m.Vertices), len(m.Indices))
	}
}

func TestWarpMeshIdentityKeepsGrid(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	m := NewWarpMesh(tr, nil, 4, 4)
	for i, v := range m.Vertices {
		if v.DstX != v.SrcX || v.DstY != v.SrcY {
			t.Errorf("vertex %d moved: dst (%v, %v), src (%v, %v)", i, v.DstX, v.DstY, v.SrcX, v.SrcY)
		}
	}
}

func TestWarpMeshCornerVertices(t *testing.T) {
	tr := newSquare()
	tr.SetCorners([4]Vec2{{10, 5}, {140, -10}, {0, 130}, {150, 120}})
	tr.Calculate()
	m := NewWarpMesh(tr, nil, 2, 2)

	// Grid corner vertices must land exactly on the transform corners.
	tl := m.Vertices[0]
	trv := m.Vertices[2]
	blv := m.Vertices[6]
	brv := m.Vertices[8]
	assertNear32(t, "tl.DstX", tl.DstX, 10)
	assertNear32(t, "tl.DstY", tl.DstY, 5)
	assertNear32(t, "tr.DstX", trv.DstX, 140)
	assertNear32(t, "tr.DstY", trv.DstY, -10)
	assertNear32(t, "bl.DstX", blv.DstX, 0)
	assertNear32(t, "bl.DstY", blv.DstY, 130)
	assertNear32(t, "br.DstX", brv.DstX, 150)
	assertNear32(t, "br.DstY", brv.DstY, 120)
}

func TestWarpMeshUVSpansImage(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	img := ebiten.NewImage(32, 64)
	m := NewWarpMesh(tr, img, 2, 2)

	last := m.Vertices[len(m.Vertices)-1]
	assertNear32(t, "last.SrcX", last.SrcX, 32)
	assertNear32(t, "last.SrcY", last.SrcY, 64)
	first := m.Vertices[0]
	assertNear32(t, "first.SrcX", first.SrcX, 0)
	assertNear32(t, "first.SrcY", first.SrcY, 0)
}

func TestWarpMeshIndexWinding(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	m := NewWarpMesh(tr, nil, 2, 1)
	// First cell: tl=0, bl=3, tr=1, then tr=1, bl=3, br=4.
	want := []uint16{0, 3, 1, 1, 3, 4}
	for i, w := range want {
		if m.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], w)
		}
	}
}

func TestDrawWarpedNilSources(t *testing.T) {
	tr := newSquare()
	tr.Calculate()
	dst := ebiten.NewImage(200, 200)
	// No src and no bound surface: must be a quiet no-op.
	DrawWarped(dst, nil, tr, 8, 8)
}

func TestDrawWarpedUsesBoundSurface(t *testing.T) {
	src := ebiten.NewImage(100, 100)
	tr := New(Config{Width: 100, Height: 100, Surface: src})
	tr.Update()
	dst := ebiten.NewImage(200, 200)
	DrawWarped(dst, nil, tr, 8, 8)
}
