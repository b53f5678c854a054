package mesh

import (
	"bytes"
	"errors"
	stdmath "math"
	"slices"
	"strings"
	"testing"

	"github.com/Faultbox/skyline/internal/geometry"
	"github.com/Faultbox/skyline/pkg/math"
)

func near(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < 1e-6
}

func TestScene_CreateBasePlane(t *testing.T) {
	s := NewScene()

	if _, err := s.CreateBasePlane(0, 5); err == nil {
		t.Error("expected error for a zero-width plane")
	}

	h, err := s.CreateBasePlane(5, 5)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}
	if h == 0 {
		t.Error("handle should be non-zero")
	}
	if !s.Visible(h) {
		t.Error("new plane should be visible")
	}
	if got := s.Handles(KindPlane); !slices.Equal(got, []geometry.Handle{h}) {
		t.Errorf("Handles(KindPlane) = %v, want [%d]", got, h)
	}
}

func TestScene_WorldPositionOfVertex(t *testing.T) {
	s := NewScene()
	h, err := s.CreateBasePlane(5, 5)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}

	vertexAt := func(index int) math.Vec3 {
		t.Helper()
		pos, err := s.WorldPositionOfVertex(h, index)
		if err != nil {
			t.Fatalf("WorldPositionOfVertex(%d) failed: %v", index, err)
		}
		return pos
	}

	if got, want := vertexAt(0), (math.Vec3{X: -2.5, Z: 2.5}); got != want {
		t.Errorf("vertex 0 at %v, want %v", got, want)
	}
	// Row 1, column 1: center of the first quadrant.
	if got, want := vertexAt(12), (math.Vec3{X: -2, Z: 2}); got != want {
		t.Errorf("vertex 12 at %v, want %v", got, want)
	}

	if err := s.ExtrudeBase(h, 0.25); err != nil {
		t.Fatalf("ExtrudeBase failed: %v", err)
	}
	if got, want := vertexAt(120), (math.Vec3{X: 2.5, Y: 0.25, Z: -2.5}); got != want {
		t.Errorf("vertex 120 at %v, want %v", got, want)
	}

	if err := s.MoveTo(h, math.Vec3{X: 10}); err != nil {
		t.Fatalf("MoveTo failed: %v", err)
	}
	if got, want := vertexAt(0), (math.Vec3{X: 7.5, Y: 0.25, Z: 2.5}); got != want {
		t.Errorf("moved vertex 0 at %v, want %v", got, want)
	}

	if _, err := s.WorldPositionOfVertex(h, 121); err == nil {
		t.Error("expected error for a vertex past the lattice")
	}
	if _, err := s.WorldPositionOfVertex(99, 0); !errors.Is(err, geometry.ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestScene_RecessFaces(t *testing.T) {
	s := NewScene()
	h, err := s.CreateBasePlane(2, 2)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}
	if err := s.ExtrudeBase(h, 0.25); err != nil {
		t.Fatalf("ExtrudeBase failed: %v", err)
	}

	// Duplicated indices sink once.
	if err := s.RecessFaces(h, []int{5, 5, 6}, 0.2); err != nil {
		t.Fatalf("RecessFaces failed: %v", err)
	}

	faceTop := func(face int) float32 {
		t.Helper()
		top, err := s.FaceTop(h, face)
		if err != nil {
			t.Fatalf("FaceTop(%d) failed: %v", face, err)
		}
		return top
	}
	if top := faceTop(5); !near(top, 0.05) {
		t.Errorf("face 5 top %f, want 0.05", top)
	}
	if top := faceTop(0); !near(top, 0.25) {
		t.Errorf("face 0 top %f, want 0.25", top)
	}

	// Vertex 6 (row 1, column 1) touches recessed face 5 and untouched faces 0, 1, 4.
	pos, err := s.WorldPositionOfVertex(h, 6)
	if err != nil {
		t.Fatalf("WorldPositionOfVertex failed: %v", err)
	}
	if !near(pos.Y, 0.25) {
		t.Errorf("vertex 6 height %f, want 0.25", pos.Y)
	}

	// Clamped at the original surface.
	if err := s.RecessFaces(h, []int{5}, 1); err != nil {
		t.Fatalf("RecessFaces failed: %v", err)
	}
	if top := faceTop(5); top != 0 {
		t.Errorf("face 5 top %f, want clamp at 0", top)
	}

	if err := s.RecessFaces(h, []int{16}, 0.1); err == nil {
		t.Error("expected error for a face past the plane")
	}
	box, err := s.CreateBox(geometry.BoxSpec{Size: math.Vec3{X: 1, Y: 1, Z: 1}})
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	if err := s.RecessFaces(box, []int{0}, 0.1); err == nil {
		t.Error("expected error recessing a box")
	}
}

func TestScene_Duplicate(t *testing.T) {
	s := NewScene()
	orig, err := s.CreateBasePlane(3, 3)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}
	if err := s.ExtrudeBase(orig, 0.25); err != nil {
		t.Fatalf("ExtrudeBase failed: %v", err)
	}

	dup, err := s.Duplicate(orig)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dup == orig {
		t.Fatal("duplicate should get its own handle")
	}

	if err := s.RecessFaces(dup, []int{0}, 0.2); err != nil {
		t.Fatalf("RecessFaces failed: %v", err)
	}
	top, err := s.FaceTop(orig, 0)
	if err != nil {
		t.Fatalf("FaceTop failed: %v", err)
	}
	if !near(top, 0.25) {
		t.Errorf("recessing the copy changed the original: top %f", top)
	}

	if err := s.SetVisible(orig, false); err != nil {
		t.Fatalf("SetVisible failed: %v", err)
	}
	if s.Visible(orig) || !s.Visible(dup) {
		t.Errorf("visibility orig %v dup %v, want false true", s.Visible(orig), s.Visible(dup))
	}
}

func TestScene_DeleteAll(t *testing.T) {
	s := NewScene()
	a, _ := s.CreateBox(geometry.BoxSpec{Size: math.Vec3{X: 1, Y: 1, Z: 1}})
	b, _ := s.CreateBox(geometry.BoxSpec{Size: math.Vec3{X: 1, Y: 2, Z: 1}})
	p, _ := s.CreateBasePlane(1, 1)

	// Unknown handles are ignored.
	if err := s.DeleteAll(a, b, 1234); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 object left, got %d", s.Len())
	}
	if got := s.Handles(0); !slices.Equal(got, []geometry.Handle{p}) {
		t.Errorf("Handles = %v, want [%d]", got, p)
	}

	if err := s.MoveTo(a, math.Vec3{}); !errors.Is(err, geometry.ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func boxVertexCount(spec geometry.BoxSpec) int {
	nx, ny, nz := max(spec.Segments[0], 1), max(spec.Segments[1], 1), max(spec.Segments[2], 1)
	return 2 * ((nz+1)*(ny+1) + (nx+1)*(nz+1) + (nx+1)*(ny+1))
}

func TestScene_BoxMesh(t *testing.T) {
	s := NewScene()
	spec := geometry.BoxSpec{Size: math.Vec3{X: 1, Y: 3, Z: 0.5}, Segments: [3]int{4, 15, 4}}
	h, err := s.CreateBox(spec)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	center := math.Vec3{X: 1, Y: 1.75, Z: -1}
	if err := s.MoveTo(h, center); err != nil {
		t.Fatalf("MoveTo failed: %v", err)
	}

	m, err := s.Mesh(h)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}

	if len(m.Vertices) != boxVertexCount(spec) {
		t.Errorf("expected %d vertices, got %d", boxVertexCount(spec), len(m.Vertices))
	}
	if want := 2 * 2 * (4*15 + 4*4 + 4*15); m.Triangles() != want {
		t.Errorf("expected %d triangles, got %d", want, m.Triangles())
	}
	if want := (math.Vec3{X: 0.5, Y: 0.25, Z: -1.25}); !m.Bounds.Min.ApproxEqual(want, 1e-5) {
		t.Errorf("bounds min %v, want %v", m.Bounds.Min, want)
	}
	if want := (math.Vec3{X: 1.5, Y: 3.25, Z: -0.75}); !m.Bounds.Max.ApproxEqual(want, 1e-5) {
		t.Errorf("bounds max %v, want %v", m.Bounds.Max, want)
	}

	// Every normal points away from the box center.
	for i, v := range m.Vertices {
		p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		n := math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		if p.Sub(center).Dot(n) <= 0 {
			t.Errorf("vertex %d normal %v points inward", i, n)
		}
	}
}

func TestScene_PlaneMesh(t *testing.T) {
	s := NewScene()
	h, err := s.CreateBasePlane(2, 3)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}

	faces := 4 * 6
	perimeter := 2 * (4 + 6)
	tests := []struct {
		name      string
		apply     func() error
		triangles int
	}{
		// Flat: one quad per face, no walls.
		{"flat", func() error { return nil }, 2 * faces},
		// Extruded: a skirt quad along each border face edge.
		{"extruded", func() error { return s.ExtrudeBase(h, 0.25) }, 2 * (faces + perimeter)},
		// One interior face recessed: four walls around it.
		{"recessed", func() error { return s.RecessFaces(h, []int{5}, 0.2) }, 2 * (faces + perimeter + 4)},
	}

	for _, tt := range tests {
		if err := tt.apply(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		m, err := s.Mesh(h)
		if err != nil {
			t.Fatalf("%s: Mesh failed: %v", tt.name, err)
		}
		if m.Triangles() != tt.triangles {
			t.Errorf("%s: expected %d triangles, got %d", tt.name, tt.triangles, m.Triangles())
		}

		switch tt.name {
		case "flat":
			for _, v := range m.Vertices {
				if v.Normal != [3]float32{0, 1, 0} {
					t.Errorf("flat plane normal %v, want up", v.Normal)
					break
				}
			}
		case "extruded":
			if !near(m.Bounds.Max.Y, 0.25) || !near(m.Bounds.Min.Y, 0) {
				t.Errorf("extruded bounds y [%f, %f], want [0, 0.25]", m.Bounds.Min.Y, m.Bounds.Max.Y)
			}
		}
	}
}

func TestScene_WriteOBJ(t *testing.T) {
	s := NewScene()
	p, err := s.CreateBasePlane(1, 1)
	if err != nil {
		t.Fatalf("CreateBasePlane failed: %v", err)
	}
	hidden, err := s.Duplicate(p)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if err := s.SetVisible(hidden, false); err != nil {
		t.Fatalf("SetVisible failed: %v", err)
	}
	if _, err := s.CreateBox(geometry.BoxSpec{Size: math.Vec3{X: 1, Y: 1, Z: 1}, Segments: [3]int{1, 1, 1}}); err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.WriteOBJ(&buf); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "o base_plane_1\n") || !strings.Contains(out, "o skyscraper_3\n") {
		t.Error("visible objects missing from output")
	}
	if strings.Contains(out, "o base_plane_2\n") {
		t.Error("hidden plane should not be written")
	}

	var vertices, normals, faces int
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "vn "):
			normals++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	// Plane: 4 quads; box: 6 quads.
	if vertices != 4*4+6*4 || normals != vertices {
		t.Errorf("got %d vertices and %d normals, want %d each", vertices, normals, 4*4+6*4)
	}
	if faces != 2*4+2*6 {
		t.Errorf("expected %d faces, got %d", 2*4+2*6, faces)
	}
	// Box indices continue after the plane's.
	if !strings.Contains(out, "f 17//17 18//18 19//19\n") {
		t.Error("box face indices should be offset by the plane's vertices")
	}
}
