// Package mesh is an in-memory geometry engine. It keeps plane and box objects as
// parameters and turns them into triangle meshes on demand, for export or inspection.
package mesh

import (
	"github.com/Faultbox/skyline/pkg/math"
)

// Vertex is a mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds indexed triangles in world space.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

func (b *Bounds) extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// builder accumulates quads into a Mesh.
type builder struct {
	mesh Mesh
}

func newBuilder() *builder {
	return &builder{mesh: Mesh{Bounds: emptyBounds()}}
}

// quad adds the quad p0 p1 p2 p3 (p0-p1 and p2-p3 are opposite edges) as two triangles,
// wound so its normal points along facing.
func (b *builder) quad(p0, p1, p2, p3, facing math.Vec3) {
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	flip := n.Dot(facing) < 0
	if flip {
		n = n.Scale(-1)
	}

	base := uint32(len(b.mesh.Vertices))
	for _, p := range [4]math.Vec3{p0, p1, p2, p3} {
		b.mesh.Vertices = append(b.mesh.Vertices, Vertex{Position: p.Array(), Normal: n.Array()})
		b.mesh.Bounds.extend(p)
	}
	if flip {
		b.mesh.Indices = append(b.mesh.Indices, base, base+2, base+1, base+1, base+2, base+3)
		return
	}
	b.mesh.Indices = append(b.mesh.Indices, base, base+1, base+2, base+2, base+1, base+3)
}

// grid adds a subdivided rectangle spanning origin + du·s + dv·t for s, t in [0, 1].
func (b *builder) grid(origin, du, dv math.Vec3, nu, nv int, facing math.Vec3) {
	nu, nv = max(nu, 1), max(nv, 1)
	n := du.Cross(dv).Normalize()
	flip := n.Dot(facing) < 0
	if flip {
		n = n.Scale(-1)
	}

	base := uint32(len(b.mesh.Vertices))
	for j := 0; j <= nv; j++ {
		for i := 0; i <= nu; i++ {
			p := origin.
				Add(du.Scale(float32(i) / float32(nu))).
				Add(dv.Scale(float32(j) / float32(nv)))
			b.mesh.Vertices = append(b.mesh.Vertices, Vertex{Position: p.Array(), Normal: n.Array()})
			b.mesh.Bounds.extend(p)
		}
	}

	stride := uint32(nu + 1)
	for j := uint32(0); j < uint32(nv); j++ {
		for i := uint32(0); i < uint32(nu); i++ {
			a := base + j*stride + i
			c := a + stride
			if flip {
				b.mesh.Indices = append(b.mesh.Indices, a, c, a+1, c, c+1, a+1)
			} else {
				b.mesh.Indices = append(b.mesh.Indices, a, a+1, c, c, a+1, c+1)
			}
		}
	}
}

func (b *builder) build() *Mesh {
	m := b.mesh
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
	}
	return &m
}
