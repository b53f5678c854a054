package mesh

import (
	"fmt"

	"github.com/Faultbox/skyline/pkg/math"
)

// plane is a subdivided base plane. Each face keeps its own top height so extrusion and
// recesses stay exact.
type plane struct {
	width, height int // world size
	segX, segZ    int // face columns and rows
	faceTop       []float32
}

func newPlane(width, height int) *plane {
	p := &plane{
		width:  width,
		height: height,
		segX:   2 * width,
		segZ:   2 * height,
	}
	p.faceTop = make([]float32, p.segX*p.segZ)
	return p
}

func (p *plane) clone() *plane {
	c := *p
	c.faceTop = append([]float32(nil), p.faceTop...)
	return &c
}

func (p *plane) cellX() float32 { return float32(p.width) / float32(p.segX) }
func (p *plane) cellZ() float32 { return float32(p.height) / float32(p.segZ) }

func (p *plane) vertexCount() int {
	return (p.segX + 1) * (p.segZ + 1)
}

func (p *plane) extrude(depth float32) {
	for i := range p.faceTop {
		p.faceTop[i] += depth
	}
}

func (p *plane) recess(faces []int, depth float32) error {
	for _, f := range faces {
		if f < 0 || f >= len(p.faceTop) {
			return fmt.Errorf("face %d out of range [0, %d)", f, len(p.faceTop))
		}
	}
	// A face listed twice is still lowered once.
	seen := make(map[int]bool, len(faces))
	for _, f := range faces {
		if seen[f] {
			continue
		}
		seen[f] = true
		p.faceTop[f] = max(p.faceTop[f]-depth, 0)
	}
	return nil
}

// top returns the height of face (row, col), or -1 outside the plane.
func (p *plane) top(row, col int) float32 {
	if row < 0 || row >= p.segZ || col < 0 || col >= p.segX {
		return -1
	}
	return p.faceTop[row*p.segX+col]
}

// corner returns the local position of lattice vertex (row, col) on the flat plane.
func (p *plane) corner(row, col int) math.Vec3 {
	return math.Vec3{
		X: -float32(p.width)/2 + float32(col)*p.cellX(),
		Z: float32(p.height)/2 - float32(row)*p.cellZ(),
	}
}

// vertex returns the local position of a lattice vertex on the current surface: the
// highest top among the faces that share it.
func (p *plane) vertex(index int) (math.Vec3, error) {
	if index < 0 || index >= p.vertexCount() {
		return math.Vec3{}, fmt.Errorf("vertex %d out of range [0, %d)", index, p.vertexCount())
	}
	row, col := index/(p.segX+1), index%(p.segX+1)
	y := float32(0)
	for _, rc := range [4][2]int{{row - 1, col - 1}, {row - 1, col}, {row, col - 1}, {row, col}} {
		y = max(y, p.top(rc[0], rc[1]))
	}
	return p.corner(row, col).Lift(y), nil
}

// build emits the plane's top faces, the walls where neighbouring faces differ in height,
// and the slab's outer skirt once it has been extruded.
func (p *plane) build(b *builder, origin math.Vec3) {
	const eps = 0.0001

	for row := 0; row < p.segZ; row++ {
		for col := 0; col < p.segX; col++ {
			y := p.top(row, col)
			nearLeft := origin.Add(p.corner(row, col))
			nearRight := origin.Add(p.corner(row, col+1))
			farLeft := origin.Add(p.corner(row+1, col))
			farRight := origin.Add(p.corner(row+1, col+1))

			b.quad(nearLeft.Lift(y), nearRight.Lift(y), farLeft.Lift(y), farRight.Lift(y), math.Up)

			// Wall on the far edge (-Z), shared with the next row.
			far := p.top(row+1, col)
			if far < 0 {
				far = 0
			}
			if d := y - far; d > eps || d < -eps {
				facing := math.Vec3{Z: -1}
				if d < 0 {
					facing = math.Vec3{Z: 1}
				}
				b.quad(farLeft.Lift(y), farRight.Lift(y), farLeft.Lift(far), farRight.Lift(far), facing)
			}

			// Wall on the right edge (+X), shared with the next column.
			right := p.top(row, col+1)
			if right < 0 {
				right = 0
			}
			if d := y - right; d > eps || d < -eps {
				facing := math.Vec3{X: 1}
				if d < 0 {
					facing = math.Vec3{X: -1}
				}
				b.quad(nearRight.Lift(y), farRight.Lift(y), nearRight.Lift(right), farRight.Lift(right), facing)
			}

			// Skirt on the near (+Z) and left (-X) borders.
			if row == 0 && y > eps {
				b.quad(nearLeft.Lift(y), nearRight.Lift(y), nearLeft, nearRight, math.Vec3{Z: 1})
			}
			if col == 0 && y > eps {
				b.quad(nearLeft.Lift(y), farLeft.Lift(y), nearLeft, farLeft, math.Vec3{X: -1})
			}
		}
	}
}
