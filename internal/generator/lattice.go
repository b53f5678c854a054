// Package generator lays out a grid of skyscraper footprints on a subdivided base plane
// and carves a street crossing out of it.
//
// A plane of W×H world units is subdivided into 2W×2H quad faces, which gives a vertex
// lattice of (2W+1)×(2H+1) points scanned row-major. Every even lattice index is a
// footprint candidate; the candidates on odd rows and odd columns sit at the center of a
// 2×2 face quadrant and make up the W×H footprint grid that buildings are placed on.
package generator

import (
	"github.com/Faultbox/skyline/pkg/math"
)

// CellSize is the world distance between neighbouring lattice vertices.
const CellSize = 0.5

// Candidate is a lattice point that passed the even-index filter.
type Candidate struct {
	Index    int       `yaml:"index"`
	Row      int       `yaml:"row"`
	Col      int       `yaml:"col"`
	Position math.Vec3 `yaml:"position"`
}

// QuadrantCenter reports whether the candidate sits at the center of a 2×2 face block.
func (c Candidate) QuadrantCenter() bool {
	return c.Row%2 == 1 && c.Col%2 == 1
}

// FootprintIndex returns the row-major index of a quadrant center in the width×height
// footprint grid. It is only meaningful when QuadrantCenter is true.
func (c Candidate) FootprintIndex(width int) int {
	return (c.Row/2)*width + c.Col/2
}

// Lattice is the vertex and face index space of one base plane.
type Lattice struct {
	Width       int
	Height      int
	VertexCount int
	FaceCount   int
	Candidates  []Candidate
}

// RowLength returns the number of vertices in one lattice row.
func (l *Lattice) RowLength() int {
	return 2*l.Width + 1
}

// FaceRowLength returns the number of faces in one face row.
func (l *Lattice) FaceRowLength() int {
	return 2 * l.Width
}

// VertexCount returns (2w+1)(2h+1).
func VertexCount(width, height int) int {
	return (2*width + 1) * (2*height + 1)
}

// FaceCount returns (2w)(2h).
func FaceCount(width, height int) int {
	return (2 * width) * (2 * height)
}

// SkyscraperCount returns ceil(VertexCount/2), the number of even lattice indices.
func SkyscraperCount(width, height int) int {
	return (VertexCount(width, height) + 1) / 2
}

// Build enumerates the lattice of a width×height plane and its footprint candidates.
func Build(width, height int) (*Lattice, error) {
	if width <= 0 {
		return nil, invalidf("width must be positive, got %d", width)
	}
	if height <= 0 {
		return nil, invalidf("height must be positive, got %d", height)
	}

	l := &Lattice{
		Width:       width,
		Height:      height,
		VertexCount: VertexCount(width, height),
		FaceCount:   FaceCount(width, height),
	}
	l.Candidates = make([]Candidate, 0, SkyscraperCount(width, height))

	rowLen := l.RowLength()
	for i := 0; i < l.VertexCount; i++ {
		if i%2 != 0 {
			continue
		}
		row, col := i/rowLen, i%rowLen
		l.Candidates = append(l.Candidates, Candidate{
			Index:    i,
			Row:      row,
			Col:      col,
			Position: LatticePosition(width, height, row, col),
		})
	}
	return l, nil
}

// LatticePosition maps a lattice coordinate to world space. The plane is centered on the
// origin in the XZ plane; row 0 is the +Z edge and column 0 the -X edge.
func LatticePosition(width, height, row, col int) math.Vec3 {
	return math.Vec3{
		X: -float32(width)/2 + float32(col)*CellSize,
		Y: 0,
		Z: float32(height)/2 - float32(row)*CellSize,
	}
}
