package generator

import (
	"github.com/Faultbox/skyline/pkg/math"
)

// HeightStep is the face stride between neighbouring footprint columns.
const HeightStep = 2

// Footprint is one building slot of the width×height footprint grid.
type Footprint struct {
	Index        int       `yaml:"index"`         // row-major index in the footprint grid
	LatticeIndex int       `yaml:"lattice_index"` // vertex the building stands on
	Position     math.Vec3 `yaml:"position"`      // lattice position on the undeformed plane
	Height       int       `yaml:"height"`
}

// Band is one carved strip of the grid.
// Index is the footprint row (or column) removed; it is -1 when nothing was carved.
type Band struct {
	Index int   `yaml:"index"`
	Start int   `yaml:"start"` // first base face of the band
	Faces []int `yaml:"faces"`
}

// Empty reports whether the band carved nothing.
func (b Band) Empty() bool {
	return b.Index < 0
}

var noBand = Band{Index: -1, Start: -1}

// WidthStep returns the number of faces spanned by one footprint row, 2·(2w).
func WidthStep(width int) int {
	return 2 * (2 * width)
}

// StripCarver removes one random row band and one random column band of footprints.
type StripCarver struct {
	rng Source
}

// NewStripCarver creates a carver backed by rng.
func NewStripCarver(rng Source) *StripCarver {
	return &StripCarver{rng: rng}
}

// CarveBands picks one row band and one column band and returns the footprints that
// survive both. The column band is evaluated against what the row band left behind.
// A zero width or height carves nothing.
func (c *StripCarver) CarveBands(width, height int, footprints []Footprint) ([]Footprint, Band, Band) {
	if width <= 0 || height <= 0 {
		return footprints, noBand, noBand
	}
	rowStart := pickAligned(c.rng, FaceCount(width, height), WidthStep(width))
	colStart := pickAligned(c.rng, 2*width, HeightStep)
	return carveAt(width, height, footprints, rowStart, colStart)
}

func carveAt(width, height int, footprints []Footprint, rowStart, colStart int) ([]Footprint, Band, Band) {
	row := RowBand(width, height, rowStart)
	col := ColumnBand(width, height, colStart)

	rowLo, rowHi := row.Index*width, row.Index*width+width
	survivors := make([]Footprint, 0, len(footprints))
	for _, fp := range footprints {
		if fp.Index >= rowLo && fp.Index < rowHi {
			continue
		}
		survivors = append(survivors, fp)
	}

	kept := survivors[:0]
	for _, fp := range survivors {
		if fp.Index%width == col.Index {
			continue
		}
		kept = append(kept, fp)
	}
	return kept, row, col
}

// RowBand describes the row band starting at face rowStart, which must be a multiple of
// WidthStep(width).
func RowBand(width, height, rowStart int) Band {
	step := WidthStep(width)
	if step <= 0 || rowStart < 0 || rowStart >= FaceCount(width, height) {
		return noBand
	}
	faces := make([]int, 0, step)
	for f := rowStart; f < rowStart+step; f++ {
		faces = append(faces, f)
	}
	return Band{Index: rowStart / step, Start: rowStart, Faces: faces}
}

// ColumnBand describes the column band whose left face column is colStart, which must
// be a multiple of HeightStep below 2·width. It spans the full height of the plane.
func ColumnBand(width, height, colStart int) Band {
	faceRow := 2 * width
	if colStart < 0 || colStart >= faceRow || height <= 0 {
		return noBand
	}
	faceCount := FaceCount(width, height)
	faces := make([]int, 0, faceCount/faceRow*HeightStep)
	for f := 0; f < faceCount; f++ {
		if m := f % faceRow; m == colStart || m == colStart+1 {
			faces = append(faces, f)
		}
	}
	return Band{Index: colStart / HeightStep, Start: colStart, Faces: faces}
}

// pickAligned returns a uniform multiple of step in [0, limit).
func pickAligned(rng Source, limit, step int) int {
	n := (limit + step - 1) / step
	return rng.IntN(n) * step
}
