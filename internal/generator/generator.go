package generator

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/skyline/internal/logger"
	"github.com/Faultbox/skyline/pkg/math"
)

const (
	// BaseHeight is how far the base plane is extruded into a slab.
	BaseHeight = 0.25
	// RecessDepth is how far carved faces sink, leaving a fifth of the slab.
	RecessDepth = BaseHeight - BaseHeight/5
	// MaxSpacing is the spacing value at which a box fills its whole quadrant.
	MaxSpacing = 10
)

// Params are the inputs of one generation run.
type Params struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MaxHeight int `yaml:"max_height"`
	Spacing   int `yaml:"spacing"`
}

// Validate checks every parameter before anything is generated.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return invalidf("width must be positive, got %d", p.Width)
	case p.Height <= 0:
		return invalidf("height must be positive, got %d", p.Height)
	case p.MaxHeight <= 0:
		return invalidf("max height must be positive, got %d", p.MaxHeight)
	case p.Spacing <= 0 || p.Spacing > MaxSpacing:
		return invalidf("spacing must be in [1, %d], got %d", MaxSpacing, p.Spacing)
	}
	return nil
}

// BoxSize returns the box edge length along X and Z.
func (p Params) BoxSize() float32 {
	return float32(p.Spacing) / MaxSpacing
}

// Layout is the result of one generation run.
type Layout struct {
	Params          Params      `yaml:"params"`
	VertexCount     int         `yaml:"vertex_count"`
	FaceCount       int         `yaml:"face_count"`
	SkyscraperCount int         `yaml:"skyscraper_count"`
	Footprints      []Footprint `yaml:"footprints"`
	Removed         []Footprint `yaml:"removed"`
	RowBand         Band        `yaml:"row_band"`
	ColumnBand      Band        `yaml:"column_band"`
}

// RecessedFaces returns the sorted union of both band face ranges.
func (l *Layout) RecessedFaces() []int {
	faces := make([]int, 0, len(l.RowBand.Faces)+len(l.ColumnBand.Faces))
	faces = append(faces, l.RowBand.Faces...)
	faces = append(faces, l.ColumnBand.Faces...)
	slices.Sort(faces)
	return slices.Compact(faces)
}

// BoxCenter returns where the box of fp is centered on the extruded, uncarved slab.
func (l *Layout) BoxCenter(fp Footprint) math.Vec3 {
	return fp.Position.Lift(BaseHeight + float32(fp.Height)/2)
}

// Grid returns the footprint heights as rows of the width×height grid, with 0 for
// carved slots.
func (l *Layout) Grid() [][]int {
	w, h := l.Params.Width, l.Params.Height
	grid := make([][]int, h)
	for r := range grid {
		grid[r] = make([]int, w)
	}
	for _, fp := range l.Footprints {
		grid[fp.Index/w][fp.Index%w] = fp.Height
	}
	return grid
}

// Generator runs the layout pipeline: lattice, heights, compaction, carving.
type Generator struct {
	heights *HeightSampler
	carver  *StripCarver
}

// New creates a generator drawing from rng.
func New(rng Source) *Generator {
	return &Generator{
		heights: NewHeightSampler(rng),
		carver:  NewStripCarver(rng),
	}
}

// NewSeeded creates a generator whose runs are reproducible for a given seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x5bd1e995)))
}

// Generate lays out one skyscraper grid. Parameters are validated before any random
// value is drawn.
func (g *Generator) Generate(p Params) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("generator")

	lattice, err := Build(p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	log.Debug("lattice built",
		zap.Int("vertices", lattice.VertexCount),
		zap.Int("faces", lattice.FaceCount),
		zap.Int("candidates", len(lattice.Candidates)),
	)

	// Every candidate gets its height at creation; only quadrant centers become the
	// footprint grid.
	footprints := make([]Footprint, 0, p.Width*p.Height)
	for _, c := range lattice.Candidates {
		height, err := g.heights.Sample(p.MaxHeight)
		if err != nil {
			return nil, err
		}
		if !c.QuadrantCenter() {
			continue
		}
		footprints = append(footprints, Footprint{
			Index:        c.FootprintIndex(p.Width),
			LatticeIndex: c.Index,
			Position:     c.Position,
			Height:       height,
		})
	}

	all := slices.Clone(footprints)
	survivors, row, col := g.carver.CarveBands(p.Width, p.Height, footprints)
	log.Debug("bands carved",
		zap.Int("row", row.Index),
		zap.Int("row_start", row.Start),
		zap.Int("column", col.Index),
		zap.Int("column_start", col.Start),
		zap.Int("survivors", len(survivors)),
	)

	return &Layout{
		Params:          p,
		VertexCount:     lattice.VertexCount,
		FaceCount:       lattice.FaceCount,
		SkyscraperCount: len(lattice.Candidates),
		Footprints:      survivors,
		Removed:         removed(all, survivors),
		RowBand:         row,
		ColumnBand:      col,
	}, nil
}

// removed returns the footprints of all that are missing from kept. Both are ordered by
// footprint index.
func removed(all, kept []Footprint) []Footprint {
	var out []Footprint
	k := 0
	for _, fp := range all {
		if k < len(kept) && kept[k].Index == fp.Index {
			k++
			continue
		}
		out = append(out, fp)
	}
	return out
}
