// Package city drives a geometry engine from generated layouts: it builds the base plane,
// rebuilds the skyscraper grid on demand and tears down whatever the previous run left.
package city

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/skyline/internal/generator"
	"github.com/Faultbox/skyline/internal/geometry"
	"github.com/Faultbox/skyline/internal/logger"
	"github.com/Faultbox/skyline/pkg/math"
)

// BoxSegments returns the subdivisions of a skyscraper box of the given height.
func BoxSegments(height int) [3]int {
	return [3]int{4, 5 * height, 4}
}

// Session owns the generated geometry of one scene. Foundation and skyscraper rebuilds
// are serialized by the session lock.
type Session struct {
	name   string
	engine geometry.Engine
	gen    *generator.Generator

	mu sync.Mutex
	// foundation is the pristine plane; working is the extruded and carved copy the
	// skyscrapers stand on.
	foundation       geometry.Handle
	foundationWidth  int
	foundationHeight int
	working          geometry.Handle
	skyscrapers      []geometry.Handle
	layout           *generator.Layout
}

// NewSession creates a session drawing layouts from gen and building them with engine.
func NewSession(name string, engine geometry.Engine, gen *generator.Generator) *Session {
	return &Session{name: name, engine: engine, gen: gen}
}

// Name returns the session name.
func (s *Session) Name() string {
	return s.name
}

// Engine returns the geometry engine the session builds into.
func (s *Session) Engine() geometry.Engine {
	return s.engine
}

// Reseed makes the following layouts draw from a generator seeded with seed. The current
// grid is kept until the next CreateSkyscrapers replaces it.
func (s *Session) Reseed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = generator.NewSeeded(seed)
}

func (s *Session) log() *zap.Logger {
	return logger.Named("city").With(zap.String("session", s.name))
}

// BuildFoundation replaces the base plane with a fresh width×height plane and removes
// every skyscraper.
func (s *Session) BuildFoundation(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("build foundation: %w: plane size %dx%d", generator.ErrInvalidParameter, width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clear(true); err != nil {
		return err
	}
	if err := s.createFoundation(width, height); err != nil {
		return err
	}
	s.log().Info("foundation built", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// CreateSkyscrapers generates a new layout and rebuilds the grid from it. The previous
// skyscrapers and working plane are discarded first. When no foundation of the requested
// size exists one is built.
//
// Invalid parameters abort before anything is touched. An engine failure after teardown
// has begun leaves the scene partially rebuilt.
func (s *Session) CreateSkyscrapers(p generator.Params) (*generator.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.gen.Generate(p)
	if err != nil {
		return nil, fmt.Errorf("create skyscrapers: %w", err)
	}

	if err := s.clear(false); err != nil {
		return nil, err
	}
	if s.foundation == 0 || s.foundationWidth != p.Width || s.foundationHeight != p.Height {
		if err := s.clear(true); err != nil {
			return nil, err
		}
		if err := s.createFoundation(p.Width, p.Height); err != nil {
			return nil, err
		}
	}

	working, err := s.engine.Duplicate(s.foundation)
	if err != nil {
		return nil, engineErr("duplicate foundation", err)
	}
	s.working = working
	if err := s.engine.SetVisible(s.foundation, false); err != nil {
		return nil, engineErr("hide foundation", err)
	}
	if err := s.engine.ExtrudeBase(working, generator.BaseHeight); err != nil {
		return nil, engineErr("extrude base", err)
	}

	size := p.BoxSize()
	for _, fp := range layout.Footprints {
		if err := s.placeSkyscraper(fp, size); err != nil {
			return nil, err
		}
	}

	if err := s.engine.RecessFaces(working, layout.RecessedFaces(), generator.RecessDepth); err != nil {
		return nil, engineErr("recess bands", err)
	}

	s.layout = layout
	s.log().Info("skyscrapers created",
		zap.Int("count", len(s.skyscrapers)),
		zap.Int("row_band", layout.RowBand.Index),
		zap.Int("column_band", layout.ColumnBand.Index),
	)
	return layout, nil
}

func (s *Session) placeSkyscraper(fp generator.Footprint, size float32) error {
	box, err := s.engine.CreateBox(geometry.BoxSpec{
		Size:     math.Vec3{X: size, Y: float32(fp.Height), Z: size},
		Segments: BoxSegments(fp.Height),
	})
	if err != nil {
		return engineErr("create box", err)
	}
	s.skyscrapers = append(s.skyscrapers, box)

	base, err := s.engine.WorldPositionOfVertex(s.working, fp.LatticeIndex)
	if err != nil {
		return engineErr("locate footprint", err)
	}
	// Rest the box on the slab surface.
	if err := s.engine.MoveTo(box, base.Lift(float32(fp.Height)/2)); err != nil {
		return engineErr("move box", err)
	}
	return nil
}

// EmptyFoundation removes every skyscraper and leaves the plane as it is.
func (s *Session) EmptyFoundation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.skyscrapers)
	if err := s.deleteSkyscrapers(); err != nil {
		return err
	}
	s.log().Info("foundation emptied", zap.Int("removed", n))
	return nil
}

// clear deletes the skyscrapers and the working plane, and the pristine foundation too
// when all is set.
func (s *Session) clear(all bool) error {
	if err := s.deleteSkyscrapers(); err != nil {
		return err
	}
	handles := []geometry.Handle{}
	if s.working != 0 {
		handles = append(handles, s.working)
	}
	if all && s.foundation != 0 {
		handles = append(handles, s.foundation)
	}
	if len(handles) == 0 {
		return nil
	}
	if err := s.engine.DeleteAll(handles...); err != nil {
		return engineErr("delete planes", err)
	}
	s.working = 0
	if all {
		s.foundation, s.foundationWidth, s.foundationHeight = 0, 0, 0
	} else if s.foundation != 0 {
		if err := s.engine.SetVisible(s.foundation, true); err != nil {
			return engineErr("show foundation", err)
		}
	}
	return nil
}

func (s *Session) deleteSkyscrapers() error {
	if len(s.skyscrapers) > 0 {
		if err := s.engine.DeleteAll(s.skyscrapers...); err != nil {
			return engineErr("delete skyscrapers", err)
		}
	}
	s.skyscrapers = nil
	s.layout = nil
	return nil
}

func (s *Session) createFoundation(width, height int) error {
	h, err := s.engine.CreateBasePlane(width, height)
	if err != nil {
		return engineErr("create base plane", err)
	}
	s.foundation, s.foundationWidth, s.foundationHeight = h, width, height
	return nil
}

// Plane returns the plane currently shown: the working plane when skyscrapers have been
// built, otherwise the foundation. It is zero before any foundation exists.
func (s *Session) Plane() geometry.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working != 0 {
		return s.working
	}
	return s.foundation
}

// Skyscrapers returns the handles of the current skyscraper boxes.
func (s *Session) Skyscrapers() []geometry.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geometry.Handle(nil), s.skyscrapers...)
}

// Layout returns the layout of the current grid, or nil when it has been emptied.
func (s *Session) Layout() *generator.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}
