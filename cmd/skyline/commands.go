package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skyline/internal/city"
	"github.com/Faultbox/skyline/internal/config"
	"github.com/Faultbox/skyline/internal/generator"
	"github.com/Faultbox/skyline/internal/geometry/mesh"
	"github.com/Faultbox/skyline/internal/logger"
)

// resolveSeed replaces a zero seed with one taken from the clock.
func resolveSeed(cfg *config.Config) {
	if cfg.Generator.Seed != 0 {
		return
	}
	cfg.Generator.Seed = uint64(time.Now().UnixNano())
	logger.Debug("seeded from clock", zap.Uint64("seed", cfg.Generator.Seed))
}

// build runs one full generation into a fresh scene.
func build(name string, cfg *config.Config, seed uint64) (*mesh.Scene, *generator.Layout, error) {
	scene := mesh.NewScene()
	s := city.NewSession(name, scene, generator.NewSeeded(seed))

	if err := s.BuildFoundation(cfg.Foundation.Width, cfg.Foundation.Height); err != nil {
		return nil, nil, err
	}
	layout, err := s.CreateSkyscrapers(cfg.Params())
	if err != nil {
		return nil, nil, err
	}
	return scene, layout, nil
}

func cmdGenerate(cfg *config.Config) error {
	resolveSeed(cfg)
	scene, layout, err := build("skyline", cfg, cfg.Generator.Seed)
	if err != nil {
		return err
	}

	if err := writeScene(scene, cfg.Output.Path); err != nil {
		return err
	}

	logger.Info("scene written",
		zap.String("path", cfg.Output.Path),
		zap.Uint64("seed", cfg.Generator.Seed),
		zap.Int("skyscrapers", len(layout.Footprints)))
	return nil
}

func cmdLayout(cfg *config.Config) error {
	resolveSeed(cfg)
	layout, err := generator.NewSeeded(cfg.Generator.Seed).Generate(cfg.Params())
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(layout); err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return enc.Close()
}

func cmdPreview(cfg *config.Config) error {
	resolveSeed(cfg)
	layout, err := generator.NewSeeded(cfg.Generator.Seed).Generate(cfg.Params())
	if err != nil {
		return err
	}

	fmt.Printf("Seed: %d\n", cfg.Generator.Seed)
	return renderPreview(os.Stdout, layout)
}

// renderPreview draws the footprint grid top row first. Carved slots print as '.'
// and the row and column bands are marked with '>' and 'v'.
func renderPreview(w io.Writer, layout *generator.Layout) error {
	grid := layout.Grid()
	width := layout.Params.Width

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "   ")
	for col := 0; col < width; col++ {
		mark := ' '
		if !layout.ColumnBand.Empty() && layout.ColumnBand.Index == col {
			mark = 'v'
		}
		fmt.Fprintf(bw, " %c", mark)
	}
	fmt.Fprintln(bw)

	for row, cells := range grid {
		mark := ' '
		if !layout.RowBand.Empty() && layout.RowBand.Index == row {
			mark = '>'
		}
		fmt.Fprintf(bw, "%2d%c", row, mark)
		for _, h := range cells {
			if h == 0 {
				fmt.Fprint(bw, " .")
				continue
			}
			fmt.Fprintf(bw, " %s", heightGlyph(h))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// heightGlyph prints heights above 9 as letters so columns stay one character wide.
func heightGlyph(h int) string {
	if h < 10 {
		return fmt.Sprint(h)
	}
	return string(rune('a' + h - 10))
}

func cmdInfo(cfg *config.Config) error {
	return renderInfo(os.Stdout, cfg)
}

func renderInfo(w io.Writer, cfg *config.Config) error {
	width, height := cfg.Foundation.Width, cfg.Foundation.Height
	p := cfg.Params()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Foundation:      %d x %d\n", width, height)
	fmt.Fprintf(bw, "Lattice points:  %d\n", generator.VertexCount(width, height))
	fmt.Fprintf(bw, "Base faces:      %d\n", generator.FaceCount(width, height))
	fmt.Fprintf(bw, "Candidates:      %d\n", generator.SkyscraperCount(width, height))
	fmt.Fprintf(bw, "Footprints:      %d\n", width*height)
	fmt.Fprintf(bw, "Row band step:   %d faces\n", generator.WidthStep(width))
	fmt.Fprintf(bw, "Column stride:   %d faces\n", generator.HeightStep)
	fmt.Fprintf(bw, "Max height:      %d\n", p.MaxHeight)
	fmt.Fprintf(bw, "Box size:        %.2f\n", p.BoxSize())
	fmt.Fprintf(bw, "Config dir:      %s\n", config.ConfigDir())
	return bw.Flush()
}

// batchSlots is the number of sessions building batch scenes side by side.
const batchSlots = 4

func cmdBatch(cfg *config.Config) error {
	resolveSeed(cfg)
	reg, err := runBatch(cfg)
	if err != nil {
		return err
	}
	summarizeBatch(reg)
	return nil
}

// runBatch builds scene i of the batch from seed+i. Each slot owns one session and
// rebuilds it for every seed it is given, so a slot's scene only ever holds its latest
// grid.
func runBatch(cfg *config.Config) (*city.Registry, error) {
	n := cfg.Generator.Batch
	slots := min(batchSlots, n)
	if cfg.Output.Path == "-" {
		// Scenes share stdout, so one slot writes them in seed order.
		slots = 1
	}

	reg := city.NewRegistry()
	newSession := func(name string) *city.Session {
		return city.NewSession(name, mesh.NewScene(), generator.NewSeeded(cfg.Generator.Seed))
	}

	var g errgroup.Group
	for slot := 0; slot < slots; slot++ {
		g.Go(func() error {
			s := reg.Open(fmt.Sprintf("slot-%d", slot), newSession)
			for i := slot; i < n; i += slots {
				if err := buildBatchScene(s, cfg, i); err != nil {
					return fmt.Errorf("%s: scene %d: %w", s.Name(), i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildBatchScene(s *city.Session, cfg *config.Config, i int) error {
	seed := cfg.Generator.Seed + uint64(i)
	path := batchPath(cfg.Output.Path, i)

	s.Reseed(seed)
	layout, err := s.CreateSkyscrapers(cfg.Params())
	if err != nil {
		return err
	}
	scene, ok := s.Engine().(sceneWriter)
	if !ok {
		return fmt.Errorf("engine %T cannot export scenes", s.Engine())
	}
	if err := writeScene(scene, path); err != nil {
		return err
	}

	logger.Info("batch scene written",
		zap.String("session", s.Name()),
		zap.String("path", path),
		zap.Uint64("seed", seed),
		zap.Int("skyscrapers", len(layout.Footprints)))
	return nil
}

// summarizeBatch logs the grid each slot finished with.
func summarizeBatch(reg *city.Registry) {
	sessions := 0
	reg.Range(func(s *city.Session) bool {
		sessions++
		if layout := s.Layout(); layout != nil {
			logger.Info("slot finished",
				zap.String("session", s.Name()),
				zap.Int("skyscrapers", len(layout.Footprints)),
				zap.Int("row_band", layout.RowBand.Index),
				zap.Int("column_band", layout.ColumnBand.Index))
		}
		return true
	})
	logger.Info("batch complete", zap.Int("sessions", sessions))
}

// batchPath numbers an output path, city.obj becoming city-003.obj. Stdout stays stdout.
func batchPath(path string, i int) string {
	if path == "-" {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(path, ext), i, ext)
}

func cmdConfig(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", config.DefaultPath())
	return nil
}

type sceneWriter interface {
	WriteOBJ(w io.Writer) error
}

// writeScene writes the visible scene as OBJ to path, or stdout for "-".
func writeScene(scene sceneWriter, path string) error {
	if path == "-" {
		return scene.WriteOBJ(os.Stdout)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.WriteOBJ(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
