// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/jice-nospam/wgen/export"
	"github.com/jice-nospam/wgen/heightmap"
	"github.com/jice-nospam/wgen/worldgen"
)

func main() {
	var (
		projectPath = flag.String("project", "", "project file to generate (required)")
		seed        = flag.Int64("seed", 0, "override the project's random seed")
		outDir      = flag.String("out", ".", "directory to write tiles into")
		pattern     = flag.String("pattern", "map", "tile file name prefix")
		tileSize    = flag.String("size", "256x256", "tile size as WxH")
		tileGrid    = flag.String("tiles", "1x1", "tile grid as NxM")
		depthName   = flag.String("depth", "16", "tile bit depth: 8, 16 or f32")
		seamless    = flag.Bool("seamless", false, "overlap adjacent tiles by one sample")
		preview     = flag.String("preview", "", "also write a colored relief preview to `file`")
		cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to `file`")
	)
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *projectPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := export.Config{Seamless: *seamless}
	var err error
	if cfg.TileWidth, cfg.TileHeight, err = parseDims(*tileSize); err != nil {
		log.Fatal("-size: ", err)
	}
	if cfg.TilesX, cfg.TilesY, err = parseDims(*tileGrid); err != nil {
		log.Fatal("-tiles: ", err)
	}
	if cfg.Depth, err = export.ParseBitDepth(*depthName); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *projectPath, cfg, *outDir, *pattern, *preview, seedSet, *seed); err != nil {
		if errors.Is(err, worldgen.ErrAborted) {
			log.Fatal("interrupted")
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, projectPath string, cfg export.Config, outDir, pattern, preview string, seedSet bool, seed int64) error {
	file, err := os.Open(projectPath)
	if err != nil {
		return err
	}
	p, err := worldgen.LoadProject(file)
	file.Close()
	if err != nil {
		return err
	}
	if seedSet {
		p.SetSeed(seed)
	}

	steps := p.Steps()
	p.Progress = func(index int, elapsed time.Duration) {
		log.Printf("step %d/%d %s: %v", index+1, len(steps), steps[index].Kind, elapsed)
	}

	w, h := cfg.FieldSize()
	log.Printf("generating %dx%d world, seed %d", w, h, p.Seed())
	field, err := p.Field(ctx, p.Len()-1, w, h)
	if err != nil {
		return err
	}

	tiles, err := export.Slice(field, cfg)
	if err != nil {
		return err
	}
	if err := export.WriteTiles(outDir, pattern, tiles, cfg.Depth); err != nil {
		return err
	}
	log.Printf("wrote %d tiles to %s", len(tiles), filepath.Join(outDir, pattern+"_x*_y*"+cfg.Depth.Ext()))

	if preview != "" {
		if err := writePreview(preview, field); err != nil {
			return err
		}
		log.Printf("wrote preview to %s", preview)
	}
	return nil
}

func writePreview(path string, field *heightmap.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, export.Render(field))
}

// parseDims parses a "WxH" pair of positive integers.
func parseDims(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	w, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	h, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("dimensions must be positive, got %q", s)
	}
	return w, h, nil
}
