// Package main renders a small demo scene with the configured visibility
// strategy and writes the result next to the working directory.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/light"
	"github.com/Faultbox/prism/pkg/render"
	"github.com/Faultbox/prism/pkg/scene"
	"github.com/Faultbox/prism/pkg/shade"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Prism ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc, lights := demoScene(cfg)
	cam := camera.NewPerspective(
		geom.Vec3{Y: 2, Z: -8},
		geom.Vec3{Y: -0.2, Z: 1},
		1,
		cfg.Output.Width, cfg.Output.Height,
		cfg.Output.Scale,
	)

	sc.Lock()
	defer sc.Unlock()

	switch cfg.Render.Strategy {
	case "painter":
		p := &render.Painter{Camera: cam, Lights: lights, MaxFootprint: cfg.Render.MaxFootprint}
		doc, err := p.Render(sc)
		if err != nil {
			return err
		}
		logger.Info("painted vector document",
			zap.Int("ops", len(doc.Ops)),
			zap.Int("width", doc.Width),
			zap.Int("height", doc.Height))
		return nil
	case "zbuffer":
		r := &render.ZBuffer{Camera: cam, Lights: lights, Supersample: cfg.Render.Supersample}
		img, err := r.Render(sc)
		if err != nil {
			return err
		}
		return writePNG("prism.png", img)
	case "raycast":
		r := &render.Raycast{Camera: cam, Lights: lights, Antialias: cfg.Render.Antialias}
		img, err := r.Render(sc)
		if err != nil {
			return err
		}
		return writePNG("prism.png", img)
	}
	return fmt.Errorf("unknown render strategy %q", cfg.Render.Strategy)
}

// demoScene builds a floor, a pyramid casting a shadow onto it, and the
// lights: soft ambient fill plus a shadowing point light.
func demoScene(cfg *config.Config) (*scene.Scene, []light.Source) {
	sc := scene.New()

	floorMat := shade.NewPhong(shade.RGB(0.75, 0.75, 0.8))
	a := geom.Vec3{X: -6, Z: -6}
	b := geom.Vec3{X: 6, Z: -6}
	c := geom.Vec3{X: 6, Z: 6}
	d := geom.Vec3{X: -6, Z: 6}
	sc.Add(
		scene.NewTriangle("floor", a, c, b, floorMat),
		scene.NewTriangle("floor", a, d, c, floorMat),
	)

	pyrMat := shade.NewPhong(shade.RGB(0.85, 0.35, 0.2))
	base := [4]geom.Vec3{
		{X: -1, Z: -1}, {X: 1, Z: -1}, {X: 1, Z: 1}, {X: -1, Z: 1},
	}
	apex := geom.Vec3{Y: 2.2}
	for i := range base {
		p0 := base[i]
		p1 := base[(i+1)%len(base)]
		sc.Add(scene.NewTriangle("pyramid", p0, apex, p1, pyrMat))
	}

	lights := []light.Source{
		&light.Ambient{Intensity: 0.35},
		&light.Area{
			Intensity:  0.9,
			Center:     geom.Vec3{X: 3, Y: 6, Z: -2},
			Normal:     geom.Vec3{Y: -1},
			Radius:     0.8,
			Samples:    cfg.Render.ShadowSamples,
			CastShadow: true,
		},
	}
	return sc, lights
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	logger.Info("wrote image", zap.String("path", path))
	return nil
}
