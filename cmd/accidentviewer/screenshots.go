package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/config"
	"github.com/iafilius/HighwayAccidents/src/scene"
	"github.com/iafilius/HighwayAccidents/src/session"
)

// RunScreenshotsMode renders one collapsed chart per day plus the expanded grid
// and writes them under outDir. It runs headlessly without creating a UI window.
// format is "png" or "svg"; highlight, when set, is applied before rendering.
func RunScreenshotsMode(cfg *config.Config, outDir, format, highlight string) error {
	var provider chart.RendererProvider
	ext := strings.ToLower(strings.TrimSpace(format))
	switch ext {
	case "", "png":
		provider, ext = chart.PNG, "png"
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("unknown screenshot format %q (want png or svg)", format)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	dash, _, err := openDashboard(cfg, cfg.Data.File, cfg.Viewer.Width, cfg.Viewer.Height)
	if err != nil {
		return err
	}
	if highlight != "" {
		c, err := parseCombo(highlight)
		if err != nil {
			return err
		}
		dash.Dispatch(session.Event{Kind: session.Select, Combo: c})
	}

	// NextDay wraps, so one pass over the days leaves the session where it began.
	for range dash.State().Days {
		sc := dash.Scene()
		name := fmt.Sprintf("day_%s.%s", strings.ToLower(sc.Charts[0].Day), ext)
		if err := writeScene(filepath.Join(outDir, name), sc, provider); err != nil {
			return err
		}
		dash.NextDay()
	}
	dash.Expand()
	return writeScene(filepath.Join(outDir, "expanded."+ext), dash.Scene(), provider)
}

func writeScene(outPath string, sc scene.Scene, provider chart.RendererProvider) error {
	var buf bytes.Buffer
	if err := scene.Paint(&buf, sc, nil, provider); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(outPath), err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	applog.Infof("[viewer] wrote %s", outPath)
	return nil
}
