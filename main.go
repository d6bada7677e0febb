package main

import (
	"flag"
	"strings"
	"time"

	"log/slog"

	"github.com/soocke/spotview-go/app"
	"github.com/soocke/spotview-go/config"
	"github.com/soocke/spotview-go/debug"
	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/load"
)

const (
	displayWidth  = 800
	displayHeight = 600
)

func main() {
	imagePath := flag.String("image", "", "image file to view on startup")
	cfgPath := flag.String("config", "spotview.json", "config file path")
	templates := flag.String("templates", "", "comma-separated template image paths, class index by position")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err.Error())
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(2*time.Second, logger)
		debug.StartMemLogger(2*time.Second, logger)
	}

	detector := buildDetector(cfg, *templates, logger)

	application, err := app.NewApp("SpotView", displayWidth, displayHeight, cfg, logger, detector, *imagePath)
	if err != nil {
		logger.Error("startup failed", "error", err.Error())
		return
	}
	application.Start()
}

// buildDetector loads template images and assembles the matcher. Returns
// nil when no templates are given; detection requests then just log.
func buildDetector(cfg *config.Config, paths string, logger *slog.Logger) detect.Detector {
	if paths == "" {
		return nil
	}
	var templates []detect.Template
	for i, p := range strings.Split(paths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		img, err := load.Open(p)
		if err != nil {
			logger.Warn("template load failed", "path", p, "error", err.Error())
			continue
		}
		templates = append(templates, detect.Template{Image: img, Class: i})
	}
	if len(templates) == 0 {
		return nil
	}
	det, err := detect.NewTemplateDetector(templates, detect.Options{
		Threshold:      cfg.Threshold,
		Stride:         cfg.Stride,
		Refine:         cfg.Refine,
		ReturnBestEven: cfg.ReturnBestEven,
	})
	if err != nil {
		logger.Warn("detector init failed", "error", err.Error())
		return nil
	}
	return det
}
