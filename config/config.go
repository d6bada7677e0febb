package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the viewer and detection behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Viewport parameters
	FitMargin float64 `json:"fit_margin"` // fraction of fit-to-window scale used on load
	MaxZoom   float64 `json:"max_zoom"`   // upper magnification bound
	ZoomRate  float64 `json:"zoom_rate"`  // scale change per wheel-delta unit
	PanStep   int     `json:"pan_step"`   // screen pixels per keyboard pan step

	// Overlay / render parameters
	OverlayAlpha   float64 `json:"overlay_alpha"`   // fill alpha for detection rectangles
	HighlightAlpha float64 `json:"highlight_alpha"` // dim alpha outside the highlight patch
	Background     string  `json:"background"`      // hex fill behind the image
	LabelSize      float64 `json:"label_size"`      // label font size in pixels

	// Detection parameters
	PatchSize      int      `json:"patch_size"` // square capture patch side
	Threshold      float64  `json:"threshold"`
	Stride         int      `json:"stride"`
	Refine         bool     `json:"refine"`
	ReturnBestEven bool     `json:"return_best_even"`
	ClassNames     []string `json:"class_names"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		FitMargin:      0.75,
		MaxZoom:        10,
		ZoomRate:       0.001,
		PanStep:        40,
		OverlayAlpha:   0.2,
		HighlightAlpha: 0.55,
		Background:     "#1e293b",
		LabelSize:      13,
		PatchSize:      640,
		Threshold:      0.80,
		Stride:         4,
		Refine:         true,
		ReturnBestEven: false,
		ClassNames:     nil,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.FitMargin <= 0 || c.FitMargin > 1 {
		c.FitMargin = 0.75
	}
	if c.MaxZoom < 1 {
		c.MaxZoom = 10
	}
	if c.ZoomRate <= 0 {
		c.ZoomRate = 0.001
	}
	if c.PanStep <= 0 {
		c.PanStep = 40
	}
	if c.OverlayAlpha < 0 || c.OverlayAlpha > 1 {
		c.OverlayAlpha = 0.2
	}
	if c.HighlightAlpha < 0 || c.HighlightAlpha > 1 {
		c.HighlightAlpha = 0.55
	}
	if c.Background == "" {
		c.Background = "#1e293b"
	}
	if c.LabelSize <= 0 {
		c.LabelSize = 13
	}
	if c.PatchSize < 32 {
		c.PatchSize = 640
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = 0.80
	}
	if c.Stride <= 0 {
		c.Stride = 4
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
