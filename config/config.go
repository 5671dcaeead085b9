package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the trace pipeline and replay engine.
// Fields may be loaded from a JSON file and edited through the UI panel.
type Config struct {
	Debug bool `json:"debug"`

	// Edge detection: low hysteresis threshold; the high threshold is
	// always three times this value.
	CannyLowThreshold int `json:"canny_low_threshold"`

	// Percentage of the screen the drawing may occupy (0-100).
	AreaPercent int `json:"area_percent"`

	// Contours with at most this many points are skipped during replay.
	PassPoints int `json:"pass_points"`

	// AllowUpscale permits enlarging sources beyond their native size when
	// the target box is bigger. Off by default: upscaled pixels blur and
	// degrade edge detection.
	AllowUpscale bool `json:"allow_upscale"`

	// Replay timing.
	PointDelayMicros   int `json:"point_delay_micros"`
	ContourPauseMillis int `json:"contour_pause_millis"`

	// Hotkeys (key tokens, e.g. "F1", "F2").
	StartKey string `json:"start_key"`
	StopKey  string `json:"stop_key"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		CannyLowThreshold:  25,
		AreaPercent:        70,
		PassPoints:         10,
		AllowUpscale:       false,
		PointDelayMicros:   100,
		ContourPauseMillis: 100,
		StartKey:           "F1",
		StopKey:            "F2",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.CannyLowThreshold < 1 {
		c.CannyLowThreshold = 25
	}
	if c.AreaPercent < 0 {
		c.AreaPercent = 0
	}
	if c.AreaPercent > 100 {
		c.AreaPercent = 100
	}
	if c.PassPoints < 0 {
		c.PassPoints = 0
	}
	if c.PointDelayMicros <= 0 {
		c.PointDelayMicros = 100
	}
	if c.ContourPauseMillis <= 0 {
		c.ContourPauseMillis = 100
	}
	if c.StartKey == "" {
		c.StartKey = "F1"
	}
	if c.StopKey == "" {
		c.StopKey = "F2"
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
