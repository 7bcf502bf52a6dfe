// Package config loads viewer and loader settings from defaults, a .env file,
// an optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/scene"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// DefaultPath is read when no explicit path or ACCIDENTS_CONFIG is given and the file exists.
const DefaultPath = "configs/accidents.yaml"

// Config aggregates runtime configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Viewer ViewerConfig `yaml:"viewer"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig describes the accident file and which rows to keep.
type DataConfig struct {
	File         string        `yaml:"file"`
	State        string        `yaml:"state"`
	County       string        `yaml:"county"`
	ExactHighway bool          `yaml:"exactHighway"`
	Columns      ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig maps fields to header names, or to zero-based indices written "#n".
type ColumnsConfig struct {
	State   string `yaml:"state"`
	County  string `yaml:"county"`
	Highway string `yaml:"highway"`
	Day     string `yaml:"day"`
	Hour    string `yaml:"hour"`
}

// ViewerConfig controls the window and chart captions.
type ViewerConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Region    string `yaml:"region"`
	YLabel    string `yaml:"yLabel"`
	ShowHints bool   `yaml:"showHints"`
}

// LogConfig sets the applog level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err == nil {
		applog.Debugf("[config] loaded %s", envFile)
	}
	cfg := Default()

	if path == "" {
		path = os.Getenv("ACCIDENTS_CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	applog.Infof("[config] using %s", path)
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ACCIDENTS_FILE"); v != "" {
		cfg.Data.File = v
	}
	if v := os.Getenv("ACCIDENTS_STATE"); v != "" {
		cfg.Data.State = v
	}
	if v := os.Getenv("ACCIDENTS_COUNTY"); v != "" {
		cfg.Data.County = v
	}
	if v := os.Getenv("ACCIDENTS_EXACT_HIGHWAY"); v != "" {
		cfg.Data.ExactHighway = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ACCIDENTS_WIDTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Viewer.Width = parsed
		}
	}
	if v := os.Getenv("ACCIDENTS_HEIGHT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Viewer.Height = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Default returns the built-in configuration for the FARS accident.csv layout.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			File:   "accident.csv",
			State:  "California",
			County: "LOS ANGELES (37)",
			Columns: ColumnsConfig{
				State:   accidents.DefaultColumns.State,
				County:  accidents.DefaultColumns.County,
				Highway: accidents.DefaultColumns.Highway,
				Day:     accidents.DefaultColumns.Day,
				Hour:    accidents.DefaultColumns.Hour,
			},
		},
		Viewer: ViewerConfig{
			Width:  1100,
			Height: 760,
			Region: "Los Angeles",
			YLabel: "Number of Accidents",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Columns.Highway) == "" {
		return fmt.Errorf("%w: data.columns.highway cannot be empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Data.Columns.Day) == "" {
		return fmt.Errorf("%w: data.columns.day cannot be empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Data.Columns.Hour) == "" {
		return fmt.Errorf("%w: data.columns.hour cannot be empty", ErrInvalid)
	}
	if c.Viewer.Width < 320 || c.Viewer.Height < 240 {
		return fmt.Errorf("%w: viewer size %dx%d is below 320x240", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	}
	if _, ok := applog.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// LoaderOptions converts the data section for accidents.LoadCSV.
func (c *Config) LoaderOptions() accidents.Options {
	return accidents.Options{
		Columns: accidents.Columns{
			State:   c.Data.Columns.State,
			County:  c.Data.Columns.County,
			Highway: c.Data.Columns.Highway,
			Day:     c.Data.Columns.Day,
			Hour:    c.Data.Columns.Hour,
		},
		State:        c.Data.State,
		County:       c.Data.County,
		ExactHighway: c.Data.ExactHighway,
	}
}

// SceneOptions sizes a chart of w×h pixels with the configured captions.
func (c *Config) SceneOptions(w, h int) scene.Options {
	x := "Highway"
	if r := strings.TrimSpace(c.Viewer.Region); r != "" {
		x += " (" + r + ")"
	}
	return scene.Options{Width: w, Height: h, XLabel: x, YLabel: c.Viewer.YLabel}
}
