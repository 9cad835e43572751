package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title string `yaml:"title"`
	Width int    `yaml:"width"`
}

type ArrangeConfig struct {
	Tracks        int     `yaml:"tracks"`
	TrackHeight   float32 `yaml:"track_height"`
	PixelsPerBeat float32 `yaml:"pixels_per_beat"`
	BeatsPerBar   int     `yaml:"beats_per_bar"`
	Bars          int     `yaml:"bars"`
	ScrollStep    float32 `yaml:"scroll_step"`
}

type PianoRollConfig struct {
	KeyHeight     float32 `yaml:"key_height"`
	PixelsPerBeat float32 `yaml:"pixels_per_beat"`
}

type Config struct {
	LogLevel  string            `yaml:"log_level"`
	View      string            `yaml:"view"`
	Window    WindowConfig      `yaml:"window"`
	Arrange   ArrangeConfig     `yaml:"arrange"`
	PianoRoll PianoRollConfig   `yaml:"piano_roll"`
	Theme     map[string]string `yaml:"theme"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		View:     "arrange",
		Window: WindowConfig{
			Title: "seqcanvas",
			Width: 1280,
		},
		Arrange: ArrangeConfig{
			Tracks:        8,
			TrackHeight:   64,
			PixelsPerBeat: 24,
			BeatsPerBar:   4,
			Bars:          32,
			ScrollStep:    48,
		},
		PianoRoll: PianoRollConfig{
			KeyHeight:     DefaultTheme().KeyHeight,
			PixelsPerBeat: 96,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.View {
	case "arrange", "pianoroll":
	default:
		return fmt.Errorf("invalid view: %s", cfg.View)
	}
	if cfg.Window.Width <= 0 {
		return fmt.Errorf("window width must be positive, got %d", cfg.Window.Width)
	}
	a := cfg.Arrange
	if a.Tracks < 0 {
		return fmt.Errorf("track count must not be negative, got %d", a.Tracks)
	}
	if a.TrackHeight <= 0 || a.PixelsPerBeat <= 0 || a.BeatsPerBar <= 0 {
		return errors.New("arrange track_height, pixels_per_beat and beats_per_bar must be positive")
	}
	if cfg.PianoRoll.KeyHeight <= 0 || cfg.PianoRoll.PixelsPerBeat <= 0 {
		return errors.New("piano_roll key_height and pixels_per_beat must be positive")
	}
	_, err := cfg.ResolveTheme()
	return err
}

func (cfg Config) ResolveTheme() (Theme, error) {
	theme := DefaultTheme()
	theme.KeyHeight = cfg.PianoRoll.KeyHeight
	if err := theme.Apply(cfg.Theme); err != nil {
		return theme, err
	}
	return theme, nil
}
