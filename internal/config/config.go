// Package config loads the settings for the lzstep command.
package config

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/andybalholm/lzstep"
	"github.com/andybalholm/lzstep/stats"
	"github.com/andybalholm/lzstep/whiteboard"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Steps configures the sliding-window step viewer.
type Steps struct {
	Input      string `json:"input"`
	WindowSize int    `json:"windowSize"`
	MinWindow  int    `json:"minWindow"`
	MaxWindow  int    `json:"maxWindow"`
	MaxInput   int    `json:"maxInput,omitempty"`

	// HashChain selects the hash chain searcher instead of brute force.
	HashChain bool `json:"hashChain,omitempty"`
}

// Limits returns the window and input limits.
func (s Steps) Limits() lzstep.Limits {
	return lzstep.Limits{Min: s.MinWindow, Max: s.MaxWindow, MaxInput: s.MaxInput}
}

// Stats configures the compression statistics run.
type Stats struct {
	Pattern     string   `json:"pattern"`
	MessageBits int      `json:"messageBits"`
	WindowBits  int      `json:"windowBits"`
	Count       int      `json:"count"`
	Seed        int64    `json:"seed"`
	Codecs      []string `json:"codecs,omitempty"`
	Chart       string   `json:"chart,omitempty"`
}

// Validate checks that the statistics settings are in range.
func (st Stats) Validate() error {
	if _, err := stats.ParsePattern(st.Pattern); err != nil {
		return fmt.Errorf("%w: stats.pattern: %v", ErrInvalid, err)
	}
	if st.MessageBits < 9 || st.MessageBits > 15 {
		return fmt.Errorf("%w: stats.messageBits %d not in [9, 15]", ErrInvalid, st.MessageBits)
	}
	if st.WindowBits < stats.MinWindowBits || st.WindowBits > stats.MaxWindowBits {
		return fmt.Errorf("%w: stats.windowBits %d not in [%d, %d]", ErrInvalid, st.WindowBits, stats.MinWindowBits, stats.MaxWindowBits)
	}
	if st.Count < 1 || st.Count > 10 {
		return fmt.Errorf("%w: stats.count %d not in [1, 10]", ErrInvalid, st.Count)
	}
	if _, err := stats.SelectCodecs(stats.Codecs(st.WindowBits), st.Codecs); err != nil {
		return fmt.Errorf("%w: stats.codecs: %v", ErrInvalid, err)
	}
	return nil
}

// Whiteboard configures the whiteboard simulation.
type Whiteboard struct {
	Color string `json:"color"`
}

// Config is the whole configuration file.
type Config struct {
	Steps      Steps      `json:"steps"`
	Stats      Stats      `json:"stats"`
	Whiteboard Whiteboard `json:"whiteboard"`
}

// Default returns the settings the widgets start with.
func Default() Config {
	return Config{
		Steps: Steps{
			Input:      "abc123123abc123",
			WindowSize: 6,
			MinWindow:  lzstep.DefaultLimits.Min,
			MaxWindow:  lzstep.DefaultLimits.Max,
		},
		Stats: Stats{
			Pattern:     string(stats.Text),
			MessageBits: 9,
			WindowBits:  9,
			Count:       5,
			Seed:        1,
		},
		Whiteboard: Whiteboard{
			Color: whiteboard.Palette[0],
		},
	}
}

// Parse reads YAML (or JSON) settings on top of the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Load reads the settings file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal returns c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	s := c.Steps
	if err := s.Limits().CheckWindow(s.WindowSize); err != nil {
		return fmt.Errorf("%w: steps.windowSize: %v", ErrInvalid, err)
	}
	if s.MaxWindow > 0 && s.MaxWindow < s.MinWindow {
		return fmt.Errorf("%w: steps.maxWindow %d is less than minWindow %d", ErrInvalid, s.MaxWindow, s.MinWindow)
	}
	if err := s.Limits().CheckInput(len(s.Input)); err != nil {
		return fmt.Errorf("%w: steps.input: %v", ErrInvalid, err)
	}

	if err := c.Stats.Validate(); err != nil {
		return err
	}

	if err := whiteboard.New().SelectColor(c.Whiteboard.Color); err != nil {
		return fmt.Errorf("%w: whiteboard.color: %v", ErrInvalid, err)
	}
	return nil
}
