package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle    = "AOC"
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultFPS      = 60
	DefaultFontSize = 16
	DefaultFontPath = "vis/Inconsolata-SemiBold.ttf"
	DefaultBackend  = "window"
	DefaultQuality  = 90
	DefaultFFmpeg   = "ffmpeg"
	DefaultCols     = 120
	DefaultRows     = 34
)

var Backends = []string{"window", "offscreen", "term"}

type Config struct {
	Title     string          `yaml:"title"`
	Width     int             `yaml:"width"`
	Height    int             `yaml:"height"`
	FPS       int             `yaml:"fps"`
	FontSize  int             `yaml:"font_size"`
	FontPath  string          `yaml:"font_path"`
	Backend   string          `yaml:"backend"`
	MaxFrames int             `yaml:"max_frames"`
	Recording RecordingConfig `yaml:"recording"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Log       LogConfig       `yaml:"log"`
}

type RecordingConfig struct {
	Output      string   `yaml:"output"`
	JPEGQuality int      `yaml:"jpeg_quality"`
	FFmpeg      string   `yaml:"ffmpeg"`
	FFmpegArgs  []string `yaml:"ffmpeg_args"`
}

type TerminalConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:    DefaultTitle,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		FontSize: DefaultFontSize,
		FontPath: DefaultFontPath,
		Backend:  DefaultBackend,
		Recording: RecordingConfig{
			JPEGQuality: DefaultQuality,
			FFmpeg:      DefaultFFmpeg,
		},
		Terminal: TerminalConfig{
			Cols: DefaultCols,
			Rows: DefaultRows,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.FPS < 0 {
		return fmt.Errorf("config: negative fps %d", c.FPS)
	}
	if c.Recording.JPEGQuality < 0 || c.Recording.JPEGQuality > 100 {
		return fmt.Errorf("config: jpeg_quality %d out of range 0-100", c.Recording.JPEGQuality)
	}
	for _, b := range Backends {
		if c.Backend == b {
			return nil
		}
	}
	return fmt.Errorf("config: unknown backend %q (available: %v)", c.Backend, Backends)
}

// ApplyPreset overwrites the fields a preset sets.
func (c *Config) ApplyPreset(p *Preset) {
	c.Width = p.Width
	c.Height = p.Height
	if p.FPS > 0 {
		c.FPS = p.FPS
	}
	if p.FontSize > 0 {
		c.FontSize = p.FontSize
	}
}
