package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Beastly713/stegtext/pkg/imageio"
	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/Beastly713/stegtext/pkg/stego"
	"gopkg.in/yaml.v3"
)

// LayoutConfig mirrors stego.Layout in the config file.
type LayoutConfig struct {
	// ChannelsPerPixel is the number of bytes per pixel in the decoded buffer.
	ChannelsPerPixel int `yaml:"channels_per_pixel"`

	// SkipChannels lists channel indices that never carry data.
	SkipChannels []int `yaml:"skip_channels"`
}

// OutputConfig controls how stego images are written.
type OutputConfig struct {
	// Format is the lossless format used for output files (png or bmp).
	Format string `yaml:"format"`

	// Suffix is appended to the input file name when no output path is given.
	Suffix string `yaml:"suffix"`
}

// Config is the on-disk configuration of the tool.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Output OutputConfig `yaml:"output"`

	// Normalize converts messages to Unicode NFC before hiding them.
	Normalize bool `yaml:"normalize"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			ChannelsPerPixel: stego.RGBA.ChannelsPerPixel,
			SkipChannels:     append([]int(nil), stego.RGBA.Skip...),
		},
		Output: OutputConfig{
			Format: imageio.FormatPNG,
			Suffix: "_stego",
		},
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// StegoLayout converts the layout section into a stego.Layout.
func (c *Config) StegoLayout() stego.Layout {
	return stego.Layout{
		ChannelsPerPixel: c.Layout.ChannelsPerPixel,
		Skip:             append([]int(nil), c.Layout.SkipChannels...),
	}
}

// Validate checks if the configuration contains sane values.
func (c *Config) Validate() error {
	if err := pipeline.CheckLayout(c.StegoLayout()); err != nil {
		return err
	}
	if !imageio.IsLossless(c.Output.Format) {
		return fmt.Errorf("output format %q is not lossless (use png or bmp)", c.Output.Format)
	}
	if c.Output.Suffix == "" {
		return errors.New("output suffix must not be empty")
	}
	return nil
}
