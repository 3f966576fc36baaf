package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/stegtext/pkg/stego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesRGBA(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, stego.RGBA, cfg.StegoLayout())
	assert.Equal(t, "png", cfg.Output.Format)
	assert.Equal(t, "_stego", cfg.Output.Suffix)
	assert.False(t, cfg.Normalize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stegtext.yaml")
	content := `
layout:
  skip_channels: [0, 3]
output:
  format: bmp
normalize: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Layout.ChannelsPerPixel, "missing key keeps its default")
	assert.Equal(t, []int{0, 3}, cfg.Layout.SkipChannels)
	assert.Equal(t, "bmp", cfg.Output.Format)
	assert.Equal(t, "_stego", cfg.Output.Suffix)
	assert.True(t, cfg.Normalize)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"lossy output":   "output:\n  format: jpeg\n",
		"unknown output": "output:\n  format: tiff\n",
		"bad skip":       "layout:\n  skip_channels: [7]\n",
		"all skipped":    "layout:\n  skip_channels: [0, 1, 2, 3]\n",
		"three channels": "layout:\n  channels_per_pixel: 3\n  skip_channels: []\n",
		"alpha written":  "layout:\n  skip_channels: [0]\n",
		"empty suffix":   "output:\n  suffix: \"\"\n",
		"broken yaml":    "layout: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLayoutErrorIsInvalidLayout(t *testing.T) {
	_, err := Parse([]byte("layout:\n  channels_per_pixel: 3\n  skip_channels: []\n"))
	assert.ErrorIs(t, err, stego.ErrInvalidLayout)
}
