package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/stegtext/pkg/config"
	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	configPath string
	quiet      bool
)

// Styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
)

var rootCmd = &cobra.Command{
	Use:   "stegtext",
	Short: "Hide text in the pixels of an image",
	Long: `Stegtext: hides a text message in the least significant bits of an
image's red, green and blue channels, and recovers it later.

The output image looks the same as the input, but any lossy step
(JPEG re-encoding, resizing, screenshots) destroys the hidden message.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results, no progress")
}

// loadConfig returns the config file given by --config, or the defaults.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// pipelineOptions builds pipeline options from the config.
func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Layout:    cfg.StegoLayout(),
		Format:    cfg.Output.Format,
		Normalize: cfg.Normalize,
	}
}

// outputPathFor derives photo_stego.png from photo.jpg.
func outputPathFor(input, suffix, format string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), base+suffix+"."+format)
}

// logf prints progress to the command's output unless --quiet is set.
func logf(cmd *cobra.Command, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
