package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Beastly713/stegtext/pkg/imageio"
	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// NoMessageText is printed when an image carries a zero length prefix.
const NoMessageText = "No hidden message found."

var copyToClipboard bool

var revealCmd = &cobra.Command{
	Use:   "reveal [image|directory]",
	Short: "Recover a text message hidden with 'hide'",
	Long: `Reveal reads the hidden message from an image produced by 'hide'
and prints it to standard output.

Given a directory, it scans every image in it and prints one line per
image that carries a message.

An image that was never used with 'hide' usually fails with an error about
its declared length. A zero length reads as "no message".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := pipelineOptions(cfg)

		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", target, err)
		}
		if info.IsDir() {
			return revealDir(cmd, target, opts)
		}

		text, err := revealPath(target, opts)
		if err != nil {
			return fmt.Errorf("failed to reveal message in %s: %w", target, err)
		}

		if text == "" {
			fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render(NoMessageText))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)

		if copyToClipboard {
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			logf(cmd, "Copied %d bytes to the clipboard.\n", len(text))
		}
		return nil
	},
}

func revealPath(path string, opts pipeline.Options) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return pipeline.Reveal(file, opts)
}

// revealDir prints "name: message" for every image in dir that carries one.
// Images without a message, or that fail to decode, are skipped.
func revealDir(cmd *cobra.Command, dir string, opts pipeline.Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	logf(cmd, "Scanning for hidden messages in %s...\n", dir)

	found := 0
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImagePath(e.Name()) {
			continue
		}

		text, err := revealPath(filepath.Join(dir, e.Name()), opts)
		if err != nil {
			logf(cmd, "Skipping %s: %v\n", e.Name(), err)
			continue
		}
		if text == "" {
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.Name(), text)
		found++
	}

	if found == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render(NoMessageText))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Also copy the revealed message to the clipboard")
}
