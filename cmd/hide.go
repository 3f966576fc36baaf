package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/Beastly713/stegtext/pkg/stego"
	"github.com/spf13/cobra"
)

var (
	message     string
	messageFile string
	outPath     string
	outFormat   string
	overwrite   bool
	normalize   bool
)

var hideCmd = &cobra.Command{
	Use:   "hide [image]",
	Short: "Hide a text message inside an image",
	Long: `Hide writes the message into the least significant bit of every
red, green and blue byte of the image, leaving alpha untouched, and saves
the result as a lossless image (PNG by default).

Example:
  stegtext hide cat.jpg -m "meet at noon"

  This creates cat_stego.png next to cat.jpg.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]

		// 1. Resolve the message
		text, err := resolveMessage(cmd)
		if err != nil {
			return err
		}

		// 2. Resolve options (flags override the config file)
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := pipelineOptions(cfg)
		if outFormat != "" {
			opts.Format = outFormat
		}
		if normalize {
			opts.Normalize = true
		}

		destination := outPath
		if destination == "" {
			destination = outputPathFor(inputPath, cfg.Output.Suffix, opts.Format)
		}
		if destination == inputPath {
			return errors.New("refusing to overwrite the input image; choose another --output")
		}
		if _, err := os.Stat(destination); err == nil && !overwrite {
			return fmt.Errorf("file %s already exists. Use --overwrite to replace it", destination)
		}

		// 3. Hide and write
		logf(cmd, "Hiding %d bytes in %s...\n", len(text), inputPath)

		report, err := hideToFile(inputPath, destination, text, opts)
		if err != nil {
			var capErr *stego.CapacityExceededError
			if errors.As(err, &capErr) {
				return fmt.Errorf("%s holds at most %d bytes of text: %w",
					inputPath, stego.MessageBytesFor(capErr.Available), err)
			}
			return err
		}

		logf(cmd, "Used %d of %d bits in a %dx%d %s image.\n", report.BitsUsed, report.Capacity, report.Width, report.Height, report.InputFormat)
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Message hidden in "+destination))
		return nil
	},
}

// hideToFile runs the hide pipeline into memory and only then writes destination,
// so a failed embed never leaves a partial file behind.
func hideToFile(inputPath, destination, text string, opts pipeline.Options) (*pipeline.Report, error) {
	input, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer input.Close()

	var encoded bytes.Buffer
	report, err := pipeline.Hide(input, &encoded, text, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to hide message: %w", err)
	}

	if err := os.WriteFile(destination, encoded.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	return report, nil
}

// resolveMessage reads the message from --message or --message-file.
// An explicitly empty --message is allowed and hides an empty string.
func resolveMessage(cmd *cobra.Command) (string, error) {
	fromFlag := cmd.Flags().Changed("message")
	fromFile := cmd.Flags().Changed("message-file")

	switch {
	case fromFlag && fromFile:
		return "", errors.New("use either --message or --message-file, not both")
	case fromFlag:
		return message, nil
	case fromFile:
		data, err := os.ReadFile(messageFile)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		return string(data), nil
	default:
		return "", errors.New("no message given; use --message or --message-file")
	}
}

func init() {
	rootCmd.AddCommand(hideCmd)

	hideCmd.Flags().StringVarP(&message, "message", "m", "", "Text to hide")
	hideCmd.Flags().StringVar(&messageFile, "message-file", "", "Read the text to hide from a file")
	hideCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output image path (default: <name>_stego.<format> next to the input)")
	hideCmd.Flags().StringVar(&outFormat, "format", "", "Output format: png or bmp (default from config, png)")
	hideCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite the output file if present")
	hideCmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize the message to Unicode NFC before hiding")
}
