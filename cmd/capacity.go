package cmd

import (
	"fmt"
	"os"

	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/Beastly713/stegtext/pkg/stego"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image]...",
	Short: "Show how much text each image can hold",
	Long: `Capacity reads only the image headers and reports how many bits,
and how many bytes of UTF-8 text, each image can carry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		layout := cfg.StegoLayout()

		failed := 0
		for _, path := range args {
			c, err := measureFile(path, layout)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipping %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %s, %d bits, up to %d bytes of text\n",
				path, c.Width, c.Height, c.Format, c.Bits, c.MaxMessageBytes)
		}

		if failed > 0 {
			return fmt.Errorf("could not measure %d of %d images", failed, len(args))
		}
		return nil
	},
}

func measureFile(path string, layout stego.Layout) (*pipeline.Capacity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return pipeline.Measure(file, layout)
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
