package pipeline

import (
	"fmt"
	"io"

	"github.com/Beastly713/stegtext/pkg/imageio"
	"github.com/Beastly713/stegtext/pkg/stego"
	"golang.org/x/text/unicode/norm"
)

// Options holds the parameters shared by the hide and reveal pipelines.
type Options struct {
	Layout stego.Layout

	// Format is the output format for Hide (png or bmp).
	Format string

	// Normalize converts the message to NFC before hiding it.
	Normalize bool
}

// DefaultOptions returns RGBA layout, PNG output and no normalization.
func DefaultOptions() Options {
	return Options{
		Layout: stego.RGBA,
		Format: imageio.FormatPNG,
	}
}

// Report describes a completed hide operation.
type Report struct {
	Width       int
	Height      int
	InputFormat string
	BitsUsed    int
	Capacity    int
}

// Capacity describes how much text an image can carry.
type Capacity struct {
	Width           int
	Height          int
	Format          string
	Bits            int
	MaxMessageBytes int
}

// DecodedChannels is the pixel width of every buffer imageio.Decode returns.
const DecodedChannels = 4

// alphaChannel is the index of alpha within a decoded NRGBA pixel.
const alphaChannel = 3

// CheckLayout rejects layouts that do not fit decoded NRGBA buffers: the
// layout must group 4 bytes per pixel and must skip the alpha channel.
func CheckLayout(layout stego.Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	if layout.ChannelsPerPixel != DecodedChannels {
		return fmt.Errorf("%w: decoded images have %d channels per pixel, layout has %d",
			stego.ErrInvalidLayout, DecodedChannels, layout.ChannelsPerPixel)
	}
	for _, ch := range layout.Skip {
		if ch == alphaChannel {
			return nil
		}
	}
	return fmt.Errorf("%w: alpha channel %d must be skipped", stego.ErrInvalidLayout, alphaChannel)
}

// Hide orchestrates the flow: Decode -> Normalize -> Embed -> Encode
func Hide(input io.Reader, output io.Writer, message string, opts Options) (*Report, error) {
	// 1. Check the layout and output format first so nothing is decoded for nothing
	if err := CheckLayout(opts.Layout); err != nil {
		return nil, err
	}
	if !imageio.IsLossless(opts.Format) {
		return nil, fmt.Errorf("%w: %s", imageio.ErrLossyFormat, opts.Format)
	}

	// 2. Decode into a packed RGBA buffer
	img, format, err := imageio.Decode(input)
	if err != nil {
		return nil, err
	}

	// 3. Normalize
	if opts.Normalize {
		message = norm.NFC.String(message)
	}

	// 4. Embed in place
	if err := opts.Layout.Embed(img.Pix, message); err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	// 5. Encode
	if err := imageio.Encode(output, img, opts.Format); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Report{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		InputFormat: format,
		BitsUsed:    stego.LengthPrefixBits + len(message)*8,
		Capacity:    opts.Layout.Capacity(len(img.Pix)),
	}, nil
}

// Reveal orchestrates the reverse: Decode -> Extract
// An empty result with a nil error means no message was found.
func Reveal(input io.Reader, opts Options) (string, error) {
	if err := CheckLayout(opts.Layout); err != nil {
		return "", err
	}

	img, _, err := imageio.Decode(input)
	if err != nil {
		return "", err
	}

	message, err := opts.Layout.Extract(img.Pix)
	if err != nil {
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	return message, nil
}

// Measure reports the capacity of an image from its header alone.
func Measure(input io.Reader, layout stego.Layout) (*Capacity, error) {
	if err := CheckLayout(layout); err != nil {
		return nil, err
	}

	cfg, format, err := imageio.DecodeConfig(input)
	if err != nil {
		return nil, err
	}

	size := cfg.Width * cfg.Height * DecodedChannels
	return &Capacity{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Format:          format,
		Bits:            layout.Capacity(size),
		MaxMessageBytes: layout.MaxMessageBytes(size),
	}, nil
}
