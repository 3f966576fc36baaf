package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrLossyFormat indicates an output format that would destroy LSB data.
var ErrLossyFormat = errors.New("output format is lossy or palette based and would destroy hidden data")

// ErrUnknownFormat indicates a format name or file extension that is not supported.
var ErrUnknownFormat = errors.New("unknown image format")

// Supported format names, as reported by image.Decode.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatWebP = "webp"
)

var extensions = map[string]string{
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".webp": FormatWebP,
}

// Decode reads an image and returns it as a tightly packed NRGBA image whose Pix
// slice is a plain RGBA byte buffer: 4 bytes per pixel, row-major, origin at (0,0).
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return ToNRGBA(img), format, nil
}

// DecodeConfig reads only the image header.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg, format, nil
}

// ToNRGBA returns img as a packed NRGBA image. Non-premultiplied storage keeps the
// color channels of fully transparent pixels, which premultiplied RGBA would zero.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && n.Stride == 4*width {
		return n
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// Encode writes img in a lossless format. Only png and bmp are accepted.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode bmp: %w", err)
		}
	case FormatJPEG, "jpg", FormatGIF, FormatWebP:
		return fmt.Errorf("%w: %s", ErrLossyFormat, format)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// IsLossless reports whether format can be used as an output format.
func IsLossless(format string) bool {
	switch strings.ToLower(format) {
	case FormatPNG, FormatBMP:
		return true
	}
	return false
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return format, nil
}

// IsImagePath reports whether path has an extension Decode can handle.
func IsImagePath(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}
