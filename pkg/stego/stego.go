package stego

import (
	"fmt"

	"github.com/Beastly713/stegtext/pkg/bitstream"
)

// Embed hides text in the least significant bits of an RGBA pixel buffer.
// The buffer is modified in place. If the message does not fit, buf is left untouched.
func Embed(buf []byte, text string) error {
	return RGBA.Embed(buf, text)
}

// Extract recovers text previously hidden in an RGBA pixel buffer with Embed.
// An empty string with a nil error means the buffer carries no message.
func Extract(buf []byte) (string, error) {
	return RGBA.Extract(buf)
}

// Capacity returns how many bits an RGBA buffer of n bytes can carry, prefix included.
func Capacity(n int) int {
	return RGBA.Capacity(n)
}

// MaxMessageBytes returns how many bytes of text fit in an RGBA buffer of n bytes.
func MaxMessageBytes(n int) int {
	return RGBA.MaxMessageBytes(n)
}

// Embed writes [32-bit length][message bits] into buf using the layout's channel policy.
func (l Layout) Embed(buf []byte, text string) error {
	if err := l.Validate(); err != nil {
		return err
	}

	message := bitstream.FromText(text)
	prefix, err := bitstream.FromNumber(uint64(len(message)), LengthPrefixBits)
	if err != nil {
		return fmt.Errorf("failed to encode length prefix: %w", err)
	}

	// Capacity is checked before the first write so a failed embed never leaves
	// a half-written carrier behind.
	required := len(prefix) + len(message)
	available := l.Capacity(len(buf))
	if required > available {
		return &CapacityExceededError{Required: required, Available: available}
	}

	c := l.newCursor(len(buf))
	written := 0
	for _, frame := range []bitstream.Stream{prefix, message} {
		for _, bit := range frame {
			i, ok := c.next()
			if !ok {
				return fmt.Errorf("%w: wrote %d of %d bits", ErrInternalInconsistency, written, required)
			}
			buf[i] = (buf[i] & 0xFE) | bit
			written++
		}
	}

	return nil
}

// Extract reads the length prefix and then the message bits from buf.
func (l Layout) Extract(buf []byte) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}

	available := l.Capacity(len(buf))
	if available < LengthPrefixBits {
		return "", fmt.Errorf("%w: %d bits available, need %d", ErrBufferTooSmall, available, LengthPrefixBits)
	}

	c := l.newCursor(len(buf))
	prefix, err := c.read(buf, LengthPrefixBits)
	if err != nil {
		return "", err
	}

	length, err := bitstream.ToNumber(prefix)
	if err != nil {
		return "", fmt.Errorf("failed to decode length prefix: %w", err)
	}

	// A zero prefix is indistinguishable from an image that never held a message.
	if length == 0 {
		return "", nil
	}

	remaining := available - LengthPrefixBits
	if length > uint64(remaining) {
		return "", &DeclaredLengthError{Declared: length, Available: remaining}
	}

	message, err := c.read(buf, int(length))
	if err != nil {
		return "", err
	}

	return bitstream.ToText(message)
}

// read collects the LSB of the next n eligible bytes.
func (c *cursor) read(buf []byte, n int) (bitstream.Stream, error) {
	bits := make(bitstream.Stream, n)
	for k := range bits {
		i, ok := c.next()
		if !ok {
			return nil, fmt.Errorf("%w: read %d of %d bits", ErrInternalInconsistency, k, n)
		}
		bits[k] = buf[i] & 1
	}
	return bits, nil
}
