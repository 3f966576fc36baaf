package stego

import (
	"fmt"
)

// LengthPrefixBits is the width of the big-endian bit count that precedes every message.
const LengthPrefixBits = 32

// Layout describes how pixel bytes are grouped and which channels never carry data.
type Layout struct {
	// ChannelsPerPixel is the number of bytes per pixel (4 for RGBA).
	ChannelsPerPixel int

	// Skip lists channel indices within a pixel that are never read or written.
	Skip []int
}

// RGBA is the default layout: R, G, B carry data, alpha is left alone.
var RGBA = Layout{ChannelsPerPixel: 4, Skip: []int{3}}

// Validate checks that the layout has at least one usable channel.
func (l Layout) Validate() error {
	if l.ChannelsPerPixel < 1 {
		return fmt.Errorf("%w: %d channels per pixel", ErrInvalidLayout, l.ChannelsPerPixel)
	}

	seen := make(map[int]bool, len(l.Skip))
	for _, ch := range l.Skip {
		if ch < 0 || ch >= l.ChannelsPerPixel {
			return fmt.Errorf("%w: skip channel %d outside 0..%d", ErrInvalidLayout, ch, l.ChannelsPerPixel-1)
		}
		if seen[ch] {
			return fmt.Errorf("%w: skip channel %d listed twice", ErrInvalidLayout, ch)
		}
		seen[ch] = true
	}

	if len(seen) == l.ChannelsPerPixel {
		return fmt.Errorf("%w: every channel is skipped", ErrInvalidLayout)
	}
	return nil
}

// BitsPerPixel is the number of channels per pixel that carry one bit each.
func (l Layout) BitsPerPixel() int {
	return l.ChannelsPerPixel - len(l.Skip)
}

// Capacity returns how many bits a buffer of n bytes can carry, prefix included.
// Bytes of a trailing incomplete pixel are not counted.
func (l Layout) Capacity(n int) int {
	if n <= 0 || l.ChannelsPerPixel < 1 {
		return 0
	}
	return (n / l.ChannelsPerPixel) * l.BitsPerPixel()
}

// MaxMessageBytes returns how many whole bytes of UTF-8 fit after the length prefix.
func (l Layout) MaxMessageBytes(n int) int {
	return MessageBytesFor(l.Capacity(n))
}

// MessageBytesFor returns how many whole message bytes fit in a capacity of bits,
// once the length prefix is taken out.
func MessageBytesFor(bits int) int {
	free := bits - LengthPrefixBits
	if free < 0 {
		return 0
	}
	return free / 8
}

func (l Layout) eligibility() []bool {
	mask := make([]bool, l.ChannelsPerPixel)
	for i := range mask {
		mask[i] = true
	}
	for _, ch := range l.Skip {
		mask[ch] = false
	}
	return mask
}

// cursor walks a buffer yielding the indexes of bytes that may hold a bit.
type cursor struct {
	pos      int
	limit    int
	eligible []bool
}

func (l Layout) newCursor(n int) *cursor {
	return &cursor{
		limit:    n - n%l.ChannelsPerPixel,
		eligible: l.eligibility(),
	}
}

// next returns the next eligible index, skipping channels in the layout's skip set.
func (c *cursor) next() (int, bool) {
	for c.pos < c.limit {
		i := c.pos
		c.pos++
		if c.eligible[i%len(c.eligible)] {
			return i, true
		}
	}
	return 0, false
}
