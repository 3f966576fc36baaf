package bitstream

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformedPayload indicates a bit sequence whose length is not a whole number of bytes.
var ErrMalformedPayload = errors.New("malformed payload: bit count is not a multiple of 8")

// ErrInvalidEncoding indicates the decoded bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("payload is not valid UTF-8")

// ErrOverflow indicates a number does not fit in the requested bit width.
var ErrOverflow = errors.New("number does not fit in bit width")

// Stream is an ordered sequence of single bits. Every element is 0 or 1.
type Stream []byte

// FromBytes expands each byte into 8 bits, most significant bit first.
func FromBytes(data []byte) Stream {
	out := make(Stream, 0, len(data)*8)
	for _, b := range data {
		for pos := 7; pos >= 0; pos-- {
			out = append(out, (b>>pos)&1)
		}
	}
	return out
}

// ToBytes packs bits back into bytes. The stream must hold a whole number of bytes.
func ToBytes(bits Stream) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: got %d bits (%d trailing)", ErrMalformedPayload, len(bits), len(bits)%8)
	}

	out := make([]byte, len(bits)/8)
	for i, bit := range bits {
		if bit&1 == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}

// FromText returns the UTF-8 bytes of text as a bit stream.
func FromText(text string) Stream {
	return FromBytes([]byte(text))
}

// ToText decodes a bit stream into text. Decoding is strict: invalid UTF-8
// is an error rather than a string with replacement characters.
func ToText(bits Stream) (string, error) {
	data, err := ToBytes(bits)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// FromNumber encodes n into exactly width bits, MSB first.
func FromNumber(n uint64, width int) (Stream, error) {
	if width < 0 || width > 64 {
		return nil, fmt.Errorf("invalid bit width %d", width)
	}
	if width < 64 && n>>width != 0 {
		return nil, fmt.Errorf("%w: %d needs more than %d bits", ErrOverflow, n, width)
	}

	out := make(Stream, width)
	for i := 0; i < width; i++ {
		out[i] = byte(n>>(width-1-i)) & 1
	}
	return out, nil
}

// ToNumber interprets bits as an unsigned big-endian integer.
func ToNumber(bits Stream) (uint64, error) {
	if len(bits) > 64 {
		return 0, fmt.Errorf("%w: %d bits exceed 64", ErrOverflow, len(bits))
	}

	var n uint64
	for _, bit := range bits {
		n = n<<1 | uint64(bit&1)
	}
	return n, nil
}
