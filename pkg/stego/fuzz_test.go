package stego_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Beastly713/stegtext/pkg/stego"
)

// FuzzExtract feeds arbitrary carriers to the extractor.
// Garbage is expected to fail, but always with one of the documented errors
// and never with a panic.
func FuzzExtract(f *testing.F) {
	valid := make([]byte, 32*4)
	if err := stego.Embed(valid, "seed"); err != nil {
		f.Fatal(err)
	}
	f.Add(valid)
	f.Add(make([]byte, 16))
	f.Add(bytes.Repeat([]byte{0xFF}, 256))
	f.Add([]byte("random garbage that is not a carrier"))

	f.Fuzz(func(t *testing.T, data []byte) {
		text, err := stego.Extract(data)
		if err != nil {
			if text != "" {
				t.Errorf("Partial output %q returned alongside error %v", text, err)
			}
			switch {
			case errors.Is(err, stego.ErrBufferTooSmall),
				errors.Is(err, stego.ErrDeclaredLengthExceedsCapacity),
				errors.Is(err, stego.ErrMalformedPayload),
				errors.Is(err, stego.ErrInvalidEncoding):
			default:
				t.Errorf("Unexpected error: %v", err)
			}
			return
		}

		// Anything that decodes must survive a re-embed into a copy of itself.
		buf := bytes.Clone(data)
		if err := stego.Embed(buf, text); err != nil {
			t.Fatalf("Re-embed of extracted text failed: %v", err)
		}
		again, err := stego.Extract(buf)
		if err != nil || again != text {
			t.Errorf("Round trip changed the message: %q -> %q (%v)", text, again, err)
		}
	})
}
