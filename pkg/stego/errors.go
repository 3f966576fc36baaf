package stego

import (
	"errors"
	"fmt"

	"github.com/Beastly713/stegtext/pkg/bitstream"
)

// ErrCapacityExceeded indicates the carrier is too small to hold the framed message.
var ErrCapacityExceeded = errors.New("message too large for carrier")

// ErrBufferTooSmall indicates the carrier cannot even hold a length prefix.
var ErrBufferTooSmall = errors.New("carrier too small to hold a length prefix")

// ErrDeclaredLengthExceedsCapacity indicates the extracted length prefix is impossible
// for this carrier. Usually the image never held a message or was modified.
var ErrDeclaredLengthExceedsCapacity = errors.New("declared message length exceeds carrier capacity")

// ErrInternalInconsistency indicates the channel walk ran out of carrier after the
// capacity check passed. It is a bug, not a user error.
var ErrInternalInconsistency = errors.New("internal inconsistency: carrier exhausted during walk")

// ErrInvalidLayout indicates a channel layout that cannot carry any bits.
var ErrInvalidLayout = errors.New("invalid channel layout")

// Decoding failures surfaced by Extract.
var (
	ErrInvalidEncoding  = bitstream.ErrInvalidEncoding
	ErrMalformedPayload = bitstream.ErrMalformedPayload
)

// CapacityExceededError reports how many bits a message needed and how many the carrier had.
type CapacityExceededError struct {
	Required  int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%v: need %d bits, have %d", ErrCapacityExceeded, e.Required, e.Available)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// DeclaredLengthError reports a length prefix larger than the bits left after it.
type DeclaredLengthError struct {
	Declared  uint64
	Available int
}

func (e *DeclaredLengthError) Error() string {
	return fmt.Sprintf("%v: prefix declares %d bits, only %d follow", ErrDeclaredLengthExceedsCapacity, e.Declared, e.Available)
}

func (e *DeclaredLengthError) Unwrap() error {
	return ErrDeclaredLengthExceedsCapacity
}
