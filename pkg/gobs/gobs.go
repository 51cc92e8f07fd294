// Package gobs wraps the gob package to stream encoding of large slices.
//
// By default, the [gob] package encodes a slice as one value, meaning the
// entire slice has to be held in encoded form in memory before a single
// Write call flushes it to the stream.
// This package instead writes a length prefix followed by each element as
// its own gob value, so only one element is buffered at a time.
// A stream written by this package must also be read using this package.
package gobs

import (
	"encoding/gob"
	"errors"
	"fmt"
)

//spellchecker:words gobs

// ErrTooLarge is returned when a decoded length prefix exceeds the limit
// passed to DecodeSlice.
var ErrTooLarge = errors.New("gobs: length prefix exceeds limit")

// EncodeSlice encodes values onto encoder, element by element.
func EncodeSlice[T any](encoder *gob.Encoder, values []T) error {
	if err := encoder.Encode(uint64(len(values))); err != nil {
		return fmt.Errorf("failed to encode length: %w", err)
	}
	for i := range values {
		if err := encoder.Encode(&values[i]); err != nil {
			return fmt.Errorf("failed to encode element %d: %w", i, err)
		}
	}
	return nil
}

// DecodeSlice decodes a slice written by EncodeSlice from decoder.
//
// limit bounds the number of elements accepted; pass limit <= 0 for no
// bound.
func DecodeSlice[T any](decoder *gob.Decoder, limit int) ([]T, error) {
	var count uint64
	if err := decoder.Decode(&count); err != nil {
		return nil, fmt.Errorf("failed to decode length: %w", err)
	}
	if limit > 0 && count > uint64(limit) {
		return nil, ErrTooLarge
	}

	values := make([]T, count)
	for i := range values {
		if err := decoder.Decode(&values[i]); err != nil {
			return nil, fmt.Errorf("failed to decode element %d: %w", i, err)
		}
	}
	return values, nil
}
