package flate

import (
	"errors"
	"fmt"
)

// The ways a DEFLATE stream can be malformed. None of them is recoverable:
// compressed data that fails to decode once will fail the same way every
// time, so callers wanting resilience must discard or re-fetch the input.
var (
	ErrUnexpectedEOS          = errors.New("flate: unexpected end of stream")
	ErrInvalidBlockType       = errors.New("flate: invalid block type")
	ErrStoredLengthMismatch   = errors.New("flate: stored block length mismatch")
	ErrInvalidTree            = errors.New("flate: invalid huffman tree")
	ErrInvalidCode            = errors.New("flate: invalid huffman code")
	ErrInvalidTreeDescription = errors.New("flate: invalid tree description")
	ErrInvalidSymbol          = errors.New("flate: invalid symbol")
	ErrInvalidDistance        = errors.New("flate: invalid distance")
)

// A StreamError locates a format violation within the compressed stream.
// It wraps one of the sentinel errors above; use errors.Is to classify it.
type StreamError struct {
	Offset int64 // bit offset where the violation was detected
	Block  int   // index of the block being decoded
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%v (block %d, bit offset %d)", e.Err, e.Block, e.Offset)
}

func (e *StreamError) Unwrap() error { return e.Err }
