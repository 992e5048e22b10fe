// The unpack package is a modular system for data decompression.
//
// Compression libraries usually have two main parts: something that looks
// for repeated sequences of bytes, and an encoder for the compressed data
// format. Decompression has only one: turning an encoded stream back into
// the bytes it represents. This package defines a small interface for that
// job, with a subpackage for each format, so that callers can swap formats
// without changing how they consume the output.
package unpack

// A Decoder decompresses a complete encoded stream.
type Decoder interface {
	// Decode appends the decompressed form of src to dst and returns dst.
	Decode(dst []byte, src []byte) ([]byte, error)

	// Reset clears any internal state, preparing the Decoder to be used with
	// a new stream.
	Reset()
}
