// Package snappy decodes the snappy block format, presenting
// github.com/golang/snappy through the unpack.Decoder interface.
package snappy

import (
	"github.com/golang/snappy"

	"github.com/andybalholm/unpack"
)

type Decoder struct{}

var _ unpack.Decoder = Decoder{}

func (Decoder) Reset() {}

// Decode appends the decompressed form of the snappy block src to dst.
func (Decoder) Decode(dst []byte, src []byte) ([]byte, error) {
	decoded, err := snappy.Decode(nil, src)
	if err != nil {
		return dst, err
	}
	return append(dst, decoded...), nil
}
