// Package zstd decodes zstandard frames, presenting
// github.com/klauspost/compress/zstd through the unpack.Decoder interface.
package zstd

import (
	"github.com/klauspost/compress/zstd"

	"github.com/andybalholm/unpack"
)

type Decoder struct {
	r *zstd.Decoder
}

var _ unpack.Decoder = &Decoder{}

func (d *Decoder) Reset() {}

// Decode appends the decompressed form of the zstandard frame src to dst.
func (d *Decoder) Decode(dst []byte, src []byte) ([]byte, error) {
	if d.r == nil {
		r, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true))
		if err != nil {
			return dst, err
		}
		d.r = r
	}
	return d.r.DecodeAll(src, dst)
}
