// Package lz4 decodes lz4 blocks and frames, presenting
// github.com/pierrec/lz4/v4 through the unpack.Decoder interface.
package lz4

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/andybalholm/unpack"
)

// A BlockDecoder decodes a single raw lz4 block. The block format does not
// record the decompressed size, so the decoder grows its output buffer
// until the block fits.
type BlockDecoder struct {
	// Size is the decompressed size of the block, if the caller knows it.
	// Zero means start guessing from the compressed size.
	Size int
}

var _ unpack.Decoder = &BlockDecoder{}

func (d *BlockDecoder) Reset() {}

func (d *BlockDecoder) Decode(dst []byte, src []byte) ([]byte, error) {
	size := d.Size
	if size == 0 {
		size = 4 * len(src)
	}
	for {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(src, buf)
		if err == nil {
			return append(dst, buf[:n]...), nil
		}
		if d.Size != 0 || size > 1<<30 {
			return dst, err
		}
		size *= 2
	}
}

// A FrameDecoder decodes the lz4 frame format.
type FrameDecoder struct{}

var _ unpack.Decoder = FrameDecoder{}

func (FrameDecoder) Reset() {}

func (FrameDecoder) Decode(dst []byte, src []byte) ([]byte, error) {
	decoded, err := io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
	if err != nil {
		return dst, err
	}
	return append(dst, decoded...), nil
}
