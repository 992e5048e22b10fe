// Package flate decompresses raw DEFLATE streams (RFC 1951); package gzip
// handles the container format usually wrapped around them.
package flate

import (
	"sync"

	"github.com/andybalholm/unpack"
)

// A Decoder decompresses DEFLATE streams. It implements unpack.Decoder.
// The zero value is ready to use, and a Decoder may be reused for any
// number of streams; the Huffman tables it builds are recycled between
// blocks and between calls.
type Decoder struct {
	litLen  huffmanTree
	dist    huffmanTree
	meta    huffmanTree
	lengths [maxNumLit + maxNumDist]int
}

var _ unpack.Decoder = &Decoder{}

func (d *Decoder) Reset() {}

// Decode appends the decompressed form of the DEFLATE stream src to dst and
// returns dst. Decoding stops after the block marked final; src may extend
// beyond the stream. Format violations are returned as a *StreamError
// wrapping one of this package's sentinel errors.
func (d *Decoder) Decode(dst []byte, src []byte) ([]byte, error) {
	var br bitReader
	br.data = src
	var w window
	w.init(dst)

	for block := 0; ; block++ {
		final, err := br.readBit()
		if err == nil {
			err = d.decodeBlock(&br, &w)
		}
		if err != nil {
			return w.buf, &StreamError{Offset: br.offset(), Block: block, Err: err}
		}
		if final == 1 {
			break
		}
	}
	// Any bits left over in the final partial byte are padding.
	br.alignToByte()
	return w.buf, nil
}

// decodeBlock drives one block to completion: a 2-bit type code, then the
// stored, fixed-Huffman, or dynamic-Huffman payload. Type 3 is reserved.
func (d *Decoder) decodeBlock(br *bitReader, w *window) error {
	typ, err := br.readBits(2)
	if err != nil {
		return err
	}
	switch typ {
	case 0:
		return d.storedBlock(br, w)
	case 1:
		lit, dist := fixedTrees()
		return d.huffmanBlock(br, w, lit, dist)
	case 2:
		if err := d.readTrees(br); err != nil {
			return err
		}
		return d.huffmanBlock(br, w, &d.litLen, &d.dist)
	default:
		return ErrInvalidBlockType
	}
}

// storedBlock copies an uncompressed block through: byte-align, a 16-bit
// length and its one's complement, then the raw bytes.
func (d *Decoder) storedBlock(br *bitReader, w *window) error {
	br.alignToByte()
	length, err := br.readBits(16)
	if err != nil {
		return err
	}
	nlength, err := br.readBits(16)
	if err != nil {
		return err
	}
	if length^nlength != 0xffff {
		return ErrStoredLengthMismatch
	}
	for i := uint32(0); i < length; i++ {
		b, err := br.readBits(8)
		if err != nil {
			return err
		}
		w.writeLiteral(byte(b))
	}
	return nil
}

// huffmanBlock decodes literal/length symbols until end-of-block, emitting
// literals directly and resolving length/distance pairs through the window.
func (d *Decoder) huffmanBlock(br *bitReader, w *window, litLen, dist *huffmanTree) error {
	for {
		sym, err := litLen.decode(br)
		if err != nil {
			return err
		}
		switch {
		case sym < endOfBlock:
			w.writeLiteral(byte(sym))
		case sym == endOfBlock:
			return nil
		default:
			sym -= endOfBlock + 1
			if sym >= len(lengthBase) {
				return ErrInvalidSymbol
			}
			extra, err := br.readBits(uint(lengthExtra[sym]))
			if err != nil {
				return err
			}
			length := int(lengthBase[sym]) + int(extra)

			dsym, err := dist.decode(br)
			if err != nil {
				return err
			}
			if dsym >= len(distBase) {
				return ErrInvalidSymbol
			}
			extra, err = br.readBits(uint(distExtra[dsym]))
			if err != nil {
				return err
			}
			if err := w.copyMatch(int(distBase[dsym])+int(extra), length); err != nil {
				return err
			}
		}
	}
}

// readTrees decodes the compact description of a dynamic block's
// literal/length and distance trees (RFC 1951 section 3.2.7) into d.litLen
// and d.dist.
//
// The description is itself Huffman coded: 3-bit lengths for the 19-symbol
// code length alphabet arrive in the fixed metaCodeOrder permutation, and
// the tree they define then decodes the code lengths for both real
// alphabets. The repeat codes can cross from the literal/length lengths
// into the distance lengths, so both are decoded as one contiguous
// sequence and sliced apart afterward.
func (d *Decoder) readTrees(br *bitReader) error {
	v, err := br.readBits(5)
	if err != nil {
		return err
	}
	nlit := int(v) + 257
	v, err = br.readBits(5)
	if err != nil {
		return err
	}
	ndist := int(v) + 1
	v, err = br.readBits(4)
	if err != nil {
		return err
	}
	nmeta := int(v) + 4
	if nlit > maxNumLit || ndist > maxNumDist {
		return ErrInvalidTreeDescription
	}

	var metaLengths [numMeta]int
	for i := 0; i < nmeta; i++ {
		l, err := br.readBits(3)
		if err != nil {
			return err
		}
		metaLengths[metaCodeOrder[i]] = int(l)
	}
	for i := nmeta; i < numMeta; i++ {
		metaLengths[metaCodeOrder[i]] = 0
	}
	if err := d.meta.build(metaLengths[:]); err != nil {
		return err
	}

	lengths := d.lengths[:nlit+ndist]
	for i := 0; i < len(lengths); {
		sym, err := d.meta.decode(br)
		if err != nil {
			return err
		}
		if sym < 16 {
			lengths[i] = sym
			i++
			continue
		}
		var repeat, value int
		switch sym {
		case 16:
			if i == 0 {
				// Nothing yet to repeat.
				return ErrInvalidTreeDescription
			}
			v, err := br.readBits(2)
			if err != nil {
				return err
			}
			repeat, value = 3+int(v), lengths[i-1]
		case 17:
			v, err := br.readBits(3)
			if err != nil {
				return err
			}
			repeat, value = 3+int(v), 0
		default: // 18
			v, err := br.readBits(7)
			if err != nil {
				return err
			}
			repeat, value = 11+int(v), 0
		}
		if i+repeat > len(lengths) {
			return ErrInvalidTreeDescription
		}
		for ; repeat > 0; repeat-- {
			lengths[i] = value
			i++
		}
	}

	if lengths[endOfBlock] == 0 {
		// A block with no way to end is not decodable.
		return ErrInvalidTreeDescription
	}
	if err := d.litLen.build(lengths[:nlit]); err != nil {
		return err
	}
	return d.dist.build(lengths[nlit:])
}

// The fixed-Huffman trees never change, so they are built once on first
// use (RFC 1951 section 3.2.6: literal/length lengths 8/9/7/8 by symbol
// range, thirty 5-bit distance codes).
var fixedOnce sync.Once
var fixedLitLen, fixedDist huffmanTree

func fixedTrees() (litLen, dist *huffmanTree) {
	fixedOnce.Do(func() {
		lengths := make([]int, 288)
		i := 0
		for ; i < 144; i++ {
			lengths[i] = 8
		}
		for ; i < 256; i++ {
			lengths[i] = 9
		}
		for ; i < 280; i++ {
			lengths[i] = 7
		}
		for ; i < 288; i++ {
			lengths[i] = 8
		}
		fixedLitLen.build(lengths)

		for i := range lengths[:maxNumDist] {
			lengths[i] = 5
		}
		fixedDist.build(lengths[:maxNumDist])
	})
	return &fixedLitLen, &fixedDist
}
