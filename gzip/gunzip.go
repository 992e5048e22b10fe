// Package gzip decompresses gzip streams (RFC 1952): a small header and
// trailer framing a DEFLATE payload.
package gzip

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"time"

	"github.com/andybalholm/unpack"
	"github.com/andybalholm/unpack/flate"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8
)

// Flag bits of the header's FLG byte (RFC 1952 section 2.3.1).
const (
	FlagText    = 1 << 0
	FlagHdrCRC  = 1 << 1
	FlagExtra   = 1 << 2
	FlagName    = 1 << 3
	FlagComment = 1 << 4
)

var (
	// ErrHeader is returned for a stream that does not start with the gzip
	// magic bytes, or whose header fields are malformed.
	ErrHeader = errors.New("gzip: invalid header")
	// ErrUnsupportedMethod is returned when the compression method byte is
	// not 8 (DEFLATE), the only method RFC 1952 defines.
	ErrUnsupportedMethod = errors.New("gzip: unsupported compression method")
	// ErrSize is returned when the trailer's uncompressed-size field
	// disagrees with the number of bytes the payload decoded to.
	ErrSize = errors.New("gzip: decompressed size does not match trailer")
	// ErrChecksum is returned when the trailer's CRC-32 does not match the
	// decompressed data.
	ErrChecksum = errors.New("gzip: invalid checksum")
)

// A Header holds the metadata from a gzip member's header. All of it is
// informational; none of it affects decoding.
type Header struct {
	Flags      byte
	ModTime    time.Time // zero if the stream stored no timestamp
	ExtraFlags byte
	OS         byte
	Name       string // FNAME, if present
	Comment    string // FCOMMENT, if present
	Extra      []byte // FEXTRA payload, if present
	HeaderCRC  uint16 // FHCRC value, if present (already verified)
}

// A Decoder decompresses single-member gzip streams. It implements
// unpack.Decoder. After a successful Decode, Header describes the member
// that was read.
type Decoder struct {
	Header Header
	flate  flate.Decoder
}

var _ unpack.Decoder = &Decoder{}

func (d *Decoder) Reset() {
	d.Header = Header{}
	d.flate.Reset()
}

// Decode appends the decompressed form of the gzip stream src to dst and
// returns dst. The last 8 bytes of src must be the member's trailer; both
// its size field and its CRC-32 are verified against the decoded output.
func (d *Decoder) Decode(dst []byte, src []byte) ([]byte, error) {
	n, err := d.readHeader(src)
	if err != nil {
		return dst, err
	}
	if len(src)-n < 8 {
		return dst, io.ErrUnexpectedEOF
	}
	payload, trailer := src[n:len(src)-8], src[len(src)-8:]

	base := len(dst)
	dst, err = d.flate.Decode(dst, payload)
	if err != nil {
		return dst, err
	}
	out := dst[base:]

	if binary.LittleEndian.Uint32(trailer[4:]) != uint32(len(out)) {
		return dst, ErrSize
	}
	if binary.LittleEndian.Uint32(trailer[:4]) != crc32.ChecksumIEEE(out) {
		return dst, ErrChecksum
	}
	return dst, nil
}

// readHeader parses the member header at the start of src, fills in
// d.Header, and returns the offset of the DEFLATE payload.
func (d *Decoder) readHeader(src []byte) (int, error) {
	if len(src) < 10 {
		return 0, io.ErrUnexpectedEOF
	}
	if src[0] != gzipID1 || src[1] != gzipID2 {
		return 0, ErrHeader
	}
	if src[2] != gzipDeflate {
		return 0, ErrUnsupportedMethod
	}
	hdr := Header{
		Flags:      src[3],
		ExtraFlags: src[8],
		OS:         src[9],
	}
	if mtime := binary.LittleEndian.Uint32(src[4:8]); mtime != 0 {
		hdr.ModTime = time.Unix(int64(mtime), 0)
	}
	off := 10

	if hdr.Flags&FlagExtra != 0 {
		if len(src) < off+2 {
			return 0, io.ErrUnexpectedEOF
		}
		xlen := int(binary.LittleEndian.Uint16(src[off:]))
		off += 2
		if len(src) < off+xlen {
			return 0, io.ErrUnexpectedEOF
		}
		hdr.Extra = src[off : off+xlen]
		off += xlen
	}
	if hdr.Flags&FlagName != 0 {
		s, n, err := readString(src[off:])
		if err != nil {
			return 0, err
		}
		hdr.Name = s
		off += n
	}
	if hdr.Flags&FlagComment != 0 {
		s, n, err := readString(src[off:])
		if err != nil {
			return 0, err
		}
		hdr.Comment = s
		off += n
	}
	if hdr.Flags&FlagHdrCRC != 0 {
		if len(src) < off+2 {
			return 0, io.ErrUnexpectedEOF
		}
		// The header CRC is the low 16 bits of the CRC-32 of everything
		// before it.
		digest := crc32.ChecksumIEEE(src[:off])
		hdr.HeaderCRC = binary.LittleEndian.Uint16(src[off:])
		if uint16(digest) != hdr.HeaderCRC {
			return 0, ErrHeader
		}
		off += 2
	}

	d.Header = hdr
	return off, nil
}

// readString reads a NUL-terminated header string. RFC 1952 calls for
// Latin-1; the bytes are surfaced untranscoded.
func readString(src []byte) (string, int, error) {
	for i, b := range src {
		if b == 0 {
			return string(src[:i]), i + 1, nil
		}
	}
	return "", 0, io.ErrUnexpectedEOF
}

// Decode appends the decompressed form of the gzip stream src to dst,
// discarding the header metadata.
func Decode(dst []byte, src []byte) ([]byte, error) {
	var d Decoder
	return d.Decode(dst, src)
}
