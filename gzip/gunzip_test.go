package gzip

import (
	"bytes"
	stdgzip "compress/gzip"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math/rand"
	"testing"
	"time"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpora() map[string][]byte {
	rnd := rand.New(rand.NewSource(2))
	random := make([]byte, 50000)
	rnd.Read(random)
	return map[string][]byte{
		"empty":  {},
		"text":   bytes.Repeat([]byte("a gzip member framing a DEFLATE payload. "), 1500),
		"random": random,
	}
}

func TestRoundTripStdlib(t *testing.T) {
	for name, data := range testCorpora() {
		t.Run(name, func(t *testing.T) {
			b := new(bytes.Buffer)
			gw := stdgzip.NewWriter(b)
			gw.Write(data)
			require.NoError(t, gw.Close())

			out, err := Decode(nil, b.Bytes())
			require.NoError(t, err)
			assert.Equal(t, data, append([]byte{}, out...))
		})
	}
}

func TestRoundTripKlauspost(t *testing.T) {
	for name, data := range testCorpora() {
		for _, level := range []int{kgzip.HuffmanOnly, kgzip.NoCompression, kgzip.BestSpeed, kgzip.BestCompression} {
			t.Run(fmt.Sprintf("%s/level%d", name, level), func(t *testing.T) {
				b := new(bytes.Buffer)
				gw, err := kgzip.NewWriterLevel(b, level)
				require.NoError(t, err)
				gw.Write(data)
				require.NoError(t, gw.Close())

				var d Decoder
				out, err := d.Decode(nil, b.Bytes())
				require.NoError(t, err)
				assert.Equal(t, data, append([]byte{}, out...))
			})
		}
	}
}

func TestHeaderMetadata(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	b := new(bytes.Buffer)
	gw := stdgzip.NewWriter(b)
	gw.Name = "observations.txt"
	gw.Comment = "nightly export"
	gw.Extra = []byte{0x01, 0x02, 0x03}
	gw.ModTime = mtime
	gw.Write([]byte("payload"))
	require.NoError(t, gw.Close())

	var d Decoder
	out, err := d.Decode(nil, b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(out))
	assert.Equal(t, "observations.txt", d.Header.Name)
	assert.Equal(t, "nightly export", d.Header.Comment)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, d.Header.Extra)
	assert.True(t, d.Header.ModTime.Equal(mtime))
	assert.NotZero(t, d.Header.Flags&FlagName)
}

// member assembles a gzip stream by hand: header bytes, a raw DEFLATE
// payload, and a trailer computed from the uncompressed data.
func member(header, payload, uncompressed []byte) []byte {
	src := append(append([]byte{}, header...), payload...)
	src = binary.LittleEndian.AppendUint32(src, crc32.ChecksumIEEE(uncompressed))
	return binary.LittleEndian.AppendUint32(src, uint32(len(uncompressed)))
}

// An empty stored DEFLATE block, used as the payload of hand-built members.
var emptyPayload = []byte{0x01, 0x00, 0x00, 0xff, 0xff}

func TestHeaderCRC(t *testing.T) {
	header := []byte{0x1f, 0x8b, 8, FlagHdrCRC, 0, 0, 0, 0, 0, 255}
	digest := crc32.ChecksumIEEE(header)
	header = binary.LittleEndian.AppendUint16(header, uint16(digest))

	var d Decoder
	out, err := d.Decode(nil, member(header, emptyPayload, nil))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, uint16(digest), d.Header.HeaderCRC)

	header[10]++ // corrupt the stored CRC16
	_, err = d.Decode(nil, member(header, emptyPayload, nil))
	assert.ErrorIs(t, err, ErrHeader)
}

func TestBadMagic(t *testing.T) {
	src := member([]byte{0x00, 0x00, 8, 0, 0, 0, 0, 0, 0, 255}, emptyPayload, nil)
	_, err := Decode(nil, src)
	assert.ErrorIs(t, err, ErrHeader)
}

func TestUnsupportedMethod(t *testing.T) {
	src := member([]byte{0x1f, 0x8b, 7, 0, 0, 0, 0, 0, 0, 255}, emptyPayload, nil)
	_, err := Decode(nil, src)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestTruncated(t *testing.T) {
	_, err := Decode(nil, []byte{0x1f, 0x8b, 8})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Header fine, but nothing left for payload and trailer.
	_, err = Decode(nil, []byte{0x1f, 0x8b, 8, 0, 0, 0, 0, 0, 0, 255})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestTrailerSizeMismatch(t *testing.T) {
	b := new(bytes.Buffer)
	gw := stdgzip.NewWriter(b)
	gw.Write([]byte("some reasonable amount of data"))
	require.NoError(t, gw.Close())

	src := b.Bytes()
	src[len(src)-4]++ // ISIZE no longer matches what the blocks produce
	_, err := Decode(nil, src)
	assert.ErrorIs(t, err, ErrSize)
}

func TestTrailerChecksumMismatch(t *testing.T) {
	b := new(bytes.Buffer)
	gw := stdgzip.NewWriter(b)
	gw.Write([]byte("some reasonable amount of data"))
	require.NoError(t, gw.Close())

	src := b.Bytes()
	src[len(src)-8]++ // CRC32 field
	_, err := Decode(nil, src)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestDecodeAppendsToDst(t *testing.T) {
	b := new(bytes.Buffer)
	gw := stdgzip.NewWriter(b)
	gw.Write([]byte("world"))
	require.NoError(t, gw.Close())

	out, err := Decode([]byte("hello "), b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))
}
