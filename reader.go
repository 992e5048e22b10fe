package unpack

import "io"

// A Reader decompresses the data from Source with Decoder and presents the
// result as an io.Reader.
//
// The whole compressed stream is read and decoded on the first call to Read;
// formats in this package frame complete streams rather than chunks, so
// there is nothing useful to hand out earlier.
type Reader struct {
	Source  io.Reader
	Decoder Decoder

	decoded bool
	buf     []byte
	err     error
}

func (r *Reader) Read(p []byte) (int, error) {
	if !r.decoded {
		r.decoded = true
		src, err := io.ReadAll(r.Source)
		if err != nil {
			r.err = err
		} else {
			r.buf, r.err = r.Decoder.Decode(nil, src)
		}
	}
	if len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
