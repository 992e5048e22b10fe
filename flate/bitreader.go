package flate

// A bitReader consumes a byte slice one bit at a time, least significant bit
// of each byte first, the order DEFLATE uses (RFC 1951 section 3.1.1). It
// borrows data for its lifetime and never reads past the end: exhausting the
// slice is reported as ErrUnexpectedEOS, not a panic.
type bitReader struct {
	data []byte
	pos  int    // index of the next byte to load into the buffer
	b    uint32 // bit buffer, next bit in the low bit
	n    uint   // number of valid bits in b
}

// offset returns the number of bits consumed so far, for error reporting.
func (br *bitReader) offset() int64 {
	return int64(br.pos)*8 - int64(br.n)
}

func (br *bitReader) readBit() (uint32, error) {
	return br.readBits(1)
}

// readBits reads n bits, 0 <= n <= 16, and assembles them with the
// first-read bit as the least significant bit of the result. A value split
// across a byte boundary is not byte-reversed; the bits simply continue
// from the next byte.
func (br *bitReader) readBits(n uint) (uint32, error) {
	for br.n < n {
		if br.pos >= len(br.data) {
			return 0, ErrUnexpectedEOS
		}
		br.b |= uint32(br.data[br.pos]) << br.n
		br.pos++
		br.n += 8
	}
	v := br.b & (1<<n - 1)
	br.b >>= n
	br.n -= n
	return v, nil
}

// alignToByte discards any partially consumed byte, leaving the cursor on
// the next byte boundary. Stored blocks begin this way.
func (br *bitReader) alignToByte() {
	drop := br.n % 8
	br.b >>= drop
	br.n -= drop
}
