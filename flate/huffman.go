package flate

// A huffmanTree decodes a canonical Huffman code built from a list of
// per-symbol code lengths (RFC 1951 section 3.2.2): codes are assigned by
// length, shortest first, and within a length in symbol order, so codes of
// equal length are consecutive integers and the whole table is determined
// by the lengths alone. A length of 0 means the symbol is unused.
//
// The representation is the count of codes per length plus the symbols
// sorted by (length, symbol index). Because the code values of a given
// length are consecutive, a running first-code value is enough to turn a
// (length, code) pair back into an index into that symbol list.
type huffmanTree struct {
	count  [maxCodeLen + 1]uint16
	symbol []uint16
}

// build constructs the decoding tables from lengths. A set of lengths that
// oversubscribes the code space of some length is rejected with
// ErrInvalidTree. Incomplete codes are allowed: a tree with a single used
// symbol (which some streams declare for a barely-used distance alphabet)
// builds fine and decodes that symbol from a single zero bit.
func (h *huffmanTree) build(lengths []int) error {
	for i := range h.count {
		h.count[i] = 0
	}
	for _, l := range lengths {
		h.count[l]++
	}
	if int(h.count[0]) == len(lengths) {
		// No symbols at all. Decoding will fail if attempted, but a tree
		// that is never walked (an unused distance alphabet) is legal.
		h.symbol = h.symbol[:0]
		return nil
	}

	left := 1 // codes still available, times two per length step
	for l := 1; l <= maxCodeLen; l++ {
		left <<= 1
		left -= int(h.count[l])
		if left < 0 {
			return ErrInvalidTree
		}
	}

	// Offsets into the symbol table of the first code of each length.
	var offs [maxCodeLen + 1]uint16
	for l := 1; l < maxCodeLen; l++ {
		offs[l+1] = offs[l] + h.count[l]
	}

	n := len(lengths) - int(h.count[0])
	if cap(h.symbol) < n {
		h.symbol = make([]uint16, n)
	} else {
		h.symbol = h.symbol[:n]
	}
	for i, l := range lengths {
		if l != 0 {
			h.symbol[offs[l]] = uint16(i)
			offs[l]++
		}
	}
	return nil
}

// decode reads bits from br until they form a complete code and returns the
// code's symbol. first tracks the smallest code of the current length and
// index the position of that code's symbol, so membership is a single
// comparison per bit. If no code matches within maxCodeLen bits the stream
// is corrupt and decode returns ErrInvalidCode.
func (h *huffmanTree) decode(br *bitReader) (int, error) {
	code, first, index := 0, 0, 0
	for l := 1; l <= maxCodeLen; l++ {
		b, err := br.readBit()
		if err != nil {
			return 0, err
		}
		code |= int(b)
		count := int(h.count[l])
		if code-first < count {
			return int(h.symbol[index+code-first]), nil
		}
		index += count
		first = (first + count) << 1
		code <<= 1
	}
	return 0, ErrInvalidCode
}
