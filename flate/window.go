package flate

// A window holds the output of one decode session and resolves
// back-references into it. It wraps the caller's dst slice; bytes that were
// already in dst are before base and are never addressable by a match.
type window struct {
	buf  []byte
	base int
}

func (w *window) init(dst []byte) {
	w.buf = dst
	w.base = len(dst)
}

func (w *window) writeLiteral(b byte) {
	w.buf = append(w.buf, b)
}

// copyMatch appends length bytes, each copied from distance bytes behind
// the current end of output. The copy goes one byte at a time, relative to
// the output as it grows, so a match longer than its distance reads bytes
// written earlier in the same copy. (A bulk copy of the pre-copy buffer
// would get exactly those overlapping runs wrong.)
func (w *window) copyMatch(distance, length int) error {
	if distance < 1 || distance > w.produced() {
		return ErrInvalidDistance
	}
	for ; length > 0; length-- {
		w.buf = append(w.buf, w.buf[len(w.buf)-distance])
	}
	return nil
}

// produced returns the number of bytes this session has written.
func (w *window) produced() int {
	return len(w.buf) - w.base
}
