// Package stream rebuilds forwarded event streams on the client side.
package stream

import "bytes"

// LineBuffer splits a byte stream into lines across arbitrary read
// boundaries. A trailing partial line is held until its newline arrives.
// Splitting happens on bytes, so a multi-byte rune cut by a read is
// rejoined before it is decoded.
type LineBuffer struct {
	pending []byte
}

// Feed appends p and returns every line it completed, without the "\n".
func (b *LineBuffer) Feed(p []byte) []string {
	b.pending = append(b.pending, p...)

	var lines []string
	start := 0
	for {
		i := bytes.IndexByte(b.pending[start:], '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(b.pending[start:start+i]))
		start += i + 1
	}

	if start > 0 {
		n := copy(b.pending, b.pending[start:])
		b.pending = b.pending[:n]
	}
	return lines
}

// Pending reports how many bytes are waiting for a newline.
func (b *LineBuffer) Pending() int {
	return len(b.pending)
}

// Flush returns the unterminated remainder and empties the buffer.
func (b *LineBuffer) Flush() string {
	rest := string(b.pending)
	b.pending = b.pending[:0]
	return rest
}
