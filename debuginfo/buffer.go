package debuginfo

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Buffer is the growable output buffer threaded through every recursive
// encoding call. Besides plain appends it supports the small undo
// operations the encoders need: popping a trailing argument separator and
// popping a just-closed angle bracket to reopen a generic list.
//
// The undo operations assert their expected trailing characters. A failed
// assertion is a logic defect in the calling encoder, never bad input, so
// they abort.
type Buffer struct {
	buf []byte
}

// NewBuffer returns an empty buffer with room for a typical type name.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, 64)}
}

func (b *Buffer) WriteString(s string) { b.buf = append(b.buf, s...) }
func (b *Buffer) WriteByte(c byte)     { b.buf = append(b.buf, c) }
func (b *Buffer) String() string       { return string(b.buf) }
func (b *Buffer) Len() int             { return len(b.buf) }

func (b *Buffer) writeUint(v uint64) { b.buf = strconv.AppendUint(b.buf, v, 10) }
func (b *Buffer) writeInt(v int64)   { b.buf = strconv.AppendInt(b.buf, v, 10) }
func (b *Buffer) writeHex(v uint64)  { b.buf = strconv.AppendUint(b.buf, v, 16) }

func (b *Buffer) endsWith(c byte) bool {
	return len(b.buf) > 0 && b.buf[len(b.buf)-1] == c
}

func (b *Buffer) endsWithString(s string) bool {
	return len(b.buf) >= len(s) && string(b.buf[len(b.buf)-len(s):]) == s
}

func (b *Buffer) truncate(n int) { b.buf = b.buf[:len(b.buf)-n] }

func (b *Buffer) pop() { b.buf = b.buf[:len(b.buf)-1] }

// pushArgSeparator appends the argument separator. Natvis-style debuggers
// dislike spaces inside type names they have to re-emit in casts, so the
// debugger-native dialect uses a bare comma.
func (b *Buffer) pushArgSeparator(cpp bool) {
	if cpp {
		b.WriteByte(',')
	} else {
		b.WriteString(", ")
	}
}

// popArgSeparator removes the trailing argument separator appended by
// pushArgSeparator.
func (b *Buffer) popArgSeparator() {
	if b.endsWith(' ') {
		b.pop()
	}
	if !b.endsWith(',') {
		panic(errors.AssertionFailedf("debuginfo: buffer does not end with an argument separator: %q", b.String()))
	}
	b.pop()
}

// pushCloseAngle appends a closing angle bracket. Expression-parsing
// debuggers always read `>>` as a right shift, so in the debugger-native
// dialect a space is inserted between consecutive closing brackets.
func (b *Buffer) pushCloseAngle(cpp bool) {
	if cpp && b.endsWith('>') {
		b.WriteByte(' ')
	}
	b.WriteByte('>')
}

// popCloseAngle removes a closing angle bracket appended by
// pushCloseAngle, including the separating space if one was emitted. Used
// to reopen a just-closed generic list.
func (b *Buffer) popCloseAngle() {
	if !b.endsWith('>') {
		panic(errors.AssertionFailedf("debuginfo: buffer does not end with '>': %q", b.String()))
	}
	b.pop()
	if b.endsWith(' ') {
		b.pop()
	}
}
