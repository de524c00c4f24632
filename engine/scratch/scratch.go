// Package scratch formats short strings into reusable byte buffers so
// per-frame labels do not allocate once the buffer has grown.
package scratch

import (
	"strconv"
	"unsafe"
)

// Buffer is a reusable formatting buffer. Strings returned by View alias
// the buffer and are only valid until the next Reset.
type Buffer struct {
	b []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 64
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (s *Buffer) Reset() *Buffer { s.b = s.b[:0]; return s }

func (s *Buffer) Len() int { return len(s.b) }
func (s *Buffer) Cap() int { return cap(s.b) }

func (s *Buffer) S(str string) *Buffer { s.b = append(s.b, str...); return s }
func (s *Buffer) C(c byte) *Buffer     { s.b = append(s.b, c); return s }
func (s *Buffer) R(r rune) *Buffer {
	s.b = appendRune(s.b, r)
	return s
}

func (s *Buffer) I(v int) *Buffer { s.b = strconv.AppendInt(s.b, int64(v), 10); return s }

// F64 appends v with prec digits after the decimal point.
func (s *Buffer) F64(v float64, prec int) *Buffer {
	s.b = strconv.AppendFloat(s.b, v, 'f', prec, 64)
	return s
}

func (s *Buffer) Bool(v bool) *Buffer { s.b = strconv.AppendBool(s.b, v); return s }

// Pad appends c until the buffer holds at least n bytes.
func (s *Buffer) Pad(n int, c byte) *Buffer {
	for len(s.b) < n {
		s.b = append(s.b, c)
	}
	return s
}

// Bytes returns the formatted bytes (aliasing the buffer).
func (s *Buffer) Bytes() []byte { return s.b }

// String returns a copy of the formatted text.
func (s *Buffer) String() string { return string(s.b) }

// View returns the formatted text without copying. It is invalidated by
// the next write or Reset.
func (s *Buffer) View() string {
	if len(s.b) == 0 {
		return ""
	}
	return unsafe.String(&s.b[0], len(s.b))
}

func appendRune(dst []byte, r rune) []byte {
	if r < 0x80 {
		return append(dst, byte(r))
	}
	return append(dst, string(r)...)
}
