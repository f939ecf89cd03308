// If you are AI: This file implements the forward-only byte cursor and the
// big-endian primitive readers used by the decoder.

package amf0

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Cursor reads forward through a borrowed, immutable byte slice.
// A failed read never moves the position.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
// The slice is not copied; callers must not modify it while decoding.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Position returns the number of bytes consumed so far.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Read returns the next n bytes and advances past them.
// The returned slice aliases the input buffer.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, newError(KindUnexpectedEOF, c.pos, "need %d bytes, %d remain", n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadI16 reads a big-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadU64 reads a big-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadF64 reads a big-endian IEEE-754 double, bit for bit.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBool reads one byte; any nonzero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadU8()
	return b != 0, err
}

// ReadShortText reads a u16 length-prefixed UTF-8 string.
func (c *Cursor) ReadShortText() (string, error) {
	start := c.pos
	n, err := c.ReadU16()
	if err != nil {
		return "", err
	}
	return c.readText(start, int(n))
}

// ReadLongText reads a u32 length-prefixed UTF-8 string.
func (c *Cursor) ReadLongText() (string, error) {
	start := c.pos
	n, err := c.ReadU32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(c.Remaining()) {
		c.pos = start
		return "", newError(KindUnexpectedEOF, start+4, "need %d bytes, %d remain", n, c.Remaining())
	}
	return c.readText(start, int(n))
}

// readText reads n bytes of UTF-8 text whose length prefix began at start.
// On failure the position is rewound to start.
func (c *Cursor) readText(start, n int) (string, error) {
	b, err := c.Read(n)
	if err != nil {
		c.pos = start
		return "", err
	}
	if !utf8.Valid(b) {
		body := c.pos - n
		c.pos = start
		return "", newError(KindInvalidUTF8, body, "%d bytes", n)
	}
	return string(b), nil
}
