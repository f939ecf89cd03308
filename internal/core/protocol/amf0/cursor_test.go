// If you are AI: This file contains unit tests for the cursor and primitive readers.

package amf0

import (
	"errors"
	"math"
	"testing"
)

func TestCursorReadAdvances(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4})

	b, err := c.Read(3)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(b) != 3 || b[0] != 1 || b[2] != 3 {
		t.Errorf("Unexpected bytes: %v", b)
	}
	if c.Position() != 3 {
		t.Errorf("Expected position 3, got %d", c.Position())
	}
	if c.Remaining() != 1 {
		t.Errorf("Expected 1 remaining, got %d", c.Remaining())
	}
}

func TestCursorShortReadKeepsPosition(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if _, err := c.Read(1); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	_, err := c.Read(5)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
	if c.Position() != 1 {
		t.Errorf("Failed read moved position to %d", c.Position())
	}
	var e *Error
	if !errors.As(err, &e) || e.Offset != 1 {
		t.Errorf("Expected error at offset 1, got %v", err)
	}
}

func TestCursorIntegers(t *testing.T) {
	c := NewCursor([]byte{
		0x12, 0x34, // u16
		0xFF, 0xC4, // i16 -60
		0xDE, 0xAD, 0xBE, 0xEF, // u32
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // u64
	})

	u16, _ := c.ReadU16()
	if u16 != 0x1234 {
		t.Errorf("ReadU16 = %#x", u16)
	}
	i16, _ := c.ReadI16()
	if i16 != -60 {
		t.Errorf("ReadI16 = %d", i16)
	}
	u32, _ := c.ReadU32()
	if u32 != 0xDEADBEEF {
		t.Errorf("ReadU32 = %#x", u32)
	}
	u64, err := c.ReadU64()
	if err != nil || u64 != 0x0102030405060708 {
		t.Errorf("ReadU64 = %#x, %v", u64, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Expected cursor exhausted, %d remain", c.Remaining())
	}
}

func TestCursorF64BitExact(t *testing.T) {
	for _, bits := range []uint64{
		0x3FF0000000000000, // 1.0
		0x8000000000000000, // -0
		0x7FF8000000000001, // NaN payload
		0x7FF0000000000000, // +Inf
		0x0000000000000001, // smallest subnormal
	} {
		buf := []byte{
			byte(bits >> 56), byte(bits >> 48), byte(bits >> 40), byte(bits >> 32),
			byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits),
		}
		f, err := NewCursor(buf).ReadF64()
		if err != nil {
			t.Fatalf("ReadF64 failed: %v", err)
		}
		if math.Float64bits(f) != bits {
			t.Errorf("ReadF64 bits = %#x, want %#x", math.Float64bits(f), bits)
		}
	}
}

func TestCursorBool(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x01, 0x7F})
	for i, want := range []bool{false, true, true} {
		got, err := c.ReadBool()
		if err != nil {
			t.Fatalf("ReadBool %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("ReadBool %d = %v, want %v", i, got, want)
		}
	}
}

func TestCursorShortText(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o'})
	s, err := c.ReadShortText()
	if err != nil {
		t.Fatalf("ReadShortText failed: %v", err)
	}
	if s != "hello" {
		t.Errorf("Expected hello, got %q", s)
	}
}

func TestCursorLongText(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x00, 0x00, 0x02, 0xC3, 0xA9, 0x00})
	s, err := c.ReadLongText()
	if err != nil {
		t.Fatalf("ReadLongText failed: %v", err)
	}
	if s != "é" {
		t.Errorf("Expected é, got %q", s)
	}
	if c.Remaining() != 1 {
		t.Errorf("Expected 1 remaining, got %d", c.Remaining())
	}
}

func TestCursorTextErrorsRewind(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		long bool
		want error
	}{
		{"short truncated", []byte{0x00, 0x04, 'a', 'b'}, false, ErrUnexpectedEOF},
		{"short invalid utf8", []byte{0x00, 0x02, 0xC3, 0x28}, false, ErrInvalidUTF8},
		{"long truncated", []byte{0x00, 0x00, 0x01, 0x00, 'a'}, true, ErrUnexpectedEOF},
		{"long invalid utf8", []byte{0x00, 0x00, 0x00, 0x01, 0xFF}, true, ErrInvalidUTF8},
		{"missing prefix", []byte{0x00}, false, ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			var err error
			if tt.long {
				_, err = c.ReadLongText()
			} else {
				_, err = c.ReadShortText()
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if c.Position() != 0 {
				t.Errorf("Failed text read left position at %d", c.Position())
			}
		})
	}
}
