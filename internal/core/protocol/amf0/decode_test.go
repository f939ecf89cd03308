// If you are AI: This file contains unit tests for AMF0 value decoding.

package amf0

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// decodeOne decodes a single top-level value and fails the test on error.
func decodeOne(t *testing.T, data []byte) (Value, *Decoder) {
	t.Helper()
	d := NewDecoder(data)
	v, err := d.DecodeValue()
	if err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	return v, d
}

func TestDecodeNumberBitExact(t *testing.T) {
	for _, f := range []float64{0, 1, -1.5, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1)} {
		bits := math.Float64bits(f)
		data := []byte{0x00,
			byte(bits >> 56), byte(bits >> 48), byte(bits >> 40), byte(bits >> 32),
			byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
		v, d := decodeOne(t, data)
		n, ok := v.(Number)
		if !ok {
			t.Fatalf("Expected Number, got %T", v)
		}
		if math.Float64bits(float64(n)) != bits {
			t.Errorf("Number bits = %#x, want %#x", math.Float64bits(float64(n)), bits)
		}
		if d.Offset() != 9 {
			t.Errorf("Expected 9 bytes consumed, got %d", d.Offset())
		}
	}
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Value
	}{
		{"string", []byte{0x02, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}, String("hello")},
		{"empty string", []byte{0x02, 0x00, 0x00}, String("")},
		{"true", []byte{0x01, 0x01}, Boolean(true)},
		{"false", []byte{0x01, 0x00}, Boolean(false)},
		{"null", []byte{0x05}, Null{}},
		{"movieclip", []byte{0x04}, Null{}},
		{"undefined", []byte{0x06}, Undefined{}},
		{"unsupported", []byte{0x0D}, Unsupported{}},
		{"recordset", []byte{0x0E}, Recordset{}},
		{"long string", []byte{0x0C, 0x00, 0x00, 0x00, 0x02, 'h', 'i'}, LongString("hi")},
		{"xml", []byte{0x0F, 0x00, 0x00, 0x00, 0x04, '<', 'a', '/', '>'}, XMLDocument("<a/>")},
		{"date", []byte{0x0B, 0x42, 0x77, 0x48, 0x76, 0xE8, 0x00, 0x00, 0x00, 0xFF, 0xC4},
			Date{Millis: 1600000000000, TimeZone: -60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, d := decodeOne(t, tt.data)
			if !Equal(v, tt.want) {
				t.Errorf("Decoded %#v, want %#v", v, tt.want)
			}
			if d.Remaining() != 0 {
				t.Errorf("Expected all input consumed, %d remain", d.Remaining())
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	data := []byte{
		0x03,
		0x00, 0x01, 'a', 0x00, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0,
		0x00, 0x00, 0x09,
	}
	v, _ := decodeOne(t, data)
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("Expected *Object, got %T", v)
	}
	a, ok := obj.Properties.Get("a")
	if !ok || a != Number(1.0) {
		t.Errorf("Expected a=1, got %v (present %v)", a, ok)
	}
	if obj.Properties.Len() != 1 {
		t.Errorf("Expected 1 property, got %d", obj.Properties.Len())
	}
}

func TestDecodeObjectKeepsOrderAndLastWrite(t *testing.T) {
	data := []byte{0x03,
		0x00, 0x01, 'z', 0x01, 0x01,
		0x00, 0x01, 'a', 0x05,
		0x00, 0x01, 'z', 0x01, 0x00,
		0x00, 0x00, 0x09,
	}
	v, _ := decodeOne(t, data)
	props := v.(*Object).Properties

	var keys []string
	for k := range props.Keys() {
		keys = append(keys, k)
	}
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Errorf("Unexpected key order: %v", keys)
	}
	if z, _ := props.Get("z"); z != Boolean(false) {
		t.Errorf("Expected last write z=false, got %v", z)
	}
}

func TestDecodeECMAArrayAndTypedObject(t *testing.T) {
	data := []byte{0x08, 0x00, 0x00, 0x00, 0x07, // count is advisory
		0x00, 0x01, 'k', 0x02, 0x00, 0x01, 'v',
		0x00, 0x00, 0x09}
	v, _ := decodeOne(t, data)
	arr, ok := v.(*ECMAArray)
	if !ok || arr.Properties.Len() != 1 {
		t.Fatalf("Expected ECMA array with 1 property, got %#v", v)
	}

	data = []byte{0x10, 0x00, 0x03, 'F', 'o', 'o',
		0x00, 0x01, 'x', 0x05,
		0x00, 0x00, 0x09}
	v, _ = decodeOne(t, data)
	typed, ok := v.(*TypedObject)
	if !ok || typed.ClassName != "Foo" || typed.Properties.Len() != 1 {
		t.Fatalf("Unexpected typed object %#v", v)
	}
}

func TestDecodeStrictArrayAndReference(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x00, 0x03,
		0x03, 0x00, 0x00, 0x09, // object, ref index 1
		0x07, 0x00, 0x01, // reference to the object
		0x07, 0x00, 0x00, // reference to the enclosing array
	}
	v, d := decodeOne(t, data)
	arr := v.(*StrictArray)
	if len(arr.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(arr.Items))
	}
	if arr.Items[1] != Reference(1) || arr.Items[2] != Reference(0) {
		t.Errorf("Unexpected references: %v %v", arr.Items[1], arr.Items[2])
	}
	if d.References().Len() != 2 {
		t.Fatalf("Expected 2 registered values, got %d", d.References().Len())
	}
	target, err := d.References().Resolve(Reference(1))
	if err != nil || target != arr.Items[0] {
		t.Errorf("Reference 1 should resolve to the object, got %v, %v", target, err)
	}
	self, _ := d.References().Resolve(Reference(0))
	if self != v {
		t.Error("Reference 0 should resolve to the enclosing array")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   error
		offset int
	}{
		{"unknown marker", []byte{0xFF, 0x00}, ErrUnsupportedMarker, 0},
		{"amf3 switch", []byte{0x11, 0x04, 0x01}, ErrUnsupportedMarker, 0},
		{"object end", []byte{0x09}, ErrUnexpectedObjectEnd, 0},
		{"truncated number", []byte{0x00, 0x3F, 0xF0}, ErrUnexpectedEOF, 1},
		{"empty input", nil, ErrUnexpectedEOF, 0},
		{"dangling reference", []byte{0x07, 0x00, 0x00}, ErrInvalidReference, 1},
		{"bad terminator", []byte{0x03, 0x00, 0x00, 0x05}, ErrMalformedObjectTerminator, 3},
		{"unterminated object", []byte{0x03, 0x00, 0x01, 'a', 0x05}, ErrUnexpectedEOF, 5},
		{"invalid utf8", []byte{0x02, 0x00, 0x01, 0xFF}, ErrInvalidUTF8, 3},
		{"short strict array", []byte{0x0A, 0x00, 0x00, 0x00, 0x02, 0x05}, ErrUnexpectedEOF, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.data).DecodeValue()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if e.Offset != tt.offset {
				t.Errorf("Expected offset %d, got %d", tt.offset, e.Offset)
			}
		})
	}
}

func TestDecodeUnknownMarkerConsumesOneByte(t *testing.T) {
	d := NewDecoder([]byte{0xFF, 0x01, 0x02})
	_, err := d.DecodeValue()
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindUnsupportedMarker || e.Marker != 0xFF {
		t.Fatalf("Expected unsupported marker 0xff, got %v", err)
	}
	if d.Offset() != 1 {
		t.Errorf("Expected 1 byte consumed, got %d", d.Offset())
	}
}

func TestDecodeRecursionLimit(t *testing.T) {
	const limit = DefaultMaxDepth
	nested := func(depth int) []byte {
		var buf bytes.Buffer
		buf.WriteByte(0x03)
		for i := 0; i < depth; i++ {
			buf.Write([]byte{0x00, 0x01, 'a', 0x03})
		}
		for i := 0; i <= depth; i++ {
			buf.Write([]byte{0x00, 0x00, 0x09})
		}
		return buf.Bytes()
	}

	if _, err := NewDecoder(nested(limit)).DecodeValue(); err != nil {
		t.Fatalf("Nesting at the limit should decode: %v", err)
	}
	for _, depth := range []int{limit + 1, 10 * limit, 20 * limit} {
		_, err := NewDecoder(nested(depth)).DecodeValue()
		if !errors.Is(err, ErrRecursionLimitExceeded) {
			t.Errorf("Depth %d: expected ErrRecursionLimitExceeded, got %v", depth, err)
		}
	}

	_, err := NewDecoder(nested(5), WithMaxDepth(3)).DecodeValue()
	if KindOf(err) != KindRecursionLimitExceeded {
		t.Errorf("Expected custom limit to apply, got %v", err)
	}
}

func TestDecodeStrictArrayHugeCount(t *testing.T) {
	// count far larger than the input must fail, not allocate
	_, err := NewDecoder([]byte{0x0A, 0xFF, 0xFF, 0xFF, 0xFF, 0x05}).DecodeValue()
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeValuesSequence(t *testing.T) {
	data := []byte{
		0x02, 0x00, 0x07, '_', 'r', 'e', 's', 'u', 'l', 't',
		0x00, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0,
		0x05,
	}
	values, refs, err := DecodeValues(data)
	if err != nil {
		t.Fatalf("DecodeValues failed: %v", err)
	}
	if len(values) != 3 || values[0] != String("_result") || values[1] != Number(1) || values[2] != (Null{}) {
		t.Errorf("Unexpected values: %#v", values)
	}
	if refs.Len() != 0 {
		t.Errorf("Expected empty reference table, got %d", refs.Len())
	}
}
