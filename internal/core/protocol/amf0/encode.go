// If you are AI: This file implements AMF0 encoding, the inverse of decode.go.
// Shared complex values are written once and referenced afterwards.

package amf0

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Encoder writes AMF0 values into an internal buffer. Complex values are
// tracked by identity so a value seen twice is written as a Reference.
// Values nested deeper than the configured limit are rejected, as on decode.
// An Encoder must not be shared between goroutines.
type Encoder struct {
	buf      bytes.Buffer
	refs     map[Value]uint16
	maxDepth int
}

// NewEncoder returns an empty encoder. Only WithMaxDepth affects encoding.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{
		refs:     make(map[Value]uint16),
		maxDepth: buildOptions(opts).maxDepth,
	}
}

// Bytes returns the encoded output. The slice aliases the encoder buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// EncodeValue encodes a standalone value with a fresh reference table.
func EncodeValue(v Value, opts ...Option) ([]byte, error) {
	e := NewEncoder(opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeValues encodes a bare sequence of values sharing one reference
// table, the inverse of DecodeValues.
func EncodeValues(values ...Value) ([]byte, error) {
	e := NewEncoder()
	for _, v := range values {
		if err := e.Encode(v); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

// Encode appends v to the output.
func (e *Encoder) Encode(v Value) error {
	return e.encode(v, 0)
}

// encode writes v found at the given nesting depth.
func (e *Encoder) encode(v Value, depth int) error {
	if depth > e.maxDepth {
		return newError(KindRecursionLimitExceeded, e.buf.Len(), "depth %d exceeds %d", depth, e.maxDepth)
	}
	if IsNull(v) {
		return e.writeMarker(MarkerNull)
	}
	if isComplex(v) {
		if idx, ok := e.refs[v]; ok {
			return e.encodeReference(Reference(idx))
		}
		// registered before children, matching the decoder's slot order
		if len(e.refs) < maxReferences {
			e.refs[v] = uint16(len(e.refs))
		}
	}

	switch t := v.(type) {
	case Number:
		return e.encodeNumber(float64(t))
	case Boolean:
		return e.encodeBoolean(bool(t))
	case String:
		return e.encodeString(string(t))
	case LongString:
		return e.encodeLongText(MarkerLongString, string(t))
	case XMLDocument:
		return e.encodeLongText(MarkerXMLDocument, string(t))
	case Null, Undefined, Unsupported, Recordset:
		return e.writeMarker(t.Marker())
	case Reference:
		return e.encodeReference(t)
	case Date:
		return e.encodeDate(t)
	case *Object:
		if err := e.writeMarker(MarkerObject); err != nil {
			return err
		}
		return e.encodeProperties(t.Properties, depth)
	case *ECMAArray:
		return e.encodeECMAArray(t, depth)
	case *StrictArray:
		return e.encodeStrictArray(t, depth)
	case *TypedObject:
		return e.encodeTypedObject(t, depth)
	default:
		return newError(KindUnsupportedValue, e.buf.Len(), "%T", v)
	}
}

// writeMarker writes a bare marker byte.
func (e *Encoder) writeMarker(m Marker) error {
	return e.buf.WriteByte(byte(m))
}

// encodeNumber encodes an AMF0 number.
func (e *Encoder) encodeNumber(num float64) error {
	if err := e.writeMarker(MarkerNumber); err != nil {
		return err
	}
	return binary.Write(&e.buf, binary.BigEndian, math.Float64bits(num))
}

// encodeBoolean encodes an AMF0 boolean.
func (e *Encoder) encodeBoolean(b bool) error {
	if err := e.writeMarker(MarkerBoolean); err != nil {
		return err
	}
	var val byte
	if b {
		val = 1
	}
	return e.buf.WriteByte(val)
}

// encodeString encodes an AMF0 string.
func (e *Encoder) encodeString(s string) error {
	if len(s) > math.MaxUint16 {
		return newError(KindStringTooLong, e.buf.Len(), "%d bytes, use LongString", len(s))
	}
	if err := e.writeMarker(MarkerString); err != nil {
		return err
	}
	return e.writeShortText(s)
}

// encodeLongText encodes a long string or XML document.
func (e *Encoder) encodeLongText(m Marker, s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return newError(KindStringTooLong, e.buf.Len(), "%d bytes", len(s))
	}
	if err := e.writeMarker(m); err != nil {
		return err
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := e.buf.WriteString(s)
	return err
}

// writeShortText writes a u16 length prefix and the text.
func (e *Encoder) writeShortText(s string) error {
	if len(s) > math.MaxUint16 {
		return newError(KindStringTooLong, e.buf.Len(), "%d bytes", len(s))
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := e.buf.WriteString(s)
	return err
}

// encodeReference encodes an AMF0 reference.
func (e *Encoder) encodeReference(r Reference) error {
	if err := e.writeMarker(MarkerReference); err != nil {
		return err
	}
	return binary.Write(&e.buf, binary.BigEndian, uint16(r))
}

// encodeDate encodes an AMF0 date.
func (e *Encoder) encodeDate(d Date) error {
	if err := e.writeMarker(MarkerDate); err != nil {
		return err
	}
	if err := binary.Write(&e.buf, binary.BigEndian, math.Float64bits(d.Millis)); err != nil {
		return err
	}
	return binary.Write(&e.buf, binary.BigEndian, d.TimeZone)
}

// encodeECMAArray encodes an ECMA array with its property count.
func (e *Encoder) encodeECMAArray(arr *ECMAArray, depth int) error {
	if err := e.writeMarker(MarkerECMAArray); err != nil {
		return err
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint32(propLen(arr.Properties))); err != nil {
		return err
	}
	return e.encodeProperties(arr.Properties, depth)
}

// encodeStrictArray encodes a strict array.
func (e *Encoder) encodeStrictArray(arr *StrictArray, depth int) error {
	if err := e.writeMarker(MarkerStrictArray); err != nil {
		return err
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint32(len(arr.Items))); err != nil {
		return err
	}
	for _, item := range arr.Items {
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// encodeTypedObject encodes a class name and its properties.
func (e *Encoder) encodeTypedObject(obj *TypedObject, depth int) error {
	if err := e.writeMarker(MarkerTypedObject); err != nil {
		return err
	}
	if err := e.writeShortText(obj.ClassName); err != nil {
		return err
	}
	return e.encodeProperties(obj.Properties, depth)
}

// encodeProperties writes key/value pairs in order, then the end marker.
func (e *Encoder) encodeProperties(props *Properties, depth int) error {
	if props != nil {
		for el := props.Front(); el != nil; el = el.Next() {
			if el.Key == "" {
				return newError(KindUnsupportedValue, e.buf.Len(), "empty property key")
			}
			if err := e.writeShortText(el.Key); err != nil {
				return err
			}
			if err := e.encode(el.Value, depth+1); err != nil {
				return err
			}
		}
	}
	// Object end marker
	if err := binary.Write(&e.buf, binary.BigEndian, uint16(0)); err != nil {
		return err
	}
	return e.writeMarker(MarkerObjectEnd)
}
