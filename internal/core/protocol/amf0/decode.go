// If you are AI: This file implements AMF0 value decoding: marker dispatch,
// property lists, the reference table and the nesting depth limit.

package amf0

import (
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds value nesting when no option overrides it.
const DefaultMaxDepth = 1000

// decodeFunc decodes the payload that follows a marker.
type decodeFunc func(d *Decoder, depth int) (Value, error)

// decoders maps every marker to its payload decoder. Markers without an
// entry fail with KindUnsupportedMarker.
var decoders [markerCount]decodeFunc

func init() {
	decoders = [markerCount]decodeFunc{
		MarkerNumber:      (*Decoder).decodeNumber,
		MarkerBoolean:     (*Decoder).decodeBoolean,
		MarkerString:      (*Decoder).decodeString,
		MarkerObject:      (*Decoder).decodeObject,
		MarkerMovieClip:   decodeConst(Null{}),
		MarkerNull:        decodeConst(Null{}),
		MarkerUndefined:   decodeConst(Undefined{}),
		MarkerReference:   (*Decoder).decodeReference,
		MarkerECMAArray:   (*Decoder).decodeECMAArray,
		MarkerObjectEnd:   (*Decoder).decodeObjectEnd,
		MarkerStrictArray: (*Decoder).decodeStrictArray,
		MarkerDate:        (*Decoder).decodeDate,
		MarkerLongString:  (*Decoder).decodeLongString,
		MarkerUnsupported: decodeConst(Unsupported{}),
		MarkerRecordset:   decodeConst(Recordset{}),
		MarkerXMLDocument: (*Decoder).decodeXMLDocument,
		MarkerTypedObject: (*Decoder).decodeTypedObject,
		MarkerAVMPlus:     nil,
	}
}

// decodeConst returns a decoder for markers that carry no payload.
func decodeConst(v Value) decodeFunc {
	return func(*Decoder, int) (Value, error) { return v, nil }
}

// Decoder decodes AMF0 data from a byte slice. A Decoder owns its cursor and
// reference table and must not be shared between goroutines.
type Decoder struct {
	cur  *Cursor
	refs *RefTable
	opts options
}

// NewDecoder returns a decoder reading from data.
func NewDecoder(data []byte, opts ...Option) *Decoder {
	return &Decoder{
		cur:  NewCursor(data),
		refs: &RefTable{},
		opts: buildOptions(opts),
	}
}

// Offset returns the number of input bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.cur.Position()
}

// Remaining returns the number of unread input bytes.
func (d *Decoder) Remaining() int {
	return d.cur.Remaining()
}

// References returns the reference table built so far.
func (d *Decoder) References() *RefTable {
	return d.refs
}

// DecodeValue decodes the next value at the top nesting level.
func (d *Decoder) DecodeValue() (Value, error) {
	return d.decodeValue(0)
}

// decodeValue reads one marker and dispatches to its payload decoder.
func (d *Decoder) decodeValue(depth int) (Value, error) {
	if depth > d.opts.maxDepth {
		return nil, newError(KindRecursionLimitExceeded, d.cur.Position(), "depth %d exceeds %d", depth, d.opts.maxDepth)
	}
	at := d.cur.Position()
	b, err := d.cur.ReadU8()
	if err != nil {
		return nil, err
	}
	m := Marker(b)
	var fn decodeFunc
	if m < markerCount {
		fn = decoders[m]
	}
	if fn == nil {
		return nil, &Error{Kind: KindUnsupportedMarker, Offset: at, Marker: m}
	}
	return fn(d, depth)
}

// decodeNumber decodes an AMF0 number.
func (d *Decoder) decodeNumber(int) (Value, error) {
	f, err := d.cur.ReadF64()
	if err != nil {
		return nil, err
	}
	return Number(f), nil
}

// decodeBoolean decodes an AMF0 boolean.
func (d *Decoder) decodeBoolean(int) (Value, error) {
	b, err := d.cur.ReadBool()
	if err != nil {
		return nil, err
	}
	return Boolean(b), nil
}

// decodeString decodes an AMF0 string.
func (d *Decoder) decodeString(int) (Value, error) {
	s, err := d.cur.ReadShortText()
	if err != nil {
		return nil, err
	}
	return String(s), nil
}

// decodeLongString decodes an AMF0 long string.
func (d *Decoder) decodeLongString(int) (Value, error) {
	s, err := d.cur.ReadLongText()
	if err != nil {
		return nil, err
	}
	return LongString(s), nil
}

// decodeXMLDocument decodes an AMF0 XML document.
func (d *Decoder) decodeXMLDocument(int) (Value, error) {
	s, err := d.cur.ReadLongText()
	if err != nil {
		return nil, err
	}
	return XMLDocument(s), nil
}

// decodeDate decodes an AMF0 date.
func (d *Decoder) decodeDate(int) (Value, error) {
	ms, err := d.cur.ReadF64()
	if err != nil {
		return nil, err
	}
	tz, err := d.cur.ReadI16()
	if err != nil {
		return nil, err
	}
	return Date{Millis: ms, TimeZone: tz}, nil
}

// decodeReference decodes a reference and checks it against the table.
func (d *Decoder) decodeReference(int) (Value, error) {
	at := d.cur.Position()
	idx, err := d.cur.ReadU16()
	if err != nil {
		return nil, err
	}
	if int(idx) >= d.refs.Len() {
		return nil, &Error{Kind: KindInvalidReference, Offset: at, Index: int(idx)}
	}
	return Reference(idx), nil
}

// decodeObjectEnd rejects an object-end marker found where a value belongs.
func (d *Decoder) decodeObjectEnd(int) (Value, error) {
	return nil, newError(KindUnexpectedObjectEnd, d.cur.Position()-1, "")
}

// decodeObject decodes an anonymous object.
func (d *Decoder) decodeObject(depth int) (Value, error) {
	obj := NewObject()
	d.refs.add(obj)
	if err := d.decodeProperties(obj.Properties, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeTypedObject decodes a class name followed by a property list.
func (d *Decoder) decodeTypedObject(depth int) (Value, error) {
	name, err := d.cur.ReadShortText()
	if err != nil {
		return nil, err
	}
	obj := NewTypedObject(name)
	d.refs.add(obj)
	if err := d.decodeProperties(obj.Properties, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeECMAArray decodes an ECMA array. The leading count is advisory.
func (d *Decoder) decodeECMAArray(depth int) (Value, error) {
	count, err := d.cur.ReadU32()
	if err != nil {
		return nil, err
	}
	arr := NewECMAArray()
	d.refs.add(arr)
	if err := d.decodeProperties(arr.Properties, depth); err != nil {
		return nil, err
	}
	if uint64(arr.Properties.Len()) != uint64(count) {
		d.opts.logger.Debug("ecma array count differs from properties",
			zap.Uint32("declared", count),
			zap.Int("decoded", arr.Properties.Len()))
	}
	return arr, nil
}

// decodeStrictArray decodes exactly count values.
func (d *Decoder) decodeStrictArray(depth int) (Value, error) {
	count, err := d.cur.ReadU32()
	if err != nil {
		return nil, err
	}
	// every element takes at least one byte
	capacity := int(min(uint64(count), uint64(d.cur.Remaining())))
	arr := &StrictArray{Items: make([]Value, 0, capacity)}
	d.refs.add(arr)
	for i := uint32(0); i < count; i++ {
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, v)
	}
	return arr, nil
}

// decodeProperties reads key/value pairs until an empty key followed by the
// object-end marker. Duplicate keys keep the last value.
func (d *Decoder) decodeProperties(props *Properties, depth int) error {
	for {
		key, err := d.cur.ReadShortText()
		if err != nil {
			return err
		}
		if key == "" {
			at := d.cur.Position()
			end, err := d.cur.ReadU8()
			if err != nil {
				return err
			}
			if Marker(end) != MarkerObjectEnd {
				return newError(KindMalformedObjectTerminator, at, "expected 0x09, got 0x%02x", end)
			}
			return nil
		}
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return err
		}
		props.Set(key, v)
	}
}

// DecodeValues decodes a bare sequence of AMF0 values until the input is
// exhausted, such as an RTMP command body. One reference table spans the
// whole sequence.
func DecodeValues(data []byte, opts ...Option) ([]Value, *RefTable, error) {
	d := NewDecoder(data, opts...)
	var values []Value
	for d.Remaining() > 0 {
		v, err := d.DecodeValue()
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
	}
	return values, d.refs, nil
}
