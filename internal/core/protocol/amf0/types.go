// If you are AI: This file defines AMF0 markers and the closed set of value types.

package amf0

import (
	"fmt"
	"math"
	"time"

	"github.com/elliotchance/orderedmap/v3"
)

// Marker is the one-byte type tag that precedes every AMF0 value.
type Marker byte

// AMF0 type markers
const (
	MarkerNumber      Marker = 0x00
	MarkerBoolean     Marker = 0x01
	MarkerString      Marker = 0x02
	MarkerObject      Marker = 0x03
	MarkerMovieClip   Marker = 0x04 // reserved, decoded as Null
	MarkerNull        Marker = 0x05
	MarkerUndefined   Marker = 0x06
	MarkerReference   Marker = 0x07
	MarkerECMAArray   Marker = 0x08
	MarkerObjectEnd   Marker = 0x09
	MarkerStrictArray Marker = 0x0A
	MarkerDate        Marker = 0x0B
	MarkerLongString  Marker = 0x0C
	MarkerUnsupported Marker = 0x0D
	MarkerRecordset   Marker = 0x0E // reserved, no payload
	MarkerXMLDocument Marker = 0x0F
	MarkerTypedObject Marker = 0x10
	MarkerAVMPlus     Marker = 0x11 // AMF3 switch, not supported

	markerCount = 0x12
)

var markerNames = [markerCount]string{
	"number", "boolean", "string", "object", "movieclip", "null", "undefined",
	"reference", "ecma-array", "object-end", "strict-array", "date",
	"long-string", "unsupported", "recordset", "xml-document", "typed-object",
	"avmplus",
}

// String returns the marker name, or its hex value for unknown markers.
func (m Marker) String() string {
	if m < markerCount {
		return markerNames[m]
	}
	return fmt.Sprintf("0x%02x", byte(m))
}

// Value is a decoded AMF0 value. The set of implementations is closed.
type Value interface {
	// Marker returns the marker this value is written with.
	Marker() Marker
	isValue()
}

// Properties is an insertion-ordered key/value list shared by objects,
// ECMA arrays and typed objects.
type Properties = orderedmap.OrderedMap[string, Value]

// NewProperties returns an empty property list.
func NewProperties() *Properties {
	return orderedmap.NewOrderedMap[string, Value]()
}

// Number is an AMF0 number (IEEE-754 double).
type Number float64

// Boolean is an AMF0 boolean.
type Boolean bool

// String is a short AMF0 string (at most 65535 UTF-8 bytes).
type String string

// LongString is an AMF0 long string (u32 length prefix).
type LongString string

// XMLDocument is an AMF0 XML document, carried as long text.
type XMLDocument string

// Null is the AMF0 null value.
type Null struct{}

// Undefined is the AMF0 undefined value.
type Undefined struct{}

// Unsupported is the AMF0 unsupported value.
type Unsupported struct{}

// Recordset is the reserved AMF0 recordset value.
type Recordset struct{}

// Reference points at an earlier complex value in the same decode call.
// Resolve it through the RefTable returned with the decoded data.
type Reference uint16

// maxDateMillis is 2^63, the first millisecond count outside int64.
const maxDateMillis = 1 << 63

// Date is an AMF0 date: milliseconds since the Unix epoch and a timezone
// offset in minutes. Millis keeps the exact wire double.
type Date struct {
	Millis   float64
	TimeZone int16
}

// NewDate builds a Date from t with a zero timezone offset.
func NewDate(t time.Time) Date {
	return Date{Millis: float64(t.UnixMilli())}
}

// Time converts the date to a UTC time.Time. The timezone field is advisory
// in AMF0 and is not applied.
func (d Date) Time() time.Time {
	if math.IsNaN(d.Millis) || d.Millis >= maxDateMillis || d.Millis < -maxDateMillis {
		return time.Time{}
	}
	return time.UnixMilli(int64(d.Millis)).UTC()
}

// Object is an anonymous AMF0 object.
type Object struct {
	Properties *Properties
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{Properties: NewProperties()}
}

// ECMAArray is an AMF0 associative array.
type ECMAArray struct {
	Properties *Properties
}

// NewECMAArray returns an empty ECMA array.
func NewECMAArray() *ECMAArray {
	return &ECMAArray{Properties: NewProperties()}
}

// StrictArray is a dense AMF0 array.
type StrictArray struct {
	Items []Value
}

// TypedObject is an object carrying a class name.
type TypedObject struct {
	ClassName  string
	Properties *Properties
}

// NewTypedObject returns an empty typed object of the given class.
func NewTypedObject(className string) *TypedObject {
	return &TypedObject{ClassName: className, Properties: NewProperties()}
}
