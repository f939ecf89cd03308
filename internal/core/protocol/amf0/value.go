// If you are AI: This file implements the Value interface for every AMF0 type
// and the helpers shared by the decoder, encoder and converters.

package amf0

// Marker returns MarkerNumber.
func (Number) Marker() Marker { return MarkerNumber }

// Marker returns MarkerBoolean.
func (Boolean) Marker() Marker { return MarkerBoolean }

// Marker returns MarkerString.
func (String) Marker() Marker { return MarkerString }

// Marker returns MarkerLongString.
func (LongString) Marker() Marker { return MarkerLongString }

// Marker returns MarkerXMLDocument.
func (XMLDocument) Marker() Marker { return MarkerXMLDocument }

// Marker returns MarkerNull.
func (Null) Marker() Marker { return MarkerNull }

// Marker returns MarkerUndefined.
func (Undefined) Marker() Marker { return MarkerUndefined }

// Marker returns MarkerUnsupported.
func (Unsupported) Marker() Marker { return MarkerUnsupported }

// Marker returns MarkerRecordset.
func (Recordset) Marker() Marker { return MarkerRecordset }

// Marker returns MarkerReference.
func (Reference) Marker() Marker { return MarkerReference }

// Marker returns MarkerDate.
func (Date) Marker() Marker { return MarkerDate }

// Marker returns MarkerObject.
func (*Object) Marker() Marker { return MarkerObject }

// Marker returns MarkerECMAArray.
func (*ECMAArray) Marker() Marker { return MarkerECMAArray }

// Marker returns MarkerStrictArray.
func (*StrictArray) Marker() Marker { return MarkerStrictArray }

// Marker returns MarkerTypedObject.
func (*TypedObject) Marker() Marker { return MarkerTypedObject }

// isValue seals Value to the types in this package.
func (Number) isValue() {}

// isValue seals Value.
func (Boolean) isValue() {}

// isValue seals Value.
func (String) isValue() {}

// isValue seals Value.
func (LongString) isValue() {}

// isValue seals Value.
func (XMLDocument) isValue() {}

// isValue seals Value.
func (Null) isValue() {}

// isValue seals Value.
func (Undefined) isValue() {}

// isValue seals Value.
func (Unsupported) isValue() {}

// isValue seals Value.
func (Recordset) isValue() {}

// isValue seals Value.
func (Reference) isValue() {}

// isValue seals Value.
func (Date) isValue() {}

// isValue seals Value.
func (*Object) isValue() {}

// isValue seals Value.
func (*ECMAArray) isValue() {}

// isValue seals Value.
func (*StrictArray) isValue() {}

// isValue seals Value.
func (*TypedObject) isValue() {}

// IsNull reports whether v carries no value: a nil interface, Null, or a
// nil pointer to one of the complex types. All three encode as Null.
func IsNull(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return true
	case *Object:
		return t == nil
	case *ECMAArray:
		return t == nil
	case *StrictArray:
		return t == nil
	case *TypedObject:
		return t == nil
	}
	return false
}

// propertiesOf returns the property list of an object-like value, or nil.
func propertiesOf(v Value) *Properties {
	switch t := v.(type) {
	case *Object:
		if t != nil {
			return t.Properties
		}
	case *ECMAArray:
		if t != nil {
			return t.Properties
		}
	case *TypedObject:
		if t != nil {
			return t.Properties
		}
	}
	return nil
}

// isComplex reports whether v takes a slot in the reference table.
// Nil pointers never do.
func isComplex(v Value) bool {
	switch v.(type) {
	case *Object, *ECMAArray, *StrictArray, *TypedObject:
		return !IsNull(v)
	}
	return false
}

// propLen returns the number of properties, treating nil as empty.
func propLen(p *Properties) int {
	if p == nil {
		return 0
	}
	return p.Len()
}
