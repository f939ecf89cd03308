// If you are AI: This file converts value trees to plain Go values and binds
// objects into tagged structs.

package amf0

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag Bind reads field names from.
const TagName = "amf0"

// Native converts v to plain Go values: float64, bool, string, nil,
// map[string]any for objects and ECMA arrays, []any for strict arrays and
// time.Time for dates. Typed objects gain a "__class" key. References are
// resolved through refs; a nil refs leaves them as uint16 indexes. A
// reference back to a value still being converted yields nil.
func Native(v Value, refs *RefTable) any {
	return native(v, refs, make(map[Value]bool))
}

// native converts v, tracking complex values on the current path.
func native(v Value, refs *RefTable, path map[Value]bool) any {
	if r, ok := v.(Reference); ok {
		target, found := refs.At(int(r))
		if !found {
			return uint16(r)
		}
		v = target
	}
	if IsNull(v) {
		return nil
	}
	if isComplex(v) {
		if path[v] {
			return nil
		}
		path[v] = true
		defer delete(path, v)
	}

	switch t := v.(type) {
	case nil, Null, Undefined, Unsupported, Recordset:
		return nil
	case Number:
		return float64(t)
	case Boolean:
		return bool(t)
	case String:
		return string(t)
	case LongString:
		return string(t)
	case XMLDocument:
		return string(t)
	case Date:
		return t.Time()
	case *StrictArray:
		out := make([]any, len(t.Items))
		for i, item := range t.Items {
			out[i] = native(item, refs, path)
		}
		return out
	case *TypedObject:
		out := nativeProperties(t.Properties, refs, path)
		out["__class"] = t.ClassName
		return out
	case *Object, *ECMAArray:
		return nativeProperties(propertiesOf(v), refs, path)
	default:
		return nil
	}
}

// nativeProperties converts a property list to a map.
func nativeProperties(props *Properties, refs *RefTable, path map[Value]bool) map[string]any {
	out := make(map[string]any, propLen(props))
	if props == nil {
		return out
	}
	for key, val := range props.AllFromFront() {
		out[key] = native(val, refs, path)
	}
	return out
}

// Bind decodes an object-like value into out, a pointer to a struct or map.
// Struct fields are matched by their `amf0` tag, then by case-insensitive
// name. Numbers convert to Go integer fields and dates to time.Time.
func Bind(v Value, refs *RefTable, out any) error {
	if r, ok := v.(Reference); ok {
		target, err := refs.Resolve(r)
		if err != nil {
			return err
		}
		v = target
	}
	if IsNull(v) {
		return fmt.Errorf("amf0: cannot bind null value into %T", out)
	}
	if propertiesOf(v) == nil {
		return fmt.Errorf("amf0: cannot bind %s into %T", v.Marker(), out)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("amf0: bind: %w", err)
	}
	if err := dec.Decode(Native(v, refs)); err != nil {
		return fmt.Errorf("amf0: bind: %w", err)
	}
	return nil
}
