// If you are AI: This file implements structural equality between value trees.

package amf0

import (
	"math"
)

// Equal reports whether a and b are structurally equal. Numbers and dates
// compare bit for bit, so NaN equals NaN. Properties compare in order.
// References compare by index; Expand trees first to compare resolved graphs.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]Value]bool))
}

// equal compares a and b, treating pairs already under comparison as equal
// so cyclic graphs terminate.
func equal(a, b Value, visiting map[[2]Value]bool) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Marker() != b.Marker() {
		return false
	}
	if isComplex(a) {
		key := [2]Value{a, b}
		if a == b || visiting[key] {
			return true
		}
		visiting[key] = true
	}

	switch x := a.(type) {
	case Number:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Number)))
	case Date:
		y := b.(Date)
		return math.Float64bits(x.Millis) == math.Float64bits(y.Millis) && x.TimeZone == y.TimeZone
	case *StrictArray:
		y := b.(*StrictArray)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !equal(x.Items[i], y.Items[i], visiting) {
				return false
			}
		}
		return true
	case *TypedObject:
		if x.ClassName != b.(*TypedObject).ClassName {
			return false
		}
		return equalProperties(x.Properties, propertiesOf(b), visiting)
	case *Object, *ECMAArray:
		return equalProperties(propertiesOf(a), propertiesOf(b), visiting)
	default:
		return a == b
	}
}

// equalProperties compares two property lists key by key, in order.
func equalProperties(a, b *Properties, visiting map[[2]Value]bool) bool {
	if propLen(a) != propLen(b) {
		return false
	}
	if propLen(a) == 0 {
		return true
	}
	ea, eb := a.Front(), b.Front()
	for ea != nil && eb != nil {
		if ea.Key != eb.Key || !equal(ea.Value, eb.Value, visiting) {
			return false
		}
		ea, eb = ea.Next(), eb.Next()
	}
	return true
}
