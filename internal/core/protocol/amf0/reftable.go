// If you are AI: This file implements the per-call reference table that backs
// the AMF0 reference marker.

package amf0

// maxReferences is the number of slots addressable by a u16 reference index.
const maxReferences = 1 << 16

// RefTable is the ordered list of complex values seen during one decode call.
// Index 0 is the first object, ECMA array, strict array or typed object
// encountered. A table belongs to exactly one decode call and its result.
type RefTable struct {
	values []Value
}

// Len returns the number of registered values.
func (t *RefTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// At returns the value at index i, or false if i is out of range.
func (t *RefTable) At(i int) (Value, bool) {
	if t == nil || i < 0 || i >= len(t.values) {
		return nil, false
	}
	return t.values[i], true
}

// Resolve returns the complex value a reference points to.
func (t *RefTable) Resolve(r Reference) (Value, error) {
	v, ok := t.At(int(r))
	if !ok {
		return nil, &Error{Kind: KindInvalidReference, Index: int(r), Offset: -1}
	}
	return v, nil
}

// add registers v and returns its index. The slot is taken when the marker is
// read, before children are decoded, so nested references to an enclosing
// value resolve to it.
func (t *RefTable) add(v Value) int {
	t.values = append(t.values, v)
	return len(t.values) - 1
}

// Expand returns v with every Reference replaced by the value it points to.
// Resolved values are shared, not copied, so cyclic graphs stay finite.
// Complex values are rewritten in place.
func (t *RefTable) Expand(v Value) (Value, error) {
	seen := make(map[Value]bool)
	return t.expand(v, seen)
}

// expand walks v once per complex value, replacing references.
func (t *RefTable) expand(v Value, seen map[Value]bool) (Value, error) {
	if r, ok := v.(Reference); ok {
		target, err := t.Resolve(r)
		if err != nil {
			return nil, err
		}
		v = target
	}
	if !isComplex(v) || seen[v] {
		return v, nil
	}
	seen[v] = true

	if arr, ok := v.(*StrictArray); ok {
		for i, item := range arr.Items {
			resolved, err := t.expand(item, seen)
			if err != nil {
				return nil, err
			}
			arr.Items[i] = resolved
		}
		return v, nil
	}

	props := propertiesOf(v)
	if props == nil {
		return v, nil
	}
	for el := props.Front(); el != nil; el = el.Next() {
		resolved, err := t.expand(el.Value, seen)
		if err != nil {
			return nil, err
		}
		el.Value = resolved
	}
	return v, nil
}
