package radioitems

import "reflect"

// Value is the value of a sub-option: a string or a number. Values decoded
// from JSON hold float64 numbers.
type Value = any

// Values maps an option group key to the value selected in that group.
type Values map[string]Value

// Clone returns a shallow copy of v. A nil Values clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// With returns a copy of v with key set to value. v itself is left untouched
// so consumers holding the previous map can diff old against new.
func (v Values) With(key string, value Value) Values {
	out := make(Values, len(v)+1)
	for k, val := range v {
		out[k] = val
	}
	out[key] = value
	return out
}

// Selected reports whether key is present and holds a value strictly equal
// to value.
func (v Values) Selected(key string, value Value) bool {
	current, ok := v[key]
	if !ok {
		return false
	}
	return StrictEqual(current, value)
}

// StrictEqual compares two values by dynamic type and value. Values of
// different types never match, so "1" does not equal 1. Non-comparable
// values (maps, slices) only match by identity, which two decoded
// documents never share, so they are reported as different.
func StrictEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
