package radioitems

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// SubOption is one selectable choice within a group.
type SubOption struct {
	Value    Value  `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// OptionGroup is a named set of mutually exclusive choices.
type OptionGroup struct {
	Key     string
	Options []SubOption
}

// Options is the ordered collection of groups a RadioGroup renders. It
// encodes to and decodes from a JSON object of the form
//
//	{"color": {"options": [{"value": "r", "label": "Red"}]}}
//
// Decoding keeps the property order a browser would iterate: keys that are
// canonical array indices first in ascending numeric order, then every other
// key in document order.
type Options []OptionGroup

// Group returns the group with the given key.
func (o Options) Group(key string) (OptionGroup, bool) {
	for _, g := range o {
		if g.Key == key {
			return g, true
		}
	}
	return OptionGroup{}, false
}

// Lookup returns the index-th sub-option of group key.
func (o Options) Lookup(key string, index int) (SubOption, error) {
	group, ok := o.Group(key)
	if !ok {
		return SubOption{}, fmt.Errorf("%w: %q", ErrUnknownGroup, key)
	}
	if index < 0 || index >= len(group.Options) {
		return SubOption{}, fmt.Errorf("%w: %q[%d]", ErrUnknownOption, key, index)
	}
	return group.Options[index], nil
}

// UnmarshalJSON decodes an options object. Missing "options" lists,
// non-object entries and object or array values fail immediately.
func (o *Options) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedOptions)
	}
	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		*o = Options{}
		return nil
	}
	if !root.IsObject() {
		return fmt.Errorf("%w: expected an object, got %s", ErrMalformedOptions, root.Type)
	}

	var (
		groups Options
		seen   = make(map[string]int)
		err    error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		var group OptionGroup
		group, err = decodeGroup(key.String(), value)
		if err != nil {
			return false
		}
		// a repeated key keeps its first position and its last definition
		if i, ok := seen[group.Key]; ok {
			groups[i] = group
			return true
		}
		seen[group.Key] = len(groups)
		groups = append(groups, group)
		return true
	})
	if err != nil {
		return err
	}

	*o = propertyOrder(groups)
	return nil
}

// MarshalJSON encodes the groups as an object in their current order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Key)
		if err != nil {
			return nil, err
		}
		subs := g.Options
		if subs == nil {
			subs = []SubOption{}
		}
		body, err := json.Marshal(struct {
			Options []SubOption `json:"options"`
		}{subs})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeGroup(key string, value gjson.Result) (OptionGroup, error) {
	if !value.IsObject() {
		return OptionGroup{}, fmt.Errorf("%w: group %q is not an object", ErrMalformedOptions, key)
	}
	list := value.Get("options")
	if !list.IsArray() {
		return OptionGroup{}, fmt.Errorf("%w: group %q has no options list", ErrMalformedOptions, key)
	}

	group := OptionGroup{Key: key, Options: make([]SubOption, 0, len(list.Array()))}
	for i, item := range list.Array() {
		if !item.IsObject() {
			return OptionGroup{}, fmt.Errorf("%w: %q[%d] is not an object", ErrMalformedOptions, key, i)
		}
		value := item.Get("value")
		if value.Type == gjson.JSON {
			// objects and arrays never compare equal to a stored selection
			return OptionGroup{}, fmt.Errorf("%w: %q[%d] value must be a string or a number", ErrMalformedOptions, key, i)
		}
		group.Options = append(group.Options, SubOption{
			Value:    decodeValue(value),
			Label:    item.Get("label").String(),
			Disabled: truthy(item.Get("disabled")),
		})
	}
	return group, nil
}

func decodeValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// truthy mirrors Boolean(x) for a decoded JSON value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return false
	}
}

func propertyOrder(groups Options) Options {
	var indexed, named Options
	for _, g := range groups {
		if _, ok := arrayIndex(g.Key); ok {
			indexed = append(indexed, g)
		} else {
			named = append(named, g)
		}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, _ := arrayIndex(indexed[i].Key)
		b, _ := arrayIndex(indexed[j].Key)
		return a < b
	})
	return append(append(Options{}, indexed...), named...)
}

// arrayIndex reports whether key is the canonical form of an array index.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}
