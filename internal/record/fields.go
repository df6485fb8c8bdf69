package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Fields is a partial record keyed by column name.
type Fields map[string]interface{}

// Clone returns a shallow copy of f.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	dup := make(Fields, len(f))
	for k, v := range f {
		dup[k] = v
	}
	return dup
}

// Subset returns only the named fields present in f.
func (f Fields) Subset(names []string) Fields {
	out := make(Fields, len(names))
	for _, name := range names {
		if v, ok := f[name]; ok {
			out[name] = v
		}
	}
	return out
}

// String renders a field value for display; nil and missing become "".
func (f Fields) String(name string) string {
	v, ok := f[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return formatNumber(val)
	case int:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprint(val)
	}
}

// Names returns the field names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge writes every entry of patch over f and returns f.
func (f Fields) Merge(patch Fields) Fields {
	if f == nil {
		f = Fields{}
	}
	for k, v := range patch {
		f[k] = v
	}
	return f
}

// ValueEqual compares two field values by their JSON representation so that
// 3 and 3.0, or a time and its RFC 3339 string, compare equal.
func ValueEqual(a, b interface{}) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return fmt.Sprint(a) == fmt.Sprint(b)
	}
	if bytes.Equal(ab, bb) {
		return true
	}
	var av, bv interface{}
	if json.Unmarshal(ab, &av) != nil || json.Unmarshal(bb, &bv) != nil {
		return false
	}
	an, aok := av.(float64)
	bn, bok := bv.(float64)
	return aok && bok && an == bn
}

// ChangedFields lists the submitted fields whose values differ from current,
// in sorted order. An empty result means the submission is a no-op.
func ChangedFields(current, submitted Fields) []string {
	var changed []string
	for _, name := range submitted.Names() {
		if !ValueEqual(current[name], submitted[name]) {
			changed = append(changed, name)
		}
	}
	return changed
}

// Encode converts a record into Fields through its JSON form.
func Encode(r interface{}) (Fields, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return fields, nil
}

// Decode builds a record of type R from Fields through its JSON form.
func Decode[R any](fields Fields) (R, error) {
	var out R
	data, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
