package youtrack

import (
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// FieldValue returns the human-readable value of a named custom field.
// Structured values prefer the "presentation" sub-value, then "name";
// scalar values are used directly. Missing fields or empty values yield nil.
func (i *Issue) FieldValue(name string) *string {
	value, ok := fieldRaw(i.CustomFields, name)
	if !ok {
		return nil
	}
	if value.IsObject() {
		if p := value.Get("presentation"); p.Exists() {
			s := p.String()
			return &s
		}
		if n := value.Get("name"); n.Exists() {
			s := n.String()
			return &s
		}
		return nil
	}
	s := value.String()
	return &s
}

// DateFieldValue reads a named custom field holding an epoch-millisecond
// timestamp. Non-numeric or missing values yield nil.
func (i *Issue) DateFieldValue(name string) *time.Time {
	value, ok := fieldRaw(i.CustomFields, name)
	if !ok {
		return nil
	}
	var millis int64
	switch value.Type {
	case gjson.Number:
		millis = value.Int()
	case gjson.String:
		parsed, err := strconv.ParseInt(value.Str, 10, 64)
		if err != nil {
			return nil
		}
		millis = parsed
	default:
		return nil
	}
	return Millis(&millis)
}

func fieldRaw(fields []CustomField, name string) (gjson.Result, bool) {
	for _, f := range fields {
		if f.Name != name {
			continue
		}
		if len(f.Value) == 0 {
			return gjson.Result{}, false
		}
		value := gjson.ParseBytes(f.Value)
		if value.Type == gjson.Null {
			return gjson.Result{}, false
		}
		return value, true
	}
	return gjson.Result{}, false
}

// Millis converts an optional epoch-millisecond stamp to a UTC instant.
func Millis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
