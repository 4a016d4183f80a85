package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Bag holds the input fields an entity's descriptor did not declare, kept as
// compacted raw JSON.
type Bag map[string]json.RawMessage

// Len is safe on a nil Bag.
func (b Bag) Len() int { return len(b) }

// JSON serializes the bag with sorted keys. An empty bag serializes to nil,
// the only representation of "no extension data".
func (b Bag) JSON() (json.RawMessage, error) {
	if len(b) == 0 {
		return nil, nil
	}
	out, err := json.Marshal(map[string]json.RawMessage(b))
	if err != nil {
		return nil, fmt.Errorf("marshal extension data: %w", err)
	}
	return out, nil
}

// BagFromJSON parses a stored payload. Absent, null and {} all yield an empty bag.
func BagFromJSON(raw []byte) (Bag, error) {
	b := Bag{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return b, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("parse extension data: %w", err)
	}
	for k, v := range m {
		b[k] = compact(v)
	}
	return b, nil
}

// Equal compares two bags structurally: key order and whitespace inside the
// values do not matter.
func (b Bag) Equal(o Bag) bool {
	if len(b) != len(o) {
		return false
	}
	for k, v := range b {
		w, ok := o[k]
		if !ok {
			return false
		}
		var x, y any
		if json.Unmarshal(v, &x) != nil || json.Unmarshal(w, &y) != nil {
			return false
		}
		if !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return json.RawMessage(buf.Bytes())
}

// Marshal encodes declared field values together with the bag. Declared
// fields win when a bag key collides with one.
func Marshal(fields map[string]any, extra Bag) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(fields)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		out[k] = raw
	}
	return json.Marshal(out)
}
