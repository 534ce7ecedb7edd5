package model

import "encoding/json"

// Annotated wraps a property value with provenance metadata. Stored property
// values are either plain values or Annotated wrappers; every consumer that
// compares or displays a value must go through Unwrap first so the two shapes
// behave identically.
type Annotated struct {
	Value  any            `json:"value" bson:"value"`
	Origin string         `json:"origin,omitempty" bson:"origin,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// annotatedMarker distinguishes serialized wrappers from plain JSON objects
// that happen to contain a "value" key.
const annotatedMarker = "annotated"

// MarshalJSON emits the wrapper with an explicit marker so it survives a
// decode into map[string]any.
func (a Annotated) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		annotatedMarker: true,
		"value":         a.Value,
	}
	if a.Origin != "" {
		out["origin"] = a.Origin
	}
	if len(a.Meta) > 0 {
		out["meta"] = a.Meta
	}
	return json.Marshal(out)
}

// Unwrap returns the inner content of an annotated property value, or the
// value itself when it is not wrapped. It accepts both the typed wrapper and
// its JSON-decoded map form.
func Unwrap(v any) any {
	switch t := v.(type) {
	case Annotated:
		return t.Value
	case *Annotated:
		if t == nil {
			return nil
		}
		return t.Value
	case map[string]any:
		if inner, ok := unwrapMap(t); ok {
			return inner
		}
	}
	return v
}

func unwrapMap(m map[string]any) (any, bool) {
	marked, ok := m[annotatedMarker].(bool)
	if !ok || !marked {
		return nil, false
	}
	inner, ok := m["value"]
	return inner, ok
}
