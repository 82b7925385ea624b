// Package apimsg extracts a human-readable message from upstream error
// payloads (MercadoPago, Strapi). Shapes vary per endpoint, so an ordered
// list of accessors is tried and the first non-empty result wins.
package apimsg

import "encoding/json"

var accessors = []func(m map[string]any) string{
	func(m map[string]any) string { return str(m["error"]) },                   // flat error field
	func(m map[string]any) string { return str(m["message"]) },                 // gateway message
	func(m map[string]any) string { return str(dig(m, "cause", "description")) },
	func(m map[string]any) string { return str(dig(m, "cause", "message")) },
	func(m map[string]any) string { return str(digMap(m, "error", "message")) }, // strapi error object
}

// Pick extracts a message from a raw JSON payload, falling back to the
// serialized payload itself, then to fallback.
func Pick(raw []byte, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		if s := string(raw); s != "" {
			return s
		}
		return fallback
	}
	return PickMap(m, fallback)
}

func PickMap(m map[string]any, fallback string) string {
	if m == nil {
		return fallback
	}
	for _, fn := range accessors {
		if s := fn(m); s != "" {
			return s
		}
	}
	if b, err := json.Marshal(m); err == nil && len(b) > 2 {
		return string(b)
	}
	return fallback
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// dig reads key from the first element of the named array field.
func dig(m map[string]any, field, key string) any {
	arr, _ := m[field].([]any)
	if len(arr) == 0 {
		return nil
	}
	first, _ := arr[0].(map[string]any)
	if first == nil {
		return nil
	}
	return first[key]
}

func digMap(m map[string]any, field, key string) any {
	inner, _ := m[field].(map[string]any)
	if inner == nil {
		return nil
	}
	return inner[key]
}
