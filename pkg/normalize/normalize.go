// Package normalize extracts usable payloads from inconsistently wrapped
// backend responses. Different endpoints return a bare array, {results: [...]},
// {data: [...]}, or {data: {results: [...]}}; every fetch goes through this
// package so call sites never re-check the shape.
package normalize

import "encoding/json"

// List returns the list contained in v, trying the known wrapper shapes in
// order: bare array, .results, .data, .data.results. Anything else yields an
// empty slice so list consumers can range/index without a nil check.
func List(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return []any{}
	}

	if arr, ok := obj["results"].([]any); ok {
		return arr
	}
	if arr, ok := obj["data"].([]any); ok {
		return arr
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if arr, ok := data["results"].([]any); ok {
			return arr
		}
	}
	return []any{}
}

// Object returns the single record contained in v: .data when it is an
// object, else v itself when object-shaped, else an empty map.
func Object(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// ListFromBody decodes raw JSON and normalizes it to a list. Invalid JSON
// yields an empty slice.
func ListFromBody(body []byte) []any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return []any{}
	}
	return List(v)
}

// ObjectFromBody decodes raw JSON and normalizes it to a single record.
// Invalid JSON yields an empty map.
func ObjectFromBody(body []byte) map[string]any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{}
	}
	return Object(v)
}
