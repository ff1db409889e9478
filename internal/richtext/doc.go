// Package richtext models the structured job-description documents produced
// by the dashboard's editor and decides when one is worth sending upstream.
package richtext

import "encoding/json"

// Doc is the root of an editor document: {"type":"doc","content":[...]}.
type Doc struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node is one element of a document tree. Marks and attrs are carried opaquely
// so round-tripping a document never loses editor formatting.
type Node struct {
	Type    string          `json:"type"`
	Attrs   map[string]any  `json:"attrs,omitempty"`
	Marks   json.RawMessage `json:"marks,omitempty"`
	Text    string          `json:"text,omitempty"`
	Content []Node          `json:"content,omitempty"`
}

// IsEmpty reports whether d is the editor's blank placeholder: exactly one
// child node, that child a paragraph, and the paragraph without content.
// Any other tree, including multiple children or a paragraph with text,
// is non-empty. A nil document is empty.
func IsEmpty(d *Doc) bool {
	if d == nil {
		return true
	}
	if len(d.Content) != 1 {
		return false
	}
	child := d.Content[0]
	return child.Type == "paragraph" && len(child.Content) == 0
}

// ForSubmission is the single gate a description passes through before
// transmission: blank placeholder documents become nil so the backend never
// stores a degenerate one, anything else is passed through unchanged.
func ForSubmission(d *Doc) *Doc {
	if IsEmpty(d) {
		return nil
	}
	return d
}
