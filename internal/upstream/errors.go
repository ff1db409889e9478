package upstream

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is a non-2xx backend response. Message is extracted from the body
// by trying message, then error, then detail; Fields carries the backend's
// field-level validation map when one is present so it can be shown verbatim
// instead of collapsed into a generic message.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]any
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, "; %s: %v", k, e.Fields[k])
	}
	return b.String()
}

const genericUpstreamError = "placement backend request failed"

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: genericUpstreamError}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}

	for _, key := range []string{"message", "error", "detail"} {
		if msg, ok := envelope[key].(string); ok && msg != "" {
			apiErr.Message = msg
			break
		}
	}
	if fields, ok := envelope["errors"].(map[string]any); ok && len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}
