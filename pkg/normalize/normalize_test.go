package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_KnownShapes(t *testing.T) {
	t.Parallel()

	want := []any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}}

	tests := []struct {
		name string
		in   any
	}{
		{"bare array", want},
		{"results wrapper", map[string]any{"results": want}},
		{"data wrapper", map[string]any{"data": want}},
		{"data.results wrapper", map[string]any{"success": true, "data": map[string]any{"results": want, "total": float64(2)}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, List(tt.in))
		})
	}
}

func TestList_UnknownShapesYieldEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"string", "oops"},
		{"number", float64(42)},
		{"object without lists", map[string]any{"message": "ok"}},
		{"data is scalar", map[string]any{"data": "nope"}},
		{"data.results is scalar", map[string]any{"data": map[string]any{"results": "nope"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := List(tt.in)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestList_OrderingPrefersResultsOverData(t *testing.T) {
	t.Parallel()

	fromResults := []any{"r"}
	fromData := []any{"d"}
	got := List(map[string]any{"results": fromResults, "data": fromData})
	assert.Equal(t, fromResults, got)
}

func TestObject(t *testing.T) {
	t.Parallel()

	record := map[string]any{"id": float64(7), "name": "Acme"}

	assert.Equal(t, record, Object(map[string]any{"success": true, "data": record}))
	assert.Equal(t, record, Object(record))
	assert.Empty(t, Object([]any{"not", "an", "object"}))
	assert.Empty(t, Object(nil))
}

func TestListFromBody(t *testing.T) {
	t.Parallel()

	got := ListFromBody([]byte(`{"data":{"results":[{"id":3},{"id":7}]}}`))
	assert.Len(t, got, 2)

	got = ListFromBody([]byte(`{invalid json`))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestObjectFromBody(t *testing.T) {
	t.Parallel()

	got := ObjectFromBody([]byte(`{"success":true,"data":{"id":9}}`))
	assert.Equal(t, float64(9), got["id"])

	assert.Empty(t, ObjectFromBody([]byte(`not json`)))
}
