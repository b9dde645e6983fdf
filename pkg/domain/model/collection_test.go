package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kforge/pkg/domain/model"
)

func TestValidateCollection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "Valid minimal collection",
			input: `{"info":{"name":"X"},"item":[]}`,
			want:  true,
		},
		{
			name:  "Valid collection with requests",
			input: `{"info":{"name":"API"},"item":[{"name":"get","request":{"method":"GET"}}]}`,
			want:  true,
		},
		{
			name:  "Empty object",
			input: `{}`,
			want:  false,
		},
		{
			name:  "Missing item",
			input: `{"info":{"name":"X"}}`,
			want:  false,
		},
		{
			name:  "Missing info",
			input: `{"item":[]}`,
			want:  false,
		},
		{
			name:  "Item is not a list",
			input: `{"info":{"name":"X"},"item":{"name":"y"}}`,
			want:  false,
		},
		{
			name:  "Item is a string",
			input: `{"info":{"name":"X"},"item":"nope"}`,
			want:  false,
		},
		{
			name:  "Top-level array",
			input: `[{"info":{},"item":[]}]`,
			want:  false,
		},
		{
			name:  "Top-level string",
			input: `"collection"`,
			want:  false,
		},
		{
			name:  "Null",
			input: `null`,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ValidateCollection(json.RawMessage(tt.input))
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestSummarize(t *testing.T) {
	raw := `{
		"info": {"name": "Pet Store", "description": "pets"},
		"item": [
			{"name": "list pets", "request": {"method": "GET", "url": "https://example.com/pets"}},
			{"name": "docs folder"},
			{"name": "create pet", "description": "adds a pet", "request": {
				"method": "POST",
				"header": [{"key": "Content-Type", "value": "application/json"}],
				"body": {"mode": "raw", "raw": "{}"}
			}},
			{"name": "no method", "request": {}}
		]
	}`

	var col model.Collection
	gt.NoError(t, json.Unmarshal([]byte(raw), &col))

	summary := model.Summarize(&col)

	gt.V(t, summary.Name).Equal("Pet Store")
	gt.V(t, summary.Description).Equal("pets")

	// Folder item is skipped, order of the rest is preserved
	gt.V(t, len(summary.Requests)).Equal(3)
	gt.V(t, summary.Requests[0].Name).Equal("list pets")
	gt.V(t, summary.Requests[0].Method).Equal("GET")
	gt.V(t, summary.Requests[1].Name).Equal("create pet")
	gt.V(t, summary.Requests[1].Description).Equal("adds a pet")
	gt.V(t, len(summary.Requests[1].Headers)).Equal(1)
	gt.V(t, summary.Requests[1].Headers[0].Key).Equal("Content-Type")

	// Missing method defaults to GET
	gt.V(t, summary.Requests[2].Method).Equal("GET")
}

func TestCollectionName(t *testing.T) {
	col := &model.Collection{}
	gt.V(t, col.Name()).Equal("postman-collection")

	col.Info.Name = "My API"
	gt.V(t, col.Name()).Equal("My API")
}
