package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func wordsSchema() *Schema {
	return &Schema{
		Name: "test-words",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"theme": map[string]any{"type": "string"},
				"words": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string", "pattern": "^[a-z]+$"},
				},
				"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"required": []any{"words"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"theme":"farm","words":["cow","hen"],"level":"easy"}`, false},
		{"optional fields omitted", `{"words":["cow"]}`, false},
		{"missing required", `{"theme":"farm"}`, true},
		{"wrong item type", `{"words":[1,2]}`, true},
		{"pattern mismatch", `{"words":["Cow"]}`, true},
		{"empty array", `{"words":[]}`, true},
		{"bad enum", `{"words":["cow"],"level":"medium"}`, true},
		{"malformed json", `{not json}`, true},
		{"empty response", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(wordsSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("Content = %q, want %q", invErr.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	schema := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 42},
	}
	err := validateResponse(schema, json.RawMessage(`{}`))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse for uncompilable schema, got: %v", err)
	}
}
