package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/spellz/internal/drill"
)

// MaxWrongAttemptsLimit bounds the budget accepted from storage.
const MaxWrongAttemptsLimit = 100

// stateSchema describes an encoded drill.State.
var stateSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"version": map[string]any{"const": Version},
		"words": map[string]any{
			"type":        "array",
			"minItems":    1,
			"uniqueItems": true,
			"items": map[string]any{
				"type":      "string",
				"minLength": 2,
				"pattern":   `^\p{L}+$`,
			},
		},
		"position": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"maxWrongAttempts": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": MaxWrongAttemptsLimit,
		},
		"remaining": map[string]any{
			"type":    "string",
			"pattern": `^\p{L}*$`,
		},
		"wrongAttempts": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": MaxWrongAttemptsLimit,
			},
		},
		"status": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{
					"enum": kindEnum(),
				},
				"letterIndex": map[string]any{
					"type":    "integer",
					"minimum": 0,
				},
			},
			"required":             []any{"kind"},
			"additionalProperties": false,
			"if": map[string]any{
				"properties": map[string]any{
					"kind": map[string]any{
						"enum": []any{string(drill.KindLetterMatched), string(drill.KindLetterError)},
					},
				},
			},
			"then": map[string]any{"required": []any{"letterIndex"}},
			"else": map[string]any{"not": map[string]any{"required": []any{"letterIndex"}}},
		},
		"seed": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": uint64(math.MaxUint64),
		},
		"rev": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
	},
	"required":             []any{"version", "words", "position", "maxWrongAttempts", "remaining", "wrongAttempts", "status", "seed", "rev"},
	"additionalProperties": false,
}

// inputSchema describes an encoded drill.Input.
var inputSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"letter": map[string]any{
			"type":      "string",
			"minLength": 1,
			"maxLength": 1,
			"pattern":   `^\p{L}$`,
		},
		"hint": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
	},
	"required":             []any{"letter"},
	"additionalProperties": false,
}

func kindEnum() []any {
	out := make([]any, len(drill.Kinds))
	for i, k := range drill.Kinds {
		out[i] = string(k)
	}
	return out
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var schemas = map[string]map[string]any{
	"drill-state": stateSchema,
	"drill-input": inputSchema,
}

// validate checks raw against the named schema.
func validate(name string, raw []byte) error {
	compiled, err := compiledSchema(name)
	if err != nil {
		return err
	}
	// UnmarshalJSON keeps numbers as json.Number so 64-bit seeds are
	// range-checked without float rounding.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}
	def, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The compiler wants a parsed JSON document, not Go literals.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	schemaCache.Store(name, compiled)
	return compiled, nil
}
