package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://flashiz/deck.json"

// deckSchema describes the JSON deck layout. Per-card content rules (blank
// prompt or answer) are left to NewPool so that one bad card skips instead
// of rejecting the whole file.
var deckSchema = map[string]any{
	"type":     "object",
	"required": []any{"cards"},
	"properties": map[string]any{
		"deck": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"mode":        map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		"cards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"prompt", "answer"},
				"properties": map[string]any{
					"id":           map[string]any{"type": "string"},
					"prompt":       map[string]any{"type": "string"},
					"answer":       map[string]any{"type": "string"},
					"alternates":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"reading":      map[string]any{"type": "string"},
					"translation":  map[string]any{"type": "string"},
					"illustration": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, deckSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateJSON checks raw JSON against the deck schema.
func validateJSON(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse deck json: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile deck schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("deck schema validation failed: %w", err)
	}
	return nil
}
