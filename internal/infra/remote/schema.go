package remote

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Shape names the payload layout served by a provider.
type Shape string

const (
	// ShapeSubjects is a list of subjects, each with its questions.
	ShapeSubjects Shape = "subjects"
	// ShapeQuestions is a flat question list served as a single subject.
	ShapeQuestions Shape = "questions"
)

var subjectsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "name", "questions"},
		"properties": map[string]any{
			"id":   map[string]any{"type": "string", "minLength": 1},
			"name": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"prompt", "options"},
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"prompt": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type":     "object",
								"required": []any{"text"},
								"properties": map[string]any{
									"id":      map[string]any{"type": "string"},
									"text":    map[string]any{"type": "string"},
									"correct": map[string]any{"type": "boolean"},
								},
							},
						},
					},
				},
			},
		},
	},
}

var questionsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"question", "answers", "correctAnswerIndex"},
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"answers": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string"},
			},
			"correctAnswerIndex": map[string]any{"type": "integer"},
		},
	},
}

var compiled sync.Map // map[Shape]*jsonschema.Schema

// validate checks raw JSON against the schema for shape.
func validate(shape Shape, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := schemaFor(shape)
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func schemaFor(shape Shape) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(shape); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def map[string]any
	switch shape {
	case ShapeSubjects:
		def = subjectsSchema
	case ShapeQuestions:
		def = questionsSchema
	default:
		return nil, fmt.Errorf("unknown payload shape %q", shape)
	}

	// The compiler wants plain decoded JSON, so round-trip the definition.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", shape)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	compiled.Store(shape, sch)
	return sch, nil
}
