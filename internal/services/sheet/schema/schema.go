// Package schema validates incoming character records against the
// generator's payload contract before they are decoded. Validation covers
// structural shape and the documented ranges (generation 4-13, trackers
// 0-10); trait values stay unconstrained because the renderer coerces
// them leniently.
package schema

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonschema"
)

//go:embed character_schema.json
var characterSchemaJSON []byte

// Violation describes one schema failure.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validator checks raw character documents against the embedded schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded character schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.WithDecoderJSON(sonic.Unmarshal)
	compiler.WithEncoderJSON(sonic.Marshal)

	compiled, err := compiler.Compile(characterSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile character schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks one decoded document. Violations come back sorted by
// field so the first one is stable; a conforming document returns none.
func (v *Validator) Validate(doc map[string]any) []Violation {
	result := v.schema.ValidateMap(doc)
	if result.IsValid() {
		return nil
	}

	violations := make([]Violation, 0, len(result.Errors))
	for field, evalErr := range result.Errors {
		violations = append(violations, Violation{Field: field, Message: evalErr.Message})
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}
