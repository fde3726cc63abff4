// Package schema layers JSON Schema validation on top of the strict-JSON
// parse already required before a tool call reaches ARGS_READY. A schema
// failure here does not change the tool call's lifecycle state — the
// arguments are still valid JSON — it only tells a schema-aware sink
// whether they also satisfy the tool's declared argument shape.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator compiles and caches one JSON Schema per tool name.
type Validator struct {
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewValidator constructs an empty Validator.
func NewValidator() *Validator {
	return &Validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles schemaJSON and associates it with toolName. Calling
// Register again for the same tool name replaces its schema.
func (v *Validator) Register(toolName string, schemaJSON []byte) error {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return fmt.Errorf("schema: unmarshal schema for %q: %w", toolName, err)
	}
	resource := toolName + ".json"
	// A fresh compiler per registration lets a tool's resource name be
	// added again when its schema is replaced.
	v.compiler = jsonschema.NewCompiler()
	if err := v.compiler.AddResource(resource, doc); err != nil {
		return fmt.Errorf("schema: add resource for %q: %w", toolName, err)
	}
	compiled, err := v.compiler.Compile(resource)
	if err != nil {
		return fmt.Errorf("schema: compile schema for %q: %w", toolName, err)
	}
	v.schemas[toolName] = compiled
	return nil
}

// Validate checks parsedArgs (the ToolCall event's ParsedArgs, already a
// strict-JSON-decoded value) against toolName's registered schema. It
// returns nil if no schema was registered for toolName — validation is
// opt-in per tool.
func (v *Validator) Validate(toolName string, parsedArgs any) error {
	s, ok := v.schemas[toolName]
	if !ok {
		return nil
	}
	return s.Validate(parsedArgs)
}
