// Package llm describes the structured-output generation capability the
// advisory flows depend on. Adapters for concrete model hosts live elsewhere.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoOutput is returned when the model produced no structured result.
var ErrNoOutput = errors.New("llm: no structured output")

// Schema is a minimal JSON-schema description of the expected output.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	MaxItems    *int64             `json:"maxItems,omitempty"`
}

type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Prompt is one rendered instruction plus the schema its answer must follow.
type Prompt struct {
	Name   string
	Text   string
	Schema *Schema
}

// Generator produces a JSON document conforming to the prompt's schema.
// ErrNoOutput (or an empty payload) signals "no result"; any other error is
// an infrastructure failure.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (json.RawMessage, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt Prompt) (json.RawMessage, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt Prompt) (json.RawMessage, error) {
	return f(ctx, prompt)
}

// Unavailable is used when no model host is configured; every call reports
// an infrastructure failure.
type Unavailable struct{}

var ErrUnavailable = errors.New("llm: generator not configured")

func (Unavailable) Generate(context.Context, Prompt) (json.RawMessage, error) {
	return nil, ErrUnavailable
}

// Int64 returns a pointer to v, for Schema.MaxItems.
func Int64(v int64) *int64 { return &v }
