package scanning

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidJSON is returned when the model answer is not a JSON document
	ErrInvalidJSON = errors.New("model answer is not valid JSON")
	// ErrSchemaMismatch is returned when the JSON does not have the expected shape
	ErrSchemaMismatch = errors.New("model answer does not match schema")
)

const fence = "```"

// UnwrapFence strips a leading markdown code fence (with or without a language
// tag) and everything from the next fence on. Unfenced text is only trimmed.
func UnwrapFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	body := text[len(fence):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}

	// Drop a language tag such as "json" right after the opening fence
	tagEnd := 0
	for tagEnd < len(body) && isTagByte(body[tagEnd]) {
		tagEnd++
	}
	body = body[tagEnd:]

	return strings.TrimSpace(body)
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' ||
		b == '_' || b == '-' || b == '+'
}

// Schema describes the flat object a document prompt asks the model for
type Schema struct {
	name   string
	fields []string
	schema *jsonschema.Schema
}

// ObjectSchema compiles a JSON schema for a flat object whose known fields are scalars
func ObjectSchema(name string, fields []string) (*Schema, error) {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": []string{"string", "number", "boolean", "null"}}
	}
	schemaMap := map[string]any{
		"type":       "object",
		"properties": props,
	}

	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{
		name:   name,
		fields: append([]string(nil), fields...),
		schema: compiled,
	}, nil
}

// Decode unwraps and parses a model answer. Every known field is present in the
// result; absent and null values become "".
func (s *Schema) Decode(text string) (map[string]string, error) {
	payload := UnwrapFence(text)

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}

	if err := s.schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, s.name, err)
	}

	obj := v.(map[string]any)
	out := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		out[f] = scalarString(obj[f])
	}
	return out, nil
}

// scalarString renders a decoded JSON scalar as a string
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
