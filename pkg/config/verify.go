package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var embeddedSchema []byte

// VerifyAgainstEmbeddedSchema checks raw yaml config for keys unknown to the embedded schema
func VerifyAgainstEmbeddedSchema(data []byte) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal(embeddedSchema, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	var unknown []string
	walkKeys(schema.Definitions, resolve(&schema, schema.Definitions), doc, "", &unknown)
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// walkKeys collects dotted paths of doc keys missing from the schema's properties
func walkKeys(defs jsonschema.Definitions, s *jsonschema.Schema, doc map[string]any, prefix string, unknown *[]string) {
	if s == nil || s.Properties == nil {
		return
	}
	for key, val := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		prop, ok := s.Properties.Get(key)
		if !ok {
			*unknown = append(*unknown, path)
			continue
		}
		if nested, ok := val.(map[string]any); ok {
			walkKeys(defs, resolve(prop, defs), nested, path, unknown)
		}
	}
}

// resolve follows a local "#/$defs/Name" reference
func resolve(s *jsonschema.Schema, defs jsonschema.Definitions) *jsonschema.Schema {
	for s != nil && s.Ref != "" {
		name, ok := strings.CutPrefix(s.Ref, "#/$defs/")
		if !ok {
			return nil
		}
		s = defs[name]
	}
	return s
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
