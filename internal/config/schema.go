package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigSchema is the JSON schema every config file must satisfy before it
// is merged over the defaults.
const ConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "session": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "command": {
          "type": "array",
          "items": {"type": "string"},
          "minItems": 1
        },
        "dir": {"type": "string"},
        "output_log": {"type": "string"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "error"]},
        "file": {"type": "string"},
        "console": {"type": "boolean"},
        "pretty": {"type": "boolean"}
      }
    },
    "watch": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "schedule": {"type": "string"}
      }
    },
    "data_dir": {"type": "string"},
    "launch_log": {"type": "string"},
    "journal_db": {"type": "string"},
    "lock_file": {"type": "string"}
  }
}`

// ValidateSchema validates the raw config file at path against ConfigSchema.
func ValidateSchema(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return ValidateSchemaBytes(data)
}

// ValidateSchemaBytes validates raw config JSON against ConfigSchema.
func ValidateSchemaBytes(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(ConfigSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("config schema validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
