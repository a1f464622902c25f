package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resultSchemaURL = "writerpro://analysis-result.json"

const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overallScore", "scores", "feedback"],
  "properties": {
    "overallScore": {"type": "number"},
    "scores": {"type": "object"},
    "feedback": {
      "type": "object",
      "required": ["grammar", "vocabulary", "coherence", "taskResponse"],
      "properties": {
        "grammar": {"$ref": "#/definitions/dimension"},
        "vocabulary": {"$ref": "#/definitions/dimension"},
        "coherence": {"$ref": "#/definitions/dimension"},
        "taskResponse": {"$ref": "#/definitions/dimension"}
      }
    },
    "recommendations": {"type": "array", "items": {"type": "string"}}
  },
  "definitions": {
    "dimension": {
      "type": "object",
      "required": ["score"],
      "properties": {"score": {"type": "number"}}
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func analysisSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(resultSchemaURL, strings.NewReader(resultSchema)); err != nil {
			compileErr = fmt.Errorf("add analysis schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(resultSchemaURL)
	})
	return compiledSchema, compileErr
}

// validatePayload checks a decoded provider payload against the result schema.
func validatePayload(payload string) error {
	schema, err := analysisSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	return schema.Validate(doc)
}
