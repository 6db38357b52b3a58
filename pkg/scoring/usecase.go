package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/metalake/readiness/pkg/contracts"
)

// useCaseSchema validates externally authored use-case specs before they
// reach the methodology factory.
const useCaseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["capability_id"],
  "properties": {
    "capability_id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "dimensions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"}
        }
      }
    },
    "measures": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "signal": {
            "type": "string",
            "enum": ["ownership", "semantics", "lineage", "sensitivity", "access", "usage", "freshness", ""]
          }
        }
      }
    }
  }
}`

var compiledUseCaseSchema = mustCompileUseCaseSchema()

func mustCompileUseCaseSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const url = "https://readiness.schemas.local/usecase.schema.json"
	if err := c.AddResource(url, strings.NewReader(useCaseSchema)); err != nil {
		panic(fmt.Sprintf("scoring: load use-case schema: %v", err))
	}
	schema, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("scoring: compile use-case schema: %v", err))
	}
	return schema
}

// ParseUseCaseSpec validates raw use-case JSON against the schema and
// decodes it. Validation happens first so the caller gets schema errors,
// not decode errors, for malformed authored specs.
func ParseUseCaseSpec(data []byte) (contracts.UseCaseSpec, error) {
	var spec contracts.UseCaseSpec

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return spec, fmt.Errorf("parse use-case spec: %w", err)
	}
	if err := compiledUseCaseSchema.Validate(doc); err != nil {
		return spec, fmt.Errorf("use-case spec validation failed: %w", err)
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("decode use-case spec: %w", err)
	}
	return spec, nil
}
