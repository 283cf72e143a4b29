package hubstaff

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	workByDaySchema     = mustSchema("schemas/work_by_day.json")
	organizationsSchema = mustSchema("schemas/organizations.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("hubstaff: missing embedded schema %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("hubstaff: invalid embedded schema %s: %v", name, err))
	}
	return schema
}

// decodeValidated checks body against schema and then unmarshals it into v.
func decodeValidated(endpoint string, schema *gojsonschema.Schema, body []byte, v any) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &DecodeError{Endpoint: endpoint, Problems: problems}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
