package report

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed report.schema.json
var schemaJSON []byte

// Schema returns the JSON schema of Document.
func Schema() []byte {
	return schemaJSON
}

// Violation is one schema error in a document.
type Violation struct {
	Field       string
	Description string
}

// String formats the violation as "field: description".
func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// Validate checks a JSON document against the embedded schema. An error is
// returned only when the input cannot be read as JSON; schema failures come
// back as violations.
func Validate(data []byte) ([]Violation, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, Violation{Field: verr.Field(), Description: verr.Description()})
	}

	return violations, nil
}
