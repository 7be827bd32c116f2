package report

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

type schemaNode struct {
	Required    []string               `json:"required"`
	Properties  map[string]*schemaNode `json:"properties"`
	Definitions map[string]*schemaNode `json:"definitions"`
}

// jsonFields lists the JSON names of a struct's exported fields.
func jsonFields(t reflect.Type) []string {
	var names []string

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			name = strings.Split(tag, ",")[0]
		}

		if name == "-" {
			continue
		}

		names = append(names, name)
	}

	return names
}

func loadSchema(t *testing.T) *schemaNode {
	t.Helper()

	var root schemaNode
	require.NoError(t, json.Unmarshal(Schema(), &root))

	return &root
}

func TestSchemaCoversDocument(t *testing.T) {
	t.Parallel()

	root := loadSchema(t)

	tests := []struct {
		name string
		typ  reflect.Type
		node *schemaNode
	}{
		{name: "document", typ: reflect.TypeFor[Document](), node: root},
		{name: "totals", typ: reflect.TypeFor[Totals](), node: root.Properties["totals"]},
		{name: "selection", typ: reflect.TypeFor[timeline.Selection](), node: root.Properties["selection"]},
		{name: "summary", typ: reflect.TypeFor[timeline.EntitySummary](), node: root.Definitions["summary"]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.NotNil(t, tt.node)

			fields := jsonFields(tt.typ)
			assert.ElementsMatch(t, fields, tt.node.Required)

			for _, f := range fields {
				assert.Contains(t, tt.node.Properties, f)
			}
		})
	}
}
