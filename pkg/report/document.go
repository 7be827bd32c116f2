// Package report writes timeline results as CSV summaries, terminal tables and
// JSON/YAML documents, and validates documents against the embedded schema.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

// SchemaVersion is stamped into every document.
const SchemaVersion = 1

// Document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrNilResult is returned when a document is built from a nil result.
	ErrNilResult = errors.New("timeline result is nil")
	// ErrUnsupportedFormat is returned for document formats other than json and yaml.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Totals are batch-wide counts.
type Totals struct {
	Events     int     `json:"events" yaml:"events"`
	Intervals  int     `json:"intervals" yaml:"intervals"`
	Ticks      int     `json:"ticks" yaml:"ticks"`
	RunMs      float64 `json:"run_ms" yaml:"run_ms"`
	Entities   int     `json:"entities" yaml:"entities"`
	DroppedAll int     `json:"dropped" yaml:"dropped"`
}

// Document is the machine-readable report of one labeled batch.
type Document struct {
	SchemaVersion      int                      `json:"schema_version" yaml:"schema_version"`
	Label              string                   `json:"label" yaml:"label"`
	Source             string                   `json:"source" yaml:"source"`
	IdentityColumn     string                   `json:"identity_column" yaml:"identity_column"`
	TickIdentityColumn string                   `json:"tick_identity_column" yaml:"tick_identity_column"`
	Totals             Totals                   `json:"totals" yaml:"totals"`
	Dropped            map[string]int           `json:"dropped" yaml:"dropped"`
	Selection          timeline.Selection       `json:"selection" yaml:"selection"`
	Selected           []timeline.EntitySummary `json:"selected" yaml:"selected"`
	Summaries          []timeline.EntitySummary `json:"summaries" yaml:"summaries"`
}

// NewDocument builds the document of one batch. Collections are never nil so
// that both encodings always carry lists and maps.
func NewDocument(label, source string, res *timeline.Result) (*Document, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	dropped := make(map[string]int)

	if res.Diagnostics != nil {
		for reason, n := range res.Diagnostics.Counts() {
			dropped[string(reason)] = n
		}
	}

	sel := res.Selection
	sel.IDs = slices.Clone(sel.IDs)

	if sel.IDs == nil {
		sel.IDs = []int64{}
	}

	selected := res.SelectedSummaries()
	if selected == nil {
		selected = []timeline.EntitySummary{}
	}

	summaries := slices.Clone(res.Summaries)
	if summaries == nil {
		summaries = []timeline.EntitySummary{}
	}

	var droppedAll int
	if res.Diagnostics != nil {
		droppedAll = res.Diagnostics.Total()
	}

	return &Document{
		SchemaVersion:      SchemaVersion,
		Label:              label,
		Source:             source,
		IdentityColumn:     res.Identity.Source.String(),
		TickIdentityColumn: res.TickIdentity.String(),
		Totals: Totals{
			Events:     res.Events,
			Intervals:  len(res.Intervals),
			Ticks:      len(res.Ticks),
			RunMs:      res.TotalRunMs(),
			Entities:   len(summaries),
			DroppedAll: droppedAll,
		},
		Dropped:   dropped,
		Selection: sel,
		Selected:  selected,
		Summaries: summaries,
	}, nil
}

// RenderJSON serializes the document as indented JSON.
func RenderJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document to JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// RenderYAML serializes the document as YAML.
func RenderYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document to YAML: %w", err)
	}

	return data, nil
}

// DocumentFileName is the per-label document name for a format.
func DocumentFileName(label, format string) string {
	return fmt.Sprintf("timeline_%s.%s", label, format)
}

// WriteDocument renders the document in format into dir and returns its path.
func WriteDocument(dir string, doc *Document, format string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = RenderJSON(doc)
	case FormatYAML:
		data, err = RenderYAML(doc)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, DocumentFileName(doc.Label, format))

	err = os.WriteFile(path, data, 0o644) //nolint:gosec // reports are meant to be shared.
	if err != nil {
		return "", fmt.Errorf("write document %s: %w", path, err)
	}

	return path, nil
}
