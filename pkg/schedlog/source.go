package schedlog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/schedline/pkg/safeconv"
)

// Known input suffixes, stripped when deriving a label from a file name.
const (
	extLZ4 = ".lz4"
	extCSV = ".csv"
)

// Source yields one finite batch of raw events.
type Source interface {
	// Name identifies the batch in errors and logs.
	Name() string
	// Load reads the whole batch.
	Load() ([]RawEvent, error)
}

// FileSource loads a CSV scheduler log from disk. Files ending in .lz4 are
// decompressed on the fly.
type FileSource struct {
	Path   string
	Logger *slog.Logger
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{Path: path, Logger: logger}
}

// Name returns the file path.
func (fs *FileSource) Name() string {
	return fs.Path
}

// Load opens and parses the file.
func (fs *FileSource) Load() ([]RawEvent, error) {
	f, err := os.Open(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.EqualFold(filepath.Ext(fs.Path), extLZ4) {
		r = lz4.NewReader(r)
	}

	events, err := ReadCSV(r, fs.Path)
	if err != nil {
		return nil, err
	}

	logger := fs.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var size string
	if info, statErr := f.Stat(); statErr == nil {
		size = humanize.Bytes(safeconv.MustInt64ToUint64(info.Size()))
	}

	logger.Debug("trace loaded",
		"path", fs.Path,
		"size", size,
		"rows", humanize.Comma(int64(len(events))),
	)

	return events, nil
}

// StaticSource serves an in-memory batch.
type StaticSource struct {
	Label  string
	Events []RawEvent
}

// Name returns the label.
func (ss StaticSource) Name() string {
	return ss.Label
}

// Load returns the events unchanged.
func (ss StaticSource) Load() ([]RawEvent, error) {
	return ss.Events, nil
}

// Stem derives a label from a file path: "runs/light.csv.lz4" becomes "light".
func Stem(path string) string {
	base := filepath.Base(path)

	for _, ext := range []string{extLZ4, extCSV} {
		if strings.EqualFold(filepath.Ext(base), ext) {
			base = base[:len(base)-len(ext)]
		}
	}

	return base
}
