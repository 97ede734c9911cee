package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// StdinPath selects standard input as the record file.
const StdinPath = "-"

// FileSource reads records from a JSON file in either backend shape.
type FileSource struct {
	path  string
	stdin io.Reader
}

var _ contract.RecordSource = &FileSource{} // Compile-time check

// NewFileSource creates a source reading path, or stdin when path is "-".
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, stdin: os.Stdin}
}

// Describe implements the RecordSource interface.
func (s *FileSource) Describe() string {
	if s.path == StdinPath {
		return "stdin"
	}
	return s.path
}

// FetchRecords implements the RecordSource interface.
func (s *FileSource) FetchRecords(ctx context.Context) ([]schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if s.path == StdinPath {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Describe(), err)
	}

	records, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Describe(), err)
	}
	return records, nil
}

// New builds the record source selected by the config.
func New(cfg *contract.Config) (contract.RecordSource, error) {
	switch cfg.Source {
	case schema.FileSource:
		return NewFileSource(cfg.InputFile), nil
	case schema.HTTPSource, "":
		return NewHTTPSource(cfg.APIURL, cfg.APIPath, cfg.APIToken, cfg.APITimeout), nil
	default:
		return nil, fmt.Errorf("unsupported record source: %s", cfg.Source)
	}
}
