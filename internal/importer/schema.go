package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Format is the encoding of an import file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ImportSchema is the top-level structure of a schedule import file.
type ImportSchema struct {
	Project ProjectImport `json:"project" yaml:"project"`
	Tasks   []TaskImport  `json:"tasks" yaml:"tasks"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ShortID   string `json:"short_id" yaml:"short_id"`
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date" yaml:"start_date"`
}

// TaskImport defines one schedule task. EndDate defaults to StartDate and
// Duration to the business days between them.
type TaskImport struct {
	Name            string `json:"name" yaml:"name"`
	StartDate       string `json:"start_date" yaml:"start_date"`
	EndDate         string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Duration        *int   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Progress        *int   `json:"progress,omitempty" yaml:"progress,omitempty"`
	Predecessor     string `json:"predecessor,omitempty" yaml:"predecessor,omitempty"`
	HierarchyNumber string `json:"hierarchy_number,omitempty" yaml:"hierarchy_number,omitempty"`
	Resources       string `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// LoadImportSchema reads and parses an import file from fsys, choosing the
// decoder by extension.
func LoadImportSchema(fsys afero.Fs, path string) (*ImportSchema, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return ParseImportSchema(data, format)
}

// ParseImportSchema decodes data in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &schema, nil
}
