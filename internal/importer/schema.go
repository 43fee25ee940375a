package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an import file. The same shape
// is accepted as JSON or YAML.
type ImportSchema struct {
	Project     ProjectImport      `json:"project" yaml:"project"`
	Resources   []ResourceImport   `json:"resources" yaml:"resources"`
	Assignments []AssignmentImport `json:"assignments" yaml:"assignments"`
}

// ProjectImport names the project the assignments belong to. An existing
// project with the same short ID is reused.
type ProjectImport struct {
	ShortID string `json:"short_id" yaml:"short_id"`
	Name    string `json:"name" yaml:"name"`
}

// ResourceImport declares a resource under a file-local ref. Resources whose
// name matches an existing one are reused instead of created.
type ResourceImport struct {
	Ref  string `json:"ref" yaml:"ref" validate:"notblank"`
	Name string `json:"name" yaml:"name" validate:"notblank"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// AssignmentImport allocates a resource, by ref, to the project.
type AssignmentImport struct {
	ResourceRef   string  `json:"resource_ref" yaml:"resource_ref" validate:"notblank"`
	Title         string  `json:"title" yaml:"title"`
	StartDate     string  `json:"start_date" yaml:"start_date" validate:"required,day"`
	EndDate       string  `json:"end_date" yaml:"end_date" validate:"required,day"`
	AllocationPct float64 `json:"allocation_pct" yaml:"allocation_pct" validate:"gte=0,lte=100"`
	Active        *bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// LoadImportSchema reads and parses an import file. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, filepath.Ext(path))
}

// ParseImportSchema decodes data according to the given file extension.
func ParseImportSchema(data []byte, ext string) (*ImportSchema, error) {
	var schema ImportSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
