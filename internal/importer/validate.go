package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/validation"
)

func init() {
	validation.RegisterSpan(AssignmentImport{}, "StartDate", "EndDate")
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	resourceRefs := make(map[string]bool)
	errs = append(errs, validateResources(schema.Resources, resourceRefs)...)
	errs = append(errs, validateAssignments(schema.Assignments, resourceRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	return errs
}

func validateResources(resources []ResourceImport, refs map[string]bool) []error {
	var errs []error

	names := make(map[string]bool)
	for i, r := range resources {
		prefix := fmt.Sprintf("resources[%d]", i)
		errs = append(errs, validation.Describe(prefix, validation.Struct(r))...)

		if r.Ref != "" {
			if refs[r.Ref] {
				errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, r.Ref))
			}
			refs[r.Ref] = true
		}
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key != "" {
			if names[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate name %q", prefix, r.Name))
			}
			names[key] = true
		}
	}

	return errs
}

func validateAssignments(assignments []AssignmentImport, refs map[string]bool) []error {
	var errs []error

	for i, a := range assignments {
		prefix := fmt.Sprintf("assignments[%d]", i)
		errs = append(errs, validation.Describe(prefix, validation.Struct(a))...)

		if a.ResourceRef != "" && !refs[a.ResourceRef] {
			errs = append(errs, fmt.Errorf("%s.resource_ref: unknown resource %q", prefix, a.ResourceRef))
		}
	}

	return errs
}
