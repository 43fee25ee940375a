package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/service"
	"github.com/charmbracelet/huh"
)

// assignmentDraft collects `assignment add` input from flags or the form.
// Every field is text so both sources validate the same way.
type assignmentDraft struct {
	Resource string
	Title    string
	Start    string
	End      string
	Pct      string
}

func (d assignmentDraft) incomplete() bool {
	return d.Resource == "" || d.Start == "" || d.End == "" || d.Pct == ""
}

// input converts the draft. Dates are checked later by the service
// validator; only the percentage needs parsing here.
func (d assignmentDraft) input(projectID, resourceID string) (service.AssignmentInput, error) {
	pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(d.Pct, "%")), 64)
	if err != nil {
		return service.AssignmentInput{}, fmt.Errorf("invalid percentage %q", d.Pct)
	}
	return service.AssignmentInput{
		ProjectID:     projectID,
		ResourceID:    resourceID,
		Title:         strings.TrimSpace(d.Title),
		StartDate:     strings.TrimSpace(d.Start),
		EndDate:       strings.TrimSpace(d.End),
		AllocationPct: pct,
	}, nil
}

// assignmentForm asks for whatever the flags left out. The resource select
// stores resource IDs in draft.Resource.
func assignmentForm(resources []*domain.Resource, draft *assignmentDraft) *huh.Form {
	options := make([]huh.Option[string], 0, len(resources))
	for _, r := range resources {
		label := r.Name
		if r.Role != "" {
			label += " · " + r.Role
		}
		options = append(options, huh.NewOption(label, r.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Resource").
				Options(options...).
				Value(&draft.Resource),
			huh.NewInput().
				Title("Title (optional)").
				Value(&draft.Title),
		),
		huh.NewGroup(
			dateInput("First day", "2025-02-03", &draft.Start),
			dateInput("Last day (inclusive)", "2025-02-14", &draft.End),
			huh.NewInput().
				Title("Allocation %").
				Placeholder("50").
				Value(&draft.Pct).
				Validate(validatePercent),
		),
	).WithTheme(allotHuhTheme()).WithShowHelp(false)
}

// dateInput returns a huh.Input for a required date field.
func dateInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateDate)
}
