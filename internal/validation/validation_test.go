package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spanInput struct {
	Name  string  `json:"name" validate:"notblank"`
	Start string  `json:"start_date" validate:"required,day"`
	End   string  `json:"end_date" validate:"required,day"`
	Pct   float64 `json:"allocation_pct" validate:"gte=0,lte=100"`
}

func init() {
	RegisterSpan(spanInput{}, "Start", "End")
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(spanInput{Name: "x", Start: "2025-02-01", End: "2025-02-01", Pct: 100})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(spanInput{Name: "  ", Start: "02/01/2025", End: "2025-02-01", Pct: 120})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "allocation_pct")
	assert.Equal(t, "name cannot be blank", fields["name"])
	assert.Equal(t, "start_date must be a date in YYYY-MM-DD format", fields["start_date"])
}

func TestStruct_SpanOrder(t *testing.T) {
	err := Struct(spanInput{Name: "x", Start: "2025-02-10", End: "2025-02-01"})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "end_date must not be before the start date", fields["end_date"])
}

func TestDescribe_PrefixesAndSorts(t *testing.T) {
	err := Struct(spanInput{Name: "", Start: "bad", End: "bad", Pct: -1})
	errs := Describe("assignments[0]", err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "assignments[0].allocation_pct:")
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
	assert.Equal(t, []error{assert.AnError}, Describe("x", assert.AnError))
	assert.Nil(t, Describe("x", nil))
}
