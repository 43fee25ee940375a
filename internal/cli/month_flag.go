package cli

import (
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/spf13/pflag"
)

// monthValue is a pflag.Value holding a YYYY-MM month. The zero value means
// "not set"; callers substitute the current month.
type monthValue struct {
	month domain.CalendarMonth
	set   bool
}

var _ pflag.Value = (*monthValue)(nil)

func (m *monthValue) String() string {
	if !m.set {
		return ""
	}
	return m.month.String()
}

func (m *monthValue) Set(s string) error {
	month, err := domain.ParseMonth(s)
	if err != nil {
		return err
	}
	m.month = month
	m.set = true
	return nil
}

func (m *monthValue) Type() string { return "YYYY-MM" }

// Or returns the flag's month, or fallback when the flag was not given.
func (m *monthValue) Or(fallback domain.CalendarMonth) domain.CalendarMonth {
	if m.set {
		return m.month
	}
	return fallback
}
