package invoice

import (
	"fmt"
	"regexp"
)

// invoiceMonth is the year+month recovered from a document header, or the
// grammar's hardcoded default when the header token is missing. Inferred is
// carried onto emitted dates so a defaulted month is observable downstream.
type invoiceMonth struct {
	Year     string
	Month    string // zero-padded
	Inferred bool
}

var reHeaderMonth = regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月`)

func headerMonth(text, defaultYear, defaultMonth string) invoiceMonth {
	m := reHeaderMonth.FindStringSubmatch(text)
	if m == nil {
		return invoiceMonth{Year: defaultYear, Month: defaultMonth, Inferred: true}
	}
	month := m[2]
	if len(month) == 1 {
		month = "0" + month
	}
	return invoiceMonth{Year: m[1], Month: month}
}

// firstOfMonth renders the placeholder date used when no row-level date is
// recoverable.
func (m invoiceMonth) firstOfMonth() string {
	return fmt.Sprintf("%s-%s-01", m.Year, m.Month)
}

func (m invoiceMonth) dayOfMonth(day int) string {
	return fmt.Sprintf("%s-%s-%02d", m.Year, m.Month, day)
}
