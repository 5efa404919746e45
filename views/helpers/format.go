package helpers

import "time"

// FormatDate formats a timestamp as "Jan 2, 2006", or a dash when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// OrDash substitutes a dash for an empty value.
func OrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
