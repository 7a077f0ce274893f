package render

import (
	"strings"
	"time"
)

const present = "Present"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"01/2006",
	"1/2006",
	"01/02/2006",
	"Jan 2006",
	"January 2006",
}

// FormatDate renders a date as MM/YYYY. Strings that match no known layout
// are returned trimmed but otherwise unchanged.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if isPresent(s) {
		return present
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01/2006")
		}
	}
	return s
}

// FormatDateRange renders "MM/YYYY - MM/YYYY", substituting "Present" for a
// missing end and "Until MM/YYYY" for a missing start. A range with no dated
// endpoint that is still ongoing is just "Present".
func FormatDateRange(start, end string) string {
	s := FormatDate(start)
	e := FormatDate(end)
	ongoing := e == "" || e == present
	switch {
	case s == "" && e == "":
		return ""
	case (s == "" || s == present) && ongoing:
		return present
	case s == "":
		return "Until " + e
	case e == "":
		return s + " - " + present
	default:
		return s + " - " + e
	}
}

func isPresent(s string) bool {
	switch strings.ToLower(s) {
	case "present", "current", "now", "ongoing":
		return true
	}
	return false
}
