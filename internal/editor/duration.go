package editor

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the accepted entry date formats, month precision first.
var dateLayouts = []string{"2006-01-02", "2006-01"}

// Duration formats the elapsed time between two entry dates as whole years
// and months, e.g. "2 yrs 2 mos" or "1 yr". Current employment uses now as
// the end bound. Negative spans clamp to zero; both components zero yields
// "0 months". An unparsable start date yields "".
func Duration(startDate, endDate string, currentlyWorking bool, now time.Time) string {
	start, ok := parseEntryDate(startDate)
	if !ok {
		return ""
	}

	var end time.Time
	if currentlyWorking {
		end = now
	} else {
		end, ok = parseEntryDate(endDate)
		if !ok {
			return "0 months"
		}
	}

	totalMonths := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if totalMonths < 0 {
		totalMonths = 0
	}

	years := totalMonths / 12
	months := totalMonths % 12

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d yr%s", years, plural(years)))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d mo%s", months, plural(months)))
	}
	if len(parts) == 0 {
		return "0 months"
	}
	return strings.Join(parts, " ")
}

func parseEntryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
