package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkrylov/shiftline/schema"
)

// BuildSummaryText renders the plain-text report handed over at the shift
// meeting: one block per line with its output figures and top downtime
// events. Records are presented sorted by line name regardless of the
// order they finished processing in.
func BuildSummaryText(records []schema.LineRecord, date schema.ShiftDate, precision int) string {
	sorted := make([]schema.LineRecord, len(records))
	copy(sorted, records)
	schema.SortRecordsByLine(sorted)

	var b strings.Builder
	fmt.Fprintf(&b, "Downtime summary for %s\n", date.ISO())

	for _, rec := range sorted {
		fmt.Fprintf(&b, "\n%s\n", rec.LineName)
		fmt.Fprintf(&b, "Fact: %s (Plan: %s)\n",
			formatQty(rec.Fact, precision), formatQty(rec.Plan, precision))

		if len(rec.Events) == 0 {
			b.WriteString("No significant downtime.\n")
			continue
		}
		for _, ev := range rec.Events {
			fmt.Fprintf(&b, "  - %s (%s min)", eventLabel(ev), formatQty(ev.DurationMin, precision))
			if ev.Comment != "" {
				fmt.Fprintf(&b, " | %s", ev.Comment)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// eventLabel prefers the description and falls back to the category when the
// operator wrote nothing.
func eventLabel(ev schema.DowntimeEvent) string {
	if ev.Description != "" {
		return ev.Description
	}
	return ev.Category
}

// formatQty renders a figure at the configured precision.
func formatQty(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
