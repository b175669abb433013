package core

import (
	"errors"
	"strings"

	"github.com/dkrylov/shiftline/schema"
)

// Errors returned by the manual record edits.
var (
	ErrLineNotFound  = errors.New("line not found")
	ErrEventNotFound = errors.New("event not found")
)

// AddManualEvent appends a hand-entered downtime event to the named line's
// record and restores the longest-first ordering. Manual events carry the
// MANUAL shift marker so they stay distinguishable from extracted ones.
func AddManualEvent(records []schema.LineRecord, lineName string, durationMin float64, category, description, comment string) (schema.DowntimeEvent, error) {
	for i := range records {
		if !strings.EqualFold(records[i].LineName, lineName) {
			continue
		}
		ev := schema.NewDowntimeEvent(
			records[i].SourcePath,
			records[i].SheetName,
			schema.ManualShift,
			durationMin,
			category,
			description,
			comment,
		)
		records[i].Events = append(records[i].Events, ev)
		records[i].SortEvents()
		return ev, nil
	}
	return schema.DowntimeEvent{}, ErrLineNotFound
}

// EditEvent rewrites the duration, category, description and comment of the
// event with the given ID, wherever it lives. The ID and shift are stable
// across edits.
func EditEvent(records []schema.LineRecord, eventID string, durationMin float64, category, description, comment string) error {
	for i := range records {
		for j := range records[i].Events {
			if records[i].Events[j].ID != eventID {
				continue
			}
			ev := &records[i].Events[j]
			ev.DurationMin = durationMin
			ev.Category = strings.TrimSpace(category)
			if ev.Category == "" {
				ev.Category = schema.DefaultCategory
			}
			ev.Description = schema.CleanText(description)
			ev.Comment = schema.CleanText(comment)
			records[i].SortEvents()
			return nil
		}
	}
	return ErrEventNotFound
}

// DeleteEvent removes the event with the given ID from whichever record
// holds it.
func DeleteEvent(records []schema.LineRecord, eventID string) error {
	for i := range records {
		for j := range records[i].Events {
			if records[i].Events[j].ID != eventID {
				continue
			}
			records[i].Events = append(records[i].Events[:j], records[i].Events[j+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}
