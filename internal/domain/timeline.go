package domain

// BuildDisplayOrder returns events newest first. The source order is
// authoritative, so this is a plain reversal and never a sort by timestamp.
func BuildDisplayOrder(events []TrackingEvent) []TrackingEvent {
	out := make([]TrackingEvent, len(events))
	for i, event := range events {
		out[len(events)-1-i] = event
	}

	return out
}

func IsMostRecent(displayIndex int) bool {
	return displayIndex == 0
}

type TimelineEntry struct {
	Event   TrackingEvent
	Current bool
}

func Timeline(events []TrackingEvent) []TimelineEntry {
	ordered := BuildDisplayOrder(events)
	entries := make([]TimelineEntry, len(ordered))
	for i, event := range ordered {
		entries[i] = TimelineEntry{Event: event, Current: IsMostRecent(i)}
	}

	return entries
}
