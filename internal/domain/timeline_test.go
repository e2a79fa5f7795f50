package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDisplayOrderReverses(t *testing.T) {
	t.Parallel()

	e1 := TrackingEvent{StageLabel: "intake", TimestampRaw: 1}
	e2 := TrackingEvent{StageLabel: "moving", TimestampRaw: 2}
	e3 := TrackingEvent{StageLabel: "arrived", TimestampRaw: 3}
	events := []TrackingEvent{e1, e2, e3}

	got := BuildDisplayOrder(events)
	assert.Equal(t, []TrackingEvent{e3, e2, e1}, got)
	assert.Equal(t, []TrackingEvent{e1, e2, e3}, events, "input must not be mutated")

	assert.True(t, IsMostRecent(0))
	assert.False(t, IsMostRecent(1))
	assert.False(t, IsMostRecent(2))
}

func TestBuildDisplayOrderDoesNotSortByTimestamp(t *testing.T) {
	t.Parallel()

	a := TrackingEvent{Location: "a", TimestampRaw: 50}
	b := TrackingEvent{Location: "b", TimestampRaw: 10}
	c := TrackingEvent{Location: "c", TimestampRaw: 10}

	got := BuildDisplayOrder([]TrackingEvent{a, b, c})
	assert.Equal(t, []TrackingEvent{c, b, a}, got)
}

func TestBuildDisplayOrderEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildDisplayOrder(nil))
}

func TestTimelineMarksOnlyNewestAsCurrent(t *testing.T) {
	t.Parallel()

	entries := Timeline([]TrackingEvent{{Location: "old"}, {Location: "new"}})
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].Event.Location)
	assert.True(t, entries[0].Current)
	assert.Equal(t, "old", entries[1].Event.Location)
	assert.False(t, entries[1].Current)
}
