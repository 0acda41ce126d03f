package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrackerBreakAtThresholdResets(t *testing.T) {
	tracker := LoadTracker{MaxContinuousHours: 4, MinBreakMinutes: 10}
	morning := NewInterval(h(9), 3)
	afternoon := NewInterval(h(12)+10, 3)

	assert.Nil(t, tracker.Check("ins-1", []Interval{morning}, afternoon))
}

func TestLoadTrackerShortBreakAccumulates(t *testing.T) {
	tracker := LoadTracker{MaxContinuousHours: 4, MinBreakMinutes: 10}
	morning := NewInterval(h(9), 3)
	afternoon := NewInterval(h(12)+5, 3)

	conflict := tracker.Check("ins-1", []Interval{morning}, afternoon)
	require.NotNil(t, conflict)
	assert.Equal(t, SeverityMedium, conflict.Severity)
	assert.Equal(t, ConflictTime, conflict.Kind)
	assert.Contains(t, conflict.Message, "ins-1")
	assert.Contains(t, conflict.Message, "6 continuous hours")
	assert.False(t, conflict.Blocking())
}

func TestLoadTrackerSortsCandidateIntoPlace(t *testing.T) {
	tracker := LoadTracker{MaxContinuousHours: 4, MinBreakMinutes: 15}
	existing := []Interval{NewInterval(h(14), 2), NewInterval(h(9), 2)}

	// 11:00-14:00 bridges both bookings without a break.
	conflict := tracker.Check("ins-1", existing, NewInterval(h(11), 3))
	require.NotNil(t, conflict)
	assert.Contains(t, conflict.Message, "5 continuous hours")
}

func TestLoadTrackerDefaultsLimit(t *testing.T) {
	tracker := LoadTracker{MinBreakMinutes: 10}
	assert.Nil(t, tracker.Check("ins-1", nil, NewInterval(h(9), 4)))
	assert.NotNil(t, tracker.Check("ins-1", nil, NewInterval(h(9), 4.5)))
}
