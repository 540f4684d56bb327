package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorDurationDerivation(t *testing.T) {
	e := NewEditor(nil)
	e.AddTimeSlot()

	require.NoError(t, e.UpdateTimeSlot(0, FieldStartTime, "09:00"))
	assert.Equal(t, 0, e.Schedule().TimeSlots[0].DurationMinutes, "no end time yet")

	require.NoError(t, e.UpdateTimeSlot(0, FieldEndTime, "11:30"))
	assert.Equal(t, 150, e.Schedule().TimeSlots[0].DurationMinutes)
}

func TestEditorNonPositiveSpanClampsToZero(t *testing.T) {
	e := NewEditor(nil)
	e.AddTimeSlot()

	require.NoError(t, e.UpdateTimeSlot(0, FieldStartTime, "14:00"))
	require.NoError(t, e.UpdateTimeSlot(0, FieldEndTime, "13:00"))
	assert.Equal(t, 0, e.Schedule().TimeSlots[0].DurationMinutes)

	require.NoError(t, e.UpdateTimeSlot(0, FieldEndTime, "14:00"))
	assert.Equal(t, 0, e.Schedule().TimeSlots[0].DurationMinutes, "zero span is not positive")
}

func TestEditorManualOverridePersistsUntilTimeEdit(t *testing.T) {
	e := NewEditor(nil)
	e.AddTimeSlot()
	require.NoError(t, e.UpdateTimeSlot(0, FieldStartTime, "09:00"))
	require.NoError(t, e.UpdateTimeSlot(0, FieldEndTime, "11:30"))
	require.Equal(t, 150, e.Schedule().TimeSlots[0].DurationMinutes)

	require.NoError(t, e.UpdateTimeSlot(0, FieldDuration, "45"))
	assert.Equal(t, 45, e.Schedule().TimeSlots[0].DurationMinutes)

	// Unrelated slot operations leave the override in place.
	e.AddTimeSlot()
	require.NoError(t, e.RemoveTimeSlot(1))
	assert.Equal(t, 45, e.Schedule().TimeSlots[0].DurationMinutes)

	// Editing either time field recomputes and discards the override.
	require.NoError(t, e.UpdateTimeSlot(0, FieldEndTime, "10:00"))
	assert.Equal(t, 60, e.Schedule().TimeSlots[0].DurationMinutes)
}

func TestEditorDurationClampsNegativeInput(t *testing.T) {
	e := NewEditor(nil)
	e.AddTimeSlot()
	require.NoError(t, e.UpdateTimeSlot(0, FieldDuration, "-30"))
	assert.Equal(t, 0, e.Schedule().TimeSlots[0].DurationMinutes)

	err := e.UpdateTimeSlot(0, FieldDuration, "abc")
	require.Error(t, err)
}

func TestEditorToggleDay(t *testing.T) {
	e := NewEditor(nil)
	e.ToggleDay("Wednesday")
	e.ToggleDay("Monday")
	assert.Equal(t, []string{"Wednesday", "Monday"}, e.Schedule().Days, "storage keeps insertion order")

	e.ToggleDay("Wednesday")
	assert.Equal(t, []string{"Monday"}, e.Schedule().Days)
}

func TestSortedDaysUsesReferenceOrder(t *testing.T) {
	sorted := SortedDays([]string{"Friday", "Monday", "Someday", "Wednesday"})
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday", "Someday"}, sorted)
}

func TestValidateForSubmissionGating(t *testing.T) {
	slot := TimeSlot{ID: "s1", StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60}

	err := ValidateForSubmission(Schedule{Days: nil, TimeSlots: []TimeSlot{slot}})
	require.Error(t, err, "empty days fails regardless of slots")

	err = ValidateForSubmission(Schedule{Days: []string{"Monday"}, TimeSlots: nil})
	require.Error(t, err, "empty slots fails regardless of days")

	err = ValidateForSubmission(Schedule{Days: []string{"Monday"}, TimeSlots: []TimeSlot{slot}})
	require.NoError(t, err)
}

func TestEditorAddTimeSlotAssignsFreshIDs(t *testing.T) {
	e := NewEditor(nil)
	first := e.AddTimeSlot()
	second := e.AddTimeSlot()
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, first.DurationMinutes)
}

func TestParseAcceptsObjectAndStringForms(t *testing.T) {
	object := json.RawMessage(`{"days":["Monday"],"timeSlots":[{"id":"a","startTime":"09:00","endTime":"10:00","durationMinutes":60}]}`)
	fromObject, err := Parse(object)
	require.NoError(t, err)

	quoted, err := json.Marshal(string(object))
	require.NoError(t, err)
	fromString, err := Parse(quoted)
	require.NoError(t, err)

	assert.Equal(t, fromObject, fromString)
	require.Len(t, fromObject.TimeSlots, 1)
	assert.Equal(t, 60, fromObject.TimeSlots[0].DurationMinutes)
}

func TestParseNullAndEmpty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage(`""`)} {
		sched, err := Parse(raw)
		require.NoError(t, err)
		assert.Nil(t, sched)
	}

	_, err := Parse(json.RawMessage(`"{not json"`))
	require.Error(t, err)
}
