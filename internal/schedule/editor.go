package schedule

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

// TimeSlot is one teaching window inside a batch schedule. ID is generated
// locally and only used for list-key stability while the slot is edited; the
// academy API never assigns it.
type TimeSlot struct {
	ID              string `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Schedule is the weekday set and ordered slot list attached to a batch.
// Days keeps insertion order; display ordering is always derived via
// SortedDays.
type Schedule struct {
	Days      []string   `json:"days"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// SlotField names the editable fields of a TimeSlot.
type SlotField string

const (
	FieldStartTime SlotField = "startTime"
	FieldEndTime   SlotField = "endTime"
	FieldDuration  SlotField = "durationMinutes"
)

// weekdayOrder is the fixed reference order used for display.
var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Editor mutates a Schedule value while a batch form is open. It is a pure
// value-editing component with no phases beyond "being edited".
type Editor struct {
	sched Schedule
}

// NewEditor starts editing. A nil initial value begins from an empty schedule.
func NewEditor(initial *Schedule) *Editor {
	e := &Editor{}
	if initial != nil {
		e.sched = *initial
		e.sched.Days = append([]string(nil), initial.Days...)
		e.sched.TimeSlots = append([]TimeSlot(nil), initial.TimeSlots...)
	}
	return e
}

// Schedule returns the value under edit.
func (e *Editor) Schedule() Schedule {
	return e.sched
}

// ToggleDay removes the day when present, otherwise appends it. The resulting
// storage order is immaterial; display re-sorts via SortedDays.
func (e *Editor) ToggleDay(day string) {
	for i, existing := range e.sched.Days {
		if existing == day {
			e.sched.Days = append(e.sched.Days[:i], e.sched.Days[i+1:]...)
			return
		}
	}
	e.sched.Days = append(e.sched.Days, day)
}

// AddTimeSlot appends a fresh empty slot and returns it. There is no upper
// bound on the number of slots.
func (e *Editor) AddTimeSlot() TimeSlot {
	slot := TimeSlot{ID: uuid.NewString()}
	e.sched.TimeSlots = append(e.sched.TimeSlots, slot)
	return slot
}

// UpdateTimeSlot sets one field of the slot at index. Editing a time field
// recomputes the duration when the opposite time is already filled in, which
// discards any manual duration override. Editing the duration directly stores
// the clamped value and leaves it alone until a time field changes again.
func (e *Editor) UpdateTimeSlot(index int, field SlotField, value string) error {
	if index < 0 || index >= len(e.sched.TimeSlots) {
		return appErrors.Clone(appErrors.ErrValidation, "time slot index out of range")
	}
	slot := &e.sched.TimeSlots[index]

	switch field {
	case FieldStartTime:
		slot.StartTime = value
		if slot.EndTime != "" {
			slot.DurationMinutes = deriveDuration(slot.StartTime, slot.EndTime)
		}
	case FieldEndTime:
		slot.EndTime = value
		if slot.StartTime != "" {
			slot.DurationMinutes = deriveDuration(slot.StartTime, slot.EndTime)
		}
	case FieldDuration:
		minutes, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "duration must be a number")
		}
		if minutes < 0 {
			minutes = 0
		}
		slot.DurationMinutes = minutes
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown time slot field")
	}
	return nil
}

// RemoveTimeSlot drops the slot at index. The "at least one slot" rule is a
// UI gate enforced by the handler layer; the editor itself allows emptying
// the list.
func (e *Editor) RemoveTimeSlot(index int) error {
	if index < 0 || index >= len(e.sched.TimeSlots) {
		return appErrors.Clone(appErrors.ErrValidation, "time slot index out of range")
	}
	e.sched.TimeSlots = append(e.sched.TimeSlots[:index], e.sched.TimeSlots[index+1:]...)
	return nil
}

// Validate gates submission: at least one weekday and one time slot. Field
// completeness of individual slots is deliberately not checked here; the
// academy API is the authority on deeper validation.
func (e *Editor) Validate() error {
	return ValidateForSubmission(e.sched)
}

// ValidateForSubmission applies the submission gate to a schedule value.
func ValidateForSubmission(s Schedule) error {
	if len(s.Days) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one day is required")
	}
	if len(s.TimeSlots) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one time slot is required")
	}
	return nil
}

// SortedDays returns the days re-sorted by the fixed Monday..Sunday reference
// order. Unrecognized names keep their relative insertion order at the end.
func SortedDays(days []string) []string {
	sorted := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		seen[day] = true
	}
	for _, ref := range weekdayOrder {
		if seen[ref] {
			sorted = append(sorted, ref)
			delete(seen, ref)
		}
	}
	for _, day := range days {
		if seen[day] {
			sorted = append(sorted, day)
			delete(seen, day)
		}
	}
	return sorted
}

// deriveDuration computes max(0, end-start) in minutes. Unparseable times
// count as minute zero, so an incomplete pair degrades to a zero duration
// instead of an error; the backend performs real validation on submit.
func deriveDuration(start, end string) int {
	startMin := clockMinutes(start)
	endMin := clockMinutes(end)
	if d := endMin - startMin; d > 0 {
		return d
	}
	return 0
}

// clockMinutes parses "HH:MM" into minutes since midnight.
func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}
