package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse normalizes a schedule as stored upstream. Older batch records carry
// the schedule as a serialized JSON string, newer ones as a structured
// object; both funnel through here before any display logic touches the
// value. A JSON null (or empty input) yields (nil, nil). Writes always emit
// the structured form, never the string encoding.
func Parse(raw json.RawMessage) (*Schedule, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("decode schedule string: %w", err)
		}
		if inner == "" {
			return nil, nil
		}
		trimmed = []byte(inner)
	}

	var sched Schedule
	if err := json.Unmarshal(trimmed, &sched); err != nil {
		return nil, fmt.Errorf("decode schedule object: %w", err)
	}
	return &sched, nil
}
