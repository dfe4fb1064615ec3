package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PointSchedule maps a rank position to the Borda points it is worth.
// Ranks missing from the schedule use the default N - rank.
type PointSchedule map[int]float64

// Points returns the Borda points for rank among n alternatives
func (s PointSchedule) Points(rank, n int) float64 {
	if points, ok := s[rank]; ok {
		return points
	}
	return float64(n - rank)
}

// MarshalJSON stores the schedule as a rank->points object
func (s PointSchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(s))
	for rank, points := range s {
		out[strconv.Itoa(rank)] = points
	}
	return json.Marshal(out)
}

// ParsePointSchedule normalizes a stored schedule into a PointSchedule.
// Two shapes are accepted: an object {"1": 100, "2": "50"} and a list of
// pairs [{"key": "1", "value": "100"}]. A key must be the canonical decimal
// form of a positive rank ("1", not "01" or " 1"). Entries with any other key
// or with non-numeric points are dropped. Empty or null input
// yields an empty schedule.
func ParsePointSchedule(raw []byte) (PointSchedule, error) {
	schedule := PointSchedule{}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return schedule, nil
	}

	switch trimmed[0] {
	case '{':
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode point schedule: %w", err)
		}
		for key, value := range entries {
			schedule.add(key, value)
		}
	case '[':
		var pairs []map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, fmt.Errorf("failed to decode point schedule pairs: %w", err)
		}
		for _, pair := range pairs {
			key, hasKey := pair["key"]
			value, hasValue := pair["value"]
			if !hasKey || !hasValue {
				continue
			}
			var keyText string
			if err := json.Unmarshal(key, &keyText); err != nil {
				// Numeric keys are allowed too.
				keyText = string(key)
			}
			schedule.add(keyText, value)
		}
	default:
		return nil, fmt.Errorf("point schedule must be a JSON object or list, got %q", trimmed[:1])
	}

	return schedule, nil
}

func (s PointSchedule) add(key string, value json.RawMessage) {
	rank, err := strconv.Atoi(key)
	if err != nil || rank < 1 || strconv.Itoa(rank) != key {
		return
	}
	points, ok := numericValue(value)
	if !ok {
		return
	}
	s[rank] = points
}

// numericValue accepts JSON numbers and numeric strings
func numericValue(value json.RawMessage) (float64, bool) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(value, &number); err == nil {
		return number, true
	}

	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return 0, false
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}
