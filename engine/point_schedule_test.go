package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointSchedule(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected PointSchedule
	}{
		{name: "empty", raw: "", expected: PointSchedule{}},
		{name: "null", raw: "null", expected: PointSchedule{}},
		{name: "empty object", raw: "{}", expected: PointSchedule{}},
		{
			name:     "object with numbers and numeric strings",
			raw:      `{"1": 100, "2": "50", "3": " 12.5 "}`,
			expected: PointSchedule{1: 100, 2: 50, 3: 12.5},
		},
		{
			name:     "object drops invalid entries",
			raw:      `{"1": 100, "0": 5, "-2": 5, "x": 5, "2": "abc", "3": null, "4": true}`,
			expected: PointSchedule{1: 100},
		},
		{
			name:     "list of key value pairs",
			raw:      `[{"key": "1", "value": "100"}, {"key": "2", "value": 40}]`,
			expected: PointSchedule{1: 100, 2: 40},
		},
		{
			name:     "list accepts numeric keys",
			raw:      `[{"key": 3, "value": 7}]`,
			expected: PointSchedule{3: 7},
		},
		{
			name:     "list drops incomplete pairs",
			raw:      `[{"key": "1"}, {"value": "10"}, {"key": "2", "value": "ten"}, {"key": "3", "value": "30"}]`,
			expected: PointSchedule{3: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := ParsePointSchedule([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, schedule)
		})
	}
}

func TestParsePointSchedule_OnlyCanonicalKeys(t *testing.T) {
	raw := []byte(`{"1": 100, "01": 5, " 1": 7, "+1": 9, "2 ": 3}`)

	for i := 0; i < 50; i++ {
		schedule, err := ParsePointSchedule(raw)
		require.NoError(t, err)
		assert.Equal(t, PointSchedule{1: 100}, schedule)
	}

	schedule, err := ParsePointSchedule([]byte(`[{"key": "01", "value": 5}, {"key": 2, "value": 8}]`))
	require.NoError(t, err)
	assert.Equal(t, PointSchedule{2: 8}, schedule)
}

func TestParsePointSchedule_Malformed(t *testing.T) {
	for _, raw := range []string{`{"1": `, `[1, 2]`, `"text"`, `42`} {
		_, err := ParsePointSchedule([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestPointSchedule_Points(t *testing.T) {
	schedule := PointSchedule{1: 100, 2: 50}

	assert.Equal(t, 100.0, schedule.Points(1, 4))
	assert.Equal(t, 50.0, schedule.Points(2, 4))
	assert.Equal(t, 1.0, schedule.Points(3, 4))
	assert.Equal(t, 0.0, schedule.Points(4, 4))

	var empty PointSchedule
	assert.Equal(t, 3.0, empty.Points(1, 4))
}

func TestPointSchedule_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(PointSchedule{1: 100, 2: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1": 100, "2": 50}`, string(data))

	parsed, err := ParsePointSchedule(data)
	require.NoError(t, err)
	assert.Equal(t, PointSchedule{1: 100, 2: 50}, parsed)
}
