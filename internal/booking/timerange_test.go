package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	parsed, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input       string
		expectError bool
		hour        int
		minute      int
	}{
		{input: "08:00", hour: 8, minute: 0},
		{input: "23:59", hour: 23, minute: 59},
		{input: "00:00", hour: 0, minute: 0},
		{input: "10:30", hour: 10, minute: 30},
		{input: "24:00", expectError: true},
		{input: "8am", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour())
			assert.Equal(t, tt.minute, got.Minute())
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "08:00", mustTime(t, "08:00").String())
	assert.Equal(t, "23:59", mustTime(t, "23:59").String())
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("14:30:00"))
	assert.Equal(t, "14:30", tod.String())

	require.NoError(t, tod.Scan([]byte("09:00:00")))
	assert.Equal(t, "09:00", tod.String())

	require.NoError(t, tod.Scan(time.Date(2025, 1, 1, 18, 15, 0, 0, time.UTC)))
	assert.Equal(t, "18:15", tod.String())

	assert.Error(t, tod.Scan(42))
}

func TestTimeOfDay_Value(t *testing.T) {
	v, err := mustTime(t, "09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)
}

func TestTimeOfDay_JSON(t *testing.T) {
	b, err := json.Marshal(mustTime(t, "17:00"))
	require.NoError(t, err)
	assert.Equal(t, `"17:00"`, string(b))

	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:30"`), &tod))
	assert.Equal(t, "08:30", tod.String())

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &tod))
}

func TestTimeRange_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		valid bool
	}{
		{name: "normal range", start: "10:00", end: "12:00", valid: true},
		{name: "one minute", start: "10:00", end: "10:01", valid: true},
		{name: "zero length", start: "10:00", end: "10:00", valid: false},
		{name: "inverted", start: "12:00", end: "10:00", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewTimeRange(mustTime(t, tt.start), mustTime(t, tt.end))
			assert.Equal(t, tt.valid, rng.IsValid())
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name    string
		a       [2]string
		b       [2]string
		overlap bool
	}{
		{name: "identical", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:00", "11:00"}, overlap: true},
		{name: "partial overlap", a: [2]string{"10:00", "12:00"}, b: [2]string{"11:00", "13:00"}, overlap: true},
		{name: "contained", a: [2]string{"09:00", "13:00"}, b: [2]string{"10:00", "11:00"}, overlap: true},
		{name: "back to back", a: [2]string{"10:00", "11:00"}, b: [2]string{"11:00", "12:00"}, overlap: false},
		{name: "disjoint", a: [2]string{"08:00", "09:00"}, b: [2]string{"20:00", "21:00"}, overlap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewTimeRange(mustTime(t, tt.a[0]), mustTime(t, tt.a[1]))
			b := NewTimeRange(mustTime(t, tt.b[0]), mustTime(t, tt.b[1]))

			assert.Equal(t, tt.overlap, a.Overlaps(b))
			// overlap is symmetric
			assert.Equal(t, tt.overlap, b.Overlaps(a))
		})
	}
}

func TestTimeRange_DurationHours(t *testing.T) {
	rng := NewTimeRange(mustTime(t, "10:00"), mustTime(t, "12:30"))
	assert.Equal(t, 2.5, rng.DurationHours())
}
