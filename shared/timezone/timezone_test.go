package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/timezone"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty uses the default", input: "", want: timezone.DefaultLocation},
		{name: "known zone", input: "Europe/London", want: "Europe/London"},
		{name: "unknown zone falls back to UTC", input: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.input).String())
		})
	}
}

func TestDayOf(t *testing.T) {
	riyadh := timezone.Load("Asia/Riyadh")

	late := time.Date(2024, 3, 1, 23, 30, 0, 0, riyadh)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), timezone.DayOf(late))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), timezone.DayOf(late.UTC()))
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Equal(t, timezone.Now().Day(), today.Day())
}

func TestFormat(t *testing.T) {
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(noon, "2006-01-02 15:04:05 MST"))
	assert.NotNil(t, timezone.Location())
}
