package sweep_test

import (
	"testing"
	"time"

	"github.com/HAtherlolz/tg-bot-notification/internal/sweep"
)

func TestIsWorkTime(t *testing.T) {
	t.Parallel()

	day := func(hour, minute, sec int) time.Time {
		return time.Date(2025, time.March, 10, hour, minute, sec, 0, sweep.Location)
	}

	tests := []struct {
		name     string
		input    time.Time
		expected bool
	}{
		{
			name:     "Exactly at window start is outside",
			input:    day(8, 0, 0),
			expected: false,
		},
		{
			name:     "One second after window start is inside",
			input:    day(8, 0, 1),
			expected: true,
		},
		{
			name:     "Exactly at window end is outside",
			input:    day(22, 0, 0),
			expected: false,
		},
		{
			name:     "One second before window end is inside",
			input:    day(21, 59, 59),
			expected: true,
		},
		{
			name:     "Midday is inside",
			input:    day(12, 30, 0),
			expected: true,
		},
		{
			name:     "Late night is outside",
			input:    day(23, 15, 0),
			expected: false,
		},
		{
			name:     "Early morning is outside",
			input:    day(3, 0, 0),
			expected: false,
		},
		{
			name:     "Midnight is outside",
			input:    day(0, 0, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sweep.IsWorkTime(tt.input); got != tt.expected {
				t.Errorf("IsWorkTime(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsWorkTimeNormalizesZone(t *testing.T) {
	t.Parallel()

	// 20:00 UTC is 23:00 in the bot's fixed offset, which is outside the window.
	input := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)
	if sweep.IsWorkTime(input) {
		t.Errorf("IsWorkTime(%v) = true, want false after conversion to UTC+3", input)
	}
}
