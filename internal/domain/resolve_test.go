package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHours(t *testing.T) {
	alt := DefaultTerminals().AltNames()

	tests := []struct {
		name     string
		text     string
		terminal string
		other    string
		expected *float64
	}{
		{
			name:     "terminal not mentioned",
			text:     "kingston 2 hour wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: nil,
		},
		{
			name:     "single terminal",
			text:     "edmonds 2 hour wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(2),
		},
		{
			name:     "single terminal ignores clause split",
			text:     "edmonds no wait, 1 boat out of service",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(1),
		},
		{
			name:     "dual terminal first clause",
			text:     "edmonds wait 1 hour - kingston wait 2 hours",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(1),
		},
		{
			name:     "dual terminal second clause",
			text:     "edmonds wait 1 hour - kingston wait 2 hours",
			terminal: "kingston",
			other:    "edmonds",
			expected: hoursPtr(2),
		},
		{
			name:     "backup from last unnamed clause",
			text:     "edmonds 1 hour wait, kingston - no wait",
			terminal: "kingston",
			other:    "edmonds",
			expected: hoursPtr(0),
		},
		{
			name:     "comma separated dual terminal",
			text:     "edmonds no wait, kingston 90 minute wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(0),
		},
		{
			name:     "comma separated dual terminal other side",
			text:     "edmonds no wait, kingston 90 minute wait",
			terminal: "kingston",
			other:    "edmonds",
			expected: hoursPtr(1.5),
		},
		{
			// Without "kingston" the post is single-terminal and parsed whole.
			name:     "alternate spelling of other terminal does not split",
			text:     "edmonds no wait, kgstn 90 minute wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(1.5),
		},
		{
			// "king" is only an alternate; without the canonical name the post
			// is not about kingston, so no clause is examined.
			name:     "alternate name alone is not a mention",
			text:     "no wait - king",
			terminal: "kingston",
			other:    "edmonds",
			expected: nil,
		},
		{
			name:     "primary beats backup",
			text:     "edmonds 1 hour wait, kingston - no wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(1),
		},
		{
			name:     "last owning clause wins",
			text:     "edmonds 1 hour wait, edmonds 2 hour wait - kingston no wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(2),
		},
		{
			name:     "later owning clause without number clears primary",
			text:     "edmonds wait 2 hours, edmonds lot full - kingston no wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(0),
		},
		{
			name:     "alternate spelling attributes clause",
			text:     "kingston and edmonds - kgstn 2 hour wait - edm no wait",
			terminal: "kingston",
			other:    "edmonds",
			expected: hoursPtr(2),
		},
		{
			name:     "alternate spelling attributes clause to other terminal",
			text:     "kingston and edmonds - kgstn 2 hour wait - edm no wait",
			terminal: "edmonds",
			other:    "kingston",
			expected: hoursPtr(0),
		},
		{
			name:     "no number anywhere",
			text:     "edmonds and kingston waits vary",
			terminal: "edmonds",
			other:    "kingston",
			expected: nil,
		},
		{
			name:     "empty terminal",
			text:     "edmonds 1 hour wait",
			terminal: "",
			other:    "kingston",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveHours(tt.text, tt.terminal, tt.other, alt))
		})
	}
}

func TestResolveHours_AbsentTerminalAlwaysUnknown(t *testing.T) {
	alt := DefaultTerminals().AltNames()
	texts := []string{
		"kingston 1 hour wait",
		"kingston no wait - edm 2 hour wait",
		"edm 3 hour wait",
		"",
	}
	for _, text := range texts {
		assert.Nil(t, ResolveHours(text, "edmonds", "kingston", alt), text)
	}
}

func TestResolveHours_Deterministic(t *testing.T) {
	alt := DefaultTerminals().AltNames()
	text := "edmonds 1 hour wait, kingston - no wait"
	first := ResolveHours(text, "kingston", "edmonds", alt)
	for range 10 {
		assert.Equal(t, first, ResolveHours(text, "kingston", "edmonds", alt))
	}
}
