package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple title",
			input:    "Incident runbook",
			expected: "incident-runbook",
		},
		{
			name:     "Title with special characters",
			input:    "Q3 Planning: OKRs & Goals",
			expected: "q3-planning-okrs-goals",
		},
		{
			name:     "Title with multiple spaces",
			input:    "Weekly   team    sync",
			expected: "weekly-team-sync",
		},
		{
			name:     "Long title gets truncated",
			input:    "This is a very long document title that should be truncated to keep paths readable",
			expected: "this-is-a-very-long-document-title-that-should-be",
		},
		{
			name:     "Title with leading/trailing spaces",
			input:    "  Meeting notes  ",
			expected: "meeting-notes",
		},
		{
			name:     "Blank title",
			input:    "   ",
			expected: "untitled",
		},
		{
			name:     "Only symbols",
			input:    "✨🚀",
			expected: "untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
