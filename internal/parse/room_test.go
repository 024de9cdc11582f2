package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomNumber(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  ParsedRoom
		expectErr bool
	}{
		{
			name:     "Standard Case",
			raw:      "A-304",
			expected: ParsedRoom{Block: "A", Floor: 3, Seq: 4},
		},
		{
			name:     "Double digit floor",
			raw:      "B2-1210",
			expected: ParsedRoom{Block: "B2", Floor: 12, Seq: 10},
		},
		{
			name:     "Lowercase block",
			raw:      "c-101",
			expected: ParsedRoom{Block: "C", Floor: 1, Seq: 1},
		},
		{
			name:     "Spaces around dash",
			raw:      "GH - 207",
			expected: ParsedRoom{Block: "GH", Floor: 2, Seq: 7},
		},
		{
			name:      "Missing dash",
			raw:       "A304",
			expectErr: true,
		},
		{
			name:      "Too few digits",
			raw:       "A-34",
			expectErr: true,
		},
		{
			name:      "Zero floor",
			raw:       "A-004",
			expectErr: true,
		},
		{
			name:      "Empty string",
			raw:       "",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseRoomNumber(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			}
		})
	}
}

func TestParsedRoomString(t *testing.T) {
	testCases := []struct {
		raw       string
		canonical string
	}{
		{"A-304", "A-304"},
		{"B2-1210", "B2-1210"},
		{"c-101", "C-101"},
		{"GH - 207", "GH-207"},
	}

	for _, tc := range testCases {
		parsed, err := ParseRoomNumber(tc.raw)
		assert.NoError(t, err)
		assert.Equal(t, tc.canonical, parsed.String())
	}
}
