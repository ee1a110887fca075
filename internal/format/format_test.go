package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "iso date",
			raw:      "2004-04-04",
			expected: "4 Avr. 04",
		},
		{
			name:     "day without leading zero",
			raw:      "2001-01-01",
			expected: "1 Jan. 01",
		},
		{
			name:     "two digit year from 21st century",
			raw:      "2021-11-22",
			expected: "22 Nov. 21",
		},
		{
			name:     "accented month",
			raw:      "2022-02-15",
			expected: "15 Fév. 22",
		},
		{
			name:     "august keeps circumflex",
			raw:      "2020-08-09",
			expected: "9 Aoû. 20",
		},
		{
			name:     "slash separated",
			raw:      "2019/12/31",
			expected: "31 Déc. 19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatDateUnparsable(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2004-13-45", "hello world"} {
		_, err := FormatDate(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"pending", "En attente"},
		{"accepted", "Accepté"},
		{"refused", "Refusé"},
		// Unknown values pass through unchanged rather than failing.
		{"archived", "archived"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatStatus(tt.raw))
	}
}
