package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMYToISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // dd/mm/yyyy after round-trip, "" = rejected
	}{
		{"padded", "05/03/2024", "05/03/2024"},
		{"unpadded", "5/3/2024", "05/03/2024"},
		{"end of month", "31/12/2024", "31/12/2024"},
		{"leap day", "29/02/2024", "29/02/2024"},
		{"nonexistent day", "31/02/2024", ""},
		{"non leap year", "29/02/2023", ""},
		{"month thirteen", "01/13/2024", ""},
		{"day zero", "0/01/2024", ""},
		{"two digit year", "01/01/24", ""},
		{"iso input", "2024-03-05", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iso := DMYToISO(tt.input)
			if tt.want == "" {
				assert.Empty(t, iso)
				return
			}
			assert.Equal(t, tt.want, ISOToDMY(iso))
		})
	}
}

func TestParseISOAcceptsLegacyFractions(t *testing.T) {
	// Older documents store dates with millisecond fractions.
	got, ok := ParseISO("2024-03-05T00:00:00.000Z")
	require.True(t, ok)
	assert.Equal(t, 2024, got.UTC().Year())
	assert.Equal(t, time.March, got.UTC().Month())
}

func TestISOToDMYBadInput(t *testing.T) {
	assert.Empty(t, ISOToDMY(""))
	assert.Empty(t, ISOToDMY("not a date"))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"simple", "15/01/2024", 1, "15/02/2024"},
		{"year boundary", "15/12/2024", 1, "15/01/2025"},
		{"rolls over short month", "31/01/2024", 1, "02/03/2024"},
		{"rolls over non leap feb", "31/01/2023", 1, "03/03/2023"},
		{"several months", "30/11/2024", 3, "02/03/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(DMYToISO(tt.start), tt.months)
			assert.Equal(t, tt.want, ISOToDMY(got))
		})
	}
}

func TestAddMonthsBadInput(t *testing.T) {
	assert.Empty(t, AddMonths("", 1))
	assert.Empty(t, AddMonths("garbage", 1))
}

func TestDaysUntilFrom(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.Local)

	assert.Equal(t, 0, DaysUntilFrom(now, DMYToISO("10/06/2024")))
	assert.Equal(t, 1, DaysUntilFrom(now, DMYToISO("11/06/2024")))
	assert.Equal(t, -1, DaysUntilFrom(now, DMYToISO("09/06/2024")))
	assert.Equal(t, 7, DaysUntilFrom(now, DMYToISO("17/06/2024")))
	assert.Equal(t, 0, DaysUntilFrom(now, ""))
}
