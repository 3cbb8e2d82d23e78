package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	f := NewFormatter(LocaleCL())

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"grouped integer", "1.500.000", 1500000},
		{"group and decimal", "35.000,75", 35000.75},
		{"decimal only", "1,5", 1.5},
		{"plain integer", "82", 82},
		{"currency symbol", "$1.500.000", 1500000},
		{"currency code", "1.500.000 CLP", 1500000},
		{"lowercase code", "1.500 clp", 1500},
		{"inner whitespace", " 1 500 000 ", 1500000},
		{"negative", "-35.000", -35000},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"lone separator", ",", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, f.ParseNumber(tt.input), 1e-9)
		})
	}
}

func TestNumber(t *testing.T) {
	f := NewFormatter(LocaleCL())

	assert.Equal(t, "1.500.000", f.Number(1500000))
	assert.Equal(t, "0", f.Number(0))
	assert.Equal(t, "35.000,75", f.Number(35000.75))
	assert.Equal(t, "1,5", f.Number(1.5))
}

func TestCurrency(t *testing.T) {
	f := NewFormatter(LocaleCL())

	assert.Equal(t, "$1.500.000", f.Currency(1500000))
	assert.Equal(t, "-$35.000", f.Currency(-35000))
	assert.Equal(t, "$0", f.Currency(0))
}

func TestParseNumberRoundTrip(t *testing.T) {
	f := NewFormatter(LocaleCL())

	for _, n := range []float64{0, 1, 82, 1500, 35000.75, 1500000, 987654321} {
		assert.InDelta(t, n, f.ParseNumber(f.Number(n)), 1e-6)
	}
}
