package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `35000.75`, 35000.75},
		{"integer", `1500000`, 1500000},
		{"localized string", `"1.500.000"`, 1500000},
		{"string with decimals", `"35.000,75"`, 35000.75},
		{"plain string", `"82"`, 82},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"null", `null`, 0},
		{"object", `{"x":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.InDelta(t, tt.want, a.Float(), 1e-9)
		})
	}
}

func TestAmountMarshal(t *testing.T) {
	out, err := json.Marshal(Amount(1500000))
	require.NoError(t, err)
	assert.Equal(t, `1500000`, string(out))

	out, err = json.Marshal(Amount(35000.75))
	require.NoError(t, err)
	assert.Equal(t, `35000.75`, string(out))
}

func TestAmountInsideStruct(t *testing.T) {
	// Mixed representations in a single document must all decode.
	raw := `{"quote":"1.500.000","expenses":[{"id":"e1","amount":35000.75},{"id":"e2","amount":"12.000"}]}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, 1500000.0, job.Quote.Float())
	assert.Equal(t, 35000.75, job.Expenses[0].Amount.Float())
	assert.Equal(t, 12000.0, job.Expenses[1].Amount.Float())
}
