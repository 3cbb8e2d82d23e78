package domain

import (
	"bytes"
	"encoding/json"

	"github.com/sgodoy/joblist/internal/format"
)

// amountParser normalizes legacy numeric strings found in old
// documents. Old versions of the app stored whatever the input mask
// held, so an amount may arrive as 35000.75 or as "35.000,75".
var amountParser = format.NewFormatter(format.LocaleCL())

// Amount is a monetary quantity in the base currency. Unmarshalling is
// deliberately tolerant: a JSON number is taken as-is, a string is run
// through the localized number parser, and anything else normalizes to
// zero rather than failing the whole document.
type Amount float64

// Float returns the amount as a plain float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// MarshalJSON writes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// UnmarshalJSON accepts a number, a localized numeric string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(amountParser.ParseNumber(s))
		return nil
	}

	*a = 0
	return nil
}
