package common

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexDecimal decodes a JSON value that may arrive as a number, a numeric
// string, null, or something unparsable. Unparsable and absent values coerce
// to zero instead of failing the request. Valid reports whether the original
// value parsed cleanly so callers can log the fallback without changing it.
type FlexDecimal struct {
	Value decimal.Decimal
	Set   bool
	Valid bool
}

// UnmarshalJSON never returns an error: the zero fallback is the contract.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	f.Value = decimal.Zero
	f.Set = true
	f.Valid = false

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	raw := string(trimmed)
	var quoted string
	if err := json.Unmarshal(trimmed, &quoted); err == nil {
		raw = strings.TrimSpace(quoted)
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	f.Value = parsed
	f.Valid = true
	return nil
}

// MarshalJSON writes the coerced value.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return f.Value.MarshalJSON()
}

// Coerced reports whether the field was present but fell back to zero.
func (f FlexDecimal) Coerced() bool {
	return f.Set && !f.Valid
}

// FlexInt applies the same leniency to integer fields. Fractional values
// truncate toward zero.
type FlexInt struct {
	Value int
	Set   bool
	Valid bool
}

// UnmarshalJSON never returns an error; see FlexDecimal.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var d FlexDecimal
	_ = d.UnmarshalJSON(data)
	f.Value = 0
	f.Set = d.Set
	f.Valid = d.Valid
	if d.Valid {
		f.Value = int(d.Value.IntPart())
	}
	return nil
}

// MarshalJSON writes the coerced value.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Coerced reports whether the field was present but fell back to zero.
func (f FlexInt) Coerced() bool {
	return f.Set && !f.Valid
}
