package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexID is a result identifier that the backend may send as a JSON string
// ("AI101") or a bare number (1). It is normalized to its string form, which
// is the only key the display layer can round-trip.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) { return json.Marshal(string(f)) }

func (f FlexID) String() string { return string(f) }

// Money carries a price exactly as the backend shipped it: either a display
// string ("₹8,500") or a bare number (300.0). Parsing into an amount is the
// booking orchestrator's job, not the decoder's.
type Money string

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Money(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = Money(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(string(m)) }

func (m Money) String() string { return string(m) }
