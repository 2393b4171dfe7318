package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// CompanyConcept is the companyconcept document for a single filer. Only
// entityName and units.shares are read; the other fields are kept as raw
// JSON so an unexpected type in them cannot fail a lookup.
type CompanyConcept struct {
	CIK         json.RawMessage `json:"cik,omitempty"`
	Taxonomy    json.RawMessage `json:"taxonomy,omitempty"`
	Tag         json.RawMessage `json:"tag,omitempty"`
	Label       json.RawMessage `json:"label,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
	EntityName  string          `json:"entityName"`
	Units       Units           `json:"units"`
}

// Units holds observations by unit of measure.
type Units struct {
	Shares []Observation `json:"shares"`
}

// Observation is one reported value of the concept.
type Observation struct {
	Val   json.RawMessage `json:"val"`
	FY    FiscalYear      `json:"fy"`
	FP    json.RawMessage `json:"fp,omitempty"`
	Form  json.RawMessage `json:"form,omitempty"`
	End   json.RawMessage `json:"end,omitempty"`
	Filed json.RawMessage `json:"filed,omitempty"`
	Accn  json.RawMessage `json:"accn,omitempty"`
	Frame json.RawMessage `json:"frame,omitempty"`
}

// Numeric returns val when it is a JSON number. Magnitudes beyond float64
// range come back as positive or negative infinity.
func (o Observation) Numeric() (float64, bool) {
	raw := bytes.TrimSpace(o.Val)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// FiscalYear is the fy label of an observation. The SEC sends it as a JSON
// number, but it is stored, compared and displayed as text. Null, absent and
// non-scalar labels are empty.
type FiscalYear string

func (fy *FiscalYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*fy = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*fy = FiscalYear(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*fy = ""
			return nil
		}
		*fy = FiscalYear(n.String())
	}
	return nil
}

func (fy FiscalYear) String() string { return string(fy) }
