package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Status is the availability of a feature for a competitor.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusPartial     Status = "partial"
	StatusUnavailable Status = "unavailable"
	StatusAmount      Status = "amount"
	StatusUnknown     Status = "unknown"
)

// ParseStatus maps a raw status string to a Status. Anything unrecognised is unknown.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable
	case StatusPartial:
		return StatusPartial
	case StatusUnavailable:
		return StatusUnavailable
	case StatusAmount:
		return StatusAmount
	default:
		return StatusUnknown
	}
}

// UnmarshalJSON normalises the wire value through ParseStatus.
func (s *Status) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = StatusUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Unit qualifies an amount cell.
type Unit string

const (
	UnitCurrency Unit = "currency"
	UnitCustom   Unit = "custom"
)

// Amount holds the textual form of an amount cell. The wire value may be a
// JSON number or a string.
type Amount string

// UnmarshalJSON accepts numbers, strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = Amount(n.String())
	}
	return nil
}

// Feature is one of our catalog entries. Hub and Module are optional grouping
// labels; Order is optional and nil sorts last.
type Feature struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	Content              string   `json:"content,omitempty"`
	PlanID               string   `json:"plan_id"`
	Hub                  string   `json:"hub,omitempty"`
	Module               string   `json:"module,omitempty"`
	Order                *float64 `json:"order,omitempty"`
	DisplayOnProductCard *bool    `json:"display_on_product_card,omitempty"`
}

// CompetitorFeature is a competitor's status for one of our (plan, feature) pairs.
type CompetitorFeature struct {
	FeatureID string `json:"feature_id"`
	PlanID    string `json:"plan_id"`
	Status    Status `json:"status"`
	Amount    Amount `json:"amount,omitempty"`
	Unit      Unit   `json:"unit,omitempty"`
	Note      string `json:"note,omitempty"`
}

// EffectiveUnit returns the unit, treating an empty unit as custom.
func (cf CompetitorFeature) EffectiveUnit() Unit {
	if cf.Unit == "" {
		return UnitCustom
	}
	return cf.Unit
}

// HasNote reports whether the record carries a non-blank note.
func (cf CompetitorFeature) HasNote() bool {
	return strings.TrimSpace(cf.Note) != ""
}
