package model

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Allocation is one portfolio constituent and its share of the monthly investment.
type Allocation struct {
	Company string
	Ratio   float64 // 0.0 ~ 1.0
}

// Allocations keeps the backend's display order. It is encoded as a JSON object
// whose key order is significant, so it cannot be a Go map.
type Allocations []Allocation

// UnmarshalJSON decodes a JSON object, preserving key order.
func (a *Allocations) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Errorf("investment ratios: expected object, got %v", tok)
	}
	out := Allocations{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		company, ok := tok.(string)
		if !ok {
			return errors.Errorf("investment ratios: unexpected key %v", tok)
		}
		var ratio float64
		if err := dec.Decode(&ratio); err != nil {
			return errors.Wrapf(err, "investment ratios: %s", company)
		}
		out = append(out, Allocation{Company: company, Ratio: ratio})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

// MarshalJSON encodes the allocations as a JSON object in slice order.
func (a Allocations) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, al := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(al.Company)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(al.Ratio)
		if err != nil {
			return nil, errors.Wrapf(err, "investment ratios: %s", al.Company)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// PlanSnapshot is the portfolio allocation served by GET /api/plan_details.
type PlanSnapshot struct {
	InvestmentRatios     Allocations         `json:"investment_ratios"`
	SelectedCompaniesROI map[string]*float64 `json:"selected_companies_roi"`
	WeightedAvgROI       *float64            `json:"weighted_avg_roi"`
}

// CompanyROI returns the ROI percentage for a company. A missing key and a
// JSON null are both reported as absent.
func (p *PlanSnapshot) CompanyROI(company string) (float64, bool) {
	v, ok := p.SelectedCompaniesROI[company]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}
