package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ougirez/demostats/internal/domain"
)

// PageMeta is element 0 of the indicator API envelope.
type PageMeta struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

type Ref struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Record is one raw entry of element 1 of the envelope. Value is nil when the
// entity reported nothing for that year.
type Record struct {
	Indicator       Ref      `json:"indicator"`
	Country         Ref      `json:"country"`
	CountryISO3Code string   `json:"countryiso3code"`
	Date            string   `json:"date"`
	Value           *float64 `json:"value"`
}

// Observation maps a record to an observation. ok is false for null values.
func (r Record) Observation() (obs domain.Observation, ok bool, err error) {
	if r.Value == nil {
		return domain.Observation{}, false, nil
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.Date))
	if err != nil {
		return domain.Observation{}, false, fmt.Errorf("failed to parse date %q: %w", r.Date, err)
	}

	return domain.Observation{
		EntityName: r.Country.Value,
		EntityCode: r.Country.ID,
		Year:       year,
		Value:      *r.Value,
	}, true, nil
}
