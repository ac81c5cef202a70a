package domain

type Observation struct {
	EntityName string  `json:"entity"`
	EntityCode string  `json:"entity_code"`
	Year       Year    `json:"year"`
	Value      float64 `json:"value"`
}

// Table holds every observation of one indicator in retrieval order.
type Table struct {
	Description  string        `json:"description"`
	Unit         string        `json:"unit"`
	Observations []Observation `json:"observations"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Observations)
}

type YearlyAggregate struct {
	Year      Year    `json:"year"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	MinValue  float64 `json:"min_value"`
	MinEntity string  `json:"min_entity"`
	MaxValue  float64 `json:"max_value"`
	MaxEntity string  `json:"max_entity"`
}

type MapPoint struct {
	Entity     string   `json:"entity"`
	EntityCode string   `json:"entity_code"`
	Value      *float64 `json:"value"`
}

type RankedEntry struct {
	Observation
	// Scale is the position of Value between the lowest and highest ranked values.
	Scale float64 `json:"scale"`
}

type SeriesPoint struct {
	Year  Year    `json:"year"`
	Value float64 `json:"value"`
}

type EntitySeries struct {
	Entity string        `json:"entity"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Points []SeriesPoint `json:"points"`
}
