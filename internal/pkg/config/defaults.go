package config

import "github.com/ougirez/demostats/internal/domain"

func DefaultIndicators() []domain.Indicator {
	return []domain.Indicator{
		{
			Code:        "SP.POP.TOTL",
			Name:        "total_population",
			Description: "Total population",
			Unit:        "inhabitants",
			Display:     domain.Display{Label: "Total population", Format: ".0f", ColorScale: "Blues", Evolution: true},
		},
		{
			Code:        "SP.DYN.TFRT.IN",
			Name:        "fertility_rate",
			Description: "Fertility rate",
			Unit:        "children per woman",
			Display:     domain.Display{Label: "Fertility rate", Format: ".1f", ColorScale: "Viridis"},
		},
		{
			Code:        "SP.DYN.CDRT.IN",
			Name:        "mortality_rate",
			Description: "Crude death rate",
			Unit:        "deaths/1000 inhabitants",
			Display: domain.Display{
				Label:      "Mortality rate",
				Format:     ".1f",
				ColorScale: "Reds",
				Highlight:  domain.HighlightTopNOnly,
			},
		},
		{
			Code:        "SP.DYN.LE00.IN",
			Name:        "life_expectancy",
			Description: "Life expectancy",
			Unit:        "years",
			Display:     domain.Display{Label: "Life expectancy", Format: ".1f", ColorScale: "RdYlGn"},
		},
		{
			Code:        "SP.POP.GROW",
			Name:        "population_growth",
			Description: "Population growth",
			Unit:        "%",
			Display:     domain.Display{Label: "Population growth", Unit: "% per year", Format: ".1f", ColorScale: "RdYlBu"},
		},
		{
			Code:        "SP.URB.TOTL.IN.ZS",
			Name:        "urban_population_pct",
			Description: "Urban population",
			Unit:        "%",
			Display:     domain.Display{Label: "Urban population", Unit: "% of total population", Format: ".1f", ColorScale: "Purples"},
		},
	}
}

// DefaultNotableEntities are the ten most populous countries with fixed colors.
func DefaultNotableEntities() []domain.NotableEntity {
	return []domain.NotableEntity{
		{Name: "China", Color: "#1f77b4"},
		{Name: "India", Color: "#ff7f0e"},
		{Name: "United States", Color: "#2ca02c"},
		{Name: "Indonesia", Color: "#d62728"},
		{Name: "Pakistan", Color: "#9467bd"},
		{Name: "Brazil", Color: "#8c564b"},
		{Name: "Nigeria", Color: "#e377c2"},
		{Name: "Bangladesh", Color: "#7f7f7f"},
		{Name: "Russian Federation", Label: "Russia", Color: "#bcbd22"},
		{Name: "Mexico", Color: "#17becf"},
	}
}

// DefaultCountries lists entity names that are countries rather than
// aggregate regions, used to restrict the evolution view.
func DefaultCountries() []string {
	return []string{
		"China", "India", "United States", "Indonesia", "Pakistan", "Brazil",
		"Nigeria", "Bangladesh", "Russian Federation", "Mexico", "Japan",
		"Ethiopia", "Philippines", "Egypt, Arab Rep.", "Viet Nam", "Congo, Dem. Rep.",
		"Turkiye", "Iran, Islamic Rep.", "Germany", "Thailand", "United Kingdom",
		"France", "Italy", "South Africa", "Myanmar", "Kenya", "Colombia", "Spain",
		"Uganda", "Argentina", "Algeria", "Sudan", "Ukraine", "Iraq", "Afghanistan",
		"Poland", "Canada", "Morocco", "Saudi Arabia", "Uzbekistan", "Peru", "Malaysia",
	}
}
