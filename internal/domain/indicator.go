package domain

type Year = int

// HighlightPolicy decides which values of a year are shown on the map layer.
type HighlightPolicy string

const (
	HighlightNone     HighlightPolicy = "none"
	HighlightTopNOnly HighlightPolicy = "top_n_only"
)

type Display struct {
	Label      string          `mapstructure:"label" json:"label"`
	Unit       string          `mapstructure:"unit" json:"unit"`
	Format     string          `mapstructure:"format" json:"format"`
	ColorScale string          `mapstructure:"color_scale" json:"color_scale"`
	Highlight  HighlightPolicy `mapstructure:"highlight" json:"highlight" validate:"omitempty,oneof=none top_n_only"`
	Evolution  bool            `mapstructure:"evolution" json:"evolution"`
}

// Indicator is one metric fetched from the remote API.
// Name is the table identifier and must be a filesystem-safe slug.
type Indicator struct {
	Code        string  `mapstructure:"code" json:"code" validate:"required"`
	Name        string  `mapstructure:"name" json:"name" validate:"required,excludesall=/\\"`
	Description string  `mapstructure:"description" json:"description"`
	Unit        string  `mapstructure:"unit" json:"unit"`
	Display     Display `mapstructure:"display" json:"display"`
}

// Label is the human name of the indicator.
func (i Indicator) Label() string {
	if i.Display.Label != "" {
		return i.Display.Label
	}
	return i.Description
}

// DisplayUnit is the unit shown next to values in charts.
func (i Indicator) DisplayUnit() string {
	if i.Display.Unit != "" {
		return i.Display.Unit
	}
	return i.Unit
}

// HighlightPolicy returns the map policy, none when unset.
func (i Indicator) HighlightPolicy() HighlightPolicy {
	if i.Display.Highlight == "" {
		return HighlightNone
	}
	return i.Display.Highlight
}

// NotableEntity pins a chart color (and optionally a label) to an entity.
type NotableEntity struct {
	Name  string `mapstructure:"name" json:"name" validate:"required"`
	Label string `mapstructure:"label" json:"label,omitempty"`
	Color string `mapstructure:"color" json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// IndicatorInfo is a catalog entry as seen by the presentation layer.
type IndicatorInfo struct {
	Indicator
	Available bool `json:"available"`
}
