package gars

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed gars.yaml
var defaultPropertiesYAML []byte

// Properties is the grid zoom table, keyed by grid type key.
type Properties struct {
	Grids map[string]GridProperties `yaml:"grids"`
}

// GridProperties configures one grid. Nil fields fall back to the defaults.
type GridProperties struct {
	Enabled      *bool              `yaml:"enabled,omitempty"`
	MinZoom      *int               `yaml:"min_zoom,omitempty"`
	MaxZoom      *int               `yaml:"max_zoom,omitempty"`
	LinesMinZoom *int               `yaml:"lines_min_zoom,omitempty"`
	LinesMaxZoom *int               `yaml:"lines_max_zoom,omitempty"`
	Labeler      *LabelerProperties `yaml:"labeler,omitempty"`
}

// LabelerProperties configures the labeler of one grid.
type LabelerProperties struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	MinZoom *int  `yaml:"min_zoom,omitempty"`
	MaxZoom *int  `yaml:"max_zoom,omitempty"`
}

// DefaultProperties returns the embedded zoom table.
func DefaultProperties() Properties {
	props, err := decodeProperties(defaultPropertiesYAML)
	if err != nil {
		panic(fmt.Sprintf("gars: embedded properties: %v", err))
	}
	return props
}

// LoadProperties reads a YAML zoom table and merges it over the defaults.
// Grids and fields missing from the file keep their default values.
func LoadProperties(path string) (Properties, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Properties{}, err
	}
	return ParseProperties(b)
}

// ParseProperties decodes a YAML zoom table and merges it over the defaults.
func ParseProperties(b []byte) (Properties, error) {
	overrides, err := decodeProperties(b)
	if err != nil {
		return Properties{}, err
	}

	props := DefaultProperties()
	for key, override := range overrides.Grids {
		props.Grids[key] = props.Grids[key].merge(override)
	}

	if err := props.Validate(); err != nil {
		return Properties{}, err
	}
	return props, nil
}

func decodeProperties(b []byte) (Properties, error) {
	var props Properties
	if err := yaml.Unmarshal(b, &props); err != nil {
		return Properties{}, fmt.Errorf("decode properties: %w", err)
	}
	if props.Grids == nil {
		props.Grids = make(map[string]GridProperties)
	}
	return props, nil
}

// Validate checks the grid keys and zoom windows.
func (p Properties) Validate() error {
	for key, grid := range p.Grids {
		if _, err := ParseGridType(key); err != nil {
			return fmt.Errorf("grids.%s: %w", key, err)
		}
		if err := validZoomRange(grid.MinZoom, grid.MaxZoom); err != nil {
			return fmt.Errorf("grids.%s: %w", key, err)
		}
		if err := validZoomRange(grid.LinesMinZoom, grid.LinesMaxZoom); err != nil {
			return fmt.Errorf("grids.%s.lines: %w", key, err)
		}
		if grid.Labeler != nil {
			if err := validZoomRange(grid.Labeler.MinZoom, grid.Labeler.MaxZoom); err != nil {
				return fmt.Errorf("grids.%s.labeler: %w", key, err)
			}
		}
	}
	return nil
}

// Grid returns the properties of a grid type.
func (p Properties) Grid(t GridType) GridProperties {
	return p.Grids[t.String()]
}

func validZoomRange(minZoom, maxZoom *int) error {
	if minZoom != nil && *minZoom < 0 {
		return fmt.Errorf("min_zoom must be >= 0, got %d", *minZoom)
	}
	if maxZoom != nil && *maxZoom < 0 {
		return fmt.Errorf("max_zoom must be >= 0, got %d", *maxZoom)
	}
	if minZoom != nil && maxZoom != nil && *maxZoom < *minZoom {
		return fmt.Errorf("min_zoom %d can not be larger than max_zoom %d", *minZoom, *maxZoom)
	}
	return nil
}

func (g GridProperties) merge(override GridProperties) GridProperties {
	if override.Enabled != nil {
		g.Enabled = override.Enabled
	}
	if override.MinZoom != nil {
		g.MinZoom = override.MinZoom
	}
	if override.MaxZoom != nil {
		g.MaxZoom = override.MaxZoom
	}
	if override.LinesMinZoom != nil {
		g.LinesMinZoom = override.LinesMinZoom
	}
	if override.LinesMaxZoom != nil {
		g.LinesMaxZoom = override.LinesMaxZoom
	}
	if override.Labeler != nil {
		labeler := LabelerProperties{}
		if g.Labeler != nil {
			labeler = *g.Labeler
		}
		if override.Labeler.Enabled != nil {
			labeler.Enabled = override.Labeler.Enabled
		}
		if override.Labeler.MinZoom != nil {
			labeler.MinZoom = override.Labeler.MinZoom
		}
		if override.Labeler.MaxZoom != nil {
			labeler.MaxZoom = override.Labeler.MaxZoom
		}
		g.Labeler = &labeler
	}
	return g
}

// newGrid builds a grid from its properties. Missing values give an enabled
// grid over every zoom level.
func (g GridProperties) newGrid(t GridType) *Grid {
	grid := NewGrid(t)
	grid.Enabled = boolOr(g.Enabled, true)
	grid.MinZoom = intOr(g.MinZoom, 0)
	grid.MaxZoom = intOr(g.MaxZoom, NoMaxZoom)
	grid.LinesMinZoom = g.LinesMinZoom
	grid.LinesMaxZoom = g.LinesMaxZoom

	if g.Labeler != nil {
		grid.Labeler = &Labeler{
			Enabled: boolOr(g.Labeler.Enabled, true),
			MinZoom: intOr(g.Labeler.MinZoom, grid.MinZoom),
			MaxZoom: intOr(g.Labeler.MaxZoom, NoMaxZoom),
		}
	}
	return grid
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
