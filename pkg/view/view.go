// Package view defines the declarative configuration that parameterizes the
// engine's algorithms. A view is a value object: the engine only reads it,
// never mutates it.
//
// Views are authored as TOML files (see LoadFile) and serialized as JSON for
// API requests. Color configuration carries bucket keys only - resolving a
// key to an actual color is the rendering collaborator's job.
package view

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowboardhq/flowboard/pkg/errors"
	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/layout"
	"github.com/flowboardhq/flowboard/pkg/table"
	"github.com/flowboardhq/flowboard/pkg/timeline"
)

// Style selects the visual representation a view renders as.
type Style string

// Supported view styles.
const (
	StyleKanban Style = "kanban"
	StyleGantt  Style = "gantt"
	StyleTree   Style = "tree"
	StyleTable  Style = "table"
	StyleCanvas Style = "canvas"
)

// ValidStyles is the set of recognized view styles.
var ValidStyles = map[Style]bool{
	StyleKanban: true,
	StyleGantt:  true,
	StyleTree:   true,
	StyleTable:  true,
	StyleCanvas: true,
}

// Config is one view's declarative settings.
//
// Only the fields relevant to the configured style are consulted; the rest
// are ignored. This keeps saved views forward-compatible when a user
// switches a view between styles.
type Config struct {
	Name  string `json:"name" toml:"name" bson:"name"`
	Style Style  `json:"style" toml:"style" bson:"style"`

	// Kanban
	Column              field.Ref  `json:"column,omitempty" toml:"column" bson:"column,omitempty"`
	Swimlane            *field.Ref `json:"swimlane,omitempty" toml:"swimlane" bson:"swimlane,omitempty"`
	ColumnOrder         []string   `json:"column_order,omitempty" toml:"column_order" bson:"column_order,omitempty"`
	SwimlaneOrder       []string   `json:"swimlane_order,omitempty" toml:"swimlane_order" bson:"swimlane_order,omitempty"`
	PruneEmptyColumns   bool       `json:"prune_empty_columns,omitempty" toml:"prune_empty_columns" bson:"prune_empty_columns,omitempty"`
	PruneEmptySwimlanes bool       `json:"prune_empty_swimlanes,omitempty" toml:"prune_empty_swimlanes" bson:"prune_empty_swimlanes,omitempty"`

	// Tree
	EdgeType string `json:"edge_type,omitempty" toml:"edge_type" bson:"edge_type,omitempty"`

	// Gantt
	StartField field.Ref      `json:"start_field,omitempty" toml:"start_field" bson:"start_field,omitempty"`
	EndField   field.Ref      `json:"end_field,omitempty" toml:"end_field" bson:"end_field,omitempty"`
	Scale      timeline.Scale `json:"scale,omitempty" toml:"scale" bson:"scale,omitempty"`

	// Table
	SortField     field.Ref       `json:"sort_field,omitempty" toml:"sort_field" bson:"sort_field,omitempty"`
	SortDirection table.Direction `json:"sort_direction,omitempty" toml:"sort_direction" bson:"sort_direction,omitempty"`

	// Canvas
	Layout layout.Strategy `json:"layout,omitempty" toml:"layout" bson:"layout,omitempty"`
	Axis   layout.Axis     `json:"axis,omitempty" toml:"axis" bson:"axis,omitempty"`
	Seed   uint64          `json:"seed,omitempty" toml:"seed" bson:"seed,omitempty"`

	// Neighborhood filter (any style)
	FocalNodeID string `json:"focal_node_id,omitempty" toml:"focal_node_id" bson:"focal_node_id,omitempty"`
	MaxHops     int    `json:"max_hops,omitempty" toml:"max_hops" bson:"max_hops,omitempty"`

	// ColorField names the bucket key used for color mapping. The engine
	// emits the key only; color resolution lives with the renderer.
	ColorField string `json:"color_field,omitempty" toml:"color_field" bson:"color_field,omitempty"`
}

// Defaults applied by ValidateAndSetDefaults.
const (
	DefaultScale = timeline.ScaleWeek
	DefaultSeed  = uint64(42)
)

// ValidateAndSetDefaults checks the configuration for its style and fills in
// defaults. Invalid grouping references degrade at compute time (sentinel
// buckets) rather than failing here; this method only rejects configurations
// that cannot be interpreted at all.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Style == "" {
		c.Style = StyleTable
	}
	if !ValidStyles[c.Style] {
		return fmt.Errorf("invalid style: %q (must be one of: kanban, gantt, tree, table, canvas)", c.Style)
	}

	switch c.Style {
	case StyleKanban:
		if c.Column.IsZero() {
			c.Column = field.Ref{Key: "status"}
		}
	case StyleGantt:
		if c.StartField.IsZero() || c.EndField.IsZero() {
			return fmt.Errorf("gantt view requires start_field and end_field")
		}
		if c.Scale == "" {
			c.Scale = DefaultScale
		}
		switch c.Scale {
		case timeline.ScaleDay, timeline.ScaleWeek, timeline.ScaleMonth:
		default:
			return errors.New(errors.ErrCodeInvalidScale, "invalid scale: %q (must be one of: day, week, month)", c.Scale)
		}
	case StyleTree:
		if c.EdgeType == "" {
			return fmt.Errorf("tree view requires edge_type")
		}
	case StyleTable:
		if c.SortDirection == "" {
			c.SortDirection = table.Ascending
		}
	case StyleCanvas:
		if c.Layout == "" {
			c.Layout = layout.StrategyHierarchy
		}
		if c.Axis == "" {
			c.Axis = layout.AxisTopDown
		}
		if c.Seed == 0 {
			c.Seed = DefaultSeed
		}
	}

	if c.MaxHops < 0 {
		c.MaxHops = 0
	}
	return c.validateFieldKeys()
}

// validateFieldKeys rejects malformed property keys in the refs the
// configured style consults. Relational refs are checked on their target
// field; resolution failures beyond that degrade to sentinel buckets at
// compute time.
func (c *Config) validateFieldKeys() error {
	refs := map[string]field.Ref{}
	switch c.Style {
	case StyleKanban:
		refs["column"] = c.Column
		if c.Swimlane != nil {
			refs["swimlane"] = *c.Swimlane
		}
	case StyleGantt:
		refs["start_field"] = c.StartField
		refs["end_field"] = c.EndField
	case StyleTable:
		refs["sort_field"] = c.SortField
	}

	for name, ref := range refs {
		key := ref.Key
		if ref.Path != nil {
			key = ref.Path.TargetField
		}
		if key == "" {
			continue
		}
		if err := errors.ValidateFieldKey(key); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.ColorField != "" {
		if err := errors.ValidateFieldKey(c.ColorField); err != nil {
			return fmt.Errorf("color_field: %w", err)
		}
	}
	return nil
}

// LoadFile reads and validates a view configuration from a TOML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates a TOML view configuration.
func Load(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse view: %w", err)
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return c, nil
}
