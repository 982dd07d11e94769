package fixes

import (
	"encoding/json"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/schema"
)

// Placeholder is suggested for fields without a known default
const Placeholder = "VALUE_NEEDED"

// defaultValues holds the suggested value of every required field. Values are
// cloned before they leave the package, so the table is never mutated.
var defaultValues = map[string]any{
	// globalSettings
	"systemEnabled":              json.Number("1"),
	"checkInterval":              json.Number("30"),
	"maxEntitiesPerZone":         json.Number("10"),
	"entityLifetime":             json.Number("600"),
	"minSpawnDistanceFromPlayer": json.Number("50"),

	// zone
	"name":            "NewZone",
	"enabled":         json.Number("1"),
	"position":        "0.0 0.0 0.0",
	"triggerRadius":   json.Number("300"),
	"spawnChance":     json.Number("0.5"),
	"despawnOnExit":   json.Number("1"),
	"despawnDistance": json.Number("500"),
	"respawnCooldown": json.Number("300"),
	"spawnPoints":     []any{},

	// spawn point
	"radius":         json.Number("50"),
	"tierIds":        []any{json.Number("1")},
	"entities":       json.Number("5"),
	"useFixedHeight": json.Number("0"),

	// tier
	"classnames": []any{},

	// containers
	schema.ZonesKey: []any{},
	schema.TiersKey: document.NewObject(),
}

func init() {
	defaultValues[schema.GlobalSettingsKey] = defaultObject(&schema.GlobalSettings)
}

// defaultObject builds an object with the default of every field of o, in declaration order
func defaultObject(o *schema.Object) *document.Object {
	obj := document.NewObject()
	for _, name := range o.FieldNames() {
		obj.Set(name, defaultValues[name])
	}
	return obj
}

// Default returns a fresh copy of the suggested value for field
func Default(field string) (any, bool) {
	value, ok := defaultValues[field]
	if !ok {
		return nil, false
	}
	return document.Clone(value), true
}

// DefaultOrPlaceholder returns Default(field), or Placeholder when the field has no default
func DefaultOrPlaceholder(field string) any {
	if value, ok := Default(field); ok {
		return value
	}
	return Placeholder
}
