// Package schema is the registry of the spawn configuration document kinds.
//
// The tables are plain data: one generic walker in the validator package checks
// any Object against them.
package schema

import (
	"fmt"
	"strings"
)

// Kind identifies a supported document kind
type Kind string

const (
	KindZones Kind = "zones"
	KindTiers Kind = "tiers"
)

// Kinds returns the supported document kinds
func Kinds() []Kind {
	return []Kind{KindZones, KindTiers}
}

// ParseKind converts a command-line type argument into a Kind
func ParseKind(s string) (Kind, error) {
	for _, kind := range Kinds() {
		if string(kind) == strings.ToLower(strings.TrimSpace(s)) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown type '%s'. Must be 'zones' or 'tiers'", s)
}

// FieldType is the JSON type a field must have
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeArray  FieldType = "array"
	TypeObject FieldType = "object"
)

// Format is an additional constraint checked on top of the field type
type Format int

const (
	FormatNone Format = iota
	// FormatPosition is a "x y z" string of three finite numbers
	FormatPosition
	// FormatNumberList is an array whose every element is a number
	FormatNumberList
	// FormatStringList is a non-empty array whose every element is a string
	FormatStringList
)

// String returns the name used in the schema description
func (f Format) String() string {
	switch f {
	case FormatPosition:
		return "position"
	case FormatNumberList:
		return "number-list"
	case FormatStringList:
		return "string-list"
	default:
		return ""
	}
}

// ElementType returns the element type of list formats
func (f Format) ElementType() FieldType {
	switch f {
	case FormatNumberList:
		return TypeNumber
	case FormatStringList:
		return TypeString
	default:
		return ""
	}
}

// Field is one required field of an object
type Field struct {
	Name   string
	Type   FieldType
	Format Format
	// Items is the schema of each element when Type is TypeArray and elements are objects
	Items *Object
}

// Object is an ordered list of required fields
type Object struct {
	Name   string
	Fields []Field
}

// Field returns the declaration of the named field
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order
func (o *Object) FieldNames() []string {
	names := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		names[i] = f.Name
	}
	return names
}

// GlobalSettings controls system-wide spawn behaviour
var GlobalSettings = Object{
	Name: "globalSettings",
	Fields: []Field{
		{Name: "systemEnabled", Type: TypeNumber},
		{Name: "checkInterval", Type: TypeNumber},
		{Name: "maxEntitiesPerZone", Type: TypeNumber},
		{Name: "entityLifetime", Type: TypeNumber},
		{Name: "minSpawnDistanceFromPlayer", Type: TypeNumber},
	},
}

// SpawnPoint is a sub-location within a zone
var SpawnPoint = Object{
	Name: "spawnPoint",
	Fields: []Field{
		{Name: "position", Type: TypeString, Format: FormatPosition},
		{Name: "radius", Type: TypeNumber},
		{Name: "tierIds", Type: TypeArray, Format: FormatNumberList},
		{Name: "entities", Type: TypeNumber},
		{Name: "useFixedHeight", Type: TypeNumber},
	},
}

// Zone is a named spatial trigger region
var Zone = Object{
	Name: "zone",
	Fields: []Field{
		{Name: "name", Type: TypeString},
		{Name: "enabled", Type: TypeNumber},
		{Name: "position", Type: TypeString, Format: FormatPosition},
		{Name: "triggerRadius", Type: TypeNumber},
		{Name: "spawnChance", Type: TypeNumber},
		{Name: "despawnOnExit", Type: TypeNumber},
		{Name: "despawnDistance", Type: TypeNumber},
		{Name: "respawnCooldown", Type: TypeNumber},
		{Name: "spawnPoints", Type: TypeArray, Items: &SpawnPoint},
	},
}

// Tier is a named group of spawnable entity classnames
var Tier = Object{
	Name: "tier",
	Fields: []Field{
		{Name: "name", Type: TypeString},
		{Name: "classnames", Type: TypeArray, Format: FormatStringList},
	},
}

// Root-level keys of each document kind
const (
	GlobalSettingsKey = "globalSettings"
	ZonesKey          = "zones"
	TiersKey          = "tiers"
)
