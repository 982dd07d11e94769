package validator

import (
	"fmt"
	"strconv"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/locator"
	"github.com/githubnext/spawncheck/pkg/schema"
)

// Offsets of the numeric line estimate, relative to the start of a zone
const (
	globalSettingsLineOffset = 3
	zoneFieldLineOffset      = 6
	spawnPointLineOffset     = 16
)

// ValidateZones checks a zone configuration document. source is the original
// text and is only used to approximate line numbers.
func ValidateZones(doc any, source string) Result {
	w := newWalker(schema.KindZones, source)
	root, _ := doc.(*document.Object)

	w.checkGlobalSettings(root)

	zonesValue, ok := root.Get(schema.ZonesKey)
	zones, isArray := zonesValue.([]any)
	if !ok || !isArray {
		issue := Issue{
			Kind:     MissingField,
			Field:    schema.ZonesKey,
			Expected: schema.TypeArray,
			Scope:    "root",
			Label:    RootLabel,
		}
		if ok {
			issue.Actual = document.TypeName(zonesValue)
		}
		w.report(issue, locator.Hint{
			Path:     []string{schema.ZonesKey},
			Search:   fmt.Sprintf("%q", schema.ZonesKey),
			Estimate: 1,
		})
		return *w.result
	}

	w.result.Summary.Zones = len(zones)
	for zi, zoneValue := range zones {
		w.checkZone(zi, zoneValue)
	}

	return *w.result
}

func (w *walker) checkGlobalSettings(root *document.Object) {
	value, ok := root.Get(schema.GlobalSettingsKey)
	settings, isObject := value.(*document.Object)
	if !ok || !isObject || settings == nil {
		issue := Issue{
			Kind:     MissingField,
			Field:    schema.GlobalSettingsKey,
			Expected: schema.TypeObject,
			Scope:    "root",
			Label:    RootLabel,
		}
		if ok {
			issue.Actual = document.TypeName(value)
		}
		w.report(issue, locator.Hint{
			Path:     []string{schema.GlobalSettingsKey},
			Search:   fmt.Sprintf("%q", schema.GlobalSettingsKey),
			Estimate: 1,
		})
		return
	}

	w.checkObject(settings, &schema.GlobalSettings, scope{
		label:  GlobalSettingsLabel,
		desc:   schema.GlobalSettingsKey,
		path:   []string{schema.GlobalSettingsKey},
		search: fmt.Sprintf("%q", schema.GlobalSettingsKey),
		estimate: func(fieldIndex int) int {
			return globalSettingsLineOffset + fieldIndex
		},
	})
}

func (w *walker) checkZone(zi int, zoneValue any) {
	path := []string{schema.ZonesKey, strconv.Itoa(zi)}
	zone, ok := zoneValue.(*document.Object)
	if !ok || zone == nil {
		w.report(Issue{
			Kind:     InvalidType,
			Field:    strconv.Itoa(zi),
			Expected: schema.TypeObject,
			Actual:   document.TypeName(zoneValue),
			Scope:    "zones",
			Label:    fallbackZoneName(zi),
			Path:     []string{schema.ZonesKey},
		}, locator.Hint{
			Path:     path,
			Estimate: locator.Estimate(zi, zoneFieldLineOffset, 0),
		})
		return
	}

	name := ZoneDisplayName(zone, zi)
	w.checkObject(zone, &schema.Zone, scope{
		label:  name,
		desc:   fmt.Sprintf("zone '%s'", name),
		path:   path,
		search: fmt.Sprintf("%q", name),
		estimate: func(fieldIndex int) int {
			return locator.Estimate(zi, zoneFieldLineOffset+fieldIndex, 0)
		},
	})

	spawnPoints, ok := zone.Get("spawnPoints")
	points, isArray := spawnPoints.([]any)
	if !ok || !isArray {
		return
	}

	w.result.Summary.SpawnPoints += len(points)
	for si, pointValue := range points {
		w.checkSpawnPoint(zi, si, name, pointValue)
	}
}

func (w *walker) checkSpawnPoint(zi, si int, zoneName string, pointValue any) {
	path := []string{schema.ZonesKey, strconv.Itoa(zi), "spawnPoints", strconv.Itoa(si)}
	label := SpawnPointLabel(zoneName, si)
	estimate := locator.Estimate(zi, spawnPointLineOffset, si)

	point, ok := pointValue.(*document.Object)
	if !ok || point == nil {
		w.report(Issue{
			Kind:     InvalidType,
			Field:    strconv.Itoa(si),
			Expected: schema.TypeObject,
			Actual:   document.TypeName(pointValue),
			Scope:    fmt.Sprintf("spawnPoints of zone '%s'", zoneName),
			Label:    label,
			Path:     path[:3],
		}, locator.Hint{
			Path:     path,
			Estimate: estimate,
		})
		return
	}

	w.checkObject(point, &schema.SpawnPoint, scope{
		label:  label,
		desc:   fmt.Sprintf("spawn point '%s'", label),
		path:   path,
		search: `"spawnPoints"`,
		estimate: func(int) int {
			return estimate
		},
	})
}

// ZoneDisplayName returns the zone's name, or Zone_<n> (1-based) when it has none
func ZoneDisplayName(zone *document.Object, index int) string {
	if name, ok := zone.Get("name"); ok {
		if s, isString := name.(string); isString && s != "" {
			return s
		}
	}
	return fallbackZoneName(index)
}

func fallbackZoneName(index int) string {
	return fmt.Sprintf("Zone_%d", index+1)
}

// SpawnPointLabel returns the "<zone> > SpawnPoint_<n>" label (1-based)
func SpawnPointLabel(zoneName string, index int) string {
	return fmt.Sprintf("%s > SpawnPoint_%d", zoneName, index+1)
}
