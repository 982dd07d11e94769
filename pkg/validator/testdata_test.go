package validator

import (
	"testing"

	"github.com/githubnext/spawncheck/pkg/document"
)

const validGlobalSettings = `"globalSettings": {
        "systemEnabled": 1,
        "checkInterval": 30,
        "maxEntitiesPerZone": 10,
        "entityLifetime": 600,
        "minSpawnDistanceFromPlayer": 50
    }`

const validZone = `{
            "name": "Alpha",
            "enabled": 1,
            "position": "1234.5 10.0 5678.9",
            "triggerRadius": 300,
            "spawnChance": 0.5,
            "despawnOnExit": 1,
            "despawnDistance": 500,
            "respawnCooldown": 120,
            "spawnPoints": [
                {
                    "position": "1 2 3",
                    "radius": 20,
                    "tierIds": [1, 2],
                    "entities": 4,
                    "useFixedHeight": 0
                }
            ]
        }`

// mustParse parses a JSON fixture or fails the test
func mustParse(t *testing.T, source string) any {
	t.Helper()
	doc, err := document.Parse([]byte(source))
	if err != nil {
		t.Fatalf("fixture does not parse: %v\n%s", err, source)
	}
	return doc
}
