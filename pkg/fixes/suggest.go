// Package fixes turns validation issues into suggested remedies and, on request,
// applies the safe ones to a copy of the document.
package fixes

import (
	"encoding/json"
	"fmt"

	"github.com/githubnext/spawncheck/pkg/validator"
)

// PositionExample is the format hint shown for malformed positions
const PositionExample = `Use format: "x.x y.y z.z" (e.g., "1234.5 10.0 5678.9")`

// Suggest returns the remedies for one issue
func Suggest(issue validator.Issue) []string {
	switch issue.Kind {
	case validator.MissingField:
		return []string{fmt.Sprintf("Add: %q: %s", issue.Field, renderJSON(DefaultOrPlaceholder(issue.Field)))}

	case validator.InvalidType:
		return []string{fmt.Sprintf("Change type of '%s' to %s", issue.Field, issue.Expected)}

	case validator.InvalidPosition:
		return []string{PositionExample}

	case validator.InvalidArray:
		if issue.Element != "" {
			return []string{fmt.Sprintf("Change type of '%s' to array of %ss", issue.Field, issue.Element)}
		}
		return []string{fmt.Sprintf("Change type of '%s' to array", issue.Field)}

	case validator.EmptyArray:
		return []string{fmt.Sprintf("Add at least one entry to '%s'", issue.Field)}

	case validator.NonNumericKey:
		return []string{fmt.Sprintf(`Rename tier key '%s' to a numeric string (e.g., "1")`, issue.Field)}

	case validator.UnknownField:
		return []string{fmt.Sprintf("Remove field '%s'", issue.Field)}

	default:
		return nil
	}
}

// Enrich fills the suggestions of every fix record of result
func Enrich(result *validator.Result) {
	for i, issue := range result.Issues {
		if i >= len(result.Fixes) {
			break
		}
		result.Fixes[i].Suggestions = Suggest(issue)
	}
}

// renderJSON renders a default value on a single line
func renderJSON(value any) string {
	out, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%q", Placeholder)
	}
	return string(out)
}
