package validator

import (
	"fmt"
	"regexp"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/locator"
	"github.com/githubnext/spawncheck/pkg/schema"
)

var numericKeyPattern = regexp.MustCompile(`^\d+$`)

const tierFieldLineOffset = 3

// ValidateTiers checks a tier configuration document. Tiers are visited in the
// order their keys appear in the source.
func ValidateTiers(doc any, source string) Result {
	w := newWalker(schema.KindTiers, source)
	root, _ := doc.(*document.Object)

	tiersValue, ok := root.Get(schema.TiersKey)
	tiers, isObject := tiersValue.(*document.Object)
	if !ok || !isObject || tiers == nil {
		issue := Issue{
			Kind:     MissingField,
			Field:    schema.TiersKey,
			Expected: schema.TypeObject,
			Scope:    "root",
			Label:    RootLabel,
		}
		if ok {
			issue.Actual = document.TypeName(tiersValue)
		}
		w.report(issue, locator.Hint{
			Path:     []string{schema.TiersKey},
			Search:   fmt.Sprintf("%q", schema.TiersKey),
			Estimate: 1,
		})
		return *w.result
	}

	w.result.Summary.Tiers = tiers.Len()
	for ti, key := range tiers.Keys() {
		value, _ := tiers.Get(key)
		w.checkTier(ti, key, value)
	}

	return *w.result
}

func (w *walker) checkTier(ti int, key string, value any) {
	label := TierLabel(key)
	path := []string{schema.TiersKey, key}
	search := fmt.Sprintf("%q", key)
	estimate := func(fieldIndex int) int {
		return max(ti*locator.LinesPerTier+tierFieldLineOffset+fieldIndex, 1)
	}

	if !numericKeyPattern.MatchString(key) {
		w.report(Issue{
			Kind:  NonNumericKey,
			Field: key,
			Value: key,
			Scope: "tiers",
			Label: label,
			Path:  path,
		}, locator.Hint{
			Path:     path,
			Search:   search,
			Estimate: estimate(-1),
		})
	}

	tier, ok := value.(*document.Object)
	if !ok || tier == nil {
		w.report(Issue{
			Kind:     InvalidType,
			Field:    key,
			Expected: schema.TypeObject,
			Actual:   document.TypeName(value),
			Scope:    "tiers",
			Label:    label,
			Path:     []string{schema.TiersKey},
		}, locator.Hint{
			Path:     path,
			Search:   search,
			Estimate: estimate(-1),
		})
		return
	}

	if classnames, ok := tier.Get("classnames"); ok {
		if list, isArray := classnames.([]any); isArray {
			w.result.Summary.Classnames += len(list)
		}
	}

	w.checkObject(tier, &schema.Tier, scope{
		label:    label,
		desc:     fmt.Sprintf("tier '%s'", label),
		path:     path,
		search:   search,
		estimate: estimate,
	})
}

// TierLabel returns the Tier_<key> label
func TierLabel(key string) string {
	return "Tier_" + key
}

// Validate dispatches to the validator of kind
func Validate(kind schema.Kind, doc any, source string) Result {
	if kind == schema.KindTiers {
		return ValidateTiers(doc, source)
	}
	return ValidateZones(doc, source)
}
