package fixes

import (
	"fmt"
	"strings"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/validator"
)

// Action records what Apply did (or would do) for one issue
type Action struct {
	Path    string
	Field   string
	Value   any
	Applied bool
	// Reason explains why the action was skipped
	Reason string
}

func (a Action) String() string {
	location := a.Path
	if location == "" {
		location = "/"
	}
	if !a.Applied {
		return fmt.Sprintf("skipped '%s' at %s: %s", a.Field, location, a.Reason)
	}
	return fmt.Sprintf("added '%s' at %s: %s", a.Field, location, renderJSON(a.Value))
}

// Apply adds the default value of every missing field to a deep copy of doc and
// returns the copy. Only absent fields are touched: values of the wrong type are
// left for the user, since there is no certain repair for them.
func Apply(doc any, issues []validator.Issue) (any, []Action) {
	fixed := document.Clone(doc)
	var actions []Action

	for _, issue := range issues {
		if issue.Kind != validator.MissingField {
			continue
		}

		action := Action{
			Path:  "/" + strings.Join(issue.Path, "/"),
			Field: issue.Field,
		}
		if len(issue.Path) == 0 {
			action.Path = ""
		}

		parent, ok := document.At(fixed, issue.Path...)
		obj, isObject := parent.(*document.Object)
		switch {
		case !ok || !isObject || obj == nil:
			action.Reason = "parent is not an object"
		case obj.Has(issue.Field):
			action.Reason = "field is present with the wrong type"
		default:
			value := DefaultOrPlaceholder(issue.Field)
			obj.Set(issue.Field, value)
			action.Value = value
			action.Applied = true
		}
		actions = append(actions, action)
	}

	return fixed, actions
}
