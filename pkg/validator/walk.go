package validator

import (
	"fmt"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/locator"
	"github.com/githubnext/spawncheck/pkg/schema"
)

// scope describes the object currently being checked
type scope struct {
	label string   // FixRecord label
	desc  string   // used in messages, e.g. "zone 'Alpha'"
	path  []string // JSON path of the object
	// search is the text that identifies the object in the source (used for
	// fields that are missing and therefore have no line of their own)
	search string
	// estimate returns the fallback line for the field at the given schema index
	estimate func(fieldIndex int) int
}

func (s scope) fieldPath(field string) []string {
	return append(append([]string{}, s.path...), field)
}

// walker accumulates issues for one document
type walker struct {
	loc    *locator.Locator
	result *Result
}

func newWalker(kind schema.Kind, source string) *walker {
	return &walker{
		loc:    locator.New(source),
		result: &Result{Kind: kind},
	}
}

func (w *walker) report(issue Issue, hint locator.Hint) {
	issue.Line = w.loc.Resolve(hint)
	w.result.add(issue)
}

// checkObject walks every required field of sch in declaration order and reports
// at most one issue per field
func (w *walker) checkObject(obj *document.Object, sch *schema.Object, sc scope) {
	for i, field := range sch.Fields {
		value, ok := obj.Get(field.Name)
		if !ok {
			w.report(Issue{
				Kind:     MissingField,
				Field:    field.Name,
				Expected: field.Type,
				Scope:    sc.desc,
				Label:    sc.label,
				Path:     sc.path,
			}, locator.Hint{
				Path:     sc.path,
				Search:   sc.search,
				Estimate: sc.estimate(i),
			})
			continue
		}

		issue, bad := checkField(field, value)
		if !bad {
			continue
		}
		issue.Scope = sc.desc
		issue.Label = sc.label
		issue.Path = sc.path
		w.report(issue, locator.Hint{
			Path:     sc.fieldPath(field.Name),
			Search:   fmt.Sprintf("%q", field.Name),
			Context:  sc.search,
			Estimate: sc.estimate(i),
		})
	}
}

// checkField applies the first failing rule for a present field
func checkField(field schema.Field, value any) (Issue, bool) {
	issue := Issue{
		Field:    field.Name,
		Expected: field.Type,
		Actual:   document.TypeName(value),
	}

	switch field.Format {
	case schema.FormatPosition:
		if !ValidatePosition(value) {
			issue.Kind = InvalidPosition
			issue.Value = renderValue(value)
			return issue, true
		}
		return Issue{}, false

	case schema.FormatNumberList, schema.FormatStringList:
		elem := field.Format.ElementType()
		arr, ok := value.([]any)
		if !ok {
			issue.Kind = InvalidArray
			issue.Element = elem
			return issue, true
		}
		for _, item := range arr {
			if !ValidateType(item, elem) {
				issue.Kind = InvalidArray
				issue.Element = elem
				issue.Value = renderValue(item)
				return issue, true
			}
		}
		if field.Format == schema.FormatStringList && len(arr) == 0 {
			issue.Kind = EmptyArray
			issue.Element = elem
			return issue, true
		}
		return Issue{}, false
	}

	if field.Type == schema.TypeArray {
		if _, ok := value.([]any); !ok {
			issue.Kind = InvalidArray
			return issue, true
		}
		return Issue{}, false
	}

	if !ValidateType(value, field.Type) {
		issue.Kind = InvalidType
		return issue, true
	}
	return Issue{}, false
}

// renderValue formats an offending value for a message
func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "null"
	default:
		out, err := document.MarshalIndent(v, "")
		if err != nil {
			return document.TypeName(v)
		}
		return string(trimNewline(out))
	}
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
