package validator

import (
	"fmt"
	"strings"

	"github.com/githubnext/spawncheck/pkg/schema"
)

// ErrorKind classifies a validation issue
type ErrorKind int

const (
	// MissingField is a required field that is absent. For the root containers
	// (globalSettings, zones, tiers) it also covers a value of the wrong type.
	MissingField ErrorKind = iota
	InvalidType
	InvalidPosition
	// InvalidArray is a value that must be an array but is not, or an array with
	// elements of the wrong type
	InvalidArray
	EmptyArray
	NonNumericKey
	// UnknownField is a property not declared by the schema (strict mode only)
	UnknownField
)

var errorKindNames = map[ErrorKind]string{
	MissingField:    "missing-field",
	InvalidType:     "invalid-type",
	InvalidPosition: "invalid-position",
	InvalidArray:    "invalid-array",
	EmptyArray:      "empty-array",
	NonNumericKey:   "non-numeric-key",
	UnknownField:    "unknown-field",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Labels used for issues outside any zone or tier
const (
	RootLabel           = "ROOT"
	GlobalSettingsLabel = "GLOBAL_SETTINGS"
)

// Issue is one validation failure
type Issue struct {
	Kind  ErrorKind
	Field string
	// Expected is the declared type of Field
	Expected schema.FieldType
	// Element is the required element type of list fields
	Element schema.FieldType
	// Actual is the JSON type found, empty when the field is absent
	Actual string
	// Value is the offending value rendered for humans
	Value string
	// Scope describes the owning object, e.g. "zone 'Alpha'"
	Scope string
	// Label is the zone/area label shown in reports, e.g. "Alpha > SpawnPoint_2"
	Label string
	// Path is the JSON path of the object that owns Field
	Path []string
	// Line is the approximate 1-based source line
	Line int
}

// Message renders the issue as a human-readable sentence
func (i Issue) Message() string {
	switch i.Kind {
	case MissingField:
		if i.Actual != "" {
			return fmt.Sprintf("Missing or invalid '%s' %s in %s: got %s", i.Field, i.Expected, i.Scope, i.Actual)
		}
		return fmt.Sprintf("Missing required field '%s' in %s", i.Field, i.Scope)
	case InvalidType:
		return fmt.Sprintf("Invalid type for field '%s' in %s: expected %s, got %s", i.Field, i.Scope, i.Expected, i.Actual)
	case InvalidPosition:
		return fmt.Sprintf("Invalid position format for field '%s' in %s: %s", i.Field, i.Scope, i.Value)
	case InvalidArray:
		if i.Actual != string(schema.TypeArray) {
			return fmt.Sprintf("Field '%s' in %s must be an array, got %s", i.Field, i.Scope, i.Actual)
		}
		return fmt.Sprintf("Field '%s' in %s must contain only %ss, found %s", i.Field, i.Scope, i.Element, i.Value)
	case EmptyArray:
		return fmt.Sprintf("Field '%s' in %s must not be empty", i.Field, i.Scope)
	case NonNumericKey:
		return fmt.Sprintf("Tier key '%s' should be numeric string", i.Field)
	case UnknownField:
		return fmt.Sprintf("Unknown field '%s' in %s", i.Field, i.Scope)
	default:
		return fmt.Sprintf("%s: field '%s' in %s", i.Kind, i.Field, i.Scope)
	}
}

// JSONPath returns the path of the offending field as a JSON pointer
func (i Issue) JSONPath() string {
	segments := append(append([]string{}, i.Path...), i.Field)
	if i.Kind == NonNumericKey {
		segments = i.Path
	}
	return "/" + strings.Join(segments, "/")
}

// FixRecord pairs an error message with its location label and suggested remedies
type FixRecord struct {
	Error       string
	Zone        string
	Line        int
	Suggestions []string
}

// Summary holds the counts reported when a document is valid
type Summary struct {
	Zones       int
	SpawnPoints int
	Tiers       int
	Classnames  int
}

// Result is the outcome of validating one document
type Result struct {
	Kind    schema.Kind
	Issues  []Issue
	Fixes   []FixRecord
	Summary Summary
}

// Errors returns the error messages in the order they were found
func (r *Result) Errors() []string {
	messages := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		messages[i] = issue.Message()
	}
	return messages
}

// Valid reports whether no issue was found
func (r *Result) Valid() bool {
	return len(r.Issues) == 0
}

// SummaryLine renders the success summary
func (r *Result) SummaryLine() string {
	if r.Kind == schema.KindTiers {
		return fmt.Sprintf("Found %d tiers with %d total classnames", r.Summary.Tiers, r.Summary.Classnames)
	}
	return fmt.Sprintf("Found %d zones with %d total spawn points", r.Summary.Zones, r.Summary.SpawnPoints)
}

// add appends an issue and its (not yet enriched) fix record
func (r *Result) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	r.Fixes = append(r.Fixes, FixRecord{
		Error: issue.Message(),
		Zone:  issue.Label,
		Line:  issue.Line,
	})
}
