package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/locator"
	"github.com/githubnext/spawncheck/pkg/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	additionalPropertiesPattern = regexp.MustCompile(`additional propert(?:y|ies) (.+?) not allowed`)
	quotedNamePattern           = regexp.MustCompile(`'([^']+)'`)
)

// compileSchema compiles the closed JSON Schema derived from the registry
func compileSchema(kind schema.Kind) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()

	schemaURL := fmt.Sprintf("https://spawncheck.local/%s.schema.json", kind)
	if err := compiler.AddResource(schemaURL, schema.JSONSchema(kind)); err != nil {
		return nil, fmt.Errorf("failed to add %s schema resource: %w", kind, err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
	}
	return compiled, nil
}

// CheckUnknownFields reports properties that the registry does not declare.
// The issues are sorted by line so the output is stable.
func CheckUnknownFields(kind schema.Kind, doc any, source string) ([]Issue, error) {
	compiled, err := compileSchema(kind)
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON to hand the validator plain JSON values
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, err
	}

	loc := locator.New(source)
	var issues []Issue
	for _, leaf := range leafErrors(validationErr) {
		for _, name := range extractAdditionalPropertyNames(leaf.Error()) {
			issue := unknownFieldIssue(doc, leaf.InstanceLocation, name)
			issue.Line = loc.Resolve(locator.Hint{
				Path:     issue.JSONPathSegments(),
				Search:   fmt.Sprintf("%q", name),
				Estimate: 1,
			})
			issues = append(issues, issue)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].JSONPath() < issues[j].JSONPath()
	})
	return issues, nil
}

// AddStrictIssues appends unknown-field issues after the structural ones
func (r *Result) AddStrictIssues(issues []Issue) {
	for _, issue := range issues {
		r.add(issue)
	}
}

// JSONPathSegments returns the path of the offending field as segments
func (i Issue) JSONPathSegments() []string {
	return append(append([]string{}, i.Path...), i.Field)
}

// leafErrors flattens the cause tree of a validation error
func leafErrors(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafErrors(cause)...)
	}
	return leaves
}

// extractAdditionalPropertyNames extracts property names from additional properties error messages
// Example: "additional properties 'foo', 'bar' not allowed" -> ["foo", "bar"]
func extractAdditionalPropertyNames(errorMessage string) []string {
	match := additionalPropertiesPattern.FindStringSubmatch(errorMessage)
	if len(match) < 2 {
		return nil
	}

	var properties []string
	for _, propMatch := range quotedNamePattern.FindAllStringSubmatch(match[1], -1) {
		if prop := strings.TrimSpace(propMatch[1]); prop != "" {
			properties = append(properties, prop)
		}
	}
	return properties
}

// unknownFieldIssue builds an issue for property name found at the object at location
func unknownFieldIssue(doc any, location []string, name string) Issue {
	label, desc := describeLocation(doc, location)
	return Issue{
		Kind:  UnknownField,
		Field: name,
		Scope: desc,
		Label: label,
		Path:  append([]string{}, location...),
	}
}

// describeLocation names the object at a JSON path the same way the walkers do
func describeLocation(doc any, location []string) (label string, desc string) {
	switch {
	case len(location) == 0:
		return RootLabel, "root"

	case location[0] == schema.GlobalSettingsKey:
		return GlobalSettingsLabel, schema.GlobalSettingsKey

	case location[0] == schema.TiersKey && len(location) >= 2:
		label = TierLabel(location[1])
		return label, fmt.Sprintf("tier '%s'", label)

	case location[0] == schema.ZonesKey && len(location) >= 2:
		zi, _ := strconv.Atoi(location[1])
		zoneValue, _ := document.At(doc, location[:2]...)
		zone, _ := zoneValue.(*document.Object)
		name := ZoneDisplayName(zone, zi)
		if len(location) >= 4 && location[2] == "spawnPoints" {
			si, _ := strconv.Atoi(location[3])
			label = SpawnPointLabel(name, si)
			return label, fmt.Sprintf("spawn point '%s'", label)
		}
		return name, fmt.Sprintf("zone '%s'", name)

	default:
		return RootLabel, "/" + strings.Join(location, "/")
	}
}
