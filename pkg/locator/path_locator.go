package locator

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// PathLocator resolves JSON paths to source lines using the goccy/go-yaml AST.
// JSON documents are valid YAML flow nodes, so the YAML parser gives us token
// positions for every key and element.
type PathLocator struct {
	root       ast.Node
	parseError error
}

// NewPathLocator parses source once and caches the AST
func NewPathLocator(source string) *PathLocator {
	locator := &PathLocator{}

	if source == "" {
		locator.parseError = fmt.Errorf("source is empty")
		return locator
	}

	file, err := parser.ParseBytes([]byte(source), 0)
	if err != nil {
		locator.parseError = fmt.Errorf("failed to parse source: %w", err)
	} else if file == nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		locator.parseError = fmt.Errorf("no document found")
	} else {
		locator.root = file.Docs[0].Body
	}

	return locator
}

// Err returns the parse error, if any
func (p *PathLocator) Err() error {
	return p.parseError
}

// Line returns the 1-based line of the node at path. For object members the line
// of the key is returned, for array elements the line the element starts on.
func (p *PathLocator) Line(path []string) (int, bool) {
	if p == nil || p.parseError != nil {
		return 0, false
	}

	current := p.root
	line := nodeLine(current)

	for _, segment := range path {
		var next ast.Node
		var ok bool

		switch node := unwrap(current).(type) {
		case *ast.MappingNode:
			next, line, ok = findKey(node.Values, segment)
		case *ast.MappingValueNode:
			next, line, ok = findKey([]*ast.MappingValueNode{node}, segment)
		case *ast.SequenceNode:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node.Values) {
				return 0, false
			}
			next = node.Values[index]
			line = nodeLine(next)
			ok = next != nil
		}

		if !ok {
			return 0, false
		}
		current = next
	}

	if line < 1 {
		return 0, false
	}
	return line, true
}

// findKey looks key up in the values of a mapping and returns its value and key line
func findKey(values []*ast.MappingValueNode, key string) (ast.Node, int, bool) {
	for _, value := range values {
		if value == nil || value.Key == nil {
			continue
		}
		if nodeStringValue(value.Key) == key {
			return value.Value, nodeLine(value.Key), true
		}
	}
	return nil, 0, false
}

// unwrap skips document, anchor and tag wrappers
func unwrap(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.DocumentNode:
			node = n.Body
		case *ast.AnchorNode:
			node = n.Value
		case *ast.TagNode:
			node = n.Value
		default:
			return node
		}
	}
}

// nodeStringValue extracts the key text of a mapping key node
func nodeStringValue(node ast.Node) string {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value
	case *ast.MappingKeyNode:
		return nodeStringValue(n.Value)
	default:
		if tok := node.GetToken(); tok != nil {
			return tok.Value
		}
		return ""
	}
}

func nodeLine(node ast.Node) int {
	if node == nil {
		return 0
	}
	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return 0
	}
	return tok.Position.Line
}
