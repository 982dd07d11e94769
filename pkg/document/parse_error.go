package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ParseError describes malformed JSON input
type ParseError struct {
	Message string
	// Offset is the byte offset reported by the JSON parser, -1 when unknown
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HasOffset reports whether the parser supplied a character offset
func (e *ParseError) HasOffset() bool {
	return e.Offset >= 0
}

// OffsetHint renders the offset line shown under parse errors
func (e *ParseError) OffsetHint() string {
	if !e.HasOffset() {
		return ""
	}
	return fmt.Sprintf("Error near character offset %d (line %d, column %d)", e.Offset, e.Line, e.Column)
}

// newParseError wraps a JSON decoding error and resolves its offset to a line and column
func newParseError(data []byte, err error) *ParseError {
	parseErr := &ParseError{
		Message: err.Error(),
		Offset:  -1,
		Err:     err,
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		parseErr.Offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		parseErr.Offset = typeErr.Offset
	}

	if parseErr.HasOffset() {
		parseErr.Line, parseErr.Column = offsetToLineColumn(data, parseErr.Offset)
	}

	return parseErr
}

// offsetToLineColumn converts a parser offset into a 1-based line and column.
// The JSON parser reports the offset after the byte that failed, so the column
// points at that byte.
func offsetToLineColumn(data []byte, offset int64) (line int, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	line = 1
	lineStart := int64(0)
	for i := int64(0); i < offset; i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	column = int(offset - lineStart)
	if column < 1 {
		column = 1
	}
	return line, column
}
