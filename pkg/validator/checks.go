package validator

import (
	"math"
	"strconv"
	"strings"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/schema"
)

// ValidateType reports whether value has the expected JSON type. NaN is not a valid number.
func ValidateType(value any, expected schema.FieldType) bool {
	switch expected {
	case schema.TypeString:
		_, ok := value.(string)
		return ok
	case schema.TypeNumber:
		f, ok := document.Float(value)
		return ok && !math.IsNaN(f)
	case schema.TypeArray:
		_, ok := value.([]any)
		return ok
	case schema.TypeObject:
		obj, ok := value.(*document.Object)
		return ok && obj != nil
	default:
		return false
	}
}

// ValidatePosition reports whether value is a spatial coordinate string:
// exactly three whitespace-separated tokens, each a finite number.
func ValidatePosition(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}

	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		return false
	}

	for _, token := range tokens {
		// ParseFloat also takes hex floats, which are not plain decimals
		if strings.ContainsAny(token, "xX") {
			return false
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}
