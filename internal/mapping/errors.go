package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/schema"
)

// Code identifies the kind of entity-level validation failure.
type Code string

const (
	CodeMissingField   Code = "MissingField"
	CodeTypeMismatch   Code = "TypeMismatch"
	CodeExpectedList   Code = "ExpectedList"
	CodeExpectedObject Code = "ExpectedObject"
	CodeDuplicateField Code = "DuplicateField"
	CodeInvalidValue   Code = "InvalidValue"
)

// DecodeError is the leaf validation failure for one entity.
type DecodeError struct {
	Code     Code
	Kind     schema.Kind
	Field    string
	Expected string
	// Actual is the JSON type that was found.
	Actual string
	// Value is the offending input where the type alone does not explain the failure.
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "decode error <nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Kind)
	if e.Field != "" {
		b.WriteString("." + e.Field)
	}
	switch e.Code {
	case CodeMissingField:
		b.WriteString(": required field is missing")
	case CodeTypeMismatch:
		b.WriteString(": wrong JSON type")
	case CodeExpectedList:
		b.WriteString(": expected a list")
	case CodeExpectedObject:
		b.WriteString(": expected an object")
	case CodeDuplicateField:
		fmt.Fprintf(&b, ": set more than once (keys %s)", e.Value)
	case CodeInvalidValue:
		fmt.Fprintf(&b, ": invalid value %q", e.Value)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected: %s)", e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", e.Actual)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == apperr.ErrDecode }

// NestedError adds the parent's context to a failure inside a nested entity.
// Index is -1 for single nested objects. Kind is zero for top-level collections.
type NestedError struct {
	Kind  schema.Kind
	Field string
	Index int
	Err   error
}

func (e *NestedError) segment() string {
	s := e.Field
	if e.Index >= 0 {
		s += "[" + strconv.Itoa(e.Index) + "]"
	}
	return s
}

func (e *NestedError) Error() string {
	if e.Kind == 0 {
		return e.segment() + ": " + e.Err.Error()
	}
	return e.Kind.String() + "." + e.segment() + ": " + e.Err.Error()
}

func (e *NestedError) Unwrap() error { return e.Err }

// Path renders the JSON path to the failing value, e.g. "busses[0].nets[2].name".
func Path(err error) string {
	var parts []string
	for err != nil {
		var nested *NestedError
		if errors.As(err, &nested) {
			parts = append(parts, nested.segment())
			err = nested.Err
			continue
		}
		var leaf *DecodeError
		if errors.As(err, &leaf) && leaf.Field != "" {
			parts = append(parts, leaf.Field)
		}
		break
	}
	return strings.Join(parts, ".")
}

// Leaf returns the innermost DecodeError in err's chain.
func Leaf(err error) (*DecodeError, bool) {
	var leaf *DecodeError
	if errors.As(err, &leaf) {
		return leaf, true
	}
	return nil, false
}
