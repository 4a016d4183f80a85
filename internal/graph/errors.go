package graph

import (
	"fmt"

	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
)

type StructuralCode string

const (
	CodeNotAnObject        StructuralCode = "NotAnObject"
	CodeMissingTopLevelKey StructuralCode = "MissingTopLevelKey"
	CodeTopLevelNotList    StructuralCode = "TopLevelNotList"
)

// StructuralError reports a document whose top level does not have the
// required shape. Nothing is decoded when one is returned.
type StructuralError struct {
	Code   StructuralCode
	Key    string
	Actual string
	Err    error
}

func (e *StructuralError) Error() string {
	switch e.Code {
	case CodeMissingTopLevelKey:
		return fmt.Sprintf("[%s] input JSON must include %q key at top level", e.Code, e.Key)
	case CodeTopLevelNotList:
		return fmt.Sprintf("[%s] JSON key %q must contain a list (actual: %s)", e.Code, e.Key, e.Actual)
	default:
		if e.Err != nil {
			return fmt.Sprintf("[%s] document must be a JSON object: %v", e.Code, e.Err)
		}
		return fmt.Sprintf("[%s] document must be a JSON object (actual: %s)", e.Code, e.Actual)
	}
}

func (e *StructuralError) Unwrap() error { return e.Err }

func (e *StructuralError) Is(target error) bool { return target == apperr.ErrStructural }

type WarningCode string

const WarnUnknownTopLevelKey WarningCode = "UnknownTopLevelKey"

// Warning is a non-fatal finding returned alongside a successfully assembled graph.
type Warning struct {
	Code WarningCode
	Key  string
}

func (w Warning) String() string {
	return fmt.Sprintf("unknown top-level key %q will be ignored; additional JSON data is only kept below the top level", w.Key)
}
