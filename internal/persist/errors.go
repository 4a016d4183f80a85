package persist

import (
	"fmt"

	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/schema"
)

const CodeUnresolvedReference = "UnresolvedReference"

// ReferenceError reports a name that matched no persisted row. Because
// targets are written before the entities that point at them, this always
// means a typo or a forward reference in the document.
type ReferenceError struct {
	Kind      schema.Kind
	Name      string
	Scope     *int64
	ScopeKind schema.Kind
	ScopeName string
	// Path locates the referring field in the document, e.g. nodes[0].connections[1].bus.
	Path string
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("[%s] %s %q", CodeUnresolvedReference, e.Kind, e.Name)
	if e.Scope != nil {
		scope := e.ScopeName
		if scope == "" {
			scope = fmt.Sprintf("#%d", *e.Scope)
		}
		msg += fmt.Sprintf(" not found in %s %q", e.ScopeKind, scope)
	} else {
		msg += " not found"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *ReferenceError) Is(target error) bool { return target == apperr.ErrReference }

// StoreError carries a storage layer failure unchanged, tagged with where in
// the write sequence it happened.
type StoreError struct {
	Op    string
	Table string
	Path  string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[StoreError] %s %s at %s: %v", e.Op, e.Table, e.Path, e.Err)
	}
	return fmt.Sprintf("[StoreError] %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == apperr.ErrStore }
