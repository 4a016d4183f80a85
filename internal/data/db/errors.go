package db

import (
	"fmt"

	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
)

// SchemaError reports a table that could not be created as declared, most
// often because the store already holds it.
type SchemaError struct {
	Table  string
	Column string
	Exists bool
	Err    error
}

func (e *SchemaError) Error() string {
	switch {
	case e.Exists:
		return fmt.Sprintf("schema: table %q already exists; the store is not fresh", e.Table)
	case e.Column != "":
		return fmt.Sprintf("schema: table %q has no column %q", e.Table, e.Column)
	case e.Err != nil:
		return fmt.Sprintf("schema: create table %q: %v", e.Table, e.Err)
	default:
		return fmt.Sprintf("schema: table %q", e.Table)
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == apperr.ErrSchema }
