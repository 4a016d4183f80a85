package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrExists reports a map already present at the target location, or a map
	// that already holds rows when a document is imported into it.
	ErrExists = errors.New("already exists")

	// ErrStructural marks top-level document shape failures.
	ErrStructural = errors.New("structural error")
	// ErrDecode marks entity-level validation failures.
	ErrDecode = errors.New("decode error")
	// ErrReference marks name references that did not resolve at persistence time.
	ErrReference = errors.New("reference error")
	// ErrSchema marks schema creation against a store that is not fresh.
	ErrSchema = errors.New("schema error")
	// ErrStore marks failures surfaced by the storage layer.
	ErrStore = errors.New("store error")
)

