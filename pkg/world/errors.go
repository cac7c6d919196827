package world

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by lookups of unknown locations, regions or
	// bosses.
	ErrNotFound = errors.New("not found")
	// ErrCycle is returned by Build when region entry requirements depend on
	// each other in a loop.
	ErrCycle = errors.New("cyclic region dependency")
	// ErrUnresolvedReference is returned by Build when a definition refers to
	// a region or location that was never defined.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrDuplicate is returned by Build when two nodes share a name.
	ErrDuplicate = errors.New("duplicate definition")
)

// NotFoundError names what could not be found.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(kind string, key any) error {
	return &NotFoundError{Kind: kind, Key: fmt.Sprint(key)}
}
