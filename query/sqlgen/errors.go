// Package sqlgen provides error types for SQL generation.
package sqlgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a builder is constructed with a nil
	// or empty tree, an empty escape character, or an unknown statement kind.
	ErrInvalidArgument = errors.New("sqlgen: invalid argument")

	// ErrStructure is returned when the query tree is malformed.
	ErrStructure = errors.New("sqlgen: malformed query tree")
)

// StructureError describes a malformed query tree.
type StructureError struct {
	Kind   Kind
	Slot   string // offending node name, e.g. "where" or "join"
	Reason string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("sqlgen: %s: %s", e.Kind, e.Reason)
}

// Is reports whether target is ErrStructure.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// IsStructure reports whether err is a structural error.
func IsStructure(err error) bool {
	return errors.Is(err, ErrStructure)
}

func structureErr(kind Kind, slot, format string, args ...any) error {
	return &StructureError{Kind: kind, Slot: slot, Reason: fmt.Sprintf(format, args...)}
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
