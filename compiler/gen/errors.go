package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds reported by the generator.
var (
	// ErrInvalidIdentifier indicates an entity or column name that is not a valid identifier.
	ErrInvalidIdentifier = errors.New("ormgen: invalid identifier")
	// ErrDuplicateColumn indicates the same column key appears twice in one entity.
	ErrDuplicateColumn = errors.New("ormgen: duplicate column")
	// ErrUnsupportedType indicates a type tag the selected target cannot map.
	ErrUnsupportedType = errors.New("ormgen: unsupported type")
	// ErrUnsupportedTarget indicates that no emitter is registered for a target.
	ErrUnsupportedTarget = errors.New("ormgen: unsupported target")
	// ErrFilesystem indicates an I/O failure while preparing or writing output.
	ErrFilesystem = errors.New("ormgen: filesystem error")
)

// IdentifierError is returned when an entity, column or namespace
// name does not satisfy the identifier grammar.
type IdentifierError struct {
	Entity  string // Entity key (if applicable)
	Column  string // Column key (if applicable)
	Name    string // The offending raw name
	Message string
}

// Error implements the error interface.
func (e *IdentifierError) Error() string {
	var b strings.Builder
	b.WriteString("ormgen: invalid identifier ")
	fmt.Fprintf(&b, "%q", e.Name)
	if e.Entity != "" {
		b.WriteString(" in entity ")
		b.WriteString(e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidIdentifier.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// ColumnError reports a column key that appears more than once in an entity.
type ColumnError struct {
	Entity string
	Column string
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("ormgen: duplicate column %q in entity %s", e.Column, e.Entity)
}

// Is reports whether the target matches ErrDuplicateColumn.
func (e *ColumnError) Is(target error) bool {
	return target == ErrDuplicateColumn
}

// TypeError reports a type tag that a target ecosystem does not support.
type TypeError struct {
	Target Target
	Tag    string
	Entity string
	Column string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ormgen: unsupported type %q for target %s", e.Tag, e.Target)
	if e.Entity != "" {
		b.WriteString(" on ")
		b.WriteString(e.Entity)
		if e.Column != "" {
			b.WriteString(".")
			b.WriteString(e.Column)
		}
	}
	return b.String()
}

// Is reports whether the target matches ErrUnsupportedType.
func (e *TypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// TargetError reports a target without a registered emitter.
type TargetError struct {
	Target Target
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return fmt.Sprintf("ormgen: no emitter registered for target %q", string(e.Target))
}

// Is reports whether the target matches ErrUnsupportedTarget.
func (e *TargetError) Is(target error) bool {
	return target == ErrUnsupportedTarget
}

// FileError wraps an I/O failure on a path.
type FileError struct {
	Op    string // "mkdir", "write", "read"
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("ormgen: %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrFilesystem.
func (e *FileError) Is(target error) bool {
	return target == ErrFilesystem
}

// IsIdentifierError reports whether the error is an IdentifierError.
func IsIdentifierError(err error) bool {
	var idErr *IdentifierError
	return errors.As(err, &idErr)
}

// IsColumnError reports whether the error is a ColumnError.
func IsColumnError(err error) bool {
	var colErr *ColumnError
	return errors.As(err, &colErr)
}

// IsTypeError reports whether the error is a TypeError.
func IsTypeError(err error) bool {
	var typeErr *TypeError
	return errors.As(err, &typeErr)
}

// IsTargetError reports whether the error is a TargetError.
func IsTargetError(err error) bool {
	var targetErr *TargetError
	return errors.As(err, &targetErr)
}

// IsFileError reports whether the error is a FileError.
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}
