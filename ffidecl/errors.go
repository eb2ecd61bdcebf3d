package ffidecl

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	// ErrUnsupportedParam is returned for a parameter with no usable type,
	// such as the receiver of an exported method.
	ErrUnsupportedParam = errors.New("unsupported parameter shape")
	// ErrOpaqueType is returned under OpaqueReject for a non-primitive type.
	ErrOpaqueType = errors.New("type has no C primitive mapping")
	// ErrMultipleResults is returned for an exported function with more
	// than one result.
	ErrMultipleResults = errors.New("multiple results cannot be declared in C")
	// ErrExportMismatch is returned when an export directive names a
	// different function than the one it documents.
	ErrExportMismatch = errors.New("export directive does not match function name")
	// ErrNoPackage is returned when a directory holds no Go package.
	ErrNoPackage = errors.New("no Go package found")
)

// posError attaches a source position to err.
func posError(pos token.Position, err error) error {
	if !pos.IsValid() {
		return err
	}
	return fmt.Errorf("%s: %w", pos, err)
}
