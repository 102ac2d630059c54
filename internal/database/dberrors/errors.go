// Package dberrors defines the failure taxonomy shared by the book
// repository and the session ledger. Callers classify failures with
// errors.Is rather than by inspecting messages.
package dberrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue marks input violating a domain constraint, such as
	// a non-positive duration or an empty title. Nothing was persisted.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidReference marks a required id or foreign key that is
	// missing or does not resolve to an existing row.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNotFound marks a targeted update or delete whose row no longer
	// exists, typically after a concurrent deletion.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks an underlying store failure. The enclosing
	// transaction is rolled back before this is returned.
	ErrStorage = errors.New("storage failure")
)

// Storage wraps err as a storage failure, preserving the original chain.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
