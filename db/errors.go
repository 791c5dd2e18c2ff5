package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound wraps every "no such entity" failure so controllers can map it
// to 404 with a single errors.Is check.
var ErrNotFound = errors.New("not found")

// ErrConflict is the base for every state conflict (409). The specific
// sentinels below all wrap it.
var ErrConflict = errors.New("conflict")

var (
	ErrCopyNotAvailable = fmt.Errorf("book copy is not available: %w", ErrConflict)
	ErrCopyCheckedOut   = fmt.Errorf("book copy is currently checked out: %w", ErrConflict)
	ErrBookCheckedOut   = fmt.Errorf("book has copies currently checked out: %w", ErrConflict)
	ErrAlreadyReturned  = fmt.Errorf("checkout already returned: %w", ErrConflict)
	ErrEmailTaken       = fmt.Errorf("a borrower with this email already exists: %w", ErrConflict)
	ErrActiveCheckouts  = fmt.Errorf("borrower has active checkouts: %w", ErrConflict)
	ErrFollowUpExists   = fmt.Errorf("follow-up already exists for this checkout: %w", ErrConflict)
)

func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return err
}
