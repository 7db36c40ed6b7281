package project

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error that rejects an action.
// A rejected action leaves both the session and the store unchanged.
var ErrValidation = errors.New("invalid action")

var (
	// ErrUnknownType is returned when a site type is not in the catalog.
	ErrUnknownType = errors.New("unknown website type")
	// ErrNegativeBudget is returned for a budget below zero.
	ErrNegativeBudget = errors.New("budget must not be negative")
	// ErrEmptyBlockType is returned when a block is added without a type.
	ErrEmptyBlockType = errors.New("block type is required")
	// ErrNoHistory is returned when the backend keeps no revision history.
	ErrNoHistory = errors.New("storage backend keeps no history")
	// ErrSaveFailed is returned when a checked-out revision cannot be saved.
	ErrSaveFailed = errors.New("failed to save project")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
