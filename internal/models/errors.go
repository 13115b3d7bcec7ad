// ABOUTME: Sentinel errors for entry construction and merging
// ABOUTME: Callers match with errors.Is; messages carry the offending values

package models

import "errors"

// Errors returned by entry construction and merging.
var (
	// ErrValidation indicates a required field is missing/empty or the
	// entry type is outside the known set.
	ErrValidation = errors.New("invalid entry")

	// ErrIdentityMismatch indicates an attempt to merge two entries with
	// different non-empty IDs.
	ErrIdentityMismatch = errors.New("cannot merge entries with different IDs")
)
