package domain

import "errors"

// Sentinel errors returned by repositories and services. Wrap them with
// fmt.Errorf("...: %w", err) and classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
