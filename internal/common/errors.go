// Package common holds sentinel errors shared by repositories, services and
// handlers. Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrUnauthenticated means the credential is missing, malformed or invalid.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the resource exists but belongs to someone else.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidAsset is returned for uploads that are not images.
	ErrInvalidAsset = errors.New("only image files are allowed")
	// ErrAssetCollision is returned when a generated filename is already taken.
	// The existing file is never overwritten.
	ErrAssetCollision = errors.New("asset filename already exists")
)
