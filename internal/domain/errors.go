package domain

import "errors"

var (
	// ErrProductNotFound is returned when a catalog product does not exist
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStorageFailure is returned when the underlying store fails
	ErrStorageFailure = errors.New("storage operation failed")
)
