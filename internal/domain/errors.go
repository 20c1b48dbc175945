package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStatus indicates an order status outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
)
