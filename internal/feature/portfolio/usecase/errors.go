// Package usecase implements the business logic for the portfolio feature.
package usecase

import "errors"

var (
	// ErrEmptySymbol is returned when a new holding has no symbol.
	ErrEmptySymbol = errors.New("symbol must not be empty")

	// ErrNonPositiveQuantity is returned when a new holding's quantity is zero or negative.
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")

	// ErrNonPositivePrice is returned when a new holding's purchase price is zero or negative.
	ErrNonPositivePrice = errors.New("purchase price must be greater than zero")

	// ErrUnknownAssetType is returned when a new holding's asset type is not one of the supported kinds.
	ErrUnknownAssetType = errors.New("unknown asset type")

	// ErrRemovalPending is returned when a removal is requested for an id
	// that already has a removal in flight.
	ErrRemovalPending = errors.New("removal already in progress")
)
