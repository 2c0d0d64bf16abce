package services

import (
	apierrors "waterpulse/internal/errors"
)

// Service errors surfaced to transport. These alias the shared sentinels so
// errors.Is works across layers.
var (
	// Dataset errors
	ErrNoData              = apierrors.ErrNoData
	ErrParseFailed         = apierrors.ErrParseFailed
	ErrInsufficientHistory = apierrors.ErrInsufficientHistory

	// Query errors
	ErrUnknownParameter = apierrors.ErrUnknownParameter
	ErrUnknownAction    = apierrors.ErrUnknownAction
	ErrNoOperation      = apierrors.ErrNoOperation
)
