package service

import (
	"fmt"

	"github.com/forgo/gigbook/internal/model"
)

// Centralized service layer errors.
// Every error wraps one of the model error kinds so handlers can map it
// with errors.Is without knowing the concrete resource.

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = kindError(model.ErrValidation, "invalid email or password")
	ErrEmailAlreadyExists = kindError(model.ErrConflict, "email already registered")
	ErrPasswordRequired   = kindError(model.ErrValidation, "password is required")
	ErrPasswordTooShort   = kindError(model.ErrValidation, "password must be at least 8 characters")
	ErrPasswordTooLong    = kindError(model.ErrValidation, "password must be at most 128 characters")
	ErrInvalidEmail       = kindError(model.ErrValidation, "invalid email format")
	ErrInvalidUserType    = kindError(model.ErrValidation, "user type must be client or professional")
	ErrDisplayNameMissing = kindError(model.ErrValidation, "display name is required")
)

// ===== Profile Errors =====
var (
	ErrProfileNotFound     = kindError(model.ErrNotFound, "profile not found")
	ErrProfessionalMissing = kindError(model.ErrNotFound, "professional not found")
	ErrNotProfessional     = kindError(model.ErrValidation, "profile is not a professional")
)

// ===== Availability Errors =====
var (
	ErrAvailabilityNotFound = kindError(model.ErrNotFound, "availability not found")
)

// ===== Booking Errors =====
var (
	ErrBookingNotFound = kindError(model.ErrNotFound, "booking not found")
)

// ===== Quote Request Errors =====
var (
	ErrQuoteRequestNotFound = kindError(model.ErrNotFound, "quote request not found")
)

// ===== Equipment Errors =====
var (
	ErrEquipmentNotFound   = kindError(model.ErrNotFound, "equipment not found")
	ErrProposalNotFound    = kindError(model.ErrNotFound, "equipment proposal not found")
	ErrOwnEquipment        = kindError(model.ErrValidation, "cannot propose on own equipment")
	ErrEquipmentNotOffered = kindError(model.ErrValidation, "equipment is not available")
)

// ===== Review Errors =====
var (
	ErrReviewExists        = kindError(model.ErrConflict, "booking already has a review")
	ErrReviewProfessional  = kindError(model.ErrValidation, "professional does not match the booking")
	ErrReviewBookingClient = kindError(model.ErrForbidden, "only the booking client may review it")
)

// ===== Portfolio Errors =====
var (
	ErrPortfolioItemNotFound = kindError(model.ErrNotFound, "portfolio item not found")
)

// ===== Listing Errors =====
var (
	ErrInvalidPartyRole = kindError(model.ErrValidation, "role is not valid for this listing")
)

// internalError marks a collaborator failure with no domain meaning
func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrInternal, op, err)
}
