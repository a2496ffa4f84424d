package handler

import (
	"errors"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
	"github.com/forgo/gigbook/pkg/jwt"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Services wrap one of the model error kinds, so most errors map by kind.
// Credential and token failures are validation errors in the domain but 401
// on the wire.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var invalid *model.InvalidPropsError

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, identity.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error()).WithCode(model.ErrCodeLoginFailed)
	case errors.Is(err, identity.ErrRefreshTokenExpired),
		errors.Is(err, jwt.ErrTokenExpired):
		return model.NewUnauthorizedError(err.Error()).WithCode(model.ErrCodeTokenExpired)
	case errors.Is(err, identity.ErrInvalidAccessToken),
		errors.Is(err, identity.ErrInvalidRefreshToken),
		errors.Is(err, identity.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error()).WithCode(model.ErrCodeTokenInvalid)

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(service.ErrEmailAlreadyExists.Error()).WithCode(model.ErrCodeAlreadyExists)
	case errors.Is(err, model.ErrConflict):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.As(err, &invalid):
		return model.NewValidationError(invalid.Fields)
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrUnknownStatus):
		return model.NewTransitionError(err.Error())
	case errors.Is(err, model.ErrValidation):
		return model.NewValidationError([]model.FieldError{{Field: "request", Message: err.Error()}})

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, model.ErrNotFound):
		pd := model.NewNotFoundError("resource")
		pd.Detail = err.Error()
		return pd

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, model.ErrForbidden):
		return model.NewForbiddenError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
