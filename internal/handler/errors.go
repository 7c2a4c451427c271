package handler

import (
	"errors"
	"log"

	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
)

// apiError maps service errors onto HTTP error responses. Unknown errors
// collapse to a generic 500; the real cause is only echoed back in
// development mode.
func apiError(err error, debug bool) *apierror.Error {
	switch {
	case errors.Is(err, service.ErrCaptchaMismatch):
		return apierror.BadRequest("Invalid captcha")
	case errors.Is(err, service.ErrMissingFields):
		return apierror.BadRequest("All fields are required")
	case errors.Is(err, service.ErrEmailTaken):
		return apierror.BadRequest("Email already in use")
	case errors.Is(err, service.ErrUsernameTaken):
		return apierror.BadRequest("Username already taken")
	case errors.Is(err, service.ErrWrongPassword):
		return apierror.BadRequest("Wrong password")
	case errors.Is(err, service.ErrInsufficientBalance):
		return apierror.BadRequest("Not enough stars")
	case errors.Is(err, service.ErrBonusAlreadyClaimed):
		return apierror.BadRequest("Daily bonus already claimed today")
	case errors.Is(err, service.ErrInvalidPromoCode):
		return apierror.BadRequest("Invalid promo code")
	case errors.Is(err, service.ErrCaseNotFound):
		return apierror.NotFound("Case not found")
	case errors.Is(err, service.ErrItemNotFound):
		return apierror.NotFound("Item not found")
	case errors.Is(err, service.ErrUserNotFound):
		return apierror.NotFound("User not found")
	case errors.Is(err, service.ErrPermissionDenied):
		return apierror.Forbidden("Insufficient privileges")
	}

	log.Printf("internal error: %v", err)
	if debug {
		return apierror.InternalError(err.Error())
	}
	return apierror.InternalError("")
}
