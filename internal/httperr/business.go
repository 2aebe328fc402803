package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure so callers can react without parsing
// messages.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindSlotUnavailable    Kind = "slot_unavailable"
	KindInsufficientPoints Kind = "insufficient_points"
	KindConflict           Kind = "conflict"
	KindInvalidTransition  Kind = "invalid_transition"
	KindAuthorization      Kind = "authorization"
	KindNotFound           Kind = "not_found"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string

	// Shortfall is set for KindInsufficientPoints.
	Shortfall int
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func SlotUnavailable(code, message string) error {
	return ErrBusiness(KindSlotUnavailable, code, message)
}

func InsufficientPoints(required, balance int) error {
	return BusinessError{
		Kind:      KindInsufficientPoints,
		Code:      "insufficient_points",
		Message:   fmt.Sprintf("reward needs %d points, balance is %d", required, balance),
		Shortfall: required - balance,
	}
}

func Conflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func InvalidTransition(code, message string) error {
	return ErrBusiness(KindInvalidTransition, code, message)
}

func Forbidden(code, message string) error {
	return ErrBusiness(KindAuthorization, code, message)
}

func NotFoundErr(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
