package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/guestlist-app/repository"
)

var (
	// ErrNotFound is repository.ErrNotFound, re-exported so handlers only
	// depend on this package.
	ErrNotFound = repository.ErrNotFound

	ErrAlreadyCheckedIn   = errors.New("guest already checked in")
	ErrClubInUse          = errors.New("club still has guests")
	ErrClubUnavailable    = errors.New("club is not open on that night")
	ErrUnknownClub        = errors.New("club does not exist")
	ErrVoucherExhausted   = errors.New("could not allocate a unique voucher code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError is returned for input the caller can fix. Err, when set,
// keeps the underlying cause reachable through errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Field, msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fromValidator turns the first validator/v10 failure into a ValidationError.
func fromValidator(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Message: err.Error(), Err: err}
	}
	fe := errs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	case "email":
		msg = "must be a valid email address"
	case "oneof":
		msg = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		msg = "is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg, Err: err}
}
