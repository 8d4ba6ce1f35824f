package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyBorrowed  = errors.New("this book is already borrowed")
	ErrNotBorrowed      = errors.New("this book is not currently borrowed")
	ErrNoActiveRecord   = errors.New("no active borrow record found for this book")
	ErrNotAuthorized    = errors.New("you are not authorised to perform this action")
	ErrDueDate          = errors.New("return date must be later than today")
	ErrInvalidCreds     = errors.New("Invalid credentials")
	ErrPasswordMismatch = errors.New("passwords don't match")
	ErrUserExists       = errors.New("username or email already taken")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
