package mentorship

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid status transition")
)

func IsErrNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool        { return errors.Is(err, ErrBadRequest) }
func IsErrUnauthorized(err error) bool      { return errors.Is(err, ErrUnauthorized) }
func IsErrInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }
