package chat

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEmptyName         = errors.New("group name is required")
	ErrNoMentorSelected  = errors.New("exactly one mentor must be selected")
	ErrNoMembersSelected = errors.New("at least one member must be selected")
	ErrWriteFailed       = errors.New("write failed")
)

func IsErrNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsErrUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsErrWriteFailed(err error) bool  { return errors.Is(err, ErrWriteFailed) }

// IsErrValidation reports whether err is one of the typed group-creation
// validation failures (reported inline, never retried).
func IsErrValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNoMentorSelected) ||
		errors.Is(err, ErrNoMembersSelected)
}
