package media

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotConfigured = errors.New("media uploads are not configured")
	ErrUploadFailed  = errors.New("upload failed")
)

func IsErrBadRequest(err error) bool    { return errors.Is(err, ErrBadRequest) }
func IsErrNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
func IsErrUploadFailed(err error) bool  { return errors.Is(err, ErrUploadFailed) }
