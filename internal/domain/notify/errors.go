package notify

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
)

func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
