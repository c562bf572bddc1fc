package feed

import (
	"errors"
	"fmt"
)

// ErrNotAFeed is returned when a response is not a valid RSS or Atom document.
var ErrNotAFeed = errors.New("not a feed")

// NetworkError reports a failure to retrieve a feed document.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}
