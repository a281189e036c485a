package remote

import (
	"fmt"

	"github.com/b2b-console/orgconsole/console"
	"github.com/pkg/errors"
)

// ErrRequestFailed is matched by every error the client returns
var ErrRequestFailed = errors.New("remote request failed")

// ErrNotFound is matched by errors for 404 responses
var ErrNotFound = console.ErrNotFound

// RequestError is a failed request: a transport error (Status 0) or a non-2xx response
type RequestError struct {
	Op     string
	Method string
	Path   string
	Status int
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.Path, e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.Path, e.Status)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches ErrRequestFailed always and ErrNotFound on 404
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// retryable reports whether a read may be attempted again
func (e *RequestError) retryable() bool {
	return e.Status == 0 || e.Status >= 500 || e.Status == 429
}
