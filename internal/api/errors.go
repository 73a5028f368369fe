package api

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericFailure is shown when a call fails without a usable server message.
const GenericFailure = "Something went wrong. Please try again."

// ErrNotFound is returned by FetchProfile when no profile exists yet.
var ErrNotFound = errors.New("profile not found")

// RemoteError is a failure the server reported explicitly.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, msg)
}

// TransportError is a call that produced no usable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage picks the text shown to the user for a failed call: the
// server's message verbatim when there is one, a generic fallback otherwise.
func UserMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return GenericFailure
}
