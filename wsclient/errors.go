package wsclient

import (
	"errors"
	"fmt"
)

var (
	// ErrOpenTimeout is returned when the connection does not open in time.
	ErrOpenTimeout = errors.New("wsclient: connection timeout")
	// ErrReplyTimeout is returned when no reply arrives in time.
	ErrReplyTimeout = errors.New("wsclient: reply timeout")
	// ErrClosed is returned after Close or once the server hung up.
	ErrClosed = errors.New("wsclient: connection closed")
	// ErrNotOpen is returned when sending before Initialize succeeded.
	ErrNotOpen = errors.New("wsclient: connection not open")
	// ErrFrameTooLarge is returned for a frame that inflates past the read
	// limit.
	ErrFrameTooLarge = errors.New("wsclient: frame too large")
)

// ServerError is an error reply from the server.
type ServerError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("wsclient: server error %d: %s", e.Code, e.Message)
}
