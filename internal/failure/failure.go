// Package failure classifies request errors into the kinds the HTTP layer
// maps onto status codes.
package failure

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind uint8

const (
	Internal Kind = iota
	ClientInput
	UpstreamFetch
	LocalIO
	AuthExchange
	Publish
)

var kindNames = map[Kind]string{
	Internal:      "internal",
	ClientInput:   "client_input",
	UpstreamFetch: "upstream_fetch",
	LocalIO:       "local_io",
	AuthExchange:  "auth_exchange",
	Publish:       "publish",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Status returns the HTTP status code reported for errors of this kind.
func (k Kind) Status() int {
	if k == ClientInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is a classified error. Message is safe to show to the client,
// the wrapped cause is only logged.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *Error) Cause() error { return e.cause }
func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, cause: err}
}

// KindOf returns the kind of the first classified error in the chain,
// or Internal if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
