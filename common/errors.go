package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrConfigParse marks an existing on-disk configuration file that could
// not be parsed. Commands must abort without writing anything when they
// see it.
var ErrConfigParse = errors.New("config parse error")

// AuthError is returned when the API rejects the stored or supplied token.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "invalid token"
	}
	return e.Reason
}

// NotFoundError is returned when a named remote resource does not exist.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Name)
}

// StatusError carries a non-2xx HTTP response through to the caller.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	message := apiErrorMessage(e.Body)
	if message == "" {
		return fmt.Sprintf("status %s", e.Status)
	}
	return fmt.Sprintf("status %s: %s", e.Status, message)
}

// apiErrorMessage extracts the "message" field the API puts in error
// bodies. Falls back to the raw body when it isn't JSON.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return string(body)
	}
	return payload.Message
}

// ThrowError prints the error to stderr and exits non-zero. Only the
// command layer calls it; library packages return errors instead.
func ThrowError(err error) {
	_, printErr := fmt.Fprintf(os.Stderr, "fatal: %s\n", err)
	if printErr != nil {
		panic(printErr)
	}
	os.Exit(1)
}
