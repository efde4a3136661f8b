package translation

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey   = errors.New("missing translator API key")
	ErrUnknownProvider = errors.New("unknown translation provider")
)

// Translator is the translation oracle.
//
// Expected failures (transport, timeout, rate limit, bad response) are
// returned as *Error. Anything else is a bug or misconfiguration.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Error marks a recoverable translation failure.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] translation failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Failure(provider string, err error) *Error {
	return &Error{Provider: provider, Err: err}
}

// IsFailure reports whether err carries a *Error.
func IsFailure(err error) bool {
	var tErr *Error
	return errors.As(err, &tErr)
}

// Identity returns its input unchanged. Used when translation is disabled.
type Identity struct{}

func (Identity) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
