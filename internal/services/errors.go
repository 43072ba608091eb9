package services

import "errors"

type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindBadRequest
	ErrorKindNotFound
)

// Error is returned by every service operation that fails. Key names the
// user-facing message in the i18n catalog; for internal errors the message
// template takes the cause text as its only argument.
type Error struct {
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, treating anything that is not an *Error as internal.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ErrorKindInternal
}

func badRequest(key string) error {
	return &Error{Kind: ErrorKindBadRequest, Key: key}
}

func notFound(key string) error {
	return &Error{Kind: ErrorKindNotFound, Key: key}
}

func internal(key string, err error) error {
	return &Error{Kind: ErrorKindInternal, Key: key, Err: err}
}
