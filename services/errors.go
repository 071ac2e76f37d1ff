package services

import "errors"

type ErrorKind string

const (
	KindInvalidArgument  ErrorKind = "InvalidArgument"
	KindNotFound         ErrorKind = "NotFound"
	KindConflict         ErrorKind = "Conflict"
	KindStoreError       ErrorKind = "StoreError"
	KindImportRowError   ErrorKind = "ImportRowError"
	KindImportBatchError ErrorKind = "ImportBatchError"
	KindUnauthorized     ErrorKind = "Unauthorized"
)

// Sentinels for errors.Is against a kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrStore           = &Error{Kind: KindStoreError}
	ErrImportRow       = &Error{Kind: KindImportRowError}
	ErrImportBatch     = &Error{Kind: KindImportBatchError}
)

// Error carries a user-facing localized Message. Err is for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func invalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func storeError(err error) error {
	return &Error{Kind: KindStoreError, Message: MsgStoreFailure, Err: err}
}

// KindOf returns the kind of err, StoreError for anything untyped.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreError
}

// MessageOf returns the localized message of err, never the wrapped cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgStoreFailure
}
