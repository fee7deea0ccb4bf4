package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAuthorization
	KindConflict
	KindUnavailable
)

const (
	CodeSlotConflict = "slot_conflict"
	CodeInvalidState = "invalid_state"
	CodeNotOwner     = "not_owner"
	CodeStorage      = "storage_unavailable"
)

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code string) error {
	return &Error{Kind: KindValidation, Code: code}
}

func NotFound(code string) error {
	return &Error{Kind: KindNotFound, Code: code}
}

func Authorization(code string) error {
	return &Error{Kind: KindAuthorization, Code: code}
}

func Conflict(code string) error {
	return &Error{Kind: KindConflict, Code: code}
}

// Unavailable wraps a collaborator (storage, catalog) failure. The engine
// never retries these itself; retry is the caller's responsibility.
func Unavailable(code string, err error) error {
	return &Error{Kind: KindUnavailable, Code: code, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
