package domain

import "errors"

// ErrorKind classifies domain failures for callers such as the HTTP layer
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAlreadyExists
	KindNotFound
	KindUnauthorized
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is a domain failure with a fixed, user-facing message
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the kind of the first domain error in err's chain
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Authentication errors
var (
	ErrUserAlreadyExists  = &Error{Kind: KindAlreadyExists, Message: "User already exists"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid email or password"}
)

// Token errors
var (
	ErrTokenInvalid   = &Error{Kind: KindUnauthorized, Message: "Invalid refresh token"}
	ErrTokenExpired   = &Error{Kind: KindUnauthorized, Message: "Token has expired"}
	ErrTokenMalformed = &Error{Kind: KindUnauthorized, Message: "Malformed token"}
)

// Settings errors
var (
	ErrSettingsNotFound     = &Error{Kind: KindNotFound, Message: "Pomodoro settings not found"}
	ErrSettingsAlreadyExist = &Error{Kind: KindAlreadyExists, Message: "Pomodoro settings already exist"}
	ErrInvalidSettings      = &Error{Kind: KindInvalid, Message: "Invalid pomodoro settings"}
)
