package huaci

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	EFORBIDDEN      = "forbidden"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"

	// EIO means a file was missing, unreadable, or unwritable.
	EIO = "io"
	// EPARSE means a structured document could not be parsed.
	EPARSE = "parse"
	// EMISSINGKEY means a required configuration key does not exist.
	EMISSINGKEY = "missing_key"
	// EKEYTYPE means a configuration key holds a value of the wrong type.
	EKEYTYPE = "key_type"
	// ELOCK means a guarded resource could not be acquired.
	ELOCK = "lock"
	// EDATABASE means the dictionary database could not be opened or queried.
	EDATABASE = "database"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("huaci error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsSchemaError reports whether err is a configuration schema failure,
// i.e. a missing key or a key of the wrong type.
func IsSchemaError(err error) bool {
	switch ErrorCode(err) {
	case EMISSINGKEY, EKEYTYPE:
		return true
	}
	return false
}
