package entity

// Error is the single domain-level error kind. It signals that an operation
// cannot proceed because the input violates a domain rule or the referenced
// record does not exist. Callers surface it as a rejected request; there is
// nothing to retry.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is matches any domain error carrying the same code, so
// errors.Is(err, ErrNotFound) holds for every NOT_FOUND error regardless of
// its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a domain error with an explicit code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error codes.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
)

// Common domain errors.
var (
	ErrNotFound     = NewError(CodeNotFound, "resource not found")
	ErrInvalidInput = NewError(CodeInvalidInput, "invalid input provided")
)

// Invalid returns an INVALID_INPUT domain error with a specific message.
func Invalid(message string) *Error {
	return NewError(CodeInvalidInput, message)
}

// NotFound returns a NOT_FOUND domain error with a specific message.
func NotFound(message string) *Error {
	return NewError(CodeNotFound, message)
}
