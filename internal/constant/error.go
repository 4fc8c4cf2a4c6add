package constant

import "fmt"

// Error carries a business error code alongside the message so handlers
// can map it to an HTTP status without string matching.
type Error interface {
	error
	Code() int
	Message() string
	WithData(data interface{}) Error
}

type CustomError struct {
	code    int
	message string
	data    interface{}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

func (e *CustomError) Data() interface{} {
	return e.data
}

func (e *CustomError) WithData(data interface{}) Error {
	e.data = data
	return e
}

// NewError builds an Error from the registry message for the code.
func NewError(code int) Error {
	if msg, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: msg}
	}
	return &CustomError{code: code, message: "unknown error"}
}

// NewErrorf builds an Error with a formatted, code-specific detail message.
func NewErrorf(code int, format string, args ...interface{}) Error {
	return &CustomError{code: code, message: fmt.Sprintf(format, args...)}
}

// GetErrorMessage returns the registry message for a code.
func GetErrorMessage(code int) (string, bool) {
	msg, exists := ErrorMessages[code]
	return msg, exists
}
