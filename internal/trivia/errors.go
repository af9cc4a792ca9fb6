package trivia

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned for a question count outside 1..MaxAmount.
var ErrInvalidAmount = errors.New("invalid question amount")

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch questions: status %d", e.StatusCode)
}

// ResponseCodeError is a non-zero response_code in an otherwise successful
// response.
type ResponseCodeError struct {
	Code int
}

func (e *ResponseCodeError) Error() string {
	return fmt.Sprintf("trivia API returned code %d: %s", e.Code, e.Meaning())
}

// Meaning describes the code as documented by Open Trivia DB.
func (e *ResponseCodeError) Meaning() string {
	switch e.Code {
	case 1:
		return "not enough questions for the query"
	case 2:
		return "invalid parameter"
	case 3:
		return "session token not found"
	case 4:
		return "session token exhausted"
	case 5:
		return "rate limited"
	default:
		return "unknown error"
	}
}

// Temporary reports whether retrying later might succeed.
func (e *ResponseCodeError) Temporary() bool {
	return e.Code == 5
}
