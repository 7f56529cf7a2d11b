package report

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the report service could not be reached.
	ErrUnavailable = errors.New("report service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("report request timed out")

	// ErrContentType indicates the response was not a JSON document.
	ErrContentType = errors.New("report response is not json")

	// ErrStatus indicates a non-success HTTP status without a logical
	// failure envelope.
	ErrStatus = errors.New("report service returned an error status")

	// ErrMalformed indicates the response claimed success but failed
	// structural validation.
	ErrMalformed = errors.New("malformed report response")
)

// LogicalError is a well-formed response that explicitly reports failure.
type LogicalError struct {
	Message string // server-supplied reason, may be empty
}

func (e *LogicalError) Error() string {
	if e.Message == "" {
		return "report service reported failure"
	}
	return fmt.Sprintf("report service reported failure: %s", e.Message)
}

// Default user-facing failure messages.
const (
	MsgDefaultFailure = "Report generation failed. Please try again."
	MsgMalformed      = "The report service returned an unexpected response."
	MsgTimeout        = "The report service did not respond in time."
	MsgUnavailable    = "The report service is unreachable. Check your connection."
	MsgContentType    = "The report service returned a response that is not JSON."
	MsgStatus         = "The report service returned an error status."
)

// FailureMessage maps a transport or contract error onto the message the
// user sees. Logical failures surface the server reason verbatim.
func FailureMessage(err error) string {
	var logical *LogicalError
	switch {
	case errors.As(err, &logical):
		if logical.Message != "" {
			return logical.Message
		}
		return MsgDefaultFailure
	case errors.Is(err, ErrMalformed):
		return MsgMalformed
	case errors.Is(err, ErrTimeout):
		return MsgTimeout
	case errors.Is(err, ErrUnavailable):
		return MsgUnavailable
	case errors.Is(err, ErrContentType):
		return MsgContentType
	case errors.Is(err, ErrStatus):
		return MsgStatus
	case err == nil:
		return ""
	default:
		return fmt.Sprintf("Report request failed: %v", err)
	}
}

func errorCode(err error) string {
	var logical *LogicalError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &logical):
		return "LOGICAL"
	case errors.Is(err, ErrMalformed):
		return "MALFORMED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrContentType):
		return "CONTENT_TYPE"
	case errors.Is(err, ErrStatus):
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}
