package overlay

import "fmt"

// ErrorCode identifies a class of overlay failure.
type ErrorCode string

const (
	ErrRasterMissing ErrorCode = "RASTER_MISSING"
	ErrRasterDecode  ErrorCode = "RASTER_DECODE"
	ErrInvalidScope  ErrorCode = "INVALID_SCOPE"
	ErrInvalidDPI    ErrorCode = "INVALID_DPI"
	ErrReportWrite   ErrorCode = "REPORT_WRITE"
	ErrOutputVerify  ErrorCode = "OUTPUT_VERIFY"
	ErrRenderFailed  ErrorCode = "RENDER_FAILED"
)

// Error is the typed error for the overlay pipeline. Page is 1-based and zero
// when the failure is not tied to a specific page.
type Error struct {
	Code    ErrorCode
	Message string
	Page    int
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError creates an overlay error without page attribution.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NewPageError creates an overlay error tied to a 1-based page number.
func NewPageError(code ErrorCode, message string, page int, cause error) *Error {
	return &Error{Code: code, Message: message, Page: page, Cause: cause}
}
