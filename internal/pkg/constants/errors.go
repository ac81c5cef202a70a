package constants

import "net/http"

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrTableNotFound     = NewCodedError("indicator table not found", http.StatusNotFound)
	ErrUnknownIndicator  = NewCodedError("unknown indicator", http.StatusNotFound)
	ErrEvolutionDisabled = NewCodedError("evolution view is not enabled for indicator", http.StatusBadRequest)
	ErrBadRequest        = NewCodedError("bad request", http.StatusBadRequest)
	ErrCollectInProgress = NewCodedError("collection already in progress", http.StatusConflict)
)
