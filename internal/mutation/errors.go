package mutation

import (
	"errors"
	"fmt"
)

// Kind classifies a per-mutation failure. Anything that is not an *Error with
// one of these kinds is treated as a transport-level fault by the gateway.
type Kind string

const (
	KindUnknown      Kind = "unknown_mutation"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
)

// Error is a business-level mutation failure. It is reported in the batch
// response and never aborts sibling mutations.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func UnknownMutation(name string) *Error {
	return &Error{Kind: KindUnknown, Message: fmt.Sprintf("unknown mutation %q", name)}
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a business-level *Error, or reports that err is a fault.
func AsError(err error) (*Error, bool) {
	var me *Error
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	me, ok := AsError(err)
	return ok && me.Kind == kind
}
