package errno

import (
	"errors"
	"fmt"
	"strings"
)

// BizError is an error carrying a stable business code and a client-facing message.
type BizError interface {
	error
	Code() int
	Message() string
}

type simpleBizError struct {
	errno *Errno
	cause error
	args  []any
}

// NewSimpleBizError wraps cause under the given sentinel. args fill the
// sentinel's message template (e.g. "Invalid parameter %s").
func NewSimpleBizError(e *Errno, cause error, args ...any) BizError {
	if e == nil {
		e = ErrUnknown
	}
	return &simpleBizError{errno: e, cause: cause, args: args}
}

func (e *simpleBizError) Code() int { return e.errno.Code }

func (e *simpleBizError) Message() string {
	if len(e.args) == 0 {
		return strings.TrimSpace(strings.ReplaceAll(e.errno.Message, "%s", ""))
	}
	return fmt.Sprintf(e.errno.Message, e.args...)
}

func (e *simpleBizError) Error() string {
	if e.cause == nil {
		return e.Message()
	}
	return e.Message() + ": " + e.cause.Error()
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *simpleBizError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.errno}
	}
	return []error{e.errno, e.cause}
}

// Resolve extracts code and message from any error, defaulting to an internal error.
func Resolve(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}
	var biz BizError
	if errors.As(err, &biz) {
		return biz.Code(), biz.Message()
	}
	var en *Errno
	if errors.As(err, &en) {
		if en == ErrParameterInvalid {
			return en.Code, "Invalid parameter"
		}
		return en.Code, en.Message
	}
	return ErrInternalServer.Code, ErrInternalServer.Message
}

// Dependency wraps a store or sink failure as a DependencyFailure.
func Dependency(cause error, what string) error {
	if cause == nil {
		return nil
	}
	return &simpleBizError{errno: ErrDependency, cause: fmt.Errorf("%s: %w", what, cause)}
}

// InvalidParam reports a malformed request field.
func InvalidParam(field string) error {
	return NewSimpleBizError(ErrParameterInvalid, nil, field)
}
