package errno

import (
	"errors"
	"fmt"
)

// BizError attaches a root cause to an Errno so handlers can map the
// code while logs keep the underlying error.
type BizError struct {
	Errno *Errno
	Cause error
}

// NewBizError wraps cause under the given errno.
func NewBizError(e *Errno, cause error) *BizError {
	if e == nil {
		e = ErrUnknown
	}
	return &BizError{Errno: e, Cause: cause}
}

func (b *BizError) Error() string {
	if b.Cause == nil {
		return b.Errno.Message
	}
	return fmt.Sprintf("%s: %v", b.Errno.Message, b.Cause)
}

// Unwrap exposes the root cause to errors.Is/As.
func (b *BizError) Unwrap() error {
	return b.Cause
}

// Resolve maps any error onto the Errno it should be reported as.
func Resolve(err error) *Errno {
	if err == nil {
		return OK
	}
	var biz *BizError
	if errors.As(err, &biz) {
		return biz.Errno
	}
	var e *Errno
	if errors.As(err, &e) {
		return e
	}
	return ErrUnknown
}

// Is reports whether err resolves to the given errno.
func Is(err error, e *Errno) bool {
	return Resolve(err) == e
}
