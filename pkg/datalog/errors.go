package datalog

import "errors"

// Sentinel causes carried by ValidationError. Match them with errors.Is.
var (
	ErrInvalidTerm      = errors.New("tuple elements must be variables or constants")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidConstant  = errors.New("invalid constant")
	ErrPatternLength    = errors.New("invalid size of access pattern")
	ErrPatternChar      = errors.New("invalid access pattern")
	ErrEmptyBody        = errors.New("right side of the rule must not be empty")
	ErrMisplacedPattern = errors.New("access pattern must be only on the rightmost atom")
	ErrNotExecutable    = errors.New("rule not executable")
)

// ValidationError reports a violated data-model invariant.
type ValidationError struct {
	Err    error  // one of the Err* sentinels
	Detail string // what exactly was wrong, may be empty
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

// Unwrap returns the sentinel cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, detail string) *ValidationError {
	return &ValidationError{Err: err, Detail: detail}
}
