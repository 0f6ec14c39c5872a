package cmd

import "fmt"

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// ExitError carries the process exit status for a failed run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) *ExitError {
	return &ExitError{Code: exitUsage, Err: err}
}

func fatalError(err error) *ExitError {
	return &ExitError{Code: exitFatal, Err: err}
}

func fatalErrorf(format string, args ...any) *ExitError {
	return fatalError(fmt.Errorf(format, args...))
}
