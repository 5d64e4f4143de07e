package exitcode

import "errors"

// Exit codes for the litterbox CLI
// These codes form the contract with CI wrappers and make targets
const (
	Success         = 0 // Tree came back clean
	LitterFound     = 1 // Test run created or deleted paths
	InvalidConfig   = 2 // Configuration file invalid or root missing
	SnapshotFailure = 3 // Directory walk failed
	RuntimeError    = 4 // Any other runtime error
)

// Error carries an exit code alongside the underlying error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches an exit code to err. A nil err stays nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// From extracts the exit code from an error chain.
func From(err error) int {
	if err == nil {
		return Success
	}
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return RuntimeError
}
