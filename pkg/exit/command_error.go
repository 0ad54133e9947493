// SPDX-License-Identifier: Apache-2.0

package exit

import "errors"

// CommandError binds an error to the exit code the process should terminate
// with. It is used to propagate a child process's exit code verbatim to the
// shell.
type CommandError struct {
	err  error
	code Code
}

func NewCommandError(err error, code Code) *CommandError {
	return &CommandError{err: err, code: code}
}

func (e *CommandError) Error() string {
	return e.err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.err
}

func (e *CommandError) Code() Code {
	return e.code
}

// CodeOf returns the exit code bound to err, or GeneralError when err carries
// none. A nil err maps to NormalTermination.
func CodeOf(err error) Code {
	if err == nil {
		return NormalTermination
	}

	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code()
	}

	return GeneralError
}
