// Package aerrors carries exit-coded errors out of instruction handlers.
//
// A non-fatal ActorError means the instruction itself rejected; the caller
// gets its exit code and the transaction is discarded. A fatal ActorError
// means the host (storage, serialization) misbehaved and the whole node
// should treat the result as undefined rather than reporting a code.
package aerrors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/chain/exitcode"
)

type ActorError interface {
	error
	IsFatal() bool
	RetCode() exitcode.ExitCode
}

type actorError struct {
	fatal   bool
	retCode exitcode.ExitCode

	msg   string
	frame error // wrapped cause, may be nil
}

func (a *actorError) Error() string {
	if a.frame != nil {
		return fmt.Sprintf("%s: %s", a.msg, a.frame)
	}
	return a.msg
}

func (a *actorError) IsFatal() bool {
	return a.fatal
}

func (a *actorError) RetCode() exitcode.ExitCode {
	return a.retCode
}

func (a *actorError) Unwrap() error {
	return a.frame
}

// New creates a new non-fatal error with the given exit code. A zero exit
// code would be indistinguishable from success, so it is rejected here.
func New(retCode exitcode.ExitCode, msg string) ActorError {
	if retCode == exitcode.Ok {
		return &actorError{
			fatal:   true,
			retCode: exitcode.SysErrInternal,
			msg:     "tried to create error with zero exit code: " + msg,
		}
	}
	return &actorError{retCode: retCode, msg: msg}
}

func Newf(retCode exitcode.ExitCode, format string, args ...interface{}) ActorError {
	return New(retCode, fmt.Sprintf(format, args...))
}

// Absorb turns a plain error into a non-fatal ActorError with the given code.
func Absorb(err error, retCode exitcode.ExitCode, msg string) ActorError {
	if err == nil {
		return nil
	}
	if aerr, ok := err.(ActorError); ok && aerr.IsFatal() {
		return Wrap(aerr, "tried to absorb a fatal error: "+msg)
	}
	return &actorError{retCode: retCode, msg: msg, frame: err}
}

// Escalate marks an error as fatal: the instruction did not merely reject,
// the host environment failed.
func Escalate(err error, msg string) ActorError {
	if err == nil {
		return nil
	}
	return &actorError{
		fatal:   true,
		retCode: exitcode.SysErrInternal,
		msg:     msg,
		frame:   err,
	}
}

func Wrap(err ActorError, msg string) ActorError {
	if err == nil {
		return nil
	}
	return &actorError{
		fatal:   err.IsFatal(),
		retCode: err.RetCode(),
		msg:     msg,
		frame:   err,
	}
}

func Wrapf(err ActorError, format string, args ...interface{}) ActorError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// RetCode extracts an exit code from any error. Nil means success.
func RetCode(err error) exitcode.ExitCode {
	if err == nil {
		return exitcode.Ok
	}
	var aerr ActorError
	if xerrors.As(err, &aerr) {
		return aerr.RetCode()
	}
	return exitcode.SysErrInternal
}

func IsFatal(err ActorError) bool {
	return err != nil && err.IsFatal()
}
