// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/cardano-ops/cnodectl/internal/nio"
)

// Result holds the outcome of a finished child process. A non-zero exit from
// the child is not an error at this layer; callers decide what a given exit
// code means.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner spawns external commands. Implementations capture, relay, or inherit
// the child's standard streams.
type Runner interface {
	// LookPath reports the absolute path of name, or an error when it is not
	// on PATH.
	LookPath(name string) (string, error)

	// Run executes the command and captures its output.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunStreaming executes the command, relaying child output to streams as
	// it is produced while also capturing it in the Result.
	RunStreaming(ctx context.Context, streams nio.StdStreams, name string, args ...string) (*Result, error)

	// RunInteractive executes the command with the given streams attached
	// directly, so the child can drive prompts (e.g. sudo password entry).
	// Output is not captured.
	RunInteractive(ctx context.Context, streams nio.StdStreams, name string, args ...string) (*Result, error)
}

type executor struct {
	logger *zerolog.Logger
}

func NewRunner(logger zerolog.Logger) Runner {
	return &executor{logger: &logger}
}

func (e *executor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *executor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	return e.finish(ctx, cmd, &outBuf, &errBuf)
}

func (e *executor) RunStreaming(ctx context.Context, streams nio.StdStreams, name string, args ...string) (*Result, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdin = streams.In
	cmd.Stdout = io.MultiWriter(streams.Out, &outBuf)
	cmd.Stderr = io.MultiWriter(streams.ErrOut, &errBuf)

	return e.finish(ctx, cmd, &outBuf, &errBuf)
}

func (e *executor) RunInteractive(ctx context.Context, streams nio.StdStreams, name string, args ...string) (*Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.ErrOut

	return e.finish(ctx, cmd, nil, nil)
}

func (e *executor) finish(ctx context.Context, cmd *exec.Cmd, outBuf, errBuf *bytes.Buffer) (*Result, error) {
	err := NewCmdExecution(cmd, *e.logger).RunCmd(ctx)

	res := &Result{}
	if outBuf != nil {
		res.Stdout = outBuf.String()
	}
	if errBuf != nil {
		res.Stderr = errBuf.String()
	}

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// child ran and exited non-zero
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	// the command never ran (not found, permission denied, killed before start)
	res.ExitCode = 1
	return res, err
}
