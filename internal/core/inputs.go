package core

import (
	"strings"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/pkg/sanity"
	"github.com/cardano-ops/cnodectl/pkg/semver"
)

type UserInputs[T any] struct {
	Common CommonInputs
	Custom T
}

// WorkflowExecutionOptions defines how the workflow engine reacts to step
// failures during execution and rollback.
type WorkflowExecutionOptions struct {
	ExecutionMode automa.TypeMode
	RollbackMode  automa.TypeMode
}

type CommonInputs struct {
	Force            bool
	ExecutionOptions WorkflowExecutionOptions
}

// InstallInputs are the user-supplied values for an install run.
type InstallInputs struct {
	Target      string
	Port        int
	NodeVersion string
}

// UninstallInputs are the user-supplied values for an uninstall run.
type UninstallInputs struct {
	Target string
}

// Validate validates all user inputs fields to ensure they are safe and secure.
func (u *UserInputs[T]) Validate() error {
	if err := u.Common.Validate(); err != nil {
		return err
	}

	// Try value receiver first, then pointer receiver (covers both method sets)
	if validator, ok := any(u.Custom).(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	if validator, ok := any(&u.Custom).(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	return nil
}

func (c *CommonInputs) Validate() error {
	modes := AllExecutionModes()
	if !sanity.Contains(c.ExecutionOptions.ExecutionMode, modes) {
		return errorx.IllegalArgument.New("invalid execution mode: %s", c.ExecutionOptions.ExecutionMode)
	}
	if !sanity.Contains(c.ExecutionOptions.RollbackMode, modes) {
		return errorx.IllegalArgument.New("invalid rollback mode: %s", c.ExecutionOptions.RollbackMode)
	}

	return nil
}

// Validate checks the install target, port range and version format. All
// checks run before any subprocess is spawned.
func (c *InstallInputs) Validate() error {
	if err := ValidateTarget(c.Target); err != nil {
		return err
	}

	if c.Port < 1 || c.Port > 65535 {
		return errorx.IllegalArgument.New("invalid port %d: must be within [1, 65535]", c.Port)
	}

	if c.NodeVersion != "" && !semver.IsDottedVersion(c.NodeVersion) {
		return errorx.IllegalArgument.New(
			"invalid node version %q: expected a dotted version such as 10.1 or 10.1.3", c.NodeVersion)
	}

	return nil
}

func (c *UninstallInputs) Validate() error {
	return ValidateTarget(c.Target)
}

// ValidateTarget accepts the single supported provisioning target,
// case-insensitively.
func ValidateTarget(target string) error {
	if !strings.EqualFold(target, TargetCardanoNode) {
		return errorx.IllegalArgument.New("unknown target %q: only %q is supported", target, TargetCardanoNode)
	}
	return nil
}

// AllExecutionModes lists the workflow execution modes the CLI accepts.
func AllExecutionModes() []automa.TypeMode {
	return []automa.TypeMode{automa.StopOnError, automa.ContinueOnError, automa.RollbackOnError}
}
