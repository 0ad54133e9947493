// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/doctor"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	FlagPort = FlagDefinition[int]{
		Name:        "port",
		ShortName:   "p",
		Description: "Port the node listens on",
		Default:     core.DefaultCardanoPort,
	}

	FlagNodeVersion = FlagDefinition[string]{
		Name:        "node-version",
		ShortName:   "",
		Description: "Node version to install (overrides the pinned version, e.g. 10.1.3)",
		Default:     "",
	}

	FlagForce = FlagDefinition[bool]{
		Name:        "force",
		ShortName:   "f",
		Description: "Skip interactive confirmation prompts",
		Default:     false,
	}

	FlagStopOnError = FlagDefinition[bool]{
		Name:        "stop-on-error",
		ShortName:   "",
		Description: "Stop execution on first error (default behavior)",
		Default:     false,
	}

	FlagRollbackOnError = FlagDefinition[bool]{
		Name:        "rollback-on-error",
		ShortName:   "",
		Description: "Rollback executed steps on error",
		Default:     false,
	}

	FlagContinueOnError = FlagDefinition[bool]{
		Name:        "continue-on-error",
		ShortName:   "",
		Description: "Continue executing steps even if some steps fail",
		Default:     false,
	}
)

// FlagDefinition defines a command-line flag typed by T.
type FlagDefinition[T any] struct {
	Name        string
	ShortName   string
	Description string
	Default     T
}

// valueFrom contains the common type-switch logic to extract a value
// from the provided pflag.FlagSet.
func (fp *FlagDefinition[T]) valueFrom(flags *pflag.FlagSet) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		v, err := flags.GetString(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case bool:
		v, err := flags.GetBool(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case int:
		v, err := flags.GetInt(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case []string:
		v, err := flags.GetStringSlice(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	default:
		return zero, fmt.Errorf("unsupported flag type: %T", zero)
	}
}

// Value extracts the flag value (from the full flag set: persistent, non-persistent or from parent) of the provided cobra command.
// This is the preferred method to get flag values.
func (fp *FlagDefinition[T]) Value(cmd *cobra.Command, args []string) (T, error) {
	if args == nil {
		args = []string{}
	}

	// Parse the flags to ensure they are up to date such that it also retrieves from parent commands.
	err := cmd.ParseFlags(args)
	if err != nil {
		var zero T
		return zero, errorx.InternalError.Wrap(err, "failed to parse flags for command %s", cmd.Name())
	}

	return fp.valueFrom(cmd.Flags())
}

// SetVarP sets up the persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVarP(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, "failed to set flag %s", fp.Name)
	}
}

// SetVar sets up the non-persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVar(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varNP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, "failed to set flag %s", fp.Name)
	}
}

func (fp *FlagDefinition[T]) varP(cmd *cobra.Command, p *T, required bool) error {
	err := fp.setFlagVar(cmd.PersistentFlags(), cmd, p)
	if err != nil {
		return err
	}

	return fp.MarkRequiredP(cmd, required)
}

func (fp *FlagDefinition[T]) varNP(cmd *cobra.Command, p *T, required bool) error {
	err := fp.setFlagVar(cmd.Flags(), cmd, p)
	if err != nil {
		return err
	}

	return fp.MarkRequired(cmd, required)
}

// setFlagVar contains the common registration logic and is used to set up both persistent and non-persistent flags.
func (fp *FlagDefinition[T]) setFlagVar(flags *pflag.FlagSet, cmd *cobra.Command, p *T) error {
	if p == nil {
		return errorx.IllegalArgument.New("pointer for flag %s is nil", fp.Name)
	}
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}

	var zero T
	switch any(zero).(type) {
	case string:
		def := any(fp.Default).(string)
		ps, ok := any(p).(*string)
		if !ok {
			return errorx.IllegalArgument.New("expected *string for flag %s", fp.Name)
		}
		flags.StringVarP(ps, fp.Name, fp.ShortName, def, fp.Description)

	case bool:
		def := any(fp.Default).(bool)
		pb, ok := any(p).(*bool)
		if !ok {
			return errorx.IllegalArgument.New("expected *bool for flag %s", fp.Name)
		}
		flags.BoolVarP(pb, fp.Name, fp.ShortName, def, fp.Description)

	case int:
		def := any(fp.Default).(int)
		pi, ok := any(p).(*int)
		if !ok {
			return errorx.IllegalArgument.New("expected *int for flag %s", fp.Name)
		}
		flags.IntVarP(pi, fp.Name, fp.ShortName, def, fp.Description)

	case []string:
		def := any(fp.Default).([]string)
		pss, ok := any(p).(*[]string)
		if !ok {
			return errorx.IllegalArgument.New("expected *[]string for flag %s", fp.Name)
		}
		flags.StringSliceVarP(pss, fp.Name, fp.ShortName, def, fp.Description)

	default:
		return fmt.Errorf("unsupported flag type: %T", zero)
	}

	return nil
}

func (fp *FlagDefinition[T]) MarkRequired(cmd *cobra.Command, v bool) error {
	if v {
		err := cmd.MarkFlagRequired(fp.Name)
		if err != nil {
			return errorx.InternalError.Wrap(err, "failed to mark flag %s as required", fp.Name)
		}
	}

	return nil
}

func (fp *FlagDefinition[T]) MarkRequiredP(cmd *cobra.Command, v bool) error {
	if v {
		err := cmd.MarkPersistentFlagRequired(fp.Name)
		if err != nil {
			return errorx.InternalError.Wrap(err, "failed to mark persistent flag %s as required", fp.Name)
		}
	}

	return nil
}

// GetExecutionMode determines the execution mode based on the provided flags.
// It ensures that only one of the flags is set; otherwise, it returns an error.
// The precedence is as follows:
// 1. continueOnErr
// 2. rollbackOnErr
// 3. stopOnErr (default)
func GetExecutionMode(continueOnErr bool, stopOnErr bool, rollbackOnErr bool) (automa.TypeMode, error) {
	// validate only one flag is set
	count := 0
	if continueOnErr {
		count++
	}
	if stopOnErr {
		count++
	}
	if rollbackOnErr {
		count++
	}

	if count > 1 {
		return automa.StopOnError, errorx.IllegalArgument.New("only one of execution mode can be set; "+
			"found continue-on-error: %t, stop-on-error: %t, rollback-on-error: %t", continueOnErr, stopOnErr, rollbackOnErr)
	}

	// determine execution mode
	if continueOnErr {
		return automa.ContinueOnError, nil
	} else if rollbackOnErr {
		return automa.RollbackOnError, nil
	} else {
		return automa.StopOnError, nil
	}
}
