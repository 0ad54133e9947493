// SPDX-License-Identifier: Apache-2.0

package common

import (
	"testing"

	"github.com/automa-saga/automa"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestStringFlag(t *testing.T) {
	fp := FlagDefinition[string]{Name: "name", ShortName: "n", Description: "a name", Default: "default"}
	var v string
	cmd := &cobra.Command{}
	require.NoError(t, fp.varNP(cmd, &v, false))

	// default
	got, err := fp.Value(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, fp.Default, got)

	// set and verify
	require.NoError(t, cmd.Flags().Set(fp.Name, "alice"))
	got, err = fp.Value(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, "alice", got)
}

func TestBoolFlag(t *testing.T) {
	fp := FlagDefinition[bool]{Name: "enabled", ShortName: "e", Description: "enabled", Default: false}
	var v bool
	cmd := &cobra.Command{}
	require.NoError(t, fp.varNP(cmd, &v, false))

	require.NoError(t, cmd.Flags().Set(fp.Name, "true"))
	got, err := fp.Value(cmd, nil)
	require.NoError(t, err)
	require.True(t, got)
}

func TestIntFlag(t *testing.T) {
	fp := FlagDefinition[int]{Name: "port", ShortName: "p", Description: "port", Default: 6002}
	var v int
	cmd := &cobra.Command{}
	require.NoError(t, fp.varNP(cmd, &v, false))

	got, err := fp.Value(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, 6002, got)

	require.NoError(t, cmd.Flags().Set(fp.Name, "9000"))
	got, err = fp.Value(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, 9000, got)
}

func TestStringSliceFlag(t *testing.T) {
	fp := FlagDefinition[[]string]{Name: "collections", ShortName: "", Description: "collections", Default: []string{}}
	var v []string
	cmd := &cobra.Command{}
	require.NoError(t, fp.varNP(cmd, &v, false))

	require.NoError(t, cmd.Flags().Set(fp.Name, "community.general,ansible.posix"))
	got, err := fp.Value(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"community.general", "ansible.posix"}, got)
}

func TestPersistentFlag(t *testing.T) {
	fp := FlagDefinition[bool]{Name: "force", ShortName: "f", Description: "force", Default: false}
	var v bool
	cmd := &cobra.Command{}
	require.NoError(t, fp.varP(cmd, &v, false))

	require.NoError(t, cmd.PersistentFlags().Set(fp.Name, "true"))
	got, err := fp.Value(cmd, nil)
	require.NoError(t, err)
	require.True(t, got)
}

func TestSetFlagVarNilPointer(t *testing.T) {
	fp := FlagDefinition[string]{Name: "name", Default: ""}
	cmd := &cobra.Command{}
	require.Error(t, fp.varNP(cmd, nil, false))
}

func TestGetExecutionMode_ValidCases(t *testing.T) {
	cases := []struct {
		name          string
		continueOnErr bool
		stopOnErr     bool
		rollbackOnErr bool
		want          automa.TypeMode
	}{
		{"default", false, false, false, automa.StopOnError},
		{"stop", false, true, false, automa.StopOnError},
		{"continue", true, false, false, automa.ContinueOnError},
		{"rollback", false, false, true, automa.RollbackOnError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetExecutionMode(tc.continueOnErr, tc.stopOnErr, tc.rollbackOnErr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestGetExecutionMode_MutuallyExclusiveFlags_ReturnsError(t *testing.T) {
	_, err := GetExecutionMode(true, true, false)
	require.Error(t, err)

	_, err = GetExecutionMode(true, false, true)
	require.Error(t, err)

	_, err = GetExecutionMode(false, true, true)
	require.Error(t, err)
}
