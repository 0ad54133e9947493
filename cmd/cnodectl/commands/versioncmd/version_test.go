// SPDX-License-Identifier: Apache-2.0

package versioncmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/version"
)

func TestVersionCommandPrintsBuildInfo(t *testing.T) {
	cmd := Get()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "version: "+version.Number())
	assert.Contains(t, out.String(), "commit: "+version.Commit())
	assert.Contains(t, out.String(), "go: go")
}

func TestVersionCommandRejectsUnknownFormat(t *testing.T) {
	_, err := version.Get().Format("toml")
	require.Error(t, err)
}
