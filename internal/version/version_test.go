// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Number(), info.Number)
	assert.Equal(t, Commit(), info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

func TestFormat(t *testing.T) {
	info := Info{Number: "0.3.0", Commit: "abc123", GoVersion: "go1.25"}

	out, err := info.Format(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "version: 0.3.0")
	assert.Contains(t, out, "commit: abc123")

	out, err = info.Format(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"0.3.0","commit":"abc123","go":"go1.25"}`, out)

	_, err = info.Format("toml")
	require.Error(t, err)
}

func TestBuildMode(t *testing.T) {
	assert.False(t, IsReleaseBuild())
	assert.Equal(t, "dev", BuildMode())
}
