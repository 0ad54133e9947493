// SPDX-License-Identifier: Apache-2.0

package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		input  string
		major  uint64
		minor  uint64
		patch  uint64
		errMsg string
	}{
		{input: "10.1.3", major: 10, minor: 1, patch: 3},
		{input: "10.1", major: 10, minor: 1, patch: 0},
		{input: "8", major: 8, minor: 0, patch: 0},
		{input: "v1.2.3", major: 1, minor: 2, patch: 3},
		{input: "219 ", major: 219, minor: 0, patch: 0},
		{input: "abc", errMsg: "invalid version"},
		{input: "1.2.3.4", errMsg: "invalid version"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			v, err := New(tc.input)
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.major, v.Major())
			assert.Equal(t, tc.minor, v.Minor())
			assert.Equal(t, tc.patch, v.Patch())
		})
	}
}

func TestIsDottedVersion(t *testing.T) {
	assert.True(t, IsDottedVersion("10.1"))
	assert.True(t, IsDottedVersion("10.1.3"))
	assert.False(t, IsDottedVersion("10"))
	assert.False(t, IsDottedVersion("v10.1"))
	assert.False(t, IsDottedVersion("10.1.3.4"))
	assert.False(t, IsDottedVersion("10.1-rc1"))
	assert.False(t, IsDottedVersion(""))
}

func TestCompare(t *testing.T) {
	a, err := New("10.1")
	require.NoError(t, err)
	b, err := New("10.1.0")
	require.NoError(t, err)
	c, err := New("10.2")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))

	ok, err := c.AtLeast("10.1.3")
	require.NoError(t, err)
	assert.True(t, ok)
}
