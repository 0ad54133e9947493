// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandError(t *testing.T) {
	base := fmt.Errorf("playbook run failed")
	err := NewCommandError(base, Code(4))

	assert.Equal(t, "playbook run failed", err.Error())
	assert.Equal(t, Code(4), err.Code())
	require.ErrorIs(t, err, base)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, NormalTermination, CodeOf(nil))
	assert.Equal(t, GeneralError, CodeOf(fmt.Errorf("plain")))

	err := NewCommandError(fmt.Errorf("boom"), Code(7))
	assert.Equal(t, Code(7), CodeOf(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, Code(7), CodeOf(wrapped))
}
