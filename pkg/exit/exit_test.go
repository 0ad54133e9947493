// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode_Int(t *testing.T) {
	req := require.New(t)

	req.Equal(0, NormalTermination.Int())
	req.Equal(1, GeneralError.Int())
	req.Equal(64, UsageError.Int())
	req.Equal(78, ConfigurationError.Int())
}

func TestCode_String(t *testing.T) {
	req := require.New(t)

	req.Equal("0", NormalTermination.String())
	req.Equal("1", GeneralError.String())
	req.Equal("74", InputOutputError.String())
}

func TestCode_Is(t *testing.T) {
	req := require.New(t)

	req.True(GeneralError.Is(1))
	req.False(GeneralError.Is(0))
	req.True(Code(137).Is(137))
}
