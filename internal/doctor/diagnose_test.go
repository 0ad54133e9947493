package doctor

import (
	"context"
	"fmt"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/exit"
)

func TestDiagnose(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	ctx := context.WithValue(context.Background(), "traceId", "trace-1")
	err := errorx.IllegalArgument.New("bad port")

	resp := Diagnose(ctx, err)
	require.NotNil(t, resp)

	assert.Equal(t, "bad port", resp.Message)
	assert.Equal(t, "trace-1", resp.TraceId)
	assert.Equal(t, 10400, resp.Code)
	assert.Equal(t, 1, resp.ExitCode)
	assert.NotEmpty(t, resp.Snapshot)
	assert.NotEmpty(t, resp.Resolution)
}

func TestDiagnoseCommandError(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	err := exit.NewCommandError(fmt.Errorf("ansible-playbook exited with code 4"), exit.Code(4))
	resp := Diagnose(context.Background(), err)

	assert.Equal(t, 4, resp.ExitCode)
	assert.Equal(t, "ansible-playbook exited with code 4", resp.Message)
}
