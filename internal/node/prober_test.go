// SPDX-License-Identifier: Apache-2.0

package node

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/nio"
)

// fakeRunner serves canned results keyed by command name.
type fakeRunner struct {
	results map[string]*exc.Result
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*exc.Result, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if err, ok := f.errs[name]; ok {
		return &exc.Result{ExitCode: 1}, err
	}
	if res, ok := f.results[name]; ok {
		return res, nil
	}
	return &exc.Result{}, nil
}

func (f *fakeRunner) RunStreaming(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

func (f *fakeRunner) RunInteractive(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

const netstatListening = `Active Internet connections (only servers)
Proto Recv-Q Send-Q Local Address           Foreign Address         State
tcp        0      0 0.0.0.0:22              0.0.0.0:*               LISTEN
tcp        0      0 127.0.0.1:9000          0.0.0.0:*               LISTEN
tcp6       0      0 :::22                   :::*                    LISTEN
`

func TestProbeRunningAndListening(t *testing.T) {
	r := &fakeRunner{results: map[string]*exc.Result{
		"pgrep":   {ExitCode: 0, Stdout: "4242\n"},
		"netstat": {ExitCode: 0, Stdout: netstatListening},
	}}

	st, err := NewProber(r).Probe(context.Background(), 9000)
	require.NoError(t, err)

	assert.True(t, st.ProcessActive)
	assert.True(t, st.PortListening)
	assert.Equal(t, 9000, st.Port)
	assert.Contains(t, r.calls, "pgrep -x cardano-node")
	assert.Contains(t, r.calls, "netstat -tln")
}

func TestProbeNotRunning(t *testing.T) {
	r := &fakeRunner{results: map[string]*exc.Result{
		"pgrep":   {ExitCode: 1},
		"netstat": {ExitCode: 0, Stdout: netstatListening},
	}}

	st, err := NewProber(r).Probe(context.Background(), 6002)
	require.NoError(t, err)

	assert.False(t, st.ProcessActive)
	assert.False(t, st.PortListening)
	assert.Equal(t, 6002, st.Port)
}

func TestProcessActiveFailure(t *testing.T) {
	r := &fakeRunner{results: map[string]*exc.Result{
		"pgrep": {ExitCode: 2, Stderr: "pgrep: invalid option"},
	}}

	_, err := NewProber(r).ProcessActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgrep")
}

func TestScanListening(t *testing.T) {
	assert.True(t, scanListening(netstatListening, 22))
	assert.True(t, scanListening(netstatListening, 9000))
	assert.False(t, scanListening(netstatListening, 6002))
	// 9000 appears only as a local address suffix match, not anywhere in a line
	assert.False(t, scanListening(netstatListening, 900))
	assert.False(t, scanListening("", 22))
}
