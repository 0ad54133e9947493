// SPDX-License-Identifier: Apache-2.0

package node

import (
	"context"
	"fmt"
	"strings"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/exc"
)

// Status is the observed condition of the node on this host.
type Status struct {
	Port          int  `yaml:"port" json:"port"`
	ProcessActive bool `yaml:"processActive" json:"processActive"`
	PortListening bool `yaml:"portListening" json:"portListening"`
}

// Prober checks for a running node process and a listening port using the
// host's standard tools.
type Prober struct {
	runner exc.Runner
}

func NewProber(runner exc.Runner) *Prober {
	return &Prober{runner: runner}
}

// Probe collects the node status for the given configured port.
func (p *Prober) Probe(ctx context.Context, port int) (*Status, error) {
	active, err := p.ProcessActive(ctx)
	if err != nil {
		return nil, err
	}

	listening, err := p.PortListening(ctx, port)
	if err != nil {
		return nil, err
	}

	return &Status{Port: port, ProcessActive: active, PortListening: listening}, nil
}

// ProcessActive reports whether a process named exactly like the node binary
// is running. pgrep exits 1 when nothing matches, which is not a failure.
func (p *Prober) ProcessActive(ctx context.Context) (bool, error) {
	res, err := p.runner.Run(ctx, "pgrep", "-x", core.NodeProcessName)
	if err != nil {
		return false, errorx.IllegalState.Wrap(err, "failed to run pgrep")
	}

	switch res.ExitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, errorx.IllegalState.New("pgrep exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
}

// PortListening reports whether the given TCP port is in LISTEN state
// according to netstat.
func (p *Prober) PortListening(ctx context.Context, port int) (bool, error) {
	res, err := p.runner.Run(ctx, "netstat", "-tln")
	if err != nil {
		return false, errorx.IllegalState.Wrap(err, "failed to run netstat")
	}

	if res.ExitCode != 0 {
		return false, errorx.IllegalState.New("netstat exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	return scanListening(res.Stdout, port), nil
}

// scanListening looks for the port in netstat -tln output. The local address
// column ends with ":<port>" for both IPv4 and IPv6 sockets.
func scanListening(output string, port int) bool {
	suffix := fmt.Sprintf(":%d", port)

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasPrefix(fields[0], "tcp") {
			continue
		}

		if strings.HasSuffix(fields[3], suffix) {
			return true
		}
	}

	return false
}
