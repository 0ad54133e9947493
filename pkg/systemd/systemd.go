package systemd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"
)

const opTimeout = 10 * time.Second

// connect opens a system bus connection with a bounded deadline.
func connect(parent context.Context) (*dbus.Conn, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(parent, opTimeout)
	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("connect to systemd: %w", err)
	}
	return conn, ctx, cancel, nil
}

// DaemonReload reloads the systemd manager configuration.
// It is equivalent to running "systemctl daemon-reload".
func DaemonReload(parent context.Context) error {
	conn, ctx, cancel, err := connect(parent)
	if err != nil {
		return err
	}
	defer cancel()
	defer conn.Close()

	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	return nil
}

// StopService stops the specified service and waits until the unit is fully stopped.
// It is equivalent to running "systemctl stop <service>".
// The service name can be provided with or without the .service suffix.
func StopService(parent context.Context, name string) error {
	conn, ctx, cancel, err := connect(parent)
	if err != nil {
		return err
	}
	defer cancel()
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	// Make this call synchronous and wait until the unit is stopped.
	jobChan := make(chan string, 1) // buffered channel to avoid goroutine leaks

	// The second parameter 'replace' means to replace any existing job for the unit.
	_, err = conn.StopUnitContext(ctx, serviceName, "replace", jobChan)
	if err != nil {
		return fmt.Errorf("stop service %s: %w", serviceName, err)
	}

	select {
	case result := <-jobChan:
		if result != "done" {
			return fmt.Errorf("service %s stop failed: %s", serviceName, result)
		}
		return nil

	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for service %s to stop: %w", serviceName, ctx.Err())
	}
}

// DisableService disables the specified service persistently.
// It is equivalent to running "systemctl disable <service>".
// The service name can be provided with or without the .service suffix.
func DisableService(parent context.Context, name string) error {
	conn, ctx, cancel, err := connect(parent)
	if err != nil {
		return err
	}
	defer cancel()
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	// The second parameter 'false' means not to disable for runtime only, but rather persistently.
	_, err = conn.DisableUnitFilesContext(ctx, []string{serviceName}, false)
	if err != nil {
		return fmt.Errorf("disable service %s: %w", serviceName, err)
	}

	return nil
}

// UnitActiveState returns the ActiveState of the given unit, e.g. "active",
// "inactive" or "failed". A unit that is not loaded reports "inactive".
func UnitActiveState(parent context.Context, name string) (string, error) {
	conn, ctx, cancel, err := connect(parent)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	prop, err := conn.GetUnitPropertyContext(ctx, serviceName, "ActiveState")
	if err != nil {
		return "", fmt.Errorf("query service %s: %w", serviceName, err)
	}

	return strings.Trim(prop.Value.String(), `"`), nil
}

// ensureServiceSuffix ensures the service name has the .service suffix.
func ensureServiceSuffix(name string) string {
	if !strings.HasSuffix(name, ".service") {
		return name + ".service"
	}
	return name
}
