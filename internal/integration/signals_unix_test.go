//go:build !windows

package integration

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggler"
	"github.com/stigoleg/jiggler/internal/platform"
	"github.com/stigoleg/jiggler/internal/platform/platformtest"
	"github.com/stigoleg/jiggler/internal/single"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helperEnv    = "JIGGLER_SIGNAL_HELPER"
	helperDirEnv = "JIGGLER_SIGNAL_HELPER_DIR"
)

// TestShutdownOnSignal runs a jiggler in a child process and checks that each
// termination signal stops both loops and releases the instance lock.
func TestShutdownOnSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping signal test in short mode")
	}

	tests := []struct {
		name string
		sig  syscall.Signal
	}{
		{"SIGINT", syscall.SIGINT},
		{"SIGTERM", syscall.SIGTERM},
		{"SIGQUIT", syscall.SIGQUIT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			cmd := exec.Command(os.Args[0], "-test.run=^TestSignalHelper$")
			cmd.Env = append(os.Environ(), helperEnv+"=1", helperDirEnv+"="+dir)
			stdout, err := cmd.StdoutPipe()
			require.NoError(t, err)
			require.NoError(t, cmd.Start(), "helper process should start")

			ready := make(chan struct{})
			go func() {
				scanner := bufio.NewScanner(stdout)
				for scanner.Scan() {
					if scanner.Text() == "ready" {
						close(ready)
						break
					}
				}
				for scanner.Scan() {
				}
			}()

			select {
			case <-ready:
			case <-time.After(5 * time.Second):
				_ = cmd.Process.Kill()
				t.Fatal("helper never became ready")
			}

			_, err = single.AcquireIn(dir, config.AppName)
			assert.Equal(t, single.ErrAlreadyRunning, errors.Cause(err), "the helper should hold the lock")

			require.NoError(t, cmd.Process.Signal(tt.sig))

			done := make(chan error, 1)
			go func() { done <- cmd.Wait() }()

			select {
			case err := <-done:
				assert.NoError(t, err, "process should exit cleanly after %s", tt.name)
			case <-time.After(5 * time.Second):
				_ = cmd.Process.Kill()
				t.Fatal("process did not exit within timeout")
			}

			release, err := single.AcquireIn(dir, config.AppName)
			require.NoError(t, err, "the lock should be released on exit")
			require.NoError(t, release())
		})
	}
}

// TestSignalHelper is the child side of TestShutdownOnSignal.
func TestSignalHelper(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	exit := func(code int, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}

	cleanup := jiggler.NewCleanupManager(time.Second)

	release, err := single.AcquireIn(os.Getenv(helperDirEnv), config.AppName)
	if err != nil {
		exit(1, err)
	}
	cleanup.RegisterFunc("instance lock", release)

	s := config.DefaultSettings()
	s.MoveMouse = true
	s.PressKeys = true
	s.TrackInactivity = true
	s.InactivityTimeout = 0

	j, err := jiggler.New(jiggler.Options{
		Settings:           s,
		Adapter:            platformtest.NewFake(platform.Point{}),
		SimulationInterval: 10 * time.Millisecond,
		MonitorInterval:    5 * time.Millisecond,
	})
	if err != nil {
		exit(1, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	fmt.Println("ready")
	runErr := j.Run(ctx)

	if errs := cleanup.Execute(); len(errs) > 0 {
		exit(1, errs[0])
	}
	if runErr != nil {
		exit(1, runErr)
	}
	exit(0, nil)
}
