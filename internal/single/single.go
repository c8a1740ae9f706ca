// Package single keeps more than one jiggler from driving the same desktop.
package single

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrAlreadyRunning is returned when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Acquire takes the lock <tmp>/<name>.lock. The returned func releases it.
func Acquire(name string) (func() error, error) {
	return AcquireIn(os.TempDir(), name)
}

// AcquireIn is Acquire with an explicit directory.
func AcquireIn(dir, name string) (func() error, error) {
	file := filepath.Join(dir, name)
	fileLock := flock.New(file + ".lock")
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, "acquire lock")
	} else if !locked {
		if pid := readPID(file + ".pid"); pid != "" {
			return nil, errors.Wrapf(ErrAlreadyRunning, "pid %s", pid)
		}
		return nil, ErrAlreadyRunning
	}

	// the pid file only names the holder in the error above
	_ = os.WriteFile(file+".pid", []byte(strconv.Itoa(os.Getpid())), 0o644)

	return func() error {
		_ = os.Remove(file + ".pid")
		return fileLock.Unlock()
	}, nil
}

func readPID(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
