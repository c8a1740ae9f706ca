package jiggler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrCleanupTimeout is reported when registered cleanups do not finish in time.
var ErrCleanupTimeout = errors.New("cleanup timeout exceeded")

// Cleanup releases something acquired at startup: the instance lock, the
// log file, a running jiggler.
type Cleanup interface {
	Cleanup() error
	Name() string
}

type cleanupFunc struct {
	name string
	fn   func() error
}

func (c cleanupFunc) Cleanup() error { return c.fn() }
func (c cleanupFunc) Name() string   { return c.name }

// CleanupManager runs registered cleanups once, newest first, within a timeout.
type CleanupManager struct {
	mu       sync.Mutex
	items    []Cleanup
	timeout  time.Duration
	once     sync.Once
	executed []error
}

// NewCleanupManager creates a manager. A non-positive timeout means 5 seconds.
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds c to run on Execute.
func (cm *CleanupManager) Register(c Cleanup) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.items = append(cm.items, c)
}

// RegisterFunc registers fn under name.
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(cleanupFunc{name: name, fn: fn})
}

// Execute runs every registered cleanup in reverse registration order.
// Only the first call does work; later calls return the same errors.
func (cm *CleanupManager) Execute() []error {
	cm.once.Do(func() {
		cm.executed = cm.run()
	})
	return cm.executed
}

func (cm *CleanupManager) run() []error {
	cm.mu.Lock()
	items := make([]Cleanup, len(cm.items))
	copy(items, cm.items)
	cm.mu.Unlock()

	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
		done = make(chan struct{})
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	go func() {
		defer close(done)
		for i := len(items) - 1; i >= 0; i-- {
			item := items[i]
			func() {
				defer func() {
					if r := recover(); r != nil {
						record(fmt.Errorf("cleanup %s panicked: %v", item.Name(), r))
						log.Error().Str("component", "cleanup").Str("resource", item.Name()).
							Interface("panic", r).Msg("panic during cleanup")
					}
				}()

				if err := item.Cleanup(); err != nil {
					record(errors.Wrapf(err, "cleanup %s", item.Name()))
					log.Warn().Err(err).Str("component", "cleanup").Str("resource", item.Name()).Msg("cleanup failed")
					return
				}
				log.Debug().Str("component", "cleanup").Str("resource", item.Name()).Msg("cleaned up")
			}()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Str("component", "cleanup").Dur("timeout", cm.timeout).
			Msg("timed out, some resources may not have been released")
		record(ErrCleanupTimeout)
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), errs...)
}

// Clear drops every registered cleanup without running it.
func (cm *CleanupManager) Clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.items = nil
}
