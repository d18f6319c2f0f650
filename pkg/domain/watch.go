package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/internal/telemetry"
)

// reloadDebounce coalesces bursts of filesystem events (editors often fire
// several writes per save) into a single reload.
const reloadDebounce = 250 * time.Millisecond

// Manager owns the live domain built from a seed file and hot-reloads it
// when the file changes on disk.
//
// Reloads are all-or-nothing: a seed that fails to parse or build leaves
// the previous domain serving. The seed file's directory is watched rather
// than the file itself so atomic replaces (write to temp, rename over) are
// still observed.
//
// Thread Safety: all methods are safe for concurrent use.
type Manager struct {
	path string
	opts []Option

	mu      sync.RWMutex
	current *Domain
}

// NewManager creates a manager for the given seed file (not yet loaded).
func NewManager(seedPath string, opts ...Option) *Manager {
	return &Manager{path: seedPath, opts: opts}
}

// Load builds a domain from the seed file and makes it current.
func (m *Manager) Load() error {
	ctx, span := telemetry.StartSpan(context.Background(), telemetry.SpanSeedLoad,
		trace.WithAttributes(attribute.String("seed.file", m.path)))
	defer span.End()

	seed, err := LoadSeed(m.path)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	d, err := FromSeed(seed, m.opts...)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	telemetry.SetAttributes(ctx, telemetry.Domain(d.Name()))

	m.mu.Lock()
	m.current = d
	m.mu.Unlock()

	logger.Info("Domain loaded",
		"domain", d.Name(),
		"file", m.path,
		"users", len(seed.Users),
		"groups", len(seed.Groups),
		"files", len(seed.Files),
	)
	return nil
}

// Current returns the live domain, or nil before the first Load.
func (m *Manager) Current() *Domain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set replaces the live domain. Used when activating a restored snapshot;
// a later seed reload overwrites it again.
func (m *Manager) Set(d *Domain) {
	m.mu.Lock()
	m.current = d
	m.mu.Unlock()

	logger.Info("Domain replaced", "domain", d.Name())
}

// Watch blocks, reloading the domain whenever the seed file changes, until
// the context is cancelled.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logger.Info("Watching seed file for changes", "file", m.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	reload := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			_, span := telemetry.StartSpan(ctx, telemetry.SpanSeedReload,
				trace.WithAttributes(attribute.String("seed.file", m.path)))
			if err := m.Load(); err != nil {
				span.RecordError(err)
				logger.Error("Seed reload failed, keeping previous domain",
					"file", m.path,
					"error", err,
				)
			}
			span.End()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Seed watcher error", "error", watchErr)
		}
	}
}
