package config

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager loads the configuration and watches the file for changes. Config
// swaps are atomic pointer swaps, safe to read concurrently.
//
// Only the logging level is applied live. Model, backend, and listener
// settings are fixed for the process lifetime; a reload that changes them
// keeps the running values and logs a warning.
type Manager struct {
	config   atomic.Pointer[Config]
	path     string
	watcher  *fsnotify.Watcher
	onChange []func(*Config)
	logger   *slog.Logger
}

// NewManager loads the configuration from path (plus env overrides) and
// returns a manager holding it.
func NewManager(path string, logger *slog.Logger) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		path:   path,
		logger: logger,
	}
	m.config.Store(cfg)

	return m, nil
}

// Get returns the current configuration. Safe for concurrent use.
func (m *Manager) Get() *Config {
	return m.config.Load()
}

// OnChange registers a callback invoked after a successful reload. Register
// all callbacks before calling Watch.
func (m *Manager) OnChange(fn func(*Config)) {
	m.onChange = append(m.onChange, fn)
}

// Watch starts watching the configuration file. Rapid changes are debounced.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher

	if err := watcher.Add(m.path); err != nil {
		_ = watcher.Close()
		return err
	}

	go m.watchLoop(ctx)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context) {
	const debounceDelay = 500 * time.Millisecond
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			_ = m.watcher.Close()
			return

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, m.reload)
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Error("config watcher error", "error", err)
		}
	}
}

func (m *Manager) reload() {
	newCfg, err := Load(m.path)
	if err != nil {
		m.logger.Error("failed to reload config, keeping current", "error", err)
		return
	}

	current := m.config.Load()
	warnImmutableChanges(current, newCfg, m.logger)

	// Immutable fields keep their running values regardless of the file.
	newCfg.Server = current.Server
	newCfg.Engine = current.Engine
	newCfg.Metrics = current.Metrics
	newCfg.Tracing = current.Tracing

	m.config.Store(newCfg)
	m.logger.Info("configuration reloaded", "log_level", newCfg.Logging.Level)

	for _, fn := range m.onChange {
		fn(newCfg)
	}
}

func warnImmutableChanges(current, next *Config, logger *slog.Logger) {
	if next.Server != current.Server {
		logger.Warn("server settings changed on disk, restart required to apply")
	}
	if next.Engine != current.Engine {
		logger.Warn("engine settings changed on disk, restart required to apply")
	}
}

// Close stops the configuration watcher.
func (m *Manager) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
