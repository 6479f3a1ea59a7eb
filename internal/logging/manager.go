package logging

import (
	"sync"

	"jobpulse/internal/config"
	"jobpulse/internal/logging/adapters"
	"jobpulse/internal/logging/types"
)

var (
	globalLogger *MultiLogger
	globalMu     sync.RWMutex
)

// Initialize builds the global logger from configuration. Called once at
// startup before any other package logs.
func Initialize(cfg *config.Config) (Logger, error) {
	logger := NewMultiLogger()
	logger.SetLevel(types.ParseLogLevel(cfg.Logging.Level))

	adapter := adapters.NewStdoutAdapter("stdout", cfg.Logging.Format)
	if err := logger.AddAdapter(adapter); err != nil {
		return nil, err
	}

	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()

	return logger, nil
}

// GetGlobalLogger returns the process-wide logger. Falls back to a plain
// stdout JSON logger when Initialize has not run (tests, early startup).
func GetGlobalLogger() Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()

	if logger != nil {
		return logger
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewMultiLogger()
		_ = globalLogger.AddAdapter(adapters.NewStdoutAdapter("stdout", "json"))
	}
	return globalLogger
}
