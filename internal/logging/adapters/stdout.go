package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"jobpulse/internal/logging/types"
)

// StdoutAdapter implements the LogAdapter interface for stdout output
type StdoutAdapter struct {
	name   string
	format string // json or text
	mu     sync.Mutex
}

// NewStdoutAdapter creates a new stdout adapter
func NewStdoutAdapter(name, format string) *StdoutAdapter {
	return &StdoutAdapter{
		name:   name,
		format: format,
	}
}

// Write writes a log entry to stdout
func (a *StdoutAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var output string
	var err error

	switch strings.ToLower(a.format) {
	case "text":
		output = a.formatText(entry)
	default:
		output, err = a.formatJSON(entry)
	}

	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, output)
	return err
}

// Close closes the adapter (no-op for stdout)
func (a *StdoutAdapter) Close() error {
	return nil
}

// Name returns the name of the adapter
func (a *StdoutAdapter) Name() string {
	return a.name
}

// formatJSON formats the log entry as a single JSON object with the field
// map flattened into the top level
func (a *StdoutAdapter) formatJSON(entry *types.LogEntry) (string, error) {
	logData := map[string]interface{}{
		"level":     entry.Level.String(),
		"message":   entry.Message,
		"timestamp": entry.Timestamp.Format(time.RFC3339Nano),
	}

	for k, v := range entry.Fields {
		if _, reserved := logData[k]; !reserved {
			logData[k] = v
		}
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// formatText formats the log entry as a human-readable line
func (a *StdoutAdapter) formatText(entry *types.LogEntry) string {
	var b strings.Builder

	b.WriteString(entry.Timestamp.Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}

	return b.String()
}
