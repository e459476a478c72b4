package cache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// LogWriter is an io.Writer that copies log lines into Redis.
type LogWriter struct {
	cache Cache
}

// NewLogWriter creates a new LogWriter.
func NewLogWriter(c Cache) *LogWriter {
	return &LogWriter{cache: c}
}

// Write implements the io.Writer interface.
func (lw *LogWriter) Write(p []byte) (n int, err error) {
	// The input from the log package includes a newline, which we trim.
	logEntry := strings.TrimRight(string(p), "\n")
	if logEntry == "" {
		return len(p), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := lw.cache.AppendLog(ctx, logEntry); err != nil {
		// Write straight to stderr: going through log would loop back here.
		_, _ = fmt.Fprintf(os.Stderr, "[ERROR] Failed to write log to Redis: %v\n", err)
	}
	return len(p), nil
}
