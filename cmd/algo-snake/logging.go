package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const logFileName = "algo-snake.log"

// setupLogging returns a nop logger unless debug is set, in which case logfmt lines
// are appended to dir/algo-snake.log; the caller closes the returned file
func setupLogging(debug bool, dir string) (log.Logger, *os.File) {
	if !debug {
		return log.NewNopLogger(), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return log.NewNopLogger(), nil
	}

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return log.NewNopLogger(), nil
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(f))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, level.AllowDebug())
	return logger, f
}
