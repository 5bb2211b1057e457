package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLog directs logging to the file named by GANKSPEAK_LOGFILE, or
// discards it. Debug level is enabled alongside DEBUG=1.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	if os.Getenv("DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	path := os.Getenv("GANKSPEAK_LOGFILE")
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.Kitchen)
	return f.Close, nil
}
