// Package logger provides the diagnostic output of regscan.
//
// Debug, Info and Section print only when verbose mode is enabled via the
// --verbose flag and trace a document through fetch, assembly, OCR and
// scanning. Warn always prints: a document skipped in a long batch should
// not go unnoticed. Output goes to stderr so reports piped from stdout
// stay clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(true, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	printf(true, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	printf(false, "[WARN] "+format+"\n", args...)
}

// Since logs at debug level how long label took since start.
//
//	defer logger.Since("ocr "+id, time.Now())
func Since(label string, start time.Time) {
	printf(true, "[DEBUG] %s took %s\n", label, time.Since(start).Round(time.Millisecond))
}

// printf holds the write lock so concurrent lines never interleave.
func printf(verboseOnly bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verboseOnly && !verbose {
		return
	}
	fmt.Fprintf(output, format, args...)
}
