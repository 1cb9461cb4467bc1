//go:build windows

// Package stderr is a no-op on Windows, whose audio backend does not
// write to the console.
package stderr

import "os"

// Capture passes everything through.
type Capture struct{}

// Start is a no-op on Windows.
func Start() (*Capture, error) {
	return &Capture{}, nil
}

// Lines returns nil, which never delivers.
func (c *Capture) Lines() <-chan string {
	return nil
}

// Write writes to stderr.
func (c *Capture) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
