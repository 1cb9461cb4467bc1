//go:build !windows

// Package stderr captures output written to file descriptor 2 while the
// now-playing screen owns the terminal. Audio backends (ALSA) and the
// console logger write there directly and would corrupt the layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Capture redirects fd 2 into a pipe and exposes the captured lines.
type Capture struct {
	lines chan string
	orig  int
	r, w  *os.File
	done  chan struct{}
}

// Start begins capturing. On error nothing is redirected and the program
// can continue with the original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		lines: make(chan string, 100),
		orig:  orig,
		r:     r,
		w:     w,
		done:  make(chan struct{}),
	}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.done)
	defer close(c.lines)

	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// full, drop
		}
	}
}

// Lines returns captured non-empty lines. Closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Write writes to the original stderr, bypassing the capture.
func (c *Capture) Write(p []byte) (int, error) {
	return syscall.Write(c.orig, p)
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
