// Package browser launches the user's default web browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL in a browser.
type Opener interface {
	Open(url string) error
}

// Noop never opens anything. Used with --no-open and in tests.
type Noop struct{}

func (Noop) Open(string) error { return nil }

// CommandOpener shells out to the platform's URL handler.
type CommandOpener struct {
	GOOS string
	// Start launches the command without waiting for it to exit.
	Start func(name string, args ...string) error
}

// NewCommandOpener returns an opener for the running platform.
func NewCommandOpener() *CommandOpener {
	return &CommandOpener{
		GOOS:  runtime.GOOS,
		Start: startCommand,
	}
}

// Open launches the browser pointed at url.
func (o *CommandOpener) Open(url string) error {
	name, args := Command(o.GOOS, url)
	if err := o.Start(name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", url, name, err)
	}
	return nil
}

// Command returns the program and arguments that open url on goos.
func Command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background.
	go cmd.Wait()
	return nil
}
