// Package processtest provides a scriptable process.Runner for tests.
package processtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/process"
)

// Handler simulates one tool. It may emit stderr lines through c.OnStderrLine
// and create files through the filesystem package before returning.
type Handler func(ctx context.Context, c process.Command) (*process.Result, error)

// Runner dispatches commands to handlers registered by binary name and records every call.
type Runner struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []process.Command
}

// New returns an empty Runner. Unregistered binaries fail as if they were not installed.
func New() *Runner {
	return &Runner{handlers: make(map[string]Handler)}
}

// On registers h for the binary name.
func (r *Runner) On(name string, h Handler) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
	return r
}

// Run implements process.Runner.
func (r *Runner) Run(ctx context.Context, c process.Command) (*process.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	h, ok := r.handlers[c.Name]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s: executable file not found in $PATH", fault.ErrSpawn, c.Name)
	}
	return h(ctx, c)
}

// Calls returns a copy of the commands run so far.
func (r *Runner) Calls() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]process.Command(nil), r.calls...)
}

// CallsTo returns the commands run for the binary name.
func (r *Runner) CallsTo(name string) []process.Command {
	var out []process.Command
	for _, c := range r.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Exit returns a handler that writes nothing and exits with code, reporting stderr.
func Exit(code int, stderr string) Handler {
	return func(context.Context, process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: code, Stderr: []byte(stderr)}, nil
	}
}

// Print returns a handler that exits with code after writing stdout and stderr.
func Print(code int, stdout, stderr string) Handler {
	return func(context.Context, process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: code, Stdout: []byte(stdout), Stderr: []byte(stderr)}, nil
	}
}

// Lines feeds each stderr line to the command's line callback, if any.
func Lines(c process.Command, lines ...string) {
	if c.OnStderrLine == nil {
		return
	}
	for _, l := range lines {
		c.OnStderrLine(l)
	}
}

// ArgAfter returns the argument following flag, or "" when flag is absent.
func ArgAfter(c process.Command, flag string) string {
	for i, a := range c.Args {
		if a == flag && i+1 < len(c.Args) {
			return c.Args[i+1]
		}
	}
	return ""
}

// Joined renders the argument vector as one space-separated string.
func Joined(c process.Command) string {
	return strings.Join(c.Args, " ")
}
