// Package process supervises the external command-line tools the application delegates to.
//
// Every subprocess runs in its own process group so that cancelling the
// owning context tears down the tool together with any helpers it spawned.
// Exit codes are reported, not treated as errors: callers decide whether a
// non-zero exit still produced usable output.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/log"
)

const (
	// waitDelay bounds how long Wait keeps draining pipes after the process was killed.
	waitDelay = 5 * time.Second

	// stderrTailLines is how many trailing stderr lines a streamed run keeps for diagnostics.
	stderrTailLines = 200

	maxLineLength = 1 << 20
)

// Command describes one subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// OnStderrLine, when set, switches the run to streaming mode: stderr is
	// delivered line by line as it is produced and stdout is discarded.
	OnStderrLine func(line string)
}

// String renders the invocation for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result describes how a finished subprocess ended.
type Result struct {
	ExitCode int
	Stdout   []byte
	// Stderr holds the complete stream for buffered runs and the trailing lines for streamed runs.
	Stderr []byte
}

// Success reports a zero exit status.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner starts a Command and waits for it to finish.
//
// The returned error is reserved for failures to start or supervise the
// process (wrapping fault.ErrSpawn) and for context cancellation; a tool that
// ran and exited non-zero yields a Result with the exit code and a nil error.
type Runner interface {
	Run(ctx context.Context, c Command) (*Result, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

// Run implements Runner.
func (Exec) Run(ctx context.Context, c Command) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error { return killProcess(cmd) }
	cmd.WaitDelay = waitDelay

	log.Debugf("exec: %s", c)

	if c.OnStderrLine != nil {
		return stream(ctx, cmd, c.OnStderrLine)
	}
	return buffered(ctx, cmd)
}

func buffered(ctx context.Context, cmd *exec.Cmd) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fault.ErrSpawn, cmd.Path, err)
	}

	waitErr := cmd.Wait()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	return finish(ctx, cmd, res, waitErr)
}

func stream(ctx context.Context, cmd *exec.Cmd, onLine func(string)) (*Result, error) {
	pipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stderr pipe: %v", fault.ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fault.ErrSpawn, cmd.Path, err)
	}

	tail := newTail(stderrTailLines)
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := scanner.Text()
		tail.add(line)
		onLine(line)
	}

	// A line longer than the scanner buffer stops Scan; keep the pipe drained so the tool never blocks on write.
	if err := scanner.Err(); err != nil {
		log.Warnf("stderr scan of %s: %v", cmd.Path, err)
		_, _ = io.Copy(io.Discard, pipe)
	}

	waitErr := cmd.Wait()
	res := &Result{Stderr: []byte(tail.String())}
	return finish(ctx, cmd, res, waitErr)
}

func finish(ctx context.Context, cmd *exec.Cmd, res *Result, waitErr error) (*Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s interrupted: %w", cmd.Path, ctxErr)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return res, fmt.Errorf("wait for %s: %w", cmd.Path, waitErr)
		}
	}

	res.ExitCode = cmd.ProcessState.ExitCode()
	return res, nil
}

// scanLines splits on '\n' and on bare '\r', which tools use to redraw progress in place.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			// A lone trailing '\r' may be the first half of "\r\n"; wait for more input.
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Missing returns the binaries from names that cannot be found in PATH.
func Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
