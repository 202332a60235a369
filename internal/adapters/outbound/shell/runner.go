// Package shell runs read-only status and version commands with a bounded
// timeout.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNotFound is returned when the command is not resolvable on PATH.
var ErrNotFound = errors.New("command not found")

// Result is the outcome of one command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// OK reports whether the command completed with exit status 0.
func (r Result) OK() bool { return r.ExitCode == 0 && !r.TimedOut }

// Runner executes external commands.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner implements Runner with os/exec and a per-call timeout.
type ExecRunner struct {
	Timeout time.Duration
	Dir     string
}

// New creates an ExecRunner bounded by timeout.
func New(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return p, nil
}

// Run executes name with args. A timeout is reported through
// Result.TimedOut with a nil error, so callers can treat it like any other
// failed status check.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if _, err := r.LookPath(name); err != nil {
		return Result{ExitCode: -1}, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, name, args...)
	if r.Dir != "" {
		c.Dir = r.Dir
	}
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	// Never wait on an interactive prompt.
	c.Stdin = nil
	c.WaitDelay = 500 * time.Millisecond

	err := c.Run()
	res := Result{Stdout: outBuf.String(), Stderr: errBuf.String()}
	if ctx.Err() != nil {
		res.ExitCode = -1
		res.TimedOut = true
		return res, nil
	}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("exec %s: %w", name, err)
	}
	return res, nil
}

// FirstLine returns the first non-empty trimmed line of s.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
