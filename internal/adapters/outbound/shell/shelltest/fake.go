// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
)

// Fake answers commands from a table keyed by "name arg1 arg2...".
// Binaries listed in Installed resolve on LookPath; commands without a
// table entry exit 1.
type Fake struct {
	Installed map[string]bool
	Results   map[string]shell.Result

	mu    sync.Mutex
	Calls []string
}

// NewFake creates a Fake with the given binaries installed.
func NewFake(installed ...string) *Fake {
	f := &Fake{Installed: map[string]bool{}, Results: map[string]shell.Result{}}
	for _, name := range installed {
		f.Installed[name] = true
	}
	return f
}

// On registers the result for a command line.
func (f *Fake) On(cmdline string, res shell.Result) *Fake {
	f.Results[cmdline] = res
	return f
}

func (f *Fake) LookPath(name string) (string, error) {
	if !f.Installed[name] {
		return "", fmt.Errorf("%s: %w", name, shell.ErrNotFound)
	}
	return "/usr/bin/" + name, nil
}

func (f *Fake) Run(_ context.Context, name string, args ...string) (shell.Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.Calls = append(f.Calls, key)
	f.mu.Unlock()

	if _, err := f.LookPath(name); err != nil {
		return shell.Result{ExitCode: -1}, err
	}
	if res, ok := f.Results[key]; ok {
		return res, nil
	}
	return shell.Result{ExitCode: 1}, nil
}
