// Package spawn starts compiled command lines as detached processes.
//
// A command line is split into arguments with shell quoting rules (single and
// double quotes, backslash escapes, '#' comments at the start of a word) but
// without any expansion, and started directly, not through a shell. Operators
// such as '&' or '|' are ordinary characters, so URLs need no quoting. The child runs in its
// own process group and nothing waits on it beyond reaping its exit status.
package spawn

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"github.com/hashicorp/go-hclog"
)

// ErrEmptyCommand is returned for a command line without any word
var ErrEmptyCommand = errors.New("empty command line")

// LaunchError reports a command that could not be started.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Starter starts a command line without waiting for it.
type Starter interface {
	Start(commandLine string) error
}

// Detached is the Starter used in production.
type Detached struct {
	// Env is the child environment; nil means the current environment.
	Env    []string
	Logger hclog.Logger
}

// NewDetached returns a Detached starter logging to logger.
func NewDetached(logger hclog.Logger) *Detached {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Detached{Logger: logger}
}

// Split splits commandLine into arguments.
func Split(commandLine string) ([]string, error) {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	return args, nil
}

// Start splits commandLine and starts it. Errors are *LaunchError.
func (d *Detached) Start(commandLine string) error {
	args, err := Split(commandLine)
	if err != nil {
		return &LaunchError{Command: commandLine, Err: err}
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = d.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}

	if err := cmd.Start(); err != nil {
		return &LaunchError{Command: commandLine, Err: err}
	}

	logger := d.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger.Debug("started", "command", commandLine, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("command exited", "command", commandLine, "error", err)
		}
	}()
	return nil
}

// Quote returns s as a single word for Split.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
