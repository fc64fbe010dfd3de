// Package launcher provides an abstraction layer for different launcher programs.
// It supports dmenu, rofi, fzf, bemenu, and fuzzel with a unified interface.
// A launcher shows a list of options and returns the chosen line, or the
// typed text when nothing in the list matched.
package launcher

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lvim-tech/searchbar/internal/utils"
	"github.com/lvim-tech/searchbar/pkg/config"
)

var (
	// ErrCancelled is returned when the user dismisses the menu
	ErrCancelled = errors.New("cancelled by user")

	// ErrNoLauncher is returned when no supported launcher is installed
	ErrNoLauncher = errors.New("no launcher available - please install rofi, dmenu, fzf, bemenu, or fuzzel")

	// ErrUnknownLauncher is returned for a launcher name that is not supported
	ErrUnknownLauncher = errors.New("unknown launcher")
)

// Launcher is a menu program
type Launcher interface {
	Show(options []string, prompt string) (string, error)
	Name() string
	Args() []string
}

// Names lists the supported launchers in detection order
var Names = []string{"rofi", "dmenu", "fzf", "bemenu", "fuzzel"}

// IsCancelled reports whether err means the user dismissed the menu
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// New returns the launcher called name with its configured arguments.
// An empty name uses cfg.DefaultLauncher; "auto" picks the first installed one.
func New(name string, cfg *config.Config) (Launcher, error) {
	if name == "" {
		name = cfg.DefaultLauncher
	}
	if name == "auto" {
		name = Detect()
		if name == "" {
			return nil, ErrNoLauncher
		}
	}

	args := cfg.GetLauncherArgs(name)
	switch name {
	case "rofi":
		return NewRofi(args), nil
	case "dmenu":
		return NewDmenu(args), nil
	case "fzf":
		return NewFzf(args), nil
	case "bemenu":
		return NewBemenu(args), nil
	case "fuzzel":
		return NewFuzzel(args), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLauncher, name)
	}
}

// Detect returns the first installed launcher, or "" when none is
func Detect() string {
	for _, name := range Names {
		if utils.CommandExists(name) {
			return name
		}
	}
	return ""
}

// run feeds options to a dmenu-style program and returns the first line it
// prints. Exit status 1 or empty output means the menu was dismissed.
func run(name string, args []string, options []string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to run %s: %w", name, err)
	}

	result := strings.TrimSpace(firstLine(output))
	if result == "" {
		return "", ErrCancelled
	}
	return result, nil
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
