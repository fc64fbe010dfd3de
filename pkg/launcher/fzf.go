package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Fzf runs fzf in the terminal
type Fzf struct {
	command string
	args    []string
}

// NewFzf returns an fzf launcher with extra args
func NewFzf(args []string) *Fzf {
	return &Fzf{command: "fzf", args: args}
}

// Show runs fzf with --print-query so that typed text with no match is
// returned as the choice. fzf exits 1 for no match and 130 when dismissed.
func (f *Fzf) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, f.args...)
	args = append(args, "--print-query", "--prompt", prompt+"> ")

	cmd := exec.Command(f.command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to run fzf: %w", err)
		}
		switch exitErr.ExitCode() {
		case 1:
			// No match; the query line is the choice.
		case 130:
			return "", ErrCancelled
		default:
			return "", fmt.Errorf("fzf failed: %w", err)
		}
	}

	// Output is the query line, then the selection if there was a match.
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if choice := strings.TrimSpace(lines[i]); choice != "" {
			return choice, nil
		}
	}
	return "", ErrCancelled
}

func (f *Fzf) Name() string {
	return "fzf"
}

func (f *Fzf) Args() []string {
	return f.args
}
