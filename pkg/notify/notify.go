// Package notify sends desktop notifications through dunstify or
// notify-send, or prints them when running in a terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/lvim-tech/searchbar/internal/utils"
	"github.com/lvim-tech/searchbar/pkg/config"
)

// Notifier sends notifications according to a NotificationConfig.
type Notifier struct {
	cfg config.NotificationConfig

	// Out and ErrOut receive terminal notifications.
	Out    io.Writer
	ErrOut io.Writer

	// commandExists, start and isTerminal are replaced in tests.
	commandExists func(string) bool
	start         func(name string, args ...string) error
	isTerminal    func() bool
}

// New returns a Notifier for cfg.
func New(cfg config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:           cfg,
		Out:           os.Stdout,
		ErrOut:        os.Stderr,
		commandExists: utils.CommandExists,
		start:         startDetached,
		isTerminal:    utils.IsTerminal,
	}
}

// Notify sends an informational notification.
func (n *Notifier) Notify(title, message string) {
	n.send(title, message, n.cfg.Urgency, "normal", false)
}

// Error sends a critical notification.
func (n *Notifier) Error(title, message string) {
	n.send(title, message, "critical", "critical", true)
}

func (n *Notifier) send(title, message, urgency, fallbackUrgency string, isError bool) {
	if !n.cfg.Enabled {
		return
	}

	// If in terminal and ShowInTerminal is enabled, print instead
	if n.cfg.ShowInTerminal && n.isTerminal() {
		if isError {
			fmt.Fprintf(n.ErrOut, "[ERROR] [%s] %s\n", title, message)
		} else {
			fmt.Fprintf(n.Out, "[%s] %s\n", title, message)
		}
		return
	}

	tool := n.cfg.Tool
	if tool == "" || tool == "auto" {
		tool = n.detectTool()
	}
	if tool == "" {
		return
	}

	if urgency == "" {
		urgency = fallbackUrgency
	}
	timeout := n.cfg.Timeout
	if timeout <= 0 {
		timeout = 5000
	}

	switch tool {
	case "dunstify", "notify-send":
		_ = n.start(tool, "-u", urgency, "-t", strconv.Itoa(timeout), title, message)
	}
}

// detectTool detects which notification tool is available
func (n *Notifier) detectTool() string {
	for _, tool := range []string{"dunstify", "notify-send"} {
		if n.commandExists(tool) {
			return tool
		}
	}
	return ""
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
