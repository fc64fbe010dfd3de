// Package search runs queries through the selected search engine.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/spawn"
	"github.com/lvim-tech/searchbar/pkg/template"
)

// ErrEmptyQuery is returned for a query that is empty after trimming
var ErrEmptyQuery = errors.New("empty query")

// ErrUnknownEngine is returned by RunWith for a name not in the registry
var ErrUnknownEngine = errors.New("unknown engine")

// Engines is the part of *registry.Registry the runner needs.
type Engines interface {
	Selected() (registry.Entry, error)
	Find(name string) (int, bool)
	At(i int) (registry.Entry, error)
	Select(i int) error
	Upsert(e registry.Entry) (int, error)
	ResetToDefaults() error
}

// Notifier reports launch failures to the user.
type Notifier interface {
	Error(title, message string)
}

// Runner compiles queries and starts the resulting command lines.
type Runner struct {
	engines  Engines
	starter  spawn.Starter
	notifier Notifier
	logger   hclog.Logger
}

// NewRunner returns a Runner. notifier and logger may be nil.
func NewRunner(engines Engines, starter spawn.Starter, notifier Notifier, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{
		engines:  engines,
		starter:  starter,
		notifier: notifier,
		logger:   logger,
	}
}

// Run compiles query with the selected engine and starts it. It returns the
// command line that was started.
func (r *Runner) Run(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	entry, err := r.selected()
	if err != nil {
		return "", err
	}
	return r.launch(entry, query)
}

// RunWith runs query with the engine called name. The selection is not changed.
func (r *Runner) RunWith(name, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	idx, ok := r.engines.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	entry, err := r.engines.At(idx)
	if err != nil {
		return "", err
	}
	return r.launch(entry, query)
}

// Override edits the engine used by Preview.
type Override func(*registry.Entry)

// Preview returns the command line Run would start for query, and the
// engine it would use. Overrides apply to a copy of the selected engine,
// so a new template can be tried before saving it.
func (r *Runner) Preview(query string, overrides ...Override) (string, registry.Entry, error) {
	entry, err := r.selected()
	if err != nil {
		return "", registry.Entry{}, err
	}
	for _, o := range overrides {
		o(&entry)
	}
	return template.Compile(entry.Template, entry.Wildcard, entry.Delimiter, query), entry, nil
}

// Save stores e and makes it the selected engine. It returns e's index.
func (r *Runner) Save(e registry.Entry) (int, error) {
	idx, err := r.engines.Upsert(e)
	if err != nil {
		return -1, err
	}
	if err := r.engines.Select(idx); err != nil {
		return -1, err
	}
	if !template.HasSlot(e.Template, e.Wildcard) {
		r.logger.Warn("template does not contain the wildcard, queries will be ignored",
			"name", e.Name, "wildcard", e.Wildcard)
	}
	return idx, nil
}

// selected returns the selected entry, restoring the defaults once when the
// registry turns out to be empty.
func (r *Runner) selected() (registry.Entry, error) {
	entry, err := r.engines.Selected()
	if !errors.Is(err, registry.ErrEmptyRegistry) {
		return entry, err
	}

	r.logger.Warn("no search engines, restoring defaults")
	if err := r.engines.ResetToDefaults(); err != nil {
		return registry.Entry{}, fmt.Errorf("failed to restore defaults: %w", err)
	}
	return r.engines.Selected()
}

func (r *Runner) launch(entry registry.Entry, query string) (string, error) {
	commandLine := template.Compile(entry.Template, entry.Wildcard, entry.Delimiter, query)
	r.logger.Debug("running", "engine", entry.Name, "command", commandLine)

	if err := r.starter.Start(commandLine); err != nil {
		var launchErr *spawn.LaunchError
		if errors.As(err, &launchErr) && r.notifier != nil {
			r.notifier.Error("Searchbar", "Can't open "+entry.Name)
		}
		r.logger.Error("failed to run search", "engine", entry.Name, "error", err)
		return commandLine, err
	}
	return commandLine, nil
}
