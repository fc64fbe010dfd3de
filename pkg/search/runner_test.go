package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/settings"
	"github.com/lvim-tech/searchbar/pkg/spawn"
)

type fakeStarter struct {
	started []string
	err     error
}

func (f *fakeStarter) Start(commandLine string) error {
	f.started = append(f.started, commandLine)
	if f.err != nil {
		return &spawn.LaunchError{Command: commandLine, Err: f.err}
	}
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Error(title, message string) {
	f.messages = append(f.messages, title+": "+message)
}

// emptyEngines reports an empty registry until it is reset.
type emptyEngines struct {
	*registry.Registry
	empty  bool
	resets int
}

func (e *emptyEngines) Selected() (registry.Entry, error) {
	if e.empty {
		return registry.Entry{}, registry.ErrEmptyRegistry
	}
	return e.Registry.Selected()
}

func (e *emptyEngines) ResetToDefaults() error {
	e.resets++
	e.empty = false
	return e.Registry.ResetToDefaults()
}

func newRunner(t *testing.T) (*Runner, *registry.Registry, *fakeStarter, *fakeNotifier) {
	t.Helper()
	reg := registry.New()
	starter := &fakeStarter{}
	notifier := &fakeNotifier{}
	return NewRunner(reg, starter, notifier, nil), reg, starter, notifier
}

func TestRun_SelectedEngine(t *testing.T) {
	r, reg, starter, _ := newRunner(t)
	require.NoError(t, reg.Select(2))

	cmd, err := r.Run("  go channels ")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open https://en.wikipedia.org/w/index.php?search=go+channels", cmd)
	assert.Equal(t, []string{cmd}, starter.started)
}

func TestRun_AppendMode(t *testing.T) {
	r, reg, starter, _ := newRunner(t)
	idx, ok := reg.Find("Recoll")
	require.True(t, ok)
	require.NoError(t, reg.Select(idx))

	_, err := r.Run("tax 2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"recoll -q tax 2024"}, starter.started)
}

func TestRun_EmptyQuery(t *testing.T) {
	r, _, starter, _ := newRunner(t)
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := r.Run(q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Empty(t, starter.started)
}

func TestRun_LaunchFailureNotifies(t *testing.T) {
	r, reg, starter, notifier := newRunner(t)
	starter.err = errors.New("executable file not found")

	cmd, err := r.Run("weather")
	var launchErr *spawn.LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, cmd, launchErr.Command)
	assert.Equal(t, []string{"Searchbar: Can't open Google"}, notifier.messages)

	// The registry is still usable.
	starter.err = nil
	require.NoError(t, reg.Select(1))
	_, err = r.Run("weather")
	assert.NoError(t, err)
}

func TestRun_EmptyRegistryResets(t *testing.T) {
	engines := &emptyEngines{Registry: registry.New(), empty: true}
	starter := &fakeStarter{}
	r := NewRunner(engines, starter, nil, nil)

	_, err := r.Run("x")
	require.NoError(t, err)
	assert.Equal(t, 1, engines.resets)
	assert.Equal(t, []string{"xdg-open https://www.google.com/search?q=x"}, starter.started)
}

func TestRunWith(t *testing.T) {
	r, reg, starter, _ := newRunner(t)

	_, err := r.RunWith("DuckDuckGo", "a b")
	require.NoError(t, err)
	assert.Equal(t, []string{"xdg-open https://duckduckgo.com/?q=a+b"}, starter.started)
	assert.Equal(t, 0, reg.SelectedIndex())

	_, err = r.RunWith("Bing", "a")
	assert.ErrorIs(t, err, ErrUnknownEngine)

	_, err = r.RunWith("DuckDuckGo", " ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestPreview(t *testing.T) {
	r, _, starter, _ := newRunner(t)

	cmd, entry, err := r.Preview("hello world")
	require.NoError(t, err)
	assert.Equal(t, "Google", entry.Name)
	assert.Equal(t, "xdg-open https://www.google.com/search?q=hello+world", cmd)
	assert.Empty(t, starter.started)
}

func TestPreview_Overrides(t *testing.T) {
	r, reg, _, _ := newRunner(t)

	cmd, entry, err := r.Preview("x y",
		func(e *registry.Entry) { e.Template = "open man:@" },
		func(e *registry.Entry) { e.Wildcard = "@" },
		func(e *registry.Entry) { e.Delimiter = "-" },
	)
	require.NoError(t, err)
	assert.Equal(t, "open man:x-y", cmd)
	assert.Equal(t, "Google", entry.Name)
	assert.Equal(t, "@", entry.Wildcard)

	// The stored engine is untouched.
	stored, err := reg.Selected()
	require.NoError(t, err)
	assert.Equal(t, "xdg-open https://www.google.com/search?q=#", stored.Template)
}

func TestSave_SelectsAndPersists(t *testing.T) {
	store := settings.NewMemoryStore()
	reg := registry.Open(store)
	r := NewRunner(reg, &fakeStarter{}, nil, nil)

	idx, err := r.Save(registry.Entry{Name: "Man", Template: "xdg-open man:#", Wildcard: "#"})
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	assert.Equal(t, 4, reg.SelectedIndex())

	reloaded := registry.Open(store)
	assert.Equal(t, 4, reloaded.SelectedIndex())
	e, err := reloaded.Selected()
	require.NoError(t, err)
	assert.Equal(t, "Man", e.Name)

	// Saving under an existing name keeps the index.
	idx, err = r.Save(registry.Entry{Name: "Google", Template: "xdg-open https://google.com/?q=#", Wildcard: "#", Delimiter: "+"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, reg.SelectedIndex())
	assert.Equal(t, 5, reg.Len())
}

func TestSave_Invalid(t *testing.T) {
	r, reg, _, _ := newRunner(t)
	_, err := r.Save(registry.Entry{Name: " "})
	assert.ErrorIs(t, err, registry.ErrInvalidEntry)
	assert.Equal(t, 0, reg.SelectedIndex())
}
