package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValues() Values {
	return Values{
		KeyCommandNames:      []string{"Google", "Recoll"},
		KeyCommandTemplates:  []string{"xdg-open https://www.google.com/search?q=#", "recoll -q"},
		KeyCommandWildcards:  []string{"#", ""},
		KeyCommandDelimiters: []string{"+", " "},
		KeyCommandID:         1,
		KeyOpenSearchBarKey:  []string{"<Super>s"},
	}
}

// toStrings normalizes a loaded list, whatever type the backend decoded it to.
func toStrings(t *testing.T, v any) []string {
	t.Helper()
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			require.True(t, ok, "unexpected element %T", item)
			out = append(out, s)
		}
		return out
	default:
		t.Fatalf("unexpected list type %T", v)
		return nil
	}
}

func toInt(t *testing.T, v any) int {
	t.Helper()
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		t.Fatalf("unexpected number type %T", v)
		return 0
	}
}

func newStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendTOML:   NewTOMLStore(filepath.Join(dir, "settings.toml")),
		BackendYAML:   NewYAMLStore(filepath.Join(dir, "nested", "settings.yaml")),
		BackendSQLite: sqliteStore,
	}
}

func TestStore_LoadMissing_ReturnsNotFound(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load()
			assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		})
	}
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleValues()
			require.NoError(t, store.Save(want))

			got, err := store.Load()
			require.NoError(t, err)

			for _, key := range []string{KeyCommandNames, KeyCommandTemplates, KeyCommandWildcards, KeyCommandDelimiters, KeyOpenSearchBarKey} {
				assert.Equal(t, want[key], toStrings(t, got[key]), key)
			}
			assert.Equal(t, 1, toInt(t, got[KeyCommandID]))
			assert.Equal(t, name, store.Name())
		})
	}
}

func TestStore_SaveReplacesPreviousDocument(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(sampleValues()))

			next := sampleValues()
			next[KeyCommandNames] = []string{"Only"}
			next[KeyCommandTemplates] = []string{"echo #"}
			next[KeyCommandWildcards] = []string{"#"}
			next[KeyCommandDelimiters] = []string{"_"}
			next[KeyCommandID] = 0
			next[KeyOpenSearchBarKey] = []string{}
			require.NoError(t, store.Save(next))

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, []string{"Only"}, toStrings(t, got[KeyCommandNames]))
			assert.Equal(t, 0, toInt(t, got[KeyCommandID]))

			key, present := got[KeyOpenSearchBarKey]
			require.True(t, present, "an empty accelerator list must still be stored")
			assert.Empty(t, toStrings(t, key))
		})
	}
}

func TestTOMLStore_WritesKeysInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	store := NewTOMLStore(path)
	require.NoError(t, store.Save(sampleValues()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	last := -1
	for _, key := range Keys {
		idx := strings.Index(content, key+" =")
		require.GreaterOrEqual(t, idx, 0, "missing %s in:\n%s", key, content)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
}

func TestTOMLStore_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("command-names = [unterminated"), 0644))

	_, err := NewTOMLStore(path).Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTOMLStore_PartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("command-id = 3\n"), 0644))

	got, err := NewTOMLStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, toInt(t, got[KeyCommandID]))
	_, present := got[KeyCommandNames]
	assert.False(t, present)
}

func TestMemoryStore_FailWith(t *testing.T) {
	store := NewMemoryStore()
	store.FailWith(fmt.Errorf("disk full"))

	assert.Error(t, store.Save(sampleValues()))
	assert.Equal(t, 0, store.Saves())

	store.FailWith(nil)
	assert.NoError(t, store.Save(sampleValues()))
	assert.Equal(t, 1, store.Saves())
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	v := sampleValues()
	store := NewMemoryStoreWith(v)
	v[KeyCommandNames].([]string)[0] = "changed"

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Google", got[KeyCommandNames].([]string)[0])
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend  string
		wantName string
		wantPath string
	}{
		{backend: "", wantName: BackendTOML, wantPath: filepath.Join(dir, "settings.toml")},
		{backend: "TOML", wantName: BackendTOML, wantPath: filepath.Join(dir, "settings.toml")},
		{backend: "yaml", wantName: BackendYAML, wantPath: filepath.Join(dir, "settings.yaml")},
		{backend: "sqlite", wantName: BackendSQLite, wantPath: filepath.Join(dir, "settings.db")},
		{backend: "memory", wantName: BackendMemory, wantPath: ""},
	}

	for _, tt := range tests {
		t.Run(tt.wantName+"_"+tt.backend, func(t *testing.T) {
			store, err := Open(tt.backend, "", dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, store.Name())
			assert.Equal(t, tt.wantPath, store.Path())
			if s, ok := store.(*SQLiteStore); ok {
				s.Close()
			}
		})
	}

	t.Run("ExplicitPath", func(t *testing.T) {
		path := filepath.Join(dir, "custom.toml")
		store, err := Open("toml", path, dir)
		require.NoError(t, err)
		assert.Equal(t, path, store.Path())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Open("gsettings", "", dir)
		assert.True(t, errors.Is(err, ErrUnknownBackend))
	})
}

func TestWatch_ReportsSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	store := NewTOMLStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleValues()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	for range changed {
	}
}

func TestWatch_RequiresPath(t *testing.T) {
	_, err := Watch(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestFileStores_ReplaceFileInPlace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "searchbar")
	stores := []Store{
		NewTOMLStore(filepath.Join(dir, "settings.toml")),
		NewYAMLStore(filepath.Join(dir, "settings.yaml")),
	}

	for _, store := range stores {
		t.Run(store.Name(), func(t *testing.T) {
			require.NoError(t, store.Save(sampleValues()))
			require.NoError(t, store.Save(sampleValues()))

			info, err := os.Stat(store.Path())
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"settings.toml", "settings.yaml"}, names, "no temp files left behind")
}
