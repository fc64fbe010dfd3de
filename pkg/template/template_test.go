package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		tmpl      string
		wildcard  string
		delimiter string
		query     string
		want      string
	}{
		{
			name:      "WildcardMode",
			tmpl:      "xdg-open https://example.com/search?q=#",
			wildcard:  "#",
			delimiter: "+",
			query:     "hello world",
			want:      "xdg-open https://example.com/search?q=hello+world",
		},
		{
			name:      "AppendMode",
			tmpl:      "recoll -q",
			wildcard:  "",
			delimiter: " ",
			query:     "  my query  ",
			want:      "recoll -q my query",
		},
		{
			name:      "MissingWildcardDropsQuery",
			tmpl:      "echo hi",
			wildcard:  "#",
			delimiter: "+",
			query:     "ignored",
			want:      "echo hi",
		},
		{
			name:      "RepeatedSpacesAreNotCollapsed",
			tmpl:      "open #",
			wildcard:  "#",
			delimiter: "+",
			query:     "a  b",
			want:      "open a++b",
		},
		{
			name:      "OnlyFirstWildcardReplaced",
			tmpl:      "echo # #",
			wildcard:  "#",
			delimiter: "_",
			query:     "x y",
			want:      "echo x_y #",
		},
		{
			name:      "MultiCharacterWildcard",
			tmpl:      "xdg-open https://duckduckgo.com/?q=%s",
			wildcard:  "%s",
			delimiter: "%20",
			query:     "go modules",
			want:      "xdg-open https://duckduckgo.com/?q=go%20modules",
		},
		{
			name:      "EmptyQueryWildcardMode",
			tmpl:      "open #",
			wildcard:  "#",
			delimiter: "+",
			query:     "   ",
			want:      "open ",
		},
		{
			name:      "EmptyQueryAppendMode",
			tmpl:      "recoll -q",
			wildcard:  "",
			delimiter: "+",
			query:     "",
			want:      "recoll -q ",
		},
		{
			name:      "AppendModeKeepsTrailingTemplateWhitespace",
			tmpl:      "recoll -q ",
			wildcard:  "",
			delimiter: "+",
			query:     "x",
			want:      "recoll -q  x",
		},
		{
			name:      "ReplacementIsLiteral",
			tmpl:      "echo #",
			wildcard:  "#",
			delimiter: "+",
			query:     "$& $1",
			want:      "echo $&+$1",
		},
		{
			name:      "TabsAreNotDelimited",
			tmpl:      "echo #",
			wildcard:  "#",
			delimiter: "+",
			query:     "\ta\tb c\n",
			want:      "echo a\tb+c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.tmpl, tt.wildcard, tt.delimiter, tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasSlot(t *testing.T) {
	assert.True(t, HasSlot("recoll -q", ""), "append mode always takes the query")
	assert.True(t, HasSlot("open #", "#"))
	assert.False(t, HasSlot("echo hi", "#"), "query would be dropped")
}

// TestCompile_Property_Pure checks that the same inputs always give the same output.
func TestCompile_Property_Pure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tmpl := rapid.String().Draw(t, "template")
		wildcard := rapid.String().Draw(t, "wildcard")
		delimiter := rapid.String().Draw(t, "delimiter")
		query := rapid.String().Draw(t, "query")

		first := Compile(tmpl, wildcard, delimiter, query)
		second := Compile(tmpl, wildcard, delimiter, query)
		if first != second {
			t.Fatalf("Compile not deterministic: %q != %q", first, second)
		}
	})
}

// TestCompile_Property_AppendMode checks the shape of append-mode output.
func TestCompile_Property_AppendMode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tmpl := rapid.String().Draw(t, "template")
		query := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "query")

		got := Compile(tmpl, "", "+", query)
		want := tmpl + " " + strings.ReplaceAll(strings.TrimSpace(query), " ", "+")
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

// TestCompile_Property_NoSpacesLeft checks that a non-space delimiter removes
// every space from an inserted query.
func TestCompile_Property_NoSpacesLeft(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		query := rapid.StringMatching(`[a-z ]{1,30}`).Draw(t, "query")

		got := Compile("#", "#", "+", query)
		if strings.Contains(got, " ") {
			t.Fatalf("space left in %q", got)
		}
	})
}
