package registry

// DefaultOpenSearchBarKey is the accelerator stored after a reset.
const DefaultOpenSearchBarKey = "<Super>s"

// DefaultEntries returns the built-in search engines.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Name:      "Google",
			Template:  "xdg-open https://www.google.com/search?q=#",
			Wildcard:  "#",
			Delimiter: "+",
		},
		{
			Name:      "DuckDuckGo",
			Template:  "xdg-open https://duckduckgo.com/?q=#",
			Wildcard:  "#",
			Delimiter: "+",
		},
		{
			Name:      "Wikipedia",
			Template:  "xdg-open https://en.wikipedia.org/w/index.php?search=#",
			Wildcard:  "#",
			Delimiter: "+",
		},
		{
			Name:      "Recoll",
			Template:  "recoll -q",
			Wildcard:  "",
			Delimiter: " ",
		},
	}
}

// DefaultKeys returns the accelerator list stored after a reset.
func DefaultKeys() []string {
	return []string{DefaultOpenSearchBarKey}
}
