package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lvim-tech/searchbar/pkg/registry"
)

// Options returns one menu line per entry. Lines start with the entry's
// index so that equal or mark-like names stay distinct; the selected entry
// is marked.
func Options(entries []registry.Entry, selected int) []string {
	options := make([]string, 0, len(entries))
	for i, e := range entries {
		label := fmt.Sprintf("%d  %s", i, e.Name)
		if i == selected {
			label = selectedMark + label
		}
		options = append(options, label)
	}
	return options
}

// IndexOf returns the entry index behind a line made by Options.
func IndexOf(choice string) (int, bool) {
	rest := strings.TrimPrefix(choice, selectedMark)
	digits, _, found := strings.Cut(rest, "  ")
	if !found {
		digits = rest
	}
	idx, err := strconv.Atoi(digits)
	if err != nil || idx < 0 {
		return -1, false
	}
	return idx, true
}
