// Package template turns a user query into a command line using a search
// engine template.
//
// A template is a plain command line with an optional wildcard token marking
// where the query goes. When the wildcard is empty the query is appended after
// a single space instead.
package template

import "strings"

// Compile builds the command line for query.
//
// The query is trimmed and every space character in it is replaced with
// delimiter, one for one ("a  b" with "+" gives "a++b"). With a non-empty
// wildcard only the first occurrence is replaced; a template without the
// wildcard is returned unchanged and the query is dropped. With an empty
// wildcard the query is appended after one space.
func Compile(tmpl, wildcard, delimiter, query string) string {
	q := Transform(query, delimiter)
	if wildcard != "" {
		return strings.Replace(tmpl, wildcard, q, 1)
	}
	return tmpl + " " + q
}

// Transform trims query and replaces each space with delimiter.
func Transform(query, delimiter string) string {
	return strings.ReplaceAll(strings.TrimSpace(query), " ", delimiter)
}

// HasSlot reports whether a query compiled with tmpl and wildcard ends up in
// the command line. It is false only when wildcard is set but missing from tmpl.
func HasSlot(tmpl, wildcard string) bool {
	return wildcard == "" || strings.Contains(tmpl, wildcard)
}
