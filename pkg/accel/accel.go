// Package accel parses GTK style keyboard accelerators such as "<Super>s" or
// "<Primary><Alt>Return", as stored in the open-search-bar-key setting.
package accel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is returned for a string that is not an accelerator
var ErrInvalid = errors.New("invalid accelerator")

// Accelerator is a parsed accelerator: modifiers in written order plus a key.
type Accelerator struct {
	Modifiers []string
	Key       string
}

var (
	modifierRE = regexp.MustCompile(`^<([A-Za-z0-9_]+)>`)
	keyRE      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// canonical maps accepted modifier spellings to the name written back.
var canonical = map[string]string{
	"primary": "Primary",
	"control": "Control",
	"ctrl":    "Control",
	"ctl":     "Control",
	"shift":   "Shift",
	"alt":     "Alt",
	"mod1":    "Alt",
	"super":   "Super",
	"meta":    "Meta",
	"hyper":   "Hyper",
}

// Parse parses s. Modifier names are case insensitive and normalized; the key
// name is kept as written.
func Parse(s string) (Accelerator, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return Accelerator{}, fmt.Errorf("%w: empty", ErrInvalid)
	}

	var a Accelerator
	for {
		m := modifierRE.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		name, ok := canonical[strings.ToLower(m[1])]
		if !ok {
			return Accelerator{}, fmt.Errorf("%w: unknown modifier <%s>", ErrInvalid, m[1])
		}
		a.Modifiers = append(a.Modifiers, name)
		rest = rest[len(m[0]):]
	}

	if rest == "" {
		return Accelerator{}, fmt.Errorf("%w: %q has no key", ErrInvalid, s)
	}
	if !keyRE.MatchString(rest) {
		return Accelerator{}, fmt.Errorf("%w: bad key %q", ErrInvalid, rest)
	}
	a.Key = rest
	return a, nil
}

// String formats a in GTK notation.
func (a Accelerator) String() string {
	var b strings.Builder
	for _, m := range a.Modifiers {
		b.WriteString("<" + m + ">")
	}
	b.WriteString(a.Key)
	return b.String()
}

// Label returns a human readable form, e.g. "Super + S".
func (a Accelerator) Label() string {
	parts := make([]string, 0, len(a.Modifiers)+1)
	for _, m := range a.Modifiers {
		switch m {
		case "Primary", "Control":
			parts = append(parts, "Ctrl")
		default:
			parts = append(parts, m)
		}
	}
	key := a.Key
	if len(key) == 1 {
		key = strings.ToUpper(key)
	}
	return strings.Join(append(parts, key), " + ")
}
