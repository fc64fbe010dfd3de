package accel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input     string
		wantMods  []string
		wantKey   string
		wantLabel string
		wantStr   string
	}{
		{input: "<Super>s", wantMods: []string{"Super"}, wantKey: "s", wantLabel: "Super + S", wantStr: "<Super>s"},
		{input: "<Primary><Alt>Return", wantMods: []string{"Primary", "Alt"}, wantKey: "Return", wantLabel: "Ctrl + Alt + Return", wantStr: "<Primary><Alt>Return"},
		{input: "<ctrl>space", wantMods: []string{"Control"}, wantKey: "space", wantLabel: "Ctrl + space", wantStr: "<Control>space"},
		{input: "F12", wantKey: "F12", wantLabel: "F12", wantStr: "F12"},
		{input: "  <Shift><Super>F2 ", wantMods: []string{"Shift", "Super"}, wantKey: "F2", wantLabel: "Shift + Super + F2", wantStr: "<Shift><Super>F2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMods, a.Modifiers)
			assert.Equal(t, tt.wantKey, a.Key)
			assert.Equal(t, tt.wantLabel, a.Label())
			assert.Equal(t, tt.wantStr, a.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "<Super>", "<Bogus>s", "<Super>s x", "<Super", "s+"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.True(t, errors.Is(err, ErrInvalid), "Parse(%q) = %v", input, err)
		})
	}
}
