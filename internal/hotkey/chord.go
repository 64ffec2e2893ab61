package hotkey

import (
	"fmt"
	"strings"
)

// Chord is a parsed global hotkey like "win+shift+w": a set of modifiers
// plus one final key.
type Chord struct {
	Modifiers []string
	Key       string
}

// modifier aliases normalized to canonical names
var modifierAliases = map[string]string{
	"win":     "super",
	"windows": "super",
	"cmd":     "super",
	"meta":    "super",
	"super":   "super",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
}

// ParseChord parses a chord description of the form "mod+mod+key".
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("invalid hotkey chord %q: need at least one modifier and a key", s)
	}

	var chord Chord
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return Chord{}, fmt.Errorf("invalid hotkey chord %q: empty element", s)
		}

		if i == len(parts)-1 {
			if _, isMod := modifierAliases[part]; isMod {
				return Chord{}, fmt.Errorf("invalid hotkey chord %q: last element must be a key", s)
			}
			chord.Key = part
			continue
		}

		mod, ok := modifierAliases[part]
		if !ok {
			return Chord{}, fmt.Errorf("invalid hotkey chord %q: unknown modifier %q", s, part)
		}
		chord.Modifiers = append(chord.Modifiers, mod)
	}

	return chord, nil
}

// String renders the chord back into "mod+mod+key" form.
func (c Chord) String() string {
	return strings.Join(append(append([]string{}, c.Modifiers...), c.Key), "+")
}

// matches reports whether the chord fires for a press of key while the
// given keys are held.
func (c Chord) matches(pressed map[string]bool, key string) bool {
	if key != c.Key {
		return false
	}
	for _, mod := range c.Modifiers {
		if !pressed[mod] {
			return false
		}
	}
	return true
}
