package hotkey

import "testing"

func TestParseChord(t *testing.T) {
	chord, err := ParseChord("win+shift+w")
	if err != nil {
		t.Fatalf("ParseChord() error = %v", err)
	}

	if chord.Key != "w" {
		t.Fatalf("unexpected key: %s", chord.Key)
	}
	if len(chord.Modifiers) != 2 || chord.Modifiers[0] != "super" || chord.Modifiers[1] != "shift" {
		t.Fatalf("unexpected modifiers: %v", chord.Modifiers)
	}
}

func TestParseChord_AliasNormalization(t *testing.T) {
	for _, alias := range []string{"win+x", "cmd+x", "meta+x", "super+x"} {
		chord, err := ParseChord(alias)
		if err != nil {
			t.Fatalf("ParseChord(%q) error = %v", alias, err)
		}
		if chord.Modifiers[0] != "super" {
			t.Fatalf("ParseChord(%q) modifier = %s", alias, chord.Modifiers[0])
		}
	}
}

func TestParseChord_Invalid(t *testing.T) {
	cases := []string{
		"w",          // no modifier
		"ctrl+shift", // ends in a modifier
		"bogus+w",    // unknown modifier
		"ctrl++w",    // empty element
		"",
	}
	for _, in := range cases {
		if _, err := ParseChord(in); err == nil {
			t.Fatalf("ParseChord(%q) expected error", in)
		}
	}
}

func TestChordString(t *testing.T) {
	chord, err := ParseChord("Ctrl+Alt+P")
	if err != nil {
		t.Fatalf("ParseChord() error = %v", err)
	}
	if chord.String() != "ctrl+alt+p" {
		t.Fatalf("String() = %s", chord.String())
	}
}

func TestChordMatches(t *testing.T) {
	chord, _ := ParseChord("super+shift+w")

	pressed := map[string]bool{"super": true, "shift": true}
	if !chord.matches(pressed, "w") {
		t.Fatal("expected match with all modifiers held")
	}
	if chord.matches(map[string]bool{"super": true}, "w") {
		t.Fatal("unexpected match with a modifier missing")
	}
	if chord.matches(pressed, "q") {
		t.Fatal("unexpected match on wrong key")
	}
}
