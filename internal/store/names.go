package store

import (
	"fmt"
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// adjectives used for human-friendly project ids
var adjectives = []string{
	"amber", "bold", "brave", "bright", "calm", "clever", "cool", "crisp",
	"eager", "fast", "fierce", "fine", "fresh", "gentle", "golden", "grand",
	"happy", "keen", "kind", "lively", "lucky", "mellow", "mighty", "neat",
	"noble", "proud", "quick", "quiet", "rapid", "sharp", "shiny", "silent",
	"smart", "smooth", "solid", "steady", "sunny", "swift", "warm", "wise",
}

// animals used for human-friendly project ids
var animals = []string{
	"badger", "bear", "beaver", "bison", "crane", "crow", "deer", "dolphin",
	"eagle", "falcon", "ferret", "finch", "fox", "gecko", "hare", "hawk",
	"heron", "husky", "ibex", "jay", "koala", "lemur", "lynx", "magpie",
	"marten", "mole", "moose", "otter", "owl", "panda", "pike", "puffin",
	"raven", "robin", "salmon", "seal", "sparrow", "stoat", "swift", "tern",
	"tiger", "trout", "walrus", "weasel", "wolf", "wren",
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

const nanoidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// newProjectID generates a human-friendly id like "swift_otter_V1StGXR8".
// The readable prefix makes the JSON data file pleasant to inspect; the
// nanoid suffix carries the uniqueness.
func newProjectID() (string, error) {
	adjective := adjectives[rng.Intn(len(adjectives))]
	animal := animals[rng.Intn(len(animals))]

	suffix, err := gonanoid.Generate(nanoidAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}

	return fmt.Sprintf("%s_%s_%s", adjective, animal, suffix), nil
}
