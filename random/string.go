package random

import (
	"github.com/gpahal/randengine/predicates"
)

// Char returns a character sampled uniformly from the union of the enabled
// classes. It fails with ErrInvalidArgument if no class is enabled.
func (r *Random) Char(classes Class) (byte, error) {
	alphabet, err := alphabetOf(classes)
	if err != nil {
		return 0, err
	}
	return r.char(alphabet), nil
}

// String returns length characters, each generated as by Char.
func (r *Random) String(classes Class, length int) (string, error) {
	alphabet, err := alphabetOf(classes)
	if err != nil {
		return "", err
	}
	if err := predicates.Require(length >= 0, ErrInvalidArgument, "negative length %d", length); err != nil {
		return "", err
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = r.char(alphabet)
	}
	return string(b), nil
}

func (r *Random) char(alphabet string) byte {
	return alphabet[r.number(0, len(alphabet)-1)]
}

func alphabetOf(classes Class) (string, error) {
	alphabet := classes.Alphabet()
	if err := predicates.Require(alphabet != "", ErrInvalidArgument, "no character class enabled"); err != nil {
		return "", err
	}
	return alphabet, nil
}

// GenerateChar is Char on a freshly seeded engine.
func GenerateChar(classes Class) (byte, error) {
	return fresh().Char(classes)
}

// GenerateString is String on a freshly seeded engine.
func GenerateString(classes Class, length int) (string, error) {
	return fresh().String(classes, length)
}
