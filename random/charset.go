package random

import (
	"strings"

	"github.com/pkg/errors"
)

// Class is a set of character classes. Individual classes combine with |.
type Class uint8

const (
	Lower Class = 1 << iota
	Upper
	Digit
	Special

	AllClasses = Lower | Upper | Digit | Special
)

const (
	lowerAlphabet   = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet   = "0123456789"
	specialAlphabet = "!@#$%^&*"
)

var classTable = []struct {
	class    Class
	name     string
	alphabet string
}{
	{Lower, "lower", lowerAlphabet},
	{Upper, "upper", upperAlphabet},
	{Digit, "digit", digitAlphabet},
	{Special, "special", specialAlphabet},
}

var classAliases = map[string]Class{
	"lower":     Lower,
	"lowercase": Lower,
	"upper":     Upper,
	"uppercase": Upper,
	"digit":     Digit,
	"digits":    Digit,
	"number":    Digit,
	"numbers":   Digit,
	"special":   Special,
	"specials":  Special,
	"all":       AllClasses,
}

// NewClass builds a Class from the four legacy flags.
func NewClass(lower, upper, digits, specials bool) Class {
	var c Class
	if lower {
		c |= Lower
	}
	if upper {
		c |= Upper
	}
	if digits {
		c |= Digit
	}
	if specials {
		c |= Special
	}
	return c
}

// ParseClasses parses a comma separated list of class names such as
// "lower,digit". An empty string yields the empty set.
func ParseClasses(s string) (Class, error) {
	var c Class
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		class, ok := classAliases[name]
		if !ok {
			return 0, errors.Wrapf(ErrInvalidArgument, "unknown character class %q", name)
		}
		c |= class
	}
	return c, nil
}

// Has reports whether every class in other is enabled in c.
func (c Class) Has(other Class) bool {
	return c&other == other
}

// Alphabet returns the union of the enabled classes' characters.
func (c Class) Alphabet() string {
	var sb strings.Builder
	for _, entry := range classTable {
		if c.Has(entry.class) {
			sb.WriteString(entry.alphabet)
		}
	}
	return sb.String()
}

func (c Class) String() string {
	names := make([]string, 0, len(classTable))
	for _, entry := range classTable {
		if c.Has(entry.class) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, ",")
}
