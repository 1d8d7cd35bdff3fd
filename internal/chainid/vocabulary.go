// internal/chainid/vocabulary.go
package chainid

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Vocabulary names the tokens that mark heavy and light chains.
type Vocabulary struct {
	Name  string
	Heavy string
	Light string
}

// Built-in vocabularies seen in real inputs.
var (
	Letters    = Vocabulary{Name: "HL", Heavy: "H", Light: "L"}
	Positional = Vocabulary{Name: "ab", Heavy: "a", Light: "b"}
)

var builtin = map[string]Vocabulary{
	Letters.Name:    Letters,
	Positional.Name: Positional,
}

// Lookup returns the built-in vocabulary called name (case-insensitive for
// "hl", exact otherwise since "ab" and "AB" would be different tokens).
func Lookup(name string) (Vocabulary, error) {
	if v, ok := builtin[name]; ok {
		return v, nil
	}
	if strings.EqualFold(name, Letters.Name) {
		return Letters, nil
	}
	return Vocabulary{}, fmt.Errorf("unknown vocabulary %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the built-in vocabulary names, sorted.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for n := range builtin {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Custom builds a vocabulary from user supplied tokens.
func Custom(heavy, light string) (Vocabulary, error) {
	v := Vocabulary{Name: heavy + "/" + light, Heavy: heavy, Light: light}
	return v, v.Validate()
}

// Validate checks that the tokens can be told apart in a name.
func (v Vocabulary) Validate() error {
	for _, tok := range []string{v.Heavy, v.Light} {
		switch {
		case tok == "":
			return errors.New("chain token must not be empty")
		case strings.ContainsAny(tok, "- \t"):
			return fmt.Errorf("chain token %q must not contain '-' or whitespace", tok)
		case tok[0] >= '0' && tok[0] <= '9':
			return fmt.Errorf("chain token %q must not start with a digit", tok)
		}
	}
	if v.Heavy == v.Light {
		return fmt.Errorf("heavy and light tokens are both %q", v.Heavy)
	}
	return nil
}

// Token returns the token used for chain c.
func (v Vocabulary) Token(c Chain) string {
	if c == Light {
		return v.Light
	}
	return v.Heavy
}

func (v Vocabulary) String() string {
	return fmt.Sprintf("%s (heavy=%s, light=%s)", v.Name, v.Heavy, v.Light)
}
