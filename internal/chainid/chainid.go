// Package chainid parses antibody chain names such as "TDM-1-H23-mIgGR1_C04.ab1"
// into a base (pair-level) id and a full (chain-level) id.
//
// A name matches when it contains "<prefix>-<token><digits>", where token is
// the heavy or light token of the active Vocabulary. The rightmost match wins.
package chainid

import (
	"errors"
	"fmt"
	"strings"
)

// Chain is the chain type of one physical read.
type Chain uint8

const (
	Heavy Chain = iota
	Light
)

func (c Chain) String() string {
	switch c {
	case Heavy:
		return "heavy"
	case Light:
		return "light"
	}
	return fmt.Sprintf("Chain(%d)", uint8(c))
}

// Other returns the counterpart chain.
func (c Chain) Other() Chain {
	if c == Heavy {
		return Light
	}
	return Heavy
}

// ID is a parsed chain identifier.
type ID struct {
	Prefix string // clone prefix, e.g. "TDM-1"
	Number string // numeric suffix as written, leading zeros kept
	Token  string // chain token as matched, e.g. "H"
	Chain  Chain
	Base   string // Prefix + "-" + Number
	Full   string // Prefix + "-" + Token + Number
}

// ErrNoMatch is wrapped by every ParseError.
var ErrNoMatch = errors.New("no chain identifier")

// ParseError reports a name that carries no recognizable chain suffix.
type ParseError struct {
	Name       string
	Vocabulary string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q: no <prefix>-<chain><number> suffix for vocabulary %s", e.Name, e.Vocabulary)
}

func (e *ParseError) Unwrap() error { return ErrNoMatch }

// Parser turns raw names into IDs under one vocabulary.
type Parser struct {
	vocab Vocabulary
}

// NewParser returns a parser for v. v must be valid (see Vocabulary.Validate).
func NewParser(v Vocabulary) *Parser { return &Parser{vocab: v} }

// Vocabulary returns the active vocabulary.
func (p *Parser) Vocabulary() Vocabulary { return p.vocab }

// Parse extracts the chain identifier from raw. A leading '>' and surrounding
// whitespace are ignored.
func (p *Parser) Parse(raw string) (ID, error) {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, ">")

	// Scan right to left so the last "-<token><digits>" wins, with at least
	// one character of prefix before the dash.
	for i := len(name) - 1; i >= 1; i-- {
		if name[i] != '-' {
			continue
		}
		rest := name[i+1:]
		tok, chain, ok := p.matchToken(rest)
		if !ok {
			continue
		}
		digits := leadingDigits(rest[len(tok):])
		if digits == "" {
			continue
		}
		prefix := name[:i]
		return p.build(prefix, chain, digits), nil
	}
	return ID{}, &ParseError{Name: raw, Vocabulary: p.vocab.Name}
}

// FullID returns the full id of the given chain for a prefix/number pair.
func (p *Parser) FullID(prefix string, c Chain, number string) string {
	return prefix + "-" + p.vocab.Token(c) + number
}

// Counterpart returns the full id of the other chain of id.
func (p *Parser) Counterpart(id ID) string {
	return p.FullID(id.Prefix, id.Chain.Other(), id.Number)
}

func (p *Parser) build(prefix string, c Chain, number string) ID {
	tok := p.vocab.Token(c)
	return ID{
		Prefix: prefix,
		Number: number,
		Token:  tok,
		Chain:  c,
		Base:   prefix + "-" + number,
		Full:   prefix + "-" + tok + number,
	}
}

// matchToken prefers the longer token when one token is a prefix of the other.
func (p *Parser) matchToken(s string) (string, Chain, bool) {
	h, l := p.vocab.Heavy, p.vocab.Light
	hOK := strings.HasPrefix(s, h)
	lOK := strings.HasPrefix(s, l)
	switch {
	case hOK && lOK:
		if len(l) > len(h) {
			return l, Light, true
		}
		return h, Heavy, true
	case hOK:
		return h, Heavy, true
	case lOK:
		return l, Light, true
	}
	return "", 0, false
}

func leadingDigits(s string) string {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return s[:n]
}
