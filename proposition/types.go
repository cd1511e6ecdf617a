// Package proposition defines the finite alphabet of observable Boolean
// variables (propositions) that temporal-network labels are built from, and
// the four-valued literal state each proposition can take within a label.
//
// The alphabet is bounded at 32 letters (the range 'a'-'z','A'-'F') because a
// Label (see the sibling label package) packs one proposition's state into
// two bits of a 32-bit word pair. Alphabets are process-wide for a single
// network check and must not be reused across checks (tngraph.NewGraph
// creates a fresh one per graph; see also
// the "Global mutable state" design note carried over from the network this
// repository verifies).
//
// Errors:
//
//	ErrAlphabetFull       - the alphabet already holds 32 propositions.
//	ErrUnknownProposition - a rune was not found in the alphabet.
//	ErrDuplicateLetter    - not returned by Alphabet.Put, which is idempotent.
package proposition

import (
	"errors"
	"fmt"
)

// MaxPropositions is the hard cap on distinct propositions a single Label can
// encode: two bits per index, one in each of two 32-bit words.
const MaxPropositions = 32

// alphabetLetters is the fixed, ordered set of legal proposition letters:
// lowercase a-z (26) followed by uppercase A-F (6), for 32 total.
const alphabetLetters = "abcdefghijklmnopqrstuvwxyzABCDEF"

// Sentinel errors for alphabet construction and lookup.
var (
	// ErrAlphabetFull indicates an attempt to register a 33rd proposition.
	ErrAlphabetFull = errors.New("proposition: alphabet is full (max 32)")

	// ErrUnknownProposition indicates a letter outside the registered alphabet.
	ErrUnknownProposition = errors.New("proposition: unknown proposition letter")

	// ErrDuplicateLetter names a letter that is already registered.
	// Alphabet.Put does not return it: registering a letter again returns
	// the existing Proposition.
	ErrDuplicateLetter = errors.New("proposition: letter already registered")

	// ErrInvalidLetter indicates a rune outside a-z/A-F.
	ErrInvalidLetter = errors.New("proposition: letter out of range a-z,A-F")
)

// State is the four-valued truth assignment a Literal carries for its
// Proposition within a Label. Absent is internal only: it never appears on a
// Literal handed to a caller, it marks "this proposition does not occur" in
// the two-bit encoding.
type State uint8

const (
	// Absent means the proposition does not occur in the label. Internal only.
	Absent State = iota
	// Straight means the proposition occurs un-negated (p).
	Straight
	// Negated means the proposition occurs negated (¬p).
	Negated
	// Unknown means the proposition's truth value is not yet determined (¿p),
	// introduced only by conjunctionExtended on conflicting straight/negated pairs.
	Unknown
)

// String renders a State using the conventional glyphs used by the reader
// grammar: straight has no prefix, ¬ negates, ¿ marks unknown.
func (s State) String() string {
	switch s {
	case Straight:
		return ""
	case Negated:
		return "¬"
	case Unknown:
		return "¿"
	default:
		return "?"
	}
}

// Proposition is an interned element of an Alphabet: a single letter and its
// zero-based Index, the bit position it occupies inside a Label's two words.
type Proposition struct {
	letter rune // the alphabet letter, e.g. 'p'
	index  uint8 // bit position within the owning alphabet, 0..31
}

// Letter returns the proposition's alphabet letter.
func (p Proposition) Letter() rune { return p.letter }

// Index returns the proposition's zero-based bit position.
func (p Proposition) Index() uint8 { return p.index }

// String implements fmt.Stringer.
func (p Proposition) String() string { return string(p.letter) }

// Literal pairs a Proposition with the State it carries inside a particular
// Label. Literals are immutable value types; equality is by (Proposition,
// State). Absent literals are never constructed via NewLiteral.
type Literal struct {
	prop  Proposition
	state State
}

// NewLiteral builds a Literal in the given non-Absent state.
// Complexity: O(1).
func NewLiteral(p Proposition, s State) (Literal, error) {
	if s == Absent {
		return Literal{}, fmt.Errorf("proposition.NewLiteral(%s): %w: literal state cannot be Absent", p, ErrInvalidLetter)
	}
	return Literal{prop: p, state: s}, nil
}

// Proposition returns the literal's underlying proposition.
func (l Literal) Proposition() Proposition { return l.prop }

// State returns the literal's truth state.
func (l Literal) State() State { return l.state }

// Negate returns the complementary literal (straight<->negated); unknown
// literals have no complement and Negate returns them unchanged, matching
// the source behavior that negation skips unknown positions.
func (l Literal) Negate() Literal {
	switch l.state {
	case Straight:
		return Literal{prop: l.prop, state: Negated}
	case Negated:
		return Literal{prop: l.prop, state: Straight}
	default:
		return l
	}
}

// String renders the literal using the reader grammar, e.g. "p", "¬p", "¿p".
func (l Literal) String() string {
	return l.state.String() + string(l.prop.letter)
}
