package label

import (
	"strings"

	"github.com/katalvlaran/tnucheck/proposition"
)

// emptyGlyph and state-prefix glyphs match the GraphML reader grammar
// LABEL_RE = ( ((¬|¿|ε)[a-zA-F])+ | ⊡ ) verbatim, including round-tripping
// the UTF-8 ⊡/¬/¿ literals.
const emptyGlyph = "⊡"

// Parse decodes a label token against alphabet, registering any
// previously-unseen legal letter. Accepted tokens: "⊡" for the empty label,
// or a run of literal tokens each optionally prefixed by ¬ (negated) or ¿
// (unknown) and otherwise straight.
//
// Parse fails with ErrParse on structurally invalid input and with
// ErrConflictingLiteral when the same proposition is repeated with
// incompatible states in one token.
func Parse(s string, alphabet *proposition.Alphabet) (Label, error) {
	s = strings.TrimSpace(s)
	if s == emptyGlyph || s == "" {
		return Empty, nil
	}

	runes := []rune(s)
	var bit0, bit1 uint32
	i := 0
	for i < len(runes) {
		state := proposition.Straight
		switch runes[i] {
		case '¬':
			state = proposition.Negated
			i++
		case '¿':
			state = proposition.Unknown
			i++
		}
		if i >= len(runes) {
			return Label{}, ErrParse
		}
		letter := runes[i]
		if !isLegalLetter(letter) {
			return Label{}, ErrParse
		}
		i++
		p, err := alphabet.Put(letter)
		if err != nil {
			return Label{}, err
		}
		existing := stateAt(bit0, bit1, p.Index())
		if existing != proposition.Absent && existing != state {
			return Label{}, ErrConflictingLiteral
		}
		bit0, bit1 = setAt(bit0, bit1, p.Index(), state)
	}
	return Label{bit0: bit0, bit1: bit1}, nil
}

// isLegalLetter mirrors proposition's alphabet range without importing an
// unexported symbol: a-z or A-F.
func isLegalLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'F')
}

// String formats l against alphabet using the same grammar Parse accepts.
// Literals are emitted in ascending proposition-index order, so
// Parse(l.String(alphabet), alphabet) reproduces l (round-trip up to
// whitespace,).
func (l Label) String(alphabet *proposition.Alphabet) string {
	if l.IsEmpty() {
		return emptyGlyph
	}
	lits, err := l.GetLiterals(alphabet)
	if err != nil {
		return emptyGlyph
	}
	var b strings.Builder
	for _, lit := range lits {
		b.WriteString(lit.String())
	}
	return b.String()
}
