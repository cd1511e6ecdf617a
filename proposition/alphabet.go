package proposition

// Alphabet interns the propositions of a single temporal-network check. It is
// owned exclusively by the graph that created it (see tngraph.NewGraph) and must
// never be shared across two concurrent checks: indices are assigned in
// registration order and are meaningless outside the Alphabet that assigned
// them.
//
// Complexity: Put/ByLetter/ByIndex are O(1) map or slice lookups.
type Alphabet struct {
	letters []rune // index -> letter, len == count
	byRune  map[rune]uint8
}

// NewAlphabet returns an empty Alphabet ready to register up to
// MaxPropositions letters.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		letters: make([]rune, 0, MaxPropositions),
		byRune:  make(map[rune]uint8, MaxPropositions),
	}
}

// isLegalLetter reports whether r is one of the 32 alphabet letters
// (a-z, A-F).
func isLegalLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'F')
}

// Put registers letter r if not already present and returns its Proposition.
// Re-registering an already-known letter returns the existing Proposition
// (idempotent), matching the interning contract of the Label algebra.
func (a *Alphabet) Put(r rune) (Proposition, error) {
	if idx, ok := a.byRune[r]; ok {
		return Proposition{letter: r, index: idx}, nil
	}
	if !isLegalLetter(r) {
		return Proposition{}, ErrInvalidLetter
	}
	if len(a.letters) >= MaxPropositions {
		return Proposition{}, ErrAlphabetFull
	}
	idx := uint8(len(a.letters))
	a.letters = append(a.letters, r)
	a.byRune[r] = idx
	return Proposition{letter: r, index: idx}, nil
}

// ByLetter looks up an already-registered proposition.
func (a *Alphabet) ByLetter(r rune) (Proposition, error) {
	idx, ok := a.byRune[r]
	if !ok {
		return Proposition{}, ErrUnknownProposition
	}
	return Proposition{letter: r, index: idx}, nil
}

// ByIndex looks up an already-registered proposition by its bit position.
func (a *Alphabet) ByIndex(i uint8) (Proposition, error) {
	if int(i) >= len(a.letters) {
		return Proposition{}, ErrUnknownProposition
	}
	return Proposition{letter: a.letters[i], index: i}, nil
}

// Len reports how many propositions have been registered.
func (a *Alphabet) Len() int { return len(a.letters) }

// Letters returns a snapshot slice of registered letters in index order.
// Complexity: O(n); returns a defensive copy.
func (a *Alphabet) Letters() []rune {
	out := make([]rune, len(a.letters))
	copy(out, a.letters)
	return out
}
