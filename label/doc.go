// Encoding:
//
//	A Label holds two 32-bit words, bit0 and bit1. For each proposition index
//	i (0..31) the pair (bit1[i], bit0[i]) encodes that proposition's state:
//
//	  00 = absent     (proposition does not occur)
//	  01 = straight    (p)
//	  10 = negated     (¬p)
//	  11 = unknown     (¿p)
//
//	The empty label ⊡ is the Label zero value: both words all-zero. Because
//	Label is a plain comparable struct, Go's built-in == already gives every
//	empty label the identical representation and every equal label the same
//	comparison result, with no process-wide mutable state to reset between
//	checks (see the engine package's per-check proposition.Alphabet scoping).
//
// Invariants maintained by every constructor and combinator in this package:
//   - Labels are immutable: no exported method mutates its receiver.
//   - size(L) == popcount(bit0 | bit1).
//   - Every combinator either returns a new Label value or fails outright
//     (conjunction); none panics on valid input.
package label
