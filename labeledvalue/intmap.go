package labeledvalue

import (
	"sort"

	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/proposition"
)

// Entry is a (Label, value) pair returned by snapshot accessors. Entries are
// defensive copies: mutating one has no effect on the owning LabeledIntMap.
type Entry struct {
	Label label.Label
	Value int
}

// baseRecord remembers, for one bucket size, which proposition set was
// observed to cover all of its 2^n sign combinations, and the maximum value
// among those combinations (the worst-case unconditional bound the base
// guarantees). It is invalidated as soon as any of its component entries is
// removed.
type baseRecord struct {
	props      []proposition.Proposition
	maxValue   int
	components []Entry
}

// LabeledIntMap is an order-minimized map Label -> int.
// The chosen representation is "bucketed-by-size": an outer map keyed by
// label size, each value a map Label -> int. This
// lets the already-represents check scan only labels no longer than the
// label being inserted (dominance removal and base pruning still scan every
// bucket), and Label's comparability lets the bucket itself be a plain Go
// map with no custom hashing.
//
// A LabeledIntMap is owned exclusively by the edge that holds it (see
// tngraph.Edge); callers must not retain references to it across checks.
type LabeledIntMap struct {
	alphabet *proposition.Alphabet
	buckets  map[int]map[label.Label]int
	bases    map[int]baseRecord

	management     Management
	baseCompaction bool
	view           bool
}

// New returns an empty LabeledIntMap scoped to alphabet (needed to resolve
// literals during one-literal simplification), with base compaction enabled
// and Management1 selected, matching the documented defaults. Apply
// Options to override either.
func New(alphabet *proposition.Alphabet, opts ...Option) *LabeledIntMap {
	im := &LabeledIntMap{
		alphabet:       alphabet,
		buckets:        make(map[int]map[label.Label]int),
		bases:          make(map[int]baseRecord),
		baseCompaction: true,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Unmodifiable returns a read-only view sharing this map's entries; every
// mutator on the view is a silent no-op.
func (im *LabeledIntMap) Unmodifiable() *LabeledIntMap {
	clone := &LabeledIntMap{
		alphabet:       im.alphabet,
		buckets:        im.buckets,
		bases:          im.bases,
		management:     im.management,
		baseCompaction: im.baseCompaction,
		view:           true,
	}
	return clone
}

// Get returns the value stored for l and true, or (0, false) if absent.
// Complexity: O(1).
func (im *LabeledIntMap) Get(l label.Label) (int, bool) {
	bucket, ok := im.buckets[l.Size()]
	if !ok {
		return 0, false
	}
	v, ok := bucket[l]
	return v, ok
}

// Size returns the total number of entries across all buckets.
func (im *LabeledIntMap) Size() int {
	n := 0
	for _, b := range im.buckets {
		n += len(b)
	}
	return n
}

// IsEmpty reports whether the map holds no entries.
func (im *LabeledIntMap) IsEmpty() bool { return im.Size() == 0 }

// EntrySet returns a snapshot of every (Label, value) pair, unordered.
// Complexity: O(size).
func (im *LabeledIntMap) EntrySet() []Entry {
	out := make([]Entry, 0, im.Size())
	for _, bucket := range im.buckets {
		for l, v := range bucket {
			out = append(out, Entry{Label: l, Value: v})
		}
	}
	return out
}

// KeySet returns a snapshot of every Label currently stored.
func (im *LabeledIntMap) KeySet() []label.Label {
	out := make([]label.Label, 0, im.Size())
	for _, bucket := range im.buckets {
		for l := range bucket {
			out = append(out, l)
		}
	}
	return out
}

// Values returns a snapshot of every stored value.
func (im *LabeledIntMap) Values() []int {
	out := make([]int, 0, im.Size())
	for _, bucket := range im.buckets {
		for _, v := range bucket {
			out = append(out, v)
		}
	}
	return out
}

// GetMinValue returns the smallest value in the map, and false if empty.
func (im *LabeledIntMap) GetMinValue() (int, bool) {
	min := 0
	found := false
	for _, bucket := range im.buckets {
		for _, v := range bucket {
			if !found || v < min {
				min = v
				found = true
			}
		}
	}
	return min, found
}

// GetMaxValue returns the largest value in the map, and false if empty.
func (im *LabeledIntMap) GetMaxValue() (int, bool) {
	max := 0
	found := false
	for _, bucket := range im.buckets {
		for _, v := range bucket {
			if !found || v > max {
				max = v
				found = true
			}
		}
	}
	return max, found
}

// GetMinValueConsistentWith returns the smallest value among entries whose
// label is consistent with l.
func (im *LabeledIntMap) GetMinValueConsistentWith(l label.Label) (int, bool) {
	min := 0
	found := false
	for _, bucket := range im.buckets {
		for l2, v := range bucket {
			if !l.IsConsistentWith(l2) {
				continue
			}
			if !found || v < min {
				min = v
				found = true
			}
		}
	}
	return min, found
}

// GetMinValueSubsumedBy returns the smallest value among entries L' with
// l.Subsumes(L') (every entry whose guarantee l can rely on).
func (im *LabeledIntMap) GetMinValueSubsumedBy(l label.Label) (int, bool) {
	min := 0
	found := false
	for _, bucket := range im.buckets {
		for l2, v := range bucket {
			if !l.Subsumes(l2) {
				continue
			}
			if !found || v < min {
				min = v
				found = true
			}
		}
	}
	return min, found
}

// AlreadyRepresents reports whether some existing entry (L', v') already
// gives l a bound at least as tight as v: l.Subsumes(L') && v >= v'.
func (im *LabeledIntMap) AlreadyRepresents(l label.Label, v int) bool {
	for size := 0; size <= l.Size(); size++ {
		bucket, ok := im.buckets[size]
		if !ok {
			continue
		}
		for l2, v2 := range bucket {
			if l.Subsumes(l2) && v >= v2 {
				return true
			}
		}
	}
	return false
}

// Remove deletes the entry for l, returning its prior value and true, or
// (0, false) if absent. Removing any component of a recorded base
// invalidates that base.
func (im *LabeledIntMap) Remove(l label.Label) (int, bool) {
	if im.view {
		return 0, false
	}
	return im.removeInternal(l)
}

func (im *LabeledIntMap) removeInternal(l label.Label) (int, bool) {
	bucket, ok := im.buckets[l.Size()]
	if !ok {
		return 0, false
	}
	v, ok := bucket[l]
	if !ok {
		return 0, false
	}
	delete(bucket, l)
	if len(bucket) == 0 {
		delete(im.buckets, l.Size())
	}
	if base, ok := im.bases[l.Size()]; ok && isBaseComponent(l, base.components) {
		delete(im.bases, l.Size())
	}
	return v, true
}

// PutForcibly stores (l, v) bypassing all minimization (subsumption
// cleanup, one-literal simplification, base compaction). Callers using this
// escape hatch are responsible for re-minimizing afterward; it exists for
// bulk-load paths that know they will re-run Put over every entry anyway.
func (im *LabeledIntMap) PutForcibly(l label.Label, v int) bool {
	if im.view {
		return false
	}
	bucket, ok := im.buckets[l.Size()]
	if !ok {
		bucket = make(map[label.Label]int)
		im.buckets[l.Size()] = bucket
	}
	old, existed := bucket[l]
	bucket[l] = v
	return !existed || old != v
}

// Put inserts (l, v), maintaining order-minimization throughout: a
// no-op if the map already represents (l, v); otherwise every entry
// dominated by the new one is removed, one-literal simplification and base
// compaction run, and (l, v) is stored. Put is idempotent and monotone
// decreasing. Returns whether the map changed.
//
// Complexity: O(size) for the dominance scan plus O(bucket(l.Size())) for
// one-literal simplification; base compaction additionally scans the whole
// map only when a new base is discovered.
func (im *LabeledIntMap) Put(l label.Label, v int) bool {
	if im.view {
		return false
	}
	return im.putInternal(l, v)
}

func (im *LabeledIntMap) putInternal(l label.Label, v int) bool {
	if im.AlreadyRepresents(l, v) {
		return false
	}

	// Remove every entry (L', v') with L' subsumes l (L' narrower) and
	// v' >= v: the new, broader-or-equal entry already guarantees v there.
	for _, bucket := range im.buckets {
		for l2, v2 := range bucket {
			if l2.Subsumes(l) && v2 >= v {
				im.removeInternal(l2)
			}
		}
	}

	im.storeOneLiteralSimplified(l, v)

	if im.baseCompaction {
		im.updateBase(l.Size())
		im.pruneAgainstAllBases()
	}

	return true
}

// storeOneLiteralSimplified stores (l, v) and then looks for a same-size
// sibling differing in exactly one literal to collapse per im.management.
func (im *LabeledIntMap) storeOneLiteralSimplified(l label.Label, v int) {
	bucket, ok := im.buckets[l.Size()]
	if !ok {
		bucket = make(map[label.Label]int)
		im.buckets[l.Size()] = bucket
	}
	bucket[l] = v

	for l2, v2 := range bucket {
		if l2 == l {
			continue
		}
		lit, ok := l.GetUniqueDifferentLiteral(l2, im.alphabet)
		if !ok {
			continue
		}
		switch {
		case v2 == v:
			// Management1 and Management2 agree here: merge into the
			// shorter label that drops the differing proposition entirely.
			delete(bucket, l)
			delete(bucket, l2)
			if len(bucket) == 0 {
				delete(im.buckets, l.Size())
			}
			shorter := l.Remove(lit.Proposition())
			im.putInternal(shorter, v)
			return
		case im.management == Management2:
			// Drop whichever of the two one-literal-different entries
			// carries the larger value; keep the smaller one as-is.
			if v2 > v {
				delete(bucket, l2)
			} else {
				delete(bucket, l)
				bucket[l2] = v2
			}
			return
		}
	}
}

// updateBase scans bucket[size] for a proposition set whose 2^n sign
// combinations are all present, records it as the bucket's base, and prunes
// any other entry in the map dominated by it. A no-op if no such set is found.
func (im *LabeledIntMap) updateBase(size int) {
	bucket, ok := im.buckets[size]
	if !ok || size == 0 {
		return
	}

	groups := groupByPropositionSet(bucket)
	for propIdx, group := range groups {
		want := 1 << uint(len(propIdx))
		if len(group) != want {
			continue
		}
		props := make([]proposition.Proposition, 0, len(propIdx))
		for _, r := range propIdx {
			p, err := im.alphabet.ByIndex(uint8(r))
			if err != nil {
				continue
			}
			props = append(props, p)
		}
		if len(props) != len(propIdx) {
			continue
		}
		maxV := group[0].Value
		for _, e := range group[1:] {
			if e.Value > maxV {
				maxV = e.Value
			}
		}
		im.bases[size] = baseRecord{props: props, maxValue: maxV, components: group}
		return
	}
}

// pruneAgainstAllBases re-applies every recorded base's domination rule to
// the whole map. A base discovered earlier can still dominate entries
// inserted afterward (e.g. a label sharing none of the base's propositions,
// which ordinary subsumption-dominance in putInternal never touches), so
// this must run after every insertion, not only at the moment a base is
// first completed.
func (im *LabeledIntMap) pruneAgainstAllBases() {
	for baseSize, base := range im.bases {
		im.pruneByBase(baseSize, base)
	}
}

// pruneByBase removes every entry elsewhere in the map dominated by base:
// an entry (L2, v2) is redundant if it is consistent with at least one base
// component and v2 is not smaller than the maximum value among the base
// components consistent with it.
func (im *LabeledIntMap) pruneByBase(baseSize int, base baseRecord) {
	for size, bucket := range im.buckets {
		for l2, v2 := range bucket {
			if size == baseSize && isBaseComponent(l2, base.components) {
				continue
			}
			maxConsistent := 0
			any := false
			for _, c := range base.components {
				if l2.IsConsistentWith(c.Label) {
					if !any || c.Value > maxConsistent {
						maxConsistent = c.Value
						any = true
					}
				}
			}
			if any && v2 >= maxConsistent {
				im.removeInternal(l2)
			}
		}
	}
}

func isBaseComponent(l label.Label, components []Entry) bool {
	for _, c := range components {
		if c.Label == l {
			return true
		}
	}
	return false
}

// groupByPropositionSet buckets entries of a single size bucket by the set
// of proposition indices they occupy (ignoring sign), returning a stable
// sorted key per group for deterministic iteration.
func groupByPropositionSet(bucket map[label.Label]int) map[string][]Entry {
	out := make(map[string][]Entry)
	for l, v := range bucket {
		idx := l.GetPropositions()
		key := propKey(idx)
		out[key] = append(out[key], Entry{Label: l, Value: v})
	}
	return out
}

func propKey(idx []uint8) string {
	sorted := make([]uint8, len(idx))
	copy(sorted, idx)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := make([]byte, len(sorted))
	for i, v := range sorted {
		key[i] = byte(v)
	}
	return string(key)
}

// PutAll inserts every entry of other into im via Put, preserving
// minimization invariants (unlike a raw merge).
func (im *LabeledIntMap) PutAll(other *LabeledIntMap) {
	if im.view {
		return
	}
	for _, e := range other.EntrySet() {
		im.Put(e.Label, e.Value)
	}
}
