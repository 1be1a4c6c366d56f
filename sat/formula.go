package sat

// Formula is the abstract, hashable, negatable proposition the solver core
// is polymorphic over (spec §1's "Formula adapter"). The core never
// constructs, parses, or prints formulas itself — term representation,
// hash-consing, and printing all live with the caller (typically a theory
// plugin or a front end), out of scope for this module.
type Formula interface {
	// Hash returns a hash of the formula suitable for bucketing during
	// interning. Equal formulas must hash equal; unequal formulas should
	// rarely collide but correctness never depends on that.
	Hash() uint64

	// Equal reports whether two formulas denote the same proposition.
	Equal(Formula) bool

	// Negate returns the logical negation of the formula.
	Negate() Formula

	String() string
}

// Normalizer is implemented by formulas that have a canonical
// representative distinct from their negation, e.g. so that `a` and `!!a`
// intern to the same variable. Normalize returns the canonical form and
// whether the receiver was itself the negated form of it. Formulas that
// are always already canonical (the common case) need not implement this;
// normalize treats them as their own canonical representative.
type Normalizer interface {
	Normalize() (Formula, bool)
}

// normalize calls f.Normalize() when f implements Normalizer, otherwise
// treats f as already canonical.
func normalize(f Formula) (Formula, bool) {
	if n, ok := f.(Normalizer); ok {
		return n.Normalize()
	}
	return f, false
}
