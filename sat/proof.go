package sat

// StepKind discriminates the shape of an expanded proof Step.
type StepKind uint8

const (
	StepHypothesis StepKind = iota
	StepLemma
	StepDuplicate
	StepResolution
)

// Step is the expanded, one-level-deep derivation of a proof node's
// clause, as produced by Expand. Which of the fields other than Kind are
// meaningful depends on Kind; leaf kinds use none of them.
type Step struct {
	Kind StepKind

	// Valid for StepDuplicate: the parent clause duplicate literals were
	// removed from, and which literals were removed.
	Parent      *Clause
	RemovedDups []Literal

	// Valid for StepResolution: the two clauses resolved and the pivot
	// literal resolved away (true in Left, false in Right).
	Left, Right *Clause
	Pivot       Literal
}

// Proof is the root of a resolution DAG over a conflict's antecedents, built
// lazily: clauses already record their Premise when created (see clause.go);
// Proof.Expand walks that provenance on demand rather than materializing the
// whole DAG eagerly.
type Proof struct {
	root *Clause
}

// proofOf builds the (unmaterialized) proof rooted at conflict, the clause
// an UNSAT result was reported against (see Solver.UnsatConflict).
func proofOf(conflict *Clause) *Proof {
	return &Proof{root: conflict}
}

// Root returns the clause this proof concludes (the final conflicting
// clause reported by Solve).
func (p *Proof) Root() *Clause {
	return p.root
}

// Expand normalizes c's premise into one resolution/leaf step. A History
// premise is folded into a single StepResolution whose Right is its last
// parent (see expandHistory); with exactly two parents, Left and Right are
// the parents themselves and can be expanded in turn.
func Expand(c *Clause) Step {
	switch p := c.premise.(type) {
	case Hypothesis:
		return Step{Kind: StepHypothesis}
	case TheoryLemma:
		return Step{Kind: StepLemma}
	case Simplified:
		dups := make([]Literal, 0)
		for _, l := range p.Parent.literals {
			if !containsLiteral(c.literals, l) {
				dups = append(dups, l)
			}
		}
		return Step{Kind: StepDuplicate, Parent: p.Parent, RemovedDups: dups}
	case History:
		return expandHistory(c, p.Parents)
	default:
		panicInvariant("clause %s has no premise", c)
		panic("unreachable")
	}
}

// expandHistory linearizes a multi-parent resolution History, a left-leaning
// chain c0 ⋈ c1 ⋈ c2 ⋈ ... ⋈ cn, into its last pairwise resolution step:
// Right is cn and Left is the resolvent of c0..c(n-1) (with exactly two
// parents, simply c0). For longer chains that Left is a synthetic clause
// whose premise is Simplified{Parent: previous resolvent}; it does not
// record the intermediate right-hand parents c1..c(n-1).
func expandHistory(c *Clause, parents []*Clause) Step {
	if len(parents) < 2 {
		panicInvariant("history premise for %s has fewer than two parents", c)
	}
	left := parents[0]
	for i := 1; i < len(parents); i++ {
		right := parents[i]
		pivot, ok := findPivot(left, right)
		if !ok {
			panicInvariant("resolution of %s and %s has no unique pivot", left, right)
		}
		if i == len(parents)-1 {
			return Step{Kind: StepResolution, Left: left, Right: right, Pivot: pivot}
		}
		left = resolve(left, right, pivot)
	}
	panic("unreachable")
}

// findPivot returns the unique literal p such that p occurs in left and
// !p occurs in right (or vice versa). Returns ok=false if there is no such
// literal or more than one, which is a ResolutionError per spec §4.9.
func findPivot(left, right *Clause) (Literal, bool) {
	found := Literal(-1)
	count := 0
	for _, l := range left.literals {
		if containsLiteral(right.literals, l.Opposite()) {
			if count == 0 {
				found = l
			}
			count++
		}
	}
	if count != 1 {
		return 0, false
	}
	return found, true
}

// resolve computes the resolvent of left and right on pivot, used only to
// materialize intermediate clauses while linearizing a multi-parent
// History chain for display/validation purposes.
func resolve(left, right *Clause, pivot Literal) *Clause {
	seen := map[Literal]bool{}
	lits := make([]Literal, 0, len(left.literals)+len(right.literals))
	for _, l := range left.literals {
		if l == pivot || seen[l] {
			continue
		}
		seen[l] = true
		lits = append(lits, l)
	}
	for _, l := range right.literals {
		if l == pivot.Opposite() || seen[l] {
			continue
		}
		seen[l] = true
		lits = append(lits, l)
	}
	return &Clause{literals: lits, premise: Simplified{Parent: left}}
}

func containsLiteral(lits []Literal, target Literal) bool {
	for _, l := range lits {
		if l == target {
			return true
		}
	}
	return false
}

// UnsatCore returns every leaf clause (Hypothesis or TheoryLemma premise)
// reachable from the proof's root, collected via a walk over the resolution
// DAG. The visited
// flags used during the walk are cleared before this function returns, per
// Design Note's scoped-marking pattern.
func UnsatCore(p *Proof) []*Clause {
	var core []*Clause
	var visited []*Clause

	var walk func(c *Clause)
	walk = func(c *Clause) {
		if c.isVisited() {
			return
		}
		c.setVisited(true)
		visited = append(visited, c)

		switch pr := c.premise.(type) {
		case Hypothesis:
			core = append(core, c)
		case TheoryLemma:
			core = append(core, c)
		case Simplified:
			walk(pr.Parent)
		case History:
			for _, parent := range pr.Parents {
				walk(parent)
			}
		}
	}
	walk(p.root)

	for _, c := range visited {
		c.setVisited(false)
	}
	return core
}

// Check walks the entire proof and validates every resolution step,
// returning a non-nil *InvariantViolation (as an error) the first time a
// resolution step fails to yield a single pivot rather than panicking, so
// that validation failures are reportable instead of fatal.
func Check(p *Proof) error {
	var err error
	var visited []*Clause

	var walk func(c *Clause)
	walk = func(c *Clause) {
		if err != nil || c.isVisited() {
			return
		}
		c.setVisited(true)
		visited = append(visited, c)

		h, ok := c.premise.(History)
		if !ok {
			if s, ok := c.premise.(Simplified); ok {
				walk(s.Parent)
			}
			return
		}
		if len(h.Parents) < 2 {
			err = &InvariantViolation{Msg: "history premise with fewer than two parents"}
			return
		}
		left := h.Parents[0]
		for i := 1; i < len(h.Parents); i++ {
			right := h.Parents[i]
			pivot, ok := findPivot(left, right)
			if !ok {
				err = &InvariantViolation{Msg: "resolution step has no unique pivot"}
				return
			}
			left = resolve(left, right, pivot)
		}
		for _, parent := range h.Parents {
			walk(parent)
		}
	}
	walk(p.root)

	for _, c := range visited {
		c.setVisited(false)
	}
	return err
}
