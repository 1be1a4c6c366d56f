package sat

// Eval returns f's current truth value, raising ErrUndecidedLit if its
// atom is not assigned (spec §6's eval(solver, formula)).
func (s *Solver) Eval(f Formula) (bool, error) {
	l, ok := s.vars.lookup(f)
	if !ok {
		return false, &ErrUndecidedLit{Formula: f}
	}
	switch s.vars.literalValue(l) {
	case True:
		return true, nil
	case False:
		return false, nil
	default:
		return false, &ErrUndecidedLit{Formula: f}
	}
}

// Trail returns the ordered sequence of currently assigned atoms
// (spec §6's trail(solver)), most-recently-assigned last. The returned
// slice is a copy; callers may not mutate solver state through it.
func (s *Solver) Trail() []Literal {
	out := make([]Literal, s.trl.len())
	for i := range out {
		out[i] = s.trl.litAt(i)
	}
	return out
}

// CheckModel verifies that every non-dead clause the solver holds (attached
// or unit) has at least one true literal, the postcondition spec §8 states must hold after a
// Sat verdict. It returns an *InvariantViolation describing the first
// clause found with no true literal.
func (s *Solver) CheckModel() error {
	for _, c := range s.constraints {
		if err := s.checkClauseSatisfied(c); err != nil {
			return err
		}
	}
	for _, c := range s.learnts {
		if err := s.checkClauseSatisfied(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Solver) checkClauseSatisfied(c *Clause) error {
	if c.isDead() {
		return nil
	}
	for _, l := range c.literals {
		if s.vars.literalValue(l) == True {
			return nil
		}
	}
	return &InvariantViolation{Msg: "clause " + c.String() + " has no true literal under the current model"}
}

// UnsatConflict returns the falsified (or failed-assumption) clause the
// most recent Solve call's Unsat verdict came from, or nil if no Solve
// call has returned Unsat yet. A call scoped to that Solve's assumptions
// does not otherwise affect solver state; call Solve again with a
// different assumption set to clear it.
func (s *Solver) UnsatConflict() *Clause {
	return s.unsatConflict
}

// Proof returns the proof rooted at conflict (spec §6's proof(conflict)).
// Pass the clause returned by UnsatConflict after an Unsat verdict.
func (s *Solver) Proof(conflict *Clause) *Proof {
	return proofOf(conflict)
}
