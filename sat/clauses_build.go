package sat

// addClauseLiterals builds a clause over lits under premise, performing the
// same tautology/duplicate/already-assigned simplification the teacher's
// NewClause does for non-learnt clauses (spec §8: "Adding a tautological
// clause is a no-op"). It returns the created clause (nil only for a
// trivially-true/no-op addition) and whether the addition is consistent so
// far (false means conflict/contradiction).
//
// Learnt clauses skip simplification entirely: conflict analysis has
// already produced a minimal, non-tautological, deduplicated clause.
func (s *Solver) addClauseLiterals(lits []Literal, premise Premise, learnt bool) (*Clause, bool) {
	work := append([]Literal(nil), lits...)

	if !learnt {
		size := len(work)
		seen := map[Literal]bool{}
		for i := size - 1; i >= 0; i-- {
			if seen[work[i].Opposite()] {
				return nil, true // tautology: always true, no-op
			}
			if seen[work[i]] {
				size--
				work[i], work[size] = work[size], work[i]
				continue
			}
			seen[work[i]] = true

			if s.vars.literalValue(work[i]) == True {
				return nil, true // already satisfied
			}
		}
		work = work[:size]
		deduped := append([]Literal(nil), work...)

		// Strip literals already false at their assigned level, remembering
		// the reason each one is false. If the clause empties out entirely,
		// this addition is a genuine contradiction against those reasons,
		// not a no-op; the caller needs that provenance to build the proof.
		size = len(work)
		var falsifiedBy []*Clause
		for i := size - 1; i >= 0; i-- {
			if s.vars.literalValue(work[i]) == False {
				falsifiedBy = append(falsifiedBy, s.vars.reasonClause[work[i].VarID()])
				size--
				work[i], work[size] = work[size], work[i]
			}
		}
		work = work[:size]

		if size == 0 && len(deduped) > 0 {
			return s.conflictFromFalsified(deduped, premise, falsifiedBy), false
		}
	}

	switch len(work) {
	case 0:
		// Empty clause: immediate, permanent contradiction. Still build a
		// Clause object (unattached) so the Proof DAG has a leaf to root
		// on (spec §8: "Empty clause input ⇒ immediate Unsat with trivial
		// proof").
		return NewClause(work, premise), false
	case 1:
		c := NewClause(work, premise)
		ok := s.enqueue(work[0], c)
		return c, ok
	default:
		c := NewClause(work, premise)
		s.attach(c)
		return c, true
	}
}

// conflictFromFalsified builds the proof for a clause addition that is
// falsified outright: every literal in deduped (the clause as given, after
// tautology/duplicate removal but before any false-literal stripping) is
// already false, each for the reason clause in falsifiedBy. Rather than
// return the stripped-to-empty clause under its own premise — which would
// surface as an unexplained Hypothesis leaf instead of the contradiction it
// actually is — this resolves deduped's own hypothesis against every
// falsifying reason, the same History shape conflict analysis itself
// produces (spec §8.3: proof is a resolution of the contradicting clauses).
func (s *Solver) conflictFromFalsified(deduped []Literal, premise Premise, falsifiedBy []*Clause) *Clause {
	for _, r := range falsifiedBy {
		if r == nil {
			// No propagation reason on record (shouldn't happen for a
			// level-0 addition): fall back rather than fabricate a parent.
			return NewClause(nil, premise)
		}
	}

	parents := make([]*Clause, 0, len(falsifiedBy)+1)
	parents = append(parents, NewClause(deduped, premise))
	parents = append(parents, falsifiedBy...)

	idx := s.nextLearnt
	s.nextLearnt++
	return NewClause(nil, History{Index: idx, Parents: parents})
}

// Assume queues clauses for ingestion, either as permanent facts (survive
// every backtrack and every future Solve) or as local-to-solve hypotheses
// (dropped once the current decision level is popped), per spec §5's
// shared-resource policy and §6's assume(solver, clauses, permanent?, tag?).
func (s *Solver) Assume(clauses [][]Literal, permanent bool, tag string) error {
	for _, lits := range clauses {
		if permanent && s.decisionLevel() != 0 {
			// Permanent clauses only attach at the root. Schedule the
			// redo-on-backtrack-then-apply mechanism (spec §5) so this
			// clause is (re-)applied once the solver lands back at 0.
			s.pendingReattach = append(s.pendingReattach, pendingClause{literals: lits, premise: Hypothesis{}})
			continue
		}

		idx := s.nextHypothesis
		s.nextHypothesis++
		premise := Hypothesis{Index: idx}
		level := s.decisionLevel()

		c, ok := s.addClauseLiterals(lits, premise, false)
		if c != nil {
			c.tag = tag
			s.constraints = append(s.constraints, c)
			if !permanent {
				s.trl.pushTheoryUndo(func() {
					if s.decisionLevel() <= level {
						s.detach(c)
					}
				})
			}
		}
		if !ok {
			s.recordConflict(c)
		}
	}
	return nil
}

// recordConflict records c as a standing contradiction: immediate UNSAT if
// we are at the base level, and in every case a pending conflict that the
// search loop picks up on its next propagation round.
func (s *Solver) recordConflict(c *Clause) {
	if s.decisionLevel() <= 0 {
		s.unsat = true
		s.unsatConflict = c
	}
	s.pendingConflict = c
}

// addTheoryClause implements Actions.PushLocal/PushPersistent.
func (s *Solver) addTheoryClause(literals []Literal, lemma any, permanent bool) {
	idx := s.nextLemma
	s.nextLemma++
	premise := TheoryLemma{Index: idx, Lemma: lemma}
	level := s.decisionLevel()

	c, ok := s.addClauseLiterals(literals, premise, false)
	if c != nil {
		s.constraints = append(s.constraints, c)
		if !permanent {
			s.trl.pushTheoryUndo(func() {
				if s.decisionLevel() <= level {
					s.detach(c)
				}
			})
		}
	}
	if !ok {
		s.recordConflict(c)
	}
}

// theoryPropagate implements Actions.Propagate: asserts that causes imply
// formula, encoded as the clause {formula, !causes...} with a TheoryLemma
// premise (spec §6).
func (s *Solver) theoryPropagate(formula Formula, causes []Formula, lemma any) {
	target := s.Intern(formula)
	if s.vars.literalValue(target) == True {
		return // no-op, already true
	}

	lits := make([]Literal, 0, len(causes)+1)
	lits = append(lits, target)
	for _, c := range causes {
		lits = append(lits, s.Intern(c).Opposite())
	}

	idx := s.nextLemma
	s.nextLemma++
	premise := TheoryLemma{Index: idx, Lemma: lemma}

	c := NewClause(lits, premise)
	if len(lits) >= 2 {
		s.attach(c)
	}
	s.constraints = append(s.constraints, c)
	if !s.enqueue(target, c) {
		s.recordConflict(c)
	}
}
