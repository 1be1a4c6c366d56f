package sat

import "time"

// baseLevel is the decision level "global" (permanent) clauses live at.
// Spec's glossary calls this out as "currently always 0."
const baseLevel = 0

// Solve runs the search controller to a verdict. Assumptions are installed
// lazily, one per decision level, by decide (spec §4.8); this call only
// resets solver state left over from a previous Solve and records the new
// assumption list before entering the restart loop.
func (s *Solver) Solve(assumptions []Literal) Status {
	s.cancelUntil(0)
	if s.unsat {
		return Unsat
	}
	s.unsatConflict = nil
	s.assumptions = assumptions
	return s.searchLoop()
}

// enqueueAs is enqueue but lets the caller force the reason-kind tag
// (used for local assumptions, whose reason clause is a degenerate unit
// that is not a genuine unit propagation).
func (s *Solver) enqueueAs(l Literal, reason *Clause, kind reasonKind) bool {
	if !s.enqueue(l, reason) {
		return false
	}
	s.vars.reasonKind[l.VarID()] = kind
	return true
}

func (s *Solver) shouldStop() bool {
	if s.options.MaxConflicts >= 0 && s.Stats.Conflicts >= s.options.MaxConflicts {
		return true
	}
	if s.options.Timeout >= 0 && time.Since(s.startTime) >= s.options.Timeout {
		return true
	}
	return false
}

// searchLoop is the restart loop: grow the conflict budget and learnt-size
// cap geometrically (or via the Luby sequence) between bounded Search
// calls, per spec §4.7's exact worked constants.
func (s *Solver) searchLoop() Status {
	s.startTime = time.Now()

	budget := s.options.InitialRestartBudget
	if budget <= 0 {
		budget = 100
	}
	learntCap := float64(s.NumConstraints()) * nonZero(s.options.LearntSizeFactor, 1.0/3.0)
	restartIdx := 0

	for {
		outcome := s.searchBounded(budget, int(learntCap))
		switch outcome {
		case outcomeSat:
			return Sat
		case outcomeUnsat:
			return Unsat
		case outcomeAssumptionUnsat:
			// Scoped to this call's assumptions: s.unsat stays false, so
			// the next Solve call (different or no assumptions) starts
			// clean (spec §8.5's assumption toggling).
			return Unsat
		}

		s.Stats.Restarts++
		restartIdx++
		s.DebugDump("restart")
		if s.options.RestartStrategy == RestartLuby {
			budget = s.options.InitialRestartBudget * luby(restartIdx)
		} else {
			factor := nonZero(s.options.RestartFactor, 1.5)
			budget = int(float64(budget) * factor)
		}
		inc := nonZero(s.options.LearntIncrement, 1.1)
		learntCap *= inc

		if s.shouldStop() {
			s.cancelUntil(0)
			return Unsat // no verdict reached; caller-visible as "not SAT"
		}
	}
}

func nonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// searchBounded runs propagate/decide until a conflict resolves the
// problem, the trail is complete, or the conflict budget nConflicts is
// exhausted (spec §4.7). learntCap is the learnt-clause cap parameter
// spec §4.7/§9 describes as "currently only a hook — no forgetting is
// performed"; it is threaded through unused, matching that documented
// non-feature rather than guessing at an eviction policy.
func (s *Solver) searchBounded(nConflicts int, learntCap int) searchOutcome {
	conflictCount := 0

	for {
		if conflict := s.propagateToFixpoint(); conflict != nil {
			s.Stats.Conflicts++
			conflictCount++

			if s.decisionLevel() <= baseLevel {
				// Resolve the conflict through the level-0 reasons, newest first.
				parents := []*Clause{conflict}
				need := map[Literal]bool{}
				for i, j := s.trl.len()-1, 0; i >= 0; i-- {
					for ; j < len(parents); j++ {
						for _, q := range parents[j].literals {
							need[q] = true
						}
					}
					if l := s.trl.litAt(i); need[l.Opposite()] && s.vars.reasonClause[l.VarID()] != nil {
						parents = append(parents, s.vars.reasonClause[l.VarID()])
					}
				}
				s.unsat = true
				s.unsatConflict = conflict
				if len(parents) > 1 {
					s.unsatConflict = NewClause(nil, History{Index: s.nextLearnt, Parents: parents})
				}
				return outcomeUnsat
			}

			an := s.analyze(conflict)
			bt := an.backtrackLevel
			if bt < baseLevel {
				bt = baseLevel
			}
			s.cancelUntil(bt)
			if !s.learn(an) {
				return outcomeUnsat
			}

			s.heap.decay(s.options.VariableDecay)
			s.claAct.decay(s.options.ClauseDecay)
			continue
		}

		if conflictCount > nConflicts {
			s.cancelUntil(baseLevel)
			return outcomeRestart
		}

		switch s.decide() {
		case decideProgress:
			continue
		case decideAssumptionFailed:
			return outcomeAssumptionUnsat
		case decideComplete:
			if s.theory != nil {
				full := TrailSlice{s: s, from: 0, to: s.trl.len()}
				res := s.theory.IfSat(full)
				if !res.Ok {
					s.pendingConflict = s.theoryConflictClause(res)
					continue
				}
			}
			return outcomeSat
		}
	}
}

// propagateToFixpoint drives BCP and the attached theory to a joint
// fixpoint (spec §4.5): it returns a falsified clause on conflict, or nil
// once BCP has nothing left to do and the theory has seen everything
// currently on the trail. It never declares the search complete itself;
// that is decide's job, since only decide knows whether every assumption
// has also been (re-)installed.
func (s *Solver) propagateToFixpoint() *Clause {
	for {
		if c := s.propagate(); c != nil {
			return c
		}
		if s.pendingConflict != nil {
			c := s.pendingConflict
			s.pendingConflict = nil
			return c
		}

		if s.theory != nil && s.trl.thHead < s.trl.eltHead {
			slice := TrailSlice{s: s, from: s.trl.thHead, to: s.trl.eltHead}
			res := s.theory.Assume(slice)
			if !res.Ok {
				return s.theoryConflictClause(res)
			}
			s.trl.thHead = s.trl.eltHead
			continue
		}

		return nil
	}
}

func (s *Solver) theoryConflictClause(res TheoryResult) *Clause {
	lits := make([]Literal, len(res.Reason))
	for i, l := range res.Reason {
		lits[i] = l.Opposite()
	}
	idx := s.nextLemma
	s.nextLemma++
	c := NewClause(lits, TheoryLemma{Index: idx, Lemma: res.Lemma})
	if len(lits) >= 2 {
		s.attach(c)
	}
	s.constraints = append(s.constraints, c)
	return c
}

// learn turns a completed analysis into a permanent History clause and
// enqueues its asserting (UIP) literal, per spec §4.7's "add-as-permanent
// (learn); enqueue the UIP literal as propagated-by-confl'." Backtracking
// to the computed level guarantees the clause is immediately asserting, so
// this always enqueues its first literal explicitly rather than relying on
// watch-triggering to notice (the clause's other watched literal may
// already be settled false with nothing left to re-trigger it). It
// returns false when that enqueue fails — the asserting literal is
// already false at the level backtracking landed on — the standard CDCL
// signal for a formula that is UNSAT independent of the current
// decisions: a clause conflicting with level-0 facts.
func (s *Solver) learn(an analysis) bool {
	idx := s.nextLearnt
	s.nextLearnt++
	premise := History{Index: idx, Parents: an.history}

	c, ok := s.addClauseLiterals(an.learnt, premise, true)
	s.learnts = append(s.learnts, c)
	if !ok {
		s.unsat = true
		s.unsatConflict = c
		return false
	}
	if c.Len() >= 2 {
		if !s.enqueue(c.literals[0], c) {
			s.unsat = true
			s.unsatConflict = c
			return false
		}
	}
	return true
}

// decideOutcome is decide's tri-state result: whether it made progress
// (assumption or heap decision pushed), found a currently-false pending
// assumption (Unsat scoped to this Solve call), or found nothing left to
// assign (candidate Sat, pending the theory's if_sat check).
type decideOutcome int8

const (
	decideProgress decideOutcome = iota
	decideAssumptionFailed
	decideComplete
)

// decide installs the next pending assumption if one remains for the
// current decision level (spec §4.8), re-pushing any that a conflict's
// backtrack undid; otherwise it opens a new decision level on either the
// theory-suggested override (spec §4.7's next_decision hook) or the
// highest-activity unassigned variable, with polarity from phase saving.
func (s *Solver) decide() decideOutcome {
	for s.decisionLevel() < len(s.assumptions) {
		a := s.assumptions[s.decisionLevel()]
		switch s.vars.literalValue(a) {
		case True:
			// Already implied; still open a level so decisionLevel stays
			// aligned with the assumption index.
			s.trl.newDecisionLevel()
			continue
		case False:
			idx := s.nextHypothesis
			s.nextHypothesis++
			s.unsatConflict = NewClause([]Literal{a}, Hypothesis{Index: idx})
			return decideAssumptionFailed
		default:
			s.trl.newDecisionLevel()
			idx := s.nextHypothesis
			s.nextHypothesis++
			c := NewClause([]Literal{a}, Hypothesis{Index: idx})
			s.enqueueAs(a, c, reasonLocalAssumption)
			s.Stats.Decisions++
			return decideProgress
		}
	}

	var lit Literal
	if s.nextDecision >= 0 {
		lit = s.nextDecision
		s.nextDecision = -1
		if s.vars.isAssigned(lit.VarID()) {
			return s.decide() // stale override, retry
		}
	} else {
		v, ok := s.heap.selectNext(func(v int) bool { return !s.vars.isAssigned(v) })
		if !ok {
			return decideComplete
		}
		switch s.heap.phaseOf(v) {
		case False:
			lit = NegativeLiteral(v)
		default:
			lit = PositiveLiteral(v)
		}
	}

	s.trl.newDecisionLevel()
	s.Stats.Decisions++
	s.enqueue(lit, nil)
	return decideProgress
}

// SetNextDecision lets an attached theory steer the next decision (spec
// §4.7/§6), overriding the activity heap exactly once.
func (s *Solver) SetNextDecision(l Literal) {
	s.nextDecision = l
}
