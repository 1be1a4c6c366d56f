package sat

// cancelUntil unassigns every trail entry above decision level, running
// backtrack-stack undo actions in reverse push order and re-inserting
// freed variables into the activity heap (spec §5's cancel_until).
// Calling it with the current level (or repeatedly with the same level)
// is a no-op, per spec §8's round-trip properties.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancelOneLevel()
	}
	if level == 0 {
		s.applyPendingReattach()
	}
}

func (s *Solver) cancelOneLevel() {
	lvl := s.decisionLevel() - 1
	trailMark := s.trl.levelMarks[lvl]
	undoMark := s.trl.undoMarks[lvl]

	for i := len(s.trl.undo) - 1; i >= undoMark; i-- {
		s.runUndo(s.trl.undo[i])
	}
	s.trl.undo = s.trl.undo[:undoMark]
	s.trl.lits = s.trl.lits[:trailMark]
	s.trl.levelMarks = s.trl.levelMarks[:lvl]
	s.trl.undoMarks = s.trl.undoMarks[:lvl]

	if s.trl.eltHead > trailMark {
		s.trl.eltHead = trailMark
	}
	if s.trl.thHead > trailMark {
		s.trl.thHead = trailMark
	}
}

// runUndo dispatches a single backtrack-stack record, the "central
// dispatcher" Design Notes describe for the tagged undo queue.
func (s *Solver) runUndo(r undoRecord) {
	switch r.kind {
	case undoUnassign:
		s.unassign(r.lit)
	case undoTheoryHook:
		r.fn()
	}
}

func (s *Solver) unassign(l Literal) {
	v := l.VarID()
	val := s.vars.variableValue(v)
	s.vars.assigns[l] = Unknown
	s.vars.assigns[l.Opposite()] = Unknown
	s.vars.reasonClause[v] = nil
	s.vars.reasonKind[v] = reasonNone
	s.vars.level[v] = -1
	s.heap.insert(v, val)
}

// applyPendingReattach re-applies permanent clauses that were deferred
// because they arrived while the solver was below the root level (spec
// §5: "the action runs now; it schedules an undo; upon backtrack below
// level 0 the action is rescheduled so it runs again; only at the
// definitive level-0 landing does it stick").
func (s *Solver) applyPendingReattach() {
	if len(s.pendingReattach) == 0 {
		return
	}
	pending := s.pendingReattach
	s.pendingReattach = nil
	for _, p := range pending {
		idx := s.nextHypothesis
		s.nextHypothesis++
		c, ok := s.addClauseLiterals(p.literals, Hypothesis{Index: idx}, false)
		if c != nil {
			s.constraints = append(s.constraints, c)
		}
		if !ok {
			s.recordConflict(c)
		}
	}
}
