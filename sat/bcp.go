package sat

// attach installs c's two watches: the negations of literals[0] and
// literals[1] each gain c as a watcher, guarded by the other watched
// literal (spec §4.4's watching invariant). Only clauses of length >= 2
// are attached; shorter clauses are handled directly by enqueue/conflict
// at construction time (see addClauseLiterals).
func (s *Solver) attach(c *Clause) {
	if len(c.literals) < 2 {
		panicInvariant("cannot attach clause %s with fewer than 2 literals", c)
	}
	c.flags |= flagAttached
	s.vars.watch(c, c.literals[0].Opposite(), c.literals[1])
	s.vars.watch(c, c.literals[1].Opposite(), c.literals[0])
}

// detach removes c from both of its watch lists and marks it dead. Dead
// clauses are never re-attached (spec §3's Clause invariant); watch-list
// cleanup of dead entries additionally happens lazily in propagate.
func (s *Solver) detach(c *Clause) {
	if !c.isAttached() {
		return
	}
	s.vars.unwatch(c, c.literals[0].Opposite())
	s.vars.unwatch(c, c.literals[1].Opposite())
	c.flags &^= flagAttached
	c.flags |= flagDead
}

// propagateClause runs clause c's watch-swap logic for the literal l that
// just became true (so c's watch on l.Opposite() triggered). It returns
// true if c remains satisfied/non-conflicting (watch installed
// accordingly), false if c is falsified.
func (s *Solver) propagateClause(c *Clause, l Literal) bool {
	opp := l.Opposite()
	// Ensure the triggering literal sits at index 1: simplifies the rest of
	// this function since literals[0] is then always the literal to
	// potentially enqueue if every other literal is false.
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.vars.literalValue(c.literals[0]) == True {
		s.vars.watch(c, l, c.literals[0])
		return true
	}

	// Scan indices 2..n-1, resuming from prevPos, for an unfalsified
	// literal to swap into the watched position.
	if c.prevPos < 2 || c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if s.vars.literalValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			c.prevPos = i
			s.vars.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.vars.literalValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			c.prevPos = i
			s.vars.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// No replacement found: the clause is unit (or conflicting) on
	// literals[0]. Keep the watch on l and either enqueue the forced fact
	// or report the conflict.
	s.vars.watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// propagate runs BCP to a fixpoint, returning the falsified clause if one
// is found (spec §4.4). Watch lists for the literal being processed are
// consumed into a scratch slice so that swaps performed while iterating
// don't corrupt the list being walked, the same trick the teacher's
// Solver.Propagate uses with tmpWatchers. On reaching a fixpoint with no
// conflict, it advances trl.eltHead to the trail's current length, marking
// everything on the trail as BCP-consumed for the theory interleave (spec
// §4.5) to pick up.
func (s *Solver) propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()

		list := s.vars.watchers[l]
		s.vars.watchers[l] = list[:0]
		s.tmpWatchers = append(s.tmpWatchers[:0], list...)

		for i, w := range s.tmpWatchers {
			if w.clause.isDead() {
				continue // drop in passing
			}
			if s.vars.literalValue(w.guard) == True {
				s.vars.watchers[l] = append(s.vars.watchers[l], w)
				continue
			}
			if s.propagateClause(w.clause, l) {
				continue
			}

			// Conflicting: restore the remaining, not-yet-examined
			// watchers and abandon the rest of this literal's list.
			s.vars.watchers[l] = append(s.vars.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return w.clause
		}
	}
	s.trl.eltHead = s.trl.len()
	return nil
}

// enqueue assigns l to true as a consequence of reason (nil for a
// decision), or reports a conflict if l is already false.
func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	switch s.vars.literalValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.vars.assigns[l] = True
		s.vars.assigns[l.Opposite()] = False
		s.vars.level[v] = s.trl.decisionLevel()
		s.vars.reasonClause[v] = reason
		if reason == nil {
			s.vars.reasonKind[v] = reasonDecision
		} else {
			s.vars.reasonKind[v] = reasonPropagated
			s.Stats.Propagations++
		}
		s.trl.push(l)
		s.propQueue.Push(l)
		return true
	}
}
