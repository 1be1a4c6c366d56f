package sat

// TheoryResult is returned by a theory callback after being asked to check
// a slice of the trail. Sat means the theory found nothing wrong (it may
// still have issued propagations through Actions); Unsat carries the
// literals whose conjunction the theory refutes, plus an opaque lemma the
// resulting TheoryLemma clause will carry.
type TheoryResult struct {
	Ok     bool
	Reason []Literal
	Lemma  any
}

func theorySat() TheoryResult { return TheoryResult{Ok: true} }

func theoryUnsat(reason []Literal, lemma any) TheoryResult {
	return TheoryResult{Ok: false, Reason: reason, Lemma: lemma}
}

// TrailSlice is a read-only view over a contiguous range of the trail,
// handed to a theory so it can iterate the formulas that became true since
// it was last consulted, without exposing solver internals.
type TrailSlice struct {
	s    *Solver
	from int
	to   int
}

func (ts TrailSlice) Len() int { return ts.to - ts.from }

// At returns the formula denoted by the i-th literal in the slice, i.e. the
// formula that became true (the negated formula for a negative literal).
func (ts TrailSlice) At(i int) Formula {
	return ts.s.vars.formulaOf(ts.s.trl.litAt(ts.from + i))
}

// Literal exposes the raw literal at position i, for theories that prefer
// to work with literals directly instead of formulas.
func (ts TrailSlice) Literal(i int) Literal {
	return ts.s.trl.litAt(ts.from + i)
}

// Actions is the interface the solver hands to a theory at setup time
// (spec §6), the theory's only legitimate way to re-enter the engine.
type Actions interface {
	// PushLocal adds a clause valid only for the current solve's scope; it
	// is dropped automatically when that scope's decision level is popped.
	PushLocal(literals []Literal, lemma any)

	// PushPersistent adds a clause that remains valid forever, across
	// solves, the way a learnt clause does.
	PushPersistent(literals []Literal, lemma any)

	// Propagate asserts that causes imply formula: encoded internally as
	// the clause {formula, !causes[0], ..., !causes[n]} with a TheoryLemma
	// premise. If formula is already true this is a no-op; if already
	// false the clause becomes a conflict on the next BCP round.
	Propagate(formula Formula, causes []Formula, lemma any)

	// OnBacktrack registers a scoped undo, run when the current decision
	// level is popped.
	OnBacktrack(undo func())

	// AtLevel0 reports whether the solver is currently at the base
	// decision level.
	AtLevel0() bool
}

// Callback is implemented by a theory plugin and driven by the solver
// between BCP rounds (spec §6).
type Callback interface {
	// Assume is given the slice of the trail the theory has not yet seen
	// and must check it for consistency, possibly issuing propagations via
	// Actions as a side effect.
	Assume(slice TrailSlice) TheoryResult

	// IfSat is called once BCP has reached a fixpoint and every variable
	// is assigned, as a final check before declaring the problem
	// satisfiable. The theory may still propagate, learn, or refute here.
	IfSat(full TrailSlice) TheoryResult

	// AddFormula is called once for every freshly interned variable so the
	// theory can internalize the formula it denotes.
	AddFormula(f Formula)
}

// actionsImpl is the concrete Actions the solver constructs for its
// attached theory; it simply closes over the Solver.
type actionsImpl struct {
	s *Solver
}

func (a actionsImpl) PushLocal(literals []Literal, lemma any) {
	a.s.addTheoryClause(literals, lemma, false)
}

func (a actionsImpl) PushPersistent(literals []Literal, lemma any) {
	a.s.addTheoryClause(literals, lemma, true)
}

func (a actionsImpl) Propagate(formula Formula, causes []Formula, lemma any) {
	a.s.theoryPropagate(formula, causes, lemma)
}

func (a actionsImpl) OnBacktrack(undo func()) {
	a.s.trl.pushTheoryUndo(undo)
}

func (a actionsImpl) AtLevel0() bool {
	return a.s.trl.decisionLevel() == 0
}
