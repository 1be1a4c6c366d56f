package sat

import (
	"time"
)

// Solver is a CDCL SAT engine: conflict-driven search over a two-watched-
// literal BCP core, an activity-ordered decision heap, restart control, and
// an optional interleaved theory (spec §1-§2). The zero value is not
// usable; construct with Create.
type Solver struct {
	vars *variableStore
	trl  *trail
	heap *activityHeap
	seen *markSet

	claAct      *clauseActivity
	constraints []*Clause // hypothesis/lemma clauses, permanent or local; units are not attached
	learnts     []*Clause // learnt clauses; learnt units are not attached

	propQueue   *Queue[Literal]
	tmpWatchers []watcher

	options Options
	Stats   Stats

	startTime time.Time

	unsatConflict *Clause // set once the solver has proven UNSAT
	unsat         bool

	// pendingConflict is set by a clause addition (Assume, or a theory's
	// Propagate/PushLocal/PushPersistent) that turns out to falsify an
	// existing assignment; the search loop treats it exactly like a BCP
	// conflict on its next iteration.
	pendingConflict *Clause

	nextHypothesis int
	nextLemma      int
	nextLearnt     int

	theory  Callback
	actions actionsImpl

	// pendingReattach holds permanent clauses passed to Assume while the
	// decision level was above 0; they are added once the solver
	// backtracks to level 0 (spec §5's redo-on-backtrack-then-apply
	// mechanism).
	pendingReattach []pendingClause

	nextDecision Literal // single-slot override a theory can set; -1 if unset

	// assumptions is the current Solve call's assumption list (spec
	// §4.8). decide pushes assumptions[decisionLevel()] lazily, one per
	// decision level, re-pushing any that a conflict backtracked past;
	// this is what lets a conflict that depends on an assumption
	// backtrack cleanly instead of wiping the assumption scope.
	assumptions []Literal
}

type pendingClause struct {
	literals []Literal
	premise  Premise
}

// Create returns a new Solver configured with ops, with size hint
// variables pre-allocated (spec §6's create(size_hint)).
func Create(sizeHint int, ops Options) *Solver {
	s := &Solver{
		vars:         newVariableStore(),
		trl:          newTrail(),
		heap:         newActivityHeap(ops.PhaseSaving),
		seen:         newMarkSet(),
		claAct:       newClauseActivity(),
		propQueue:    NewQueue[Literal](128),
		options:      ops,
		nextDecision: -1,
	}
	s.actions = actionsImpl{s: s}
	if ops.TheoryFactory != nil {
		s.theory = ops.TheoryFactory(s.actions)
	}
	if sizeHint > 0 {
		for i := 0; i < sizeHint; i++ {
			s.AddVariable()
		}
	}
	return s
}

// CreateDefault returns a Solver configured with DefaultOptions, the
// equivalent of Create(0, DefaultOptions).
func CreateDefault() *Solver {
	return Create(0, DefaultOptions)
}

// AddVariable registers a fresh boolean variable with no associated
// formula and returns its id. Prefer Intern when a Formula is available;
// AddVariable is for callers (and tests) building formula-free instances
// directly from literals.
func (s *Solver) AddVariable() int {
	id := s.vars.addVariable()
	s.heap.addVariable()
	s.seen.expand()
	return id
}

// Intern resolves f to a (possibly freshly created) variable, calling
// AddFormula on the attached theory the first time f's variable is
// created (spec §4.1, §6's add_formula hook). It returns the atom
// representing f as asserted (i.e. accounting for whether f normalizes to
// the negation of its canonical form).
func (s *Solver) Intern(f Formula) Literal {
	v, negated, created := s.vars.intern(f)
	if created {
		s.heap.addVariable()
		s.seen.expand()
		if s.theory != nil {
			s.theory.AddFormula(f)
		}
	}
	if negated {
		return NegativeLiteral(v)
	}
	return PositiveLiteral(v)
}

func (s *Solver) decisionLevel() int { return s.trl.decisionLevel() }

func (s *Solver) LitValue(l Literal) LBool    { return s.vars.literalValue(l) }
func (s *Solver) VarValue(v int) LBool        { return s.vars.variableValue(v) }
func (s *Solver) NumVariables() int           { return s.vars.numVariables() }
func (s *Solver) NumAssigned() int            { return s.trl.len() }
func (s *Solver) NumConstraints() int         { return len(s.constraints) }
func (s *Solver) NumLearnts() int             { return len(s.learnts) }

// Watch and Unwatch export the watch-list plumbing; inside this package,
// clause construction goes through attach/detach in bcp.go instead.
func (s *Solver) Watch(c *Clause, watch, guard Literal) { s.vars.watch(c, watch, guard) }
func (s *Solver) Unwatch(c *Clause, watch Literal)      { s.vars.unwatch(c, watch) }
