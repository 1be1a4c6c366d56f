package sat

// reasonKind tags why a variable's atom is forced onto the trail. This is
// spec §3's Reason enum; the Local variant is the same runtime situation as
// Propagated in this implementation (the teacher's source never branches on
// it differently either — see DESIGN.md) but is kept as its own tag purely
// so proof-printing can report which route it took.
type reasonKind uint8

const (
	reasonNone reasonKind = iota
	reasonDecision
	reasonPropagated
	reasonLocalAssumption
)

// watcher is a clause attached to the watch list of one of its two watched
// literals' negations.
type watcher struct {
	clause *Clause
	// guard is one of the clause's other literals. If it is already true,
	// the clause is known satisfied and propagation can skip loading it.
	guard Literal
}

// variableStore is the hash-consed arena of boolean variables: each entry
// owns two polar literals (2*id and 2*id+1), a current decision level
// (-1 when unassigned), a reason, and per-atom watch lists and formulas.
// Variables are created on first mention of their formula and never
// destroyed except with the solver, matching spec §3's lifecycle.
type variableStore struct {
	// Per-variable state.
	level        []int
	reasonClause []*Clause
	reasonKind   []reasonKind

	// Per-literal (2 entries per variable) state.
	assigns  []LBool
	watchers [][]watcher
	formulas []Formula // formula denoted by each literal, nil if none was registered

	// interning: formula key -> variable id.
	interned map[uint64][]internedFormula
}

type internedFormula struct {
	formula Formula
	varID   int
	negated bool
}

func newVariableStore() *variableStore {
	return &variableStore{
		interned: map[uint64][]internedFormula{},
	}
}

func (vs *variableStore) numVariables() int {
	return len(vs.level)
}

// addVariable grows the arena by one fresh variable and returns its id.
func (vs *variableStore) addVariable() int {
	id := vs.numVariables()
	vs.level = append(vs.level, -1)
	vs.reasonClause = append(vs.reasonClause, nil)
	vs.reasonKind = append(vs.reasonKind, reasonNone)
	vs.assigns = append(vs.assigns, Unknown, Unknown)
	vs.watchers = append(vs.watchers, nil, nil)
	vs.formulas = append(vs.formulas, nil, nil)
	return id
}

// intern returns the variable for formula, creating one (O(1) amortized) if
// this is its first mention, along with a hint for which polarity the
// formula normalizes to. Formulas are interned by their canonical
// representative so that a formula and a pre-normalized copy of it map to
// the same variable.
func (vs *variableStore) intern(f Formula) (varID int, negated bool, created bool) {
	canon, neg := normalize(f)
	key := canon.Hash()
	for _, e := range vs.interned[key] {
		if e.formula.Equal(canon) {
			return e.varID, neg != e.negated, false
		}
	}
	id := vs.addVariable()
	vs.interned[key] = append(vs.interned[key], internedFormula{formula: canon, varID: id, negated: false})
	vs.formulas[PositiveLiteral(id)] = canon
	vs.formulas[NegativeLiteral(id)] = canon.Negate()
	return id, neg, true
}

// lookup returns the atom denoting f if it has already been interned,
// without creating one. Used by Eval, which must raise rather than
// silently create a variable for a formula never asserted into the
// solver.
func (vs *variableStore) lookup(f Formula) (Literal, bool) {
	canon, negated := normalize(f)
	key := canon.Hash()
	for _, e := range vs.interned[key] {
		if e.formula.Equal(canon) {
			l := PositiveLiteral(e.varID)
			if negated != e.negated {
				l = l.Opposite()
			}
			return l, true
		}
	}
	return 0, false
}

// literalValue returns the current lifted-boolean value of l.
func (vs *variableStore) literalValue(l Literal) LBool {
	return vs.assigns[l]
}

func (vs *variableStore) variableValue(v int) LBool {
	return vs.assigns[PositiveLiteral(v)]
}

func (vs *variableStore) isAssigned(v int) bool {
	return vs.level[v] >= 0
}

func (vs *variableStore) formulaOf(l Literal) Formula {
	return vs.formulas[l]
}

// watch registers clause c to be examined when watched becomes true.
func (vs *variableStore) watch(c *Clause, watched Literal, guard Literal) {
	vs.watchers[watched] = append(vs.watchers[watched], watcher{clause: c, guard: guard})
}

// unwatch removes clause c from watched's watch list.
func (vs *variableStore) unwatch(c *Clause, watched Literal) {
	list := vs.watchers[watched]
	j := 0
	for i := 0; i < len(list); i++ {
		if list[i].clause != c {
			list[j] = list[i]
			j++
		}
	}
	vs.watchers[watched] = list[:j]
}
