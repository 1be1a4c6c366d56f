package sat

import (
	"math/rand"
	"testing"
)

// lit converts a spec-style 1-indexed signed variable number (n, or -n for
// its negation) into this package's 0-indexed Literal.
func lit(n int) Literal {
	if n > 0 {
		return PositiveLiteral(n - 1)
	}
	return NegativeLiteral(-n - 1)
}

func newSolverWithVars(n int) *Solver {
	s := Create(n, DefaultOptions)
	return s
}

func clause(lits ...int) []Literal {
	out := make([]Literal, len(lits))
	for i, n := range lits {
		out[i] = lit(n)
	}
	return out
}

// Scenario 1 (spec §8.1): clauses = {(1,2), (!1,3)}. Expected Sat, model
// satisfies both.
func TestSolve_TriviallySat(t *testing.T) {
	s := newSolverWithVars(3)
	if err := s.Assume([][]Literal{
		clause(1, 2),
		clause(-1, 3),
	}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	if got := s.Solve(nil); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if err := s.CheckModel(); err != nil {
		t.Errorf("CheckModel() = %v, want nil", err)
	}
}

// Scenario 2 (spec §8.2): clauses = {(1), (!1,2), (!2,3), (!3,4)}. Expected
// Sat; trail contains 1,2,3,4, all at level 0.
func TestSolve_ForcedUnitChain(t *testing.T) {
	s := newSolverWithVars(4)
	if err := s.Assume([][]Literal{
		clause(1),
		clause(-1, 2),
		clause(-2, 3),
		clause(-3, 4),
	}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	if got := s.Solve(nil); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	for v := 0; v < 4; v++ {
		if s.VarValue(v) != True {
			t.Errorf("variable %d = %v, want True", v+1, s.VarValue(v))
		}
		if got := s.vars.level[v]; got != 0 {
			t.Errorf("variable %d assigned at level %d, want 0", v+1, got)
		}
	}
}

// Scenario 3 (spec §8.3): {(1), (!1)}. Expected Unsat; proof is a single
// resolution of the two hypotheses.
func TestSolve_ImmediateContradiction(t *testing.T) {
	s := newSolverWithVars(1)
	if err := s.Assume([][]Literal{
		clause(1),
		clause(-1),
	}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	if got := s.Solve(nil); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}

	conflict := s.UnsatConflict()
	if conflict == nil {
		t.Fatalf("UnsatConflict() = nil")
	}
	proof := s.Proof(conflict)
	if err := Check(proof); err != nil {
		t.Errorf("Check(proof) = %v, want nil", err)
	}

	step := Expand(proof.Root())
	if step.Kind != StepResolution {
		t.Fatalf("Expand(root).Kind = %v, want StepResolution", step.Kind)
	}
	if Expand(step.Left).Kind != StepHypothesis || Expand(step.Right).Kind != StepHypothesis {
		t.Errorf("expected both resolvents to be hypotheses")
	}
}

// Scenario 4 (spec §8.4): pigeonhole with 3 pigeons, 2 holes. Expected
// Unsat; check(proof) passes; the unsat core, assumed on its own, is itself
// inconsistent (spec §8's "unsat core's clauses, collectively, are
// inconsistent at level 0").
func TestSolve_Pigeonhole2(t *testing.T) {
	// Variable p(i,j) = pigeon i (1..3) in hole j (1..2), numbered
	// 1-indexed as 2*(i-1)+j.
	p := func(i, j int) int { return 2*(i-1) + j }

	s := newSolverWithVars(6)
	var clauses [][]Literal
	for i := 1; i <= 3; i++ {
		clauses = append(clauses, clause(p(i, 1), p(i, 2)))
	}
	for j := 1; j <= 2; j++ {
		for i := 1; i <= 3; i++ {
			for k := i + 1; k <= 3; k++ {
				clauses = append(clauses, clause(-p(i, j), -p(k, j)))
			}
		}
	}
	if err := s.Assume(clauses, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	if got := s.Solve(nil); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}

	proof := s.Proof(s.UnsatConflict())
	if err := Check(proof); err != nil {
		t.Fatalf("Check(proof) = %v, want nil", err)
	}

	core := UnsatCore(proof)
	if len(core) == 0 {
		t.Fatalf("UnsatCore() is empty")
	}
	if !coreIsInconsistent(t, 6, core) {
		t.Errorf("unsat core is not inconsistent on its own")
	}
}

// coreIsInconsistent re-asserts core's clauses into a fresh solver over the
// same number of variables and checks that doing so alone is Unsat.
func coreIsInconsistent(t *testing.T, numVars int, core []*Clause) bool {
	t.Helper()
	fresh := newSolverWithVars(numVars)
	var clauses [][]Literal
	for _, c := range core {
		clauses = append(clauses, append([]Literal(nil), c.Literals()...))
	}
	if err := fresh.Assume(clauses, true, ""); err != nil {
		t.Fatalf("Assume(core): %v", err)
	}
	return fresh.Solve(nil) == Unsat
}

// Scenario 5 (spec §8.5): {(!1,2), (!1,3), (!2,!3,4)}; assumption toggling
// across three Solve calls must not leak state between calls.
func TestSolve_AssumptionToggling(t *testing.T) {
	s := newSolverWithVars(4)
	if err := s.Assume([][]Literal{
		clause(-1, 2),
		clause(-1, 3),
		clause(-2, -3, 4),
	}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	if got := s.Solve([]Literal{lit(1), lit(-4)}); got != Unsat {
		t.Fatalf("Solve([1,!4]) = %v, want Unsat", got)
	}

	if got := s.Solve(nil); got != Sat {
		t.Fatalf("Solve([]) = %v, want Sat", got)
	}

	if got := s.Solve([]Literal{lit(1)}); got != Sat {
		t.Fatalf("Solve([1]) = %v, want Sat", got)
	}
	for v := 1; v <= 3; v++ {
		if s.VarValue(v) != True {
			t.Errorf("variable %d = %v, want True", v+1, s.VarValue(v))
		}
	}
}

// Scenario 6 (spec §8.6, bounded version): a small random 3-SAT instance
// with an artificially tight restart budget must still terminate with a
// definite verdict rather than loop forever.
func TestSolve_RestartRobustness(t *testing.T) {
	const numVars = 40
	const numClauses = 168 // ratio ~4.2

	rng := rand.New(rand.NewSource(1))
	ops := DefaultOptions
	ops.InitialRestartBudget = 20
	s := Create(numVars, ops)

	var clauses [][]Literal
	for i := 0; i < numClauses; i++ {
		c := make([]Literal, 3)
		for k := 0; k < 3; k++ {
			v := rng.Intn(numVars) + 1
			if rng.Intn(2) == 0 {
				v = -v
			}
			c[k] = lit(v)
		}
		clauses = append(clauses, c)
	}
	if err := s.Assume(clauses, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}

	got := s.Solve(nil)
	if got != Sat && got != Unsat {
		t.Fatalf("Solve() = %v, want a definite verdict", got)
	}
	if got == Sat {
		if err := s.CheckModel(); err != nil {
			t.Errorf("CheckModel() = %v, want nil", err)
		}
	}
}
