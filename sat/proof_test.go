package sat

import "testing"

// buildContradiction returns the proof for the classic {(1), (!1)} conflict:
// two hypotheses resolved on variable 0 to the empty clause.
func buildContradiction() (*Clause, *Clause, *Clause) {
	h1 := NewClause([]Literal{PositiveLiteral(0)}, Hypothesis{Index: 0})
	h2 := NewClause([]Literal{NegativeLiteral(0)}, Hypothesis{Index: 1})
	empty := NewClause(nil, History{Index: 0, Parents: []*Clause{h1, h2}})
	return h1, h2, empty
}

func TestExpand_Hypothesis(t *testing.T) {
	h1, _, _ := buildContradiction()
	step := Expand(h1)
	if step.Kind != StepHypothesis {
		t.Errorf("Expand(hypothesis).Kind = %v, want StepHypothesis", step.Kind)
	}
}

func TestExpand_History_TwoParents(t *testing.T) {
	h1, h2, empty := buildContradiction()
	step := Expand(empty)
	if step.Kind != StepResolution {
		t.Fatalf("Expand(history).Kind = %v, want StepResolution", step.Kind)
	}
	if step.Left != h1 || step.Right != h2 {
		t.Errorf("Expand(history) = {Left: %v, Right: %v}, want {%v, %v}", step.Left, step.Right, h1, h2)
	}
	if step.Pivot != PositiveLiteral(0) && step.Pivot != NegativeLiteral(0) {
		t.Errorf("Expand(history).Pivot = %v, want the variable-0 pivot", step.Pivot)
	}
}

func TestExpand_Simplified(t *testing.T) {
	parent := NewClause([]Literal{PositiveLiteral(0), PositiveLiteral(0), PositiveLiteral(1)}, Hypothesis{})
	c := NewClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, Simplified{Parent: parent})
	step := Expand(c)
	if step.Kind != StepDuplicate {
		t.Fatalf("Expand(simplified).Kind = %v, want StepDuplicate", step.Kind)
	}
}

func TestUnsatCore_ReturnsOnlyHypotheses(t *testing.T) {
	h1, h2, empty := buildContradiction()
	proof := proofOf(empty)

	core := UnsatCore(proof)
	if len(core) != 2 {
		t.Fatalf("len(UnsatCore) = %d, want 2", len(core))
	}
	seen := map[*Clause]bool{core[0]: true, core[1]: true}
	if !seen[h1] || !seen[h2] {
		t.Errorf("UnsatCore() did not return both hypotheses")
	}

	// Flags must be cleared so a second walk returns the same result.
	core2 := UnsatCore(proof)
	if len(core2) != 2 {
		t.Errorf("UnsatCore() called twice gave different results: %d vs %d", len(core2), len(core))
	}
}

func TestCheck_AcceptsValidProof(t *testing.T) {
	_, _, empty := buildContradiction()
	proof := proofOf(empty)
	if err := Check(proof); err != nil {
		t.Errorf("Check(valid proof) = %v, want nil", err)
	}
}

func TestCheck_RejectsMissingPivot(t *testing.T) {
	h1 := NewClause([]Literal{PositiveLiteral(0)}, Hypothesis{Index: 0})
	h2 := NewClause([]Literal{PositiveLiteral(1)}, Hypothesis{Index: 1}) // shares no pivot with h1
	bogus := NewClause(nil, History{Index: 0, Parents: []*Clause{h1, h2}})

	if err := Check(proofOf(bogus)); err == nil {
		t.Errorf("Check(invalid proof) = nil, want an error")
	}
}
