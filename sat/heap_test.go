package sat

import "testing"

func TestActivityHeap_SelectNextOrdersByActivity(t *testing.T) {
	h := newActivityHeap(false)
	for i := 0; i < 3; i++ {
		h.addVariable()
	}

	h.bump(2)
	h.bump(2)
	h.bump(0)

	assigned := map[int]bool{}
	isUnassigned := func(v int) bool { return !assigned[v] }

	v, ok := h.selectNext(isUnassigned)
	if !ok || v != 2 {
		t.Fatalf("selectNext() = (%d, %v), want (2, true)", v, ok)
	}
	assigned[2] = true

	v, ok = h.selectNext(isUnassigned)
	if !ok || v != 0 {
		t.Fatalf("selectNext() = (%d, %v), want (0, true)", v, ok)
	}
	assigned[0] = true

	v, ok = h.selectNext(isUnassigned)
	if !ok || v != 1 {
		t.Fatalf("selectNext() = (%d, %v), want (1, true)", v, ok)
	}
}

func TestActivityHeap_SelectNext_EmptyWhenAllAssigned(t *testing.T) {
	h := newActivityHeap(false)
	h.addVariable()
	_, ok := h.selectNext(func(int) bool { return false })
	if ok {
		t.Errorf("selectNext() on an all-assigned heap reported a candidate")
	}
}

func TestActivityHeap_PhaseSaving(t *testing.T) {
	h := newActivityHeap(true)
	h.addVariable()
	if got := h.phaseOf(0); got != True {
		t.Errorf("phaseOf(0) = %v before any assignment, want True", got)
	}
	h.insert(0, False)
	if got := h.phaseOf(0); got != False {
		t.Errorf("phaseOf(0) = %v after insert(False), want False", got)
	}
}

func TestActivityHeap_BumpRescales(t *testing.T) {
	h := newActivityHeap(false)
	h.addVariable()
	h.addVariable()
	h.scores[0] = 1e100 - 1
	h.scores[1] = 5
	h.bump(0)
	if h.scores[0] >= 1e50 {
		t.Errorf("scores[0] = %v after rescale, want a small value", h.scores[0])
	}
	if h.incr >= 1 {
		t.Errorf("incr = %v after rescale, want it shrunk", h.incr)
	}
}

func TestClauseActivity_BumpRescales(t *testing.T) {
	ca := newClauseActivity()
	c := NewClause([]Literal{PositiveLiteral(0)}, History{})
	other := NewClause([]Literal{PositiveLiteral(1)}, History{})
	c.activity = 1e20 - 1
	other.activity = 5
	learnts := []*Clause{c, other}

	ca.bump(c, learnts)

	if c.activity >= 1e10 {
		t.Errorf("c.activity = %v after rescale, want a small value", c.activity)
	}
	if other.activity >= 1e10 {
		t.Errorf("other.activity = %v after rescale, want it shrunk too", other.activity)
	}
}
