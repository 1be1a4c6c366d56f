package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// activityHeap is the indexed binary heap over variables ordered by
// activity weight (descending), built directly on yagh.IntMap the way
// internal/sat/ordering.go's VarOrder does. A variable is "in the heap" from
// the time it is added (or re-inserted on backtrack) until it is popped;
// a variable assigned by propagation stays in the heap as a stale entry
// that selectNext discards. yagh.Contains answers membership directly, so
// no separate in-heap bit is tracked here.
type activityHeap struct {
	order *yagh.IntMap[float64]

	scores []float64 // activity weight per variable, in [0, 1e100)
	incr   float64   // in (0, 1e100], multiplied into scores on bump

	phases      []LBool // last-assigned polarity, used when phaseSaving is on
	phaseSaving bool
}

func newActivityHeap(phaseSaving bool) *activityHeap {
	return &activityHeap{
		order:       yagh.New[float64](0),
		incr:        1,
		phaseSaving: phaseSaving,
	}
}

// addVariable registers one more variable at activity 0, with a default
// positive phase.
func (h *activityHeap) addVariable() {
	v := len(h.scores)
	h.scores = append(h.scores, 0)
	h.phases = append(h.phases, True)
	h.order.GrowBy(1)
	h.order.Put(v, 0)
}

// insert puts v back among the candidates for the next decision. val is the
// value v was last assigned to, used for phase saving on backtrack.
func (h *activityHeap) insert(v int, val LBool) {
	if h.phaseSaving && val != Unknown {
		h.phases[v] = val
	}
	h.order.Put(v, -h.scores[v])
}

// bump increases v's activity, rescaling every variable's activity if the
// bumped value would overflow the 1e100 threshold spec §4.3 calls out.
func (h *activityHeap) bump(v int) {
	h.scores[v] += h.incr
	if h.order.Contains(v) {
		h.order.Put(v, -h.scores[v])
	}
	if h.scores[v] > 1e100 {
		h.rescale()
	}
}

func (h *activityHeap) rescale() {
	h.incr *= 1e-100
	for v, s := range h.scores {
		rescaled := s * 1e-100
		h.scores[v] = rescaled
		if h.order.Contains(v) {
			h.order.Put(v, -rescaled)
		}
	}
}

// decay shrinks future bumps relative to past ones by growing the bump
// increment instead of shrinking every stored score (1/0.95 compounding,
// per spec §4.3's variable decay factor).
func (h *activityHeap) decay(factor float64) {
	h.incr /= factor
	if h.incr > 1e100 {
		h.rescale()
	}
}

// selectNext pops the unassigned variable with the highest activity,
// skipping stale entries for variables that became assigned after they
// were inserted (this can happen when a variable is propagated before the
// heap ever pops it). Returns false if every variable is assigned.
func (h *activityHeap) selectNext(isUnassigned func(int) bool) (int, bool) {
	for {
		item, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		if !isUnassigned(item.Elem) {
			continue // stale: already assigned, try the next candidate
		}
		return item.Elem, true
	}
}

// phaseOf returns the polarity a freshly decided variable should take.
func (h *activityHeap) phaseOf(v int) LBool {
	if v < 0 || v >= len(h.phases) {
		log.Panicf("sat: phaseOf called on unknown variable %d", v)
	}
	return h.phases[v]
}

// clauseActivity tracks the bump/decay/rescale state for learnt-clause
// activity, mirroring activityHeap's variable-side bookkeeping but with the
// distinct 1e20/1e-20 rescale thresholds spec §4.3 specifies for clauses
// (as opposed to 1e100/1e-100 for variables).
type clauseActivity struct {
	incr float64
}

func newClauseActivity() *clauseActivity {
	return &clauseActivity{incr: 1}
}

func (ca *clauseActivity) bump(c *Clause, learnts []*Clause) {
	c.activity += ca.incr
	if c.activity > 1e20 {
		ca.incr *= 1e-20
		for _, l := range learnts {
			l.activity *= 1e-20
		}
	}
}

func (ca *clauseActivity) decay(factor float64) {
	ca.incr /= factor
}
