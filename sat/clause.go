package sat

import (
	"strconv"
	"strings"
)

// Premise records how a clause came to exist, the provenance data the Proof
// DAG (see proof.go) walks to reconstruct a derivation.
type Premise interface {
	isPremise()
}

// Hypothesis marks a clause added directly by the caller (via Assume),
// a leaf of any proof it appears in.
type Hypothesis struct {
	// Index is this hypothesis's position in the order hypotheses were
	// added, used to name it ("H<n>").
	Index int
}

// TheoryLemma marks a clause derived from a theory conflict/propagation
// (spec §6's push_local/push_persistent/propagate). Lemma is the opaque
// payload the theory attached; this package never inspects it.
type TheoryLemma struct {
	Index int
	Lemma any
}

// Simplified marks a clause produced by removing duplicate/tautological
// literals from Parent during root-level simplification.
type Simplified struct {
	Parent *Clause
}

// History marks a learnt clause, recording the ordered chain of clauses
// conflict analysis resolved through to derive it. Expand (proof.go)
// linearizes this into pairwise resolution steps.
type History struct {
	Index   int
	Parents []*Clause
}

func (Hypothesis) isPremise()  {}
func (TheoryLemma) isPremise() {}
func (Simplified) isPremise()  {}
func (History) isPremise()     {}

// clauseFlags packs the boolean state of a clause, per Design Note
// "Marking flags on variables and clauses: keep as packed bitfields."
type clauseFlags uint8

const (
	flagAttached clauseFlags = 1 << iota
	flagDead
	flagVisited // used only by the proof DAG's unsat-core walk
)

// Clause is an immutable-length atom array with activity, provenance, and
// attachment state. Clauses are allocated in an arena-like fashion (plain
// pointers here; nothing requires relocation, so stable indices are not
// needed the way Design Notes suggest for a more constrained host language).
type Clause struct {
	literals []Literal
	activity float64
	premise  Premise
	flags    clauseFlags
	tag      string // optional user tag, opaque to the solver

	// prevPos speeds up the search for a new literal to watch by resuming
	// from the position the previous watched literal was swapped into.
	prevPos int
}

// NewClause allocates a clause over the given literals. It does not attach
// the clause; the solver attaches it separately (Solver.attach). Length must
// be >= 0; a length-0 or length-1 clause can still be built here (constant
// folding/unit handling is the caller's job — see addClauseLiterals in
// clauses_build.go).
func NewClause(literals []Literal, premise Premise) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), literals...),
		premise:  premise,
		prevPos:  2,
	}
	return c
}

func (c *Clause) Literals() []Literal { return c.literals }
func (c *Clause) Len() int            { return len(c.literals) }
func (c *Clause) Premise() Premise    { return c.premise }
func (c *Clause) Tag() string         { return c.tag }

func (c *Clause) isAttached() bool { return c.flags&flagAttached != 0 }
func (c *Clause) isDead() bool     { return c.flags&flagDead != 0 }
func (c *Clause) isVisited() bool  { return c.flags&flagVisited != 0 }

func (c *Clause) setVisited(v bool) {
	if v {
		c.flags |= flagVisited
	} else {
		c.flags &^= flagVisited
	}
}

// isPermanent reports whether this clause is sound at level 0 and should
// survive every backtrack: hypotheses, theory lemmas, and learnt clauses
// (History) are all permanent; only Simplified clauses that shadow a
// local (non-permanent) parent can be transient, and those are handled by
// the permanence/redo machinery in backtrack.go and clauses_build.go.
func (c *Clause) isPermanent() bool {
	switch c.premise.(type) {
	case Hypothesis, TheoryLemma, History:
		return true
	default:
		return false
	}
}

// isLearnt reports whether this clause was produced by conflict analysis,
// i.e. carries a History premise.
func (c *Clause) isLearnt() bool {
	_, ok := c.premise.(History)
	return ok
}

// Name derives a clause's display name from its premise, chasing
// Simplified links to the clause they ultimately simplify.
func (c *Clause) Name() string {
	switch p := c.premise.(type) {
	case Hypothesis:
		return namePrefixed("H", p.Index)
	case TheoryLemma:
		return namePrefixed("T", p.Index)
	case History:
		return namePrefixed("C", p.Index)
	case Simplified:
		return p.Parent.Name()
	default:
		return "?"
	}
}

func namePrefixed(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
