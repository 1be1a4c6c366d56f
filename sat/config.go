package sat

import "time"

// RestartStrategy selects how the search controller grows its conflict
// budget between restarts (spec §2 names "Luby-style restart control" in
// the overview; §4.7 then works a concrete geometric schedule). Both are
// implemented; see DESIGN.md for why geometric is the default.
type RestartStrategy uint8

const (
	// RestartGeometric scales the conflict budget by RestartFactor and the
	// learnt-clause cap by LearntIncrement after every bounded Search call,
	// exactly as spec §4.7 works out numerically.
	RestartGeometric RestartStrategy = iota
	// RestartLuby uses the Luby sequence (see restart.go) scaled by
	// InitialRestartBudget as the conflict budget for each successive call.
	RestartLuby
)

// Options configures a Solver, the same shape as the teacher's
// Options/DefaultOptions pair in internal/sat/solver.go, extended with the
// restart/learnt-cap and theory knobs this spec adds.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool

	MaxConflicts int64
	Timeout      time.Duration

	// RestartStrategy picks geometric (default, matches spec §4.7's worked
	// example) or Luby-sequence restart budgeting.
	RestartStrategy RestartStrategy

	// InitialRestartBudget, RestartFactor, LearntSizeFactor, and
	// LearntIncrement are the spec §4.7 constants: 100, 1.5, 1/3, 1.1.
	InitialRestartBudget int
	RestartFactor        float64
	LearntSizeFactor     float64
	LearntIncrement      float64

	// TheoryFactory, if non-nil, is called once at Create with the Actions
	// the solver hands the theory at setup (spec §6's create(actions) →
	// theory_state), per Design Notes' "lazy solver/theory mutual
	// initialization: allocate solver, then hand it to the theory factory,
	// then bind the theory back into the solver." The returned Callback is
	// then driven to a fixpoint between BCP rounds (spec §4.5) and
	// consulted once before a SAT verdict is finalized.
	TheoryFactory func(Actions) Callback

	// Verbose enables Solver.DebugDump-style diagnostics during search.
	Verbose bool
}

// DefaultOptions mirrors the teacher's DefaultOptions, with this spec's
// additional restart/learnt-cap constants set to the values §4.7 specifies.
var DefaultOptions = Options{
	ClauseDecay:          0.999,
	VariableDecay:        0.95,
	MaxConflicts:         -1,
	Timeout:              -1,
	PhaseSaving:          true,
	RestartStrategy:      RestartGeometric,
	InitialRestartBudget: 100,
	RestartFactor:        1.5,
	LearntSizeFactor:     1.0 / 3.0,
	LearntIncrement:      1.1,
}

// Stats carries the search statistics spec §6's public API implies a
// caller can observe (the teacher exposes the same counters directly on
// Solver: TotalConflicts, TotalRestarts, TotalIterations).
type Stats struct {
	Conflicts    int64
	Restarts     int64
	Decisions    int64
	Propagations int64
}
