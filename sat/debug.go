package sat

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
)

// DebugDump prints a structural snapshot of the solver's trail and
// variable activity, the way the teacher's verbose mode pretty-prints
// sv.unassigned mid-search (cespare-saturday/saturday.go). Only active
// when Options.Verbose is set; a no-op otherwise so production solves pay
// nothing for it.
func (s *Solver) DebugDump(label string) {
	if !s.options.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "=== %s (level %d, trail %d/%d) ===\n",
		label, s.decisionLevel(), s.trl.len(), s.NumVariables())
	pretty.Println(debugSnapshot{
		Trail:        s.Trail(),
		Conflicts:    s.Stats.Conflicts,
		Restarts:     s.Stats.Restarts,
		Decisions:    s.Stats.Decisions,
		Propagations: s.Stats.Propagations,
		Constraints:  len(s.constraints),
		Learnts:      len(s.learnts),
	})
}

type debugSnapshot struct {
	Trail        []Literal
	Conflicts    int64
	Restarts     int64
	Decisions    int64
	Propagations int64
	Constraints  int
	Learnts      int
}
