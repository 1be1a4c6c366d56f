package sat

// luby returns the i-th term (0-indexed) of the base-2 Luby restart
// sequence: 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, ... following the
// standard doubling-then-halving construction (Luby, Sinclair, Zuckerman).
// Used by RestartLuby as an alternative to the geometric schedule spec
// §4.7 works its constants over.
func luby(i int) int {
	size, seq := 1, 0
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) / 2
		seq--
		i = i % size
	}
	return 1 << uint(seq)
}
