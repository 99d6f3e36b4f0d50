package simulation

import "fmt"

// assertf panics when cond is false. The checks it guards are numeric
// invariants (residual population, non-negative counts, constant deme
// sizes) whose violation is a logic bug, never a recoverable input
// error.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
