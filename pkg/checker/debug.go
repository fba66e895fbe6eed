package checker

import (
	"fmt"
	"os"
)

// checkerDebug gates a verbose trace of the visitor's internal decisions,
// the same debugPrintf-over-a-const-flag idiom the teacher uses rather
// than a structured-logging dependency: none of the pack's repos pull one
// in for a compiler-frontend component (see DESIGN.md).
const checkerDebug = false

func debugPrintf(format string, args ...interface{}) {
	if checkerDebug {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
