package errors

import "groovystatic/pkg/source"

// Position represents a specific location in the source code. It includes
// line and column numbers (1-based) for human-readability and a reference
// to the owning source file, for caret-formatted diagnostics.
type Position struct {
	Line   int
	Column int
	Source *source.SourceFile
}
