package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/types"
)

// deferredCall is one call site recorded for the second pass because its
// receiver was a closure-shared variable at the time it was typed (§4.G
// "Second pass").
type deferredCall struct {
	varKey         string
	call           *ast.MethodCallExpr
	calleeName     string
	formalArgTypes []types.Type
}

// pushIfBranchFrame starts a new temporaryIfBranchTypeInformation frame,
// live for the duration of an if-branch or ternary true-branch (§3, §4.F).
func (c *Checker) pushIfBranchFrame() {
	c.ifBranchFrames = append(c.ifBranchFrames, map[string][]types.Type{})
}

func (c *Checker) popIfBranchFrame() {
	c.ifBranchFrames = c.ifBranchFrames[:len(c.ifBranchFrames)-1]
}

// narrowKey records key -> candidateType in the top if-branch frame, used
// by instanceof (§4.B).
func (c *Checker) narrowKey(key string, candidate types.Type) {
	if len(c.ifBranchFrames) == 0 {
		return
	}
	top := c.ifBranchFrames[len(c.ifBranchFrames)-1]
	top[key] = append(top[key], candidate)
}

// narrowedCandidates returns the refined candidate list for key from the
// innermost frame that mentions it, newest first.
func (c *Checker) narrowedCandidates(key string) []types.Type {
	for i := len(c.ifBranchFrames) - 1; i >= 0; i-- {
		if cands, ok := c.ifBranchFrames[i][key]; ok {
			return cands
		}
	}
	return nil
}

// pushAssignmentFrame starts a new ifElseForWhileAssignmentTracker frame
// around a conditional or loop construct (§3, §4.F "Branch-join").
func (c *Checker) pushAssignmentFrame() {
	c.assignmentFrames = append(c.assignmentFrames, map[string][]types.Type{})
}

// popAssignmentFrame pops the frame and returns it so the caller can join
// (LUB) each tracked variable's recorded types and write the result back.
func (c *Checker) popAssignmentFrame() map[string][]types.Type {
	top := c.assignmentFrames[len(c.assignmentFrames)-1]
	c.assignmentFrames = c.assignmentFrames[:len(c.assignmentFrames)-1]
	return top
}

// trackAssignment records that varName was assigned valueType somewhere in
// the current conditional/loop body (and, separately, in the
// closure-shared-variable table if the variable is closure-shared), and
// updates the variable's current effective type for subsequent reads.
func (c *Checker) trackAssignment(varName string, valueType types.Type) {
	if len(c.assignmentFrames) > 0 {
		top := c.assignmentFrames[len(c.assignmentFrames)-1]
		top[varName] = append(top[varName], valueType)
	}
	if c.closureSharedVars[varName] {
		c.closureSharedAssignments[varName] = append(c.closureSharedAssignments[varName], valueType)
	}
	if c.varCurrentType == nil {
		c.varCurrentType = map[string]types.Type{}
	}
	c.varCurrentType[varName] = valueType
}

// joinAssignmentFrame pops the current frame and, for each variable
// tracked in it, writes back LUB(all recorded types) as that variable's
// post-construct effective type (§4.F "Branch-join via assignment
// tracker").
func (c *Checker) joinAssignmentFrame() {
	frame := c.popAssignmentFrame()
	if c.varCurrentType == nil {
		c.varCurrentType = map[string]types.Type{}
	}
	for v, recorded := range frame {
		c.varCurrentType[v] = types.LUB(recorded...)
	}
}

// currentVarType returns the variable's best-known current type, if any
// assignment has been tracked for it.
func (c *Checker) currentVarType(name string) (types.Type, bool) {
	t, ok := c.varCurrentType[name]
	return t, ok
}

// pushReceiver pushes onto withReceiverList for the duration of a
// with-block body (§3 "With-receiver").
func (c *Checker) pushReceiver(t types.Type) {
	c.withReceiverList = append(c.withReceiverList, t)
}

func (c *Checker) popReceiver() {
	c.withReceiverList = c.withReceiverList[:len(c.withReceiverList)-1]
}

// receivers returns the withReceiverList, innermost (most recently pushed)
// first, matching the LIFO search order §4.B specifies.
func (c *Checker) receivers() []types.Type {
	out := make([]types.Type, len(c.withReceiverList))
	for i, t := range c.withReceiverList {
		out[i] = c.withReceiverList[len(c.withReceiverList)-1-i]
	}
	return out
}
