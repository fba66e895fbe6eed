package types

// ArrayType represents T[]. Arrays are covariant at the descriptor level
// (ArrayType{String} reports itself assignable to ArrayType{Object}), but
// the assignment checker additionally verifies componentwise
// assignability of literal contents (§4.C) rather than relying solely on
// this covariance.
type ArrayType struct {
	ElementType Type
}

func (a *ArrayType) String() string { return a.ElementType.String() + "[]" }

func (a *ArrayType) Equals(o Type) bool {
	oa, ok := o.(*ArrayType)
	return ok && a.ElementType.Equals(oa.ElementType)
}

func (a *ArrayType) typeNode() {}

// NewArrayType is a small constructor kept for readability at call sites.
func NewArrayType(elem Type) *ArrayType { return &ArrayType{ElementType: elem} }
