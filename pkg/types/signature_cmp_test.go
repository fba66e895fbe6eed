package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"groovystatic/pkg/classpath"
	"groovystatic/pkg/types"
)

// signatureDiff reports the structural difference between two Signatures,
// ignoring DeclaringClass: that field points back at the owning ClassType,
// whose own Methods map can point back at the Signature, and go-cmp's
// default (reflection-based) comparer has no use for that back-reference
// when the thing under test is the signature's own shape.
func signatureDiff(a, b *types.Signature) string {
	return cmp.Diff(a, b, cmpopts.IgnoreFields(types.Signature{}, "DeclaringClass"))
}

func TestSignatureCmpDiffIsEmptyForStructurallyEqualSignatures(t *testing.T) {
	r := classpath.Bootstrap()

	a := &types.Signature{Name: "add", ParameterTypes: []types.Type{r.String, types.Int}, ReturnType: r.String}
	b := &types.Signature{Name: "add", ParameterTypes: []types.Type{r.String, types.Int}, ReturnType: r.String}

	require.Empty(t, signatureDiff(a, b))
}

func TestSignatureCmpDiffFlagsReturnTypeMismatch(t *testing.T) {
	r := classpath.Bootstrap()

	a := &types.Signature{Name: "size", ParameterTypes: nil, ReturnType: types.Int}
	b := &types.Signature{Name: "size", ParameterTypes: nil, ReturnType: r.String}

	diff := signatureDiff(a, b)
	require.NotEmpty(t, diff)
	require.Contains(t, diff, "ReturnType")
}
