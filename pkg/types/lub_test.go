package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/classpath"
	"groovystatic/pkg/types"
)

func TestLUBNumericPromotion(t *testing.T) {
	classpath.Bootstrap()
	require.True(t, types.Unwrap(types.LUB(types.Int, types.Long)).Equals(types.Long))
	require.True(t, types.Unwrap(types.LUB(types.Int, types.Double)).Equals(types.Double))
}

func TestLUBCommonAncestor(t *testing.T) {
	r := classpath.Bootstrap()
	base := r.Declare("test.Base")
	base.SuperClass = r.Object
	a := r.Declare("test.A")
	a.SuperClass = base
	b := r.Declare("test.B")
	b.SuperClass = base

	require.True(t, types.LUB(a, b).Equals(base))
}

func TestLUBSingleType(t *testing.T) {
	classpath.Bootstrap()
	require.True(t, types.LUB(types.Int).Equals(types.Int))
}

func TestNumericPromoteDivisionIsFloatingWhenEitherOperandFloats(t *testing.T) {
	classpath.Bootstrap()
	result := types.NumericPromote(types.Int, types.Double, "/")
	require.True(t, result.Equals(types.Double))
}

func TestPromoteBitwiseIntPair(t *testing.T) {
	classpath.Bootstrap()
	require.True(t, types.PromoteBitwise(types.Int, types.Int).Equals(types.Int))
}
