package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/classpath"
	"groovystatic/pkg/types"
)

func TestIsAssignableWidening(t *testing.T) {
	classpath.Bootstrap()
	require.True(t, types.IsAssignable(types.Int, types.Long))
	require.False(t, types.IsAssignable(types.Long, types.Int))
}

func TestIsAssignableDynamicAcceptsAnything(t *testing.T) {
	r := classpath.Bootstrap()
	require.True(t, types.IsAssignable(r.String, types.Dynamic))
}

func TestIsAssignableSubtype(t *testing.T) {
	r := classpath.Bootstrap()
	require.True(t, types.IsAssignable(r.BigInteger, r.Number))
	require.False(t, types.IsAssignable(r.Number, r.BigInteger))
}

func TestCheckWideningFlagsNarrowing(t *testing.T) {
	classpath.Bootstrap()
	_, narrowed := types.CheckWidening(types.Long, types.Int)
	require.True(t, narrowed)

	_, widened := types.CheckWidening(types.Int, types.Long)
	require.False(t, widened)
}

func TestCheckBigNumNarrowingFlagsAssignmentToPrimitive(t *testing.T) {
	r := classpath.Bootstrap()
	_, narrowed := types.CheckBigNumNarrowing(r.BigDecimal, types.Double)
	require.True(t, narrowed)

	_, notNarrowed := types.CheckBigNumNarrowing(r.String, types.Double)
	require.False(t, notNarrowed)
}

func TestDistancePrefersExactMatch(t *testing.T) {
	classpath.Bootstrap()
	exact := types.Distance(types.Int, types.Int)
	widened := types.Distance(types.Int, types.Long)
	require.Equal(t, 0, exact)
	require.Greater(t, widened, exact)
}
