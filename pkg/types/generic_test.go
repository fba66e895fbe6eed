package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/classpath"
	"groovystatic/pkg/types"
)

func TestReconstructReturnTypeBindsFirstArgument(t *testing.T) {
	r := classpath.Bootstrap()
	tp := &types.TypeParameter{Name: "T", Constraint: types.Dynamic}
	sig := &types.Signature{
		Name:           "identity",
		ParameterTypes: []types.Type{&types.TypeParameterType{Parameter: tp}},
		ReturnType:     &types.TypeParameterType{Parameter: tp},
		TypeParameters: []*types.TypeParameter{tp},
	}

	result := types.ReconstructReturnType(sig, []types.Type{r.String})
	require.True(t, result.Equals(r.String))
}

func TestCheckGenericConstraintsFlagsViolation(t *testing.T) {
	r := classpath.Bootstrap()
	tp := &types.TypeParameter{Name: "T", Constraint: r.Number}
	sig := &types.Signature{
		Name:           "sum",
		ParameterTypes: []types.Type{&types.TypeParameterType{Parameter: tp}},
		ReturnType:     &types.TypeParameterType{Parameter: tp},
		TypeParameters: []*types.TypeParameter{tp},
	}

	bindings := types.BindTypeParameters(sig, []types.Type{r.String})
	violations := types.CheckGenericConstraints(sig, bindings)
	require.Equal(t, []string{"T"}, violations)
}

func TestCheckGenericConstraintsPassesWithinBound(t *testing.T) {
	r := classpath.Bootstrap()
	tp := &types.TypeParameter{Name: "T", Constraint: r.Number}
	sig := &types.Signature{
		Name:           "sum",
		ParameterTypes: []types.Type{&types.TypeParameterType{Parameter: tp}},
		TypeParameters: []*types.TypeParameter{tp},
	}

	bindings := types.BindTypeParameters(sig, []types.Type{r.BigInteger})
	require.Empty(t, types.CheckGenericConstraints(sig, bindings))
}

func TestExtractPlaceholders(t *testing.T) {
	classpath.Bootstrap()
	tp := &types.TypeParameter{Name: "T"}
	listOfT := types.NewParameterized(&types.ClassType{Handle: 99, FQN: "java.util.List"}, []types.Type{&types.TypeParameterType{Parameter: tp}})

	placeholders := types.ExtractPlaceholders(listOfT)
	require.Len(t, placeholders, 1)
	require.Equal(t, tp, placeholders[0])
}

func TestAlignParametersSubstitutesReceiverTypeArguments(t *testing.T) {
	r := classpath.Bootstrap()
	listOfString := types.NewParameterized(r.List, []types.Type{r.String})
	sig := &types.Signature{
		Name:           "add",
		ParameterTypes: []types.Type{&types.TypeParameterType{Parameter: r.List.TypeParameters[0]}},
	}

	aligned := types.AlignParameters(listOfString, sig)
	require.Len(t, aligned, 1)
	require.True(t, aligned[0].Equals(r.String))
}
