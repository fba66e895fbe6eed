package astio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/astio"
)

const exampleClassJSON = `{
	"name": "Example",
	"super": "",
	"fields": [
		{"name": "total", "type": "int"}
	],
	"methods": [
		{
			"name": "run",
			"returnType": "int",
			"parameters": [
				{"name": "x", "type": "int"}
			],
			"body": [
				{
					"kind": "varDecl",
					"name": "y",
					"init": {"kind": "literal", "litKind": "int", "value": 1}
				},
				{
					"kind": "return",
					"value": {
						"kind": "binary",
						"op": "add",
						"left": {"kind": "identifier", "name": "x"},
						"right": {"kind": "identifier", "name": "y"}
					}
				}
			]
		}
	]
}`

func TestDecodeClassBuildsMethodBody(t *testing.T) {
	class, err := astio.DecodeClass([]byte(exampleClassJSON))
	require.NoError(t, err)
	require.Equal(t, "Example", class.Name)
	require.Len(t, class.Fields, 1)
	require.Equal(t, "total", class.Fields[0].Name)

	require.Len(t, class.Methods, 1)
	m := class.Methods[0]
	require.Equal(t, "run", m.Name)
	require.Len(t, m.Parameters, 1)
	require.Len(t, m.Body, 2)
}

func TestDecodeClassRejectsInvalidJSON(t *testing.T) {
	_, err := astio.DecodeClass([]byte(`not json`))
	require.Error(t, err)
}

func TestDecodeClassRejectsUnknownExpressionKind(t *testing.T) {
	raw := `{"name": "Bad", "methods": [
		{"name": "run", "body": [
			{"kind": "expr", "expr": {"kind": "wat"}}
		]}
	]}`
	_, err := astio.DecodeClass([]byte(raw))
	require.Error(t, err)
}
