package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
	"name": "Example",
	"methods": [
		{
			"name": "run",
			"body": [
				{
					"kind": "varDecl",
					"name": "x",
					"type": "int",
					"init": {"kind": "literal", "litKind": "string", "value": "oops"}
				}
			]
		}
	]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCheckReportsAssignmentIncompatible(t *testing.T) {
	path := writeFixture(t, fixtureJSON)

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().StringVar(&outputFormat, "format", "text", "")

	err := runCheck(cmd, []string{path})
	require.Error(t, err)
}

func TestRunCheckJSONFormatProducesValidArray(t *testing.T) {
	path := writeFixture(t, fixtureJSON)

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	outputFormat = "json"
	defer func() { outputFormat = "text" }()
	cmd.Flags().StringVar(&outputFormat, "format", "json", "")

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	err := runCheck(cmd, []string{path})
	w.Close()
	os.Stdout = old

	require.Error(t, err)

	var buf bytes.Buffer
	buf.ReadFrom(r)
	require.Contains(t, buf.String(), "AssignmentIncompatible")
}

func TestRunCheckRejectsMissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().StringVar(&outputFormat, "format", "text", "")

	err := runCheck(cmd, []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}
