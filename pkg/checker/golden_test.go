package checker_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"golang.org/x/tools/txtar"

	"groovystatic/pkg/astio"
	"groovystatic/pkg/checker"
	"groovystatic/pkg/source"
)

// TestGoldenFixtures runs every testdata/fixtures/*.txtar archive end to
// end (decode → VisitClass → PerformSecondPass) and snapshots the
// formatted diagnostic output with go-snaps, the same snapshot library
// CWBudde-go-dws uses for its own fixture corpus
// (internal/interp/fixture_test.go). Each archive holds one "class.json"
// file; txtar is only a convenient multi-file container here (a future
// fixture could bundle a config.yaml alongside the class).
func TestGoldenFixtures(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/fixtures/*.txtar")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden fixtures found")
	}

	for _, path := range paths {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			archive := txtar.Parse(raw)

			classJSON := fileInArchive(archive, "class.json")
			if classJSON == nil {
				t.Fatalf("%s has no class.json file", path)
			}

			class, err := astio.DecodeClass(classJSON)
			if err != nil {
				t.Fatalf("decoding class.json in %s: %v", path, err)
			}

			src := source.NewSourceFile(name, "", string(classJSON))
			c := checker.NewChecker(src, class, nil)
			c.VisitClass()
			c.PerformSecondPass()

			output := c.Sink().FormatAll(false)
			if output == "" {
				output = "(no diagnostics)\n"
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_diagnostics", name), output)
		})
	}
}

func fileInArchive(a *txtar.Archive, name string) []byte {
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}
