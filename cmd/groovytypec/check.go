package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/astio"
	"groovystatic/pkg/checker"
	"groovystatic/pkg/config"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/source"
)

var outputFormat string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a class read from a JSON syntax-tree fixture",
	Long: `Read a single class declaration encoded as JSON (see pkg/astio) and run
the static type checker against it, printing any diagnostics.

Examples:
  groovytypec check example.json
  groovytypec check --format=json example.json
  groovytypec check --config groovytypec.yaml example.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	class, err := astio.DecodeClass(raw)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return err
	}

	src := source.FromFile(filename, string(raw))
	c := checker.NewChecker(src, class, nil)
	c.WithStrictPrecisionLoss(cfg.StrictPrecisionLoss)
	if methods := cfg.MethodsFor(class.Name); methods != nil {
		c.SetMethodsToBeVisited(methods)
	}

	c.VisitClass()
	c.PerformSecondPass()

	diags := sortedDiagnostics(c.Sink().Diagnostics())

	switch outputFormat {
	case "json":
		out, err := astio.EncodeDiagnostics(diags)
		if err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
		fmt.Println(string(out))
	default:
		color := isatty.IsTerminal(os.Stdout.Fd())
		for _, d := range diags {
			fmt.Print(d.Format(color))
		}
		fmt.Println(summarize(class, diags))
	}

	if c.Sink().HasErrors() {
		return fmt.Errorf("type checking failed")
	}
	return nil
}

// sortedDiagnostics orders diags by file then naturally by line, so
// method10's diagnostics sort after method2's rather than before it.
func sortedDiagnostics(diags []*errors.Diagnostic) []*errors.Diagnostic {
	out := make([]*errors.Diagnostic, len(diags))
	copy(out, diags)
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := diagFile(out[i]), diagFile(out[j])
		if fi != fj {
			return natural.Less(fi, fj)
		}
		return natural.Less(fmt.Sprintf("%09d", out[i].Pos.Line), fmt.Sprintf("%09d", out[j].Pos.Line))
	})
	return out
}

func diagFile(d *errors.Diagnostic) string {
	if d.Pos.Source != nil {
		return d.Pos.Source.DisplayPath()
	}
	return ""
}

// summarize prints a humanized run summary, e.g. "checked 3 methods in
// class Foo, found 2 errors and 1 warning".
func summarize(class *ast.ClassDecl, diags []*errors.Diagnostic) string {
	errCount, warnCount := 0, 0
	for _, d := range diags {
		if d.Severity == errors.SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}
	methodCount := len(class.Methods) + len(class.Constructors)
	return fmt.Sprintf("checked %s %s in class %s, found %s %s and %s %s",
		humanize.Comma(int64(methodCount)), plural(methodCount, "method", "methods"),
		class.Name,
		humanize.Comma(int64(errCount)), plural(errCount, "error", "errors"),
		humanize.Comma(int64(warnCount)), plural(warnCount, "warning", "warnings"))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func loadConfigFlag(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}
