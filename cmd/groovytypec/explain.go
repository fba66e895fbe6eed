package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [kind]",
	Short: "Explain a diagnostic kind, or list all kinds",
	Long: `Print a short description of a diagnostic Kind (UnknownMethod,
AssignmentIncompatible, and so on). With no argument, lists every kind
the checker can report.

Examples:
  groovytypec explain
  groovytypec explain AmbiguousMethod`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

// kindExplanations gives one sentence per errors.Kind, in the checker's
// own wording from the sections of the algorithm that raise them.
var kindExplanations = map[string]string{
	"UnknownVariable":               "No declaration, parameter, or with-receiver matches this name.",
	"UnknownProperty":               "No field, getter, or plugin-resolved property matches this name on the receiver's type.",
	"UnknownMethod":                 "No method signature, extension method, or plugin fallback matches this call after every resolution step.",
	"AmbiguousMethod":               "More than one candidate method is equally applicable; none is more specific than the others.",
	"AssignmentIncompatible":        "The right-hand type cannot be assigned to the left-hand type under the widening/boxing rules.",
	"GenericsIncompatible":          "A bound type argument violates its type parameter's declared constraint, or an assigned value's generic arguments are incompatible with the target's.",
	"NumericPrecisionLoss":          "A numeric assignment narrows precision (e.g. long to int, BigDecimal to double); a warning unless strictPrecisionLoss is set.",
	"InconvertibleCast":             "A cast's source type is not assignable to its target type (outside the numeric, one-character string to char, and null cases), or a pattern literal is not a valid regular expression.",
	"TupleArityMismatch":            "A destructuring assignment's right-hand side is not a list literal, or has fewer elements than there are targets.",
	"DynamicMapKey":                 "A named-argument constructor key must be a constant string, not a dynamically computed one.",
	"SpreadOperatorMisuse":          "The spread operator (*:) was used somewhere it is not well-defined.",
	"WithParameterMismatch":         "A with-block's receiver does not match what the closure parameter expects.",
	"ClosureArgumentsMismatch":      "A closure was called with a number of arguments its parameter list cannot accept.",
	"ReturnTypeMismatch":            "A return statement's value is not assignable to the method's declared or inferred return type.",
	"ClosureSharedVariableNotOnLUB": "A method called on a closure-shared variable that was assigned several types does not exist on the LUB of those types.",
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(kindExplanations))
		for name := range kindExplanations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-30s %s\n", name, kindExplanations[name])
		}
		return nil
	}

	name := args[0]
	explanation, ok := kindExplanations[name]
	if !ok {
		return fmt.Errorf("unknown diagnostic kind %q (run 'groovytypec explain' to list every kind)", name)
	}
	fmt.Println(explanation)
	return nil
}
