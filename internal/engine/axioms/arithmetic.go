package axioms

import (
	"fmt"
	"regexp"

	"github.com/logos-reasoner/logos/internal/fol/horn"
)

// numericPattern recognizes numeral lexemes recognized by the lexer's
// term-classification table as already-ground numbers, not Skolem/const
// symbols: -?\d+(\.\d+)?
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// IsNumeral reports whether s matches numericPattern.
func IsNumeral(s string) bool {
	return numericPattern.MatchString(s)
}

// ArithmeticBuiltins is the fixed closed vocabulary of arithmetic
// relations/operations spec.md §4.H recognizes, each a ternary predicate
// `op(A,B,Result)` evaluated natively over ground numerals.
var ArithmeticBuiltins = []string{"lt", "gt", "lte", "gte", "plus", "minus", "times", "divide", "mod"}

// NativePredicate returns the name HornArithmetic's generated rules
// delegate op to; internal/engine/sld's solve loop special-cases this
// prefix to call EvalArithmetic directly instead of searching rules.
func NativePredicate(op string) string { return "native_" + op }

// HornArithmetic emits the fixed Horn rule set for the arithmetic
// vocabulary delegating each relation to its native_* counterpart
// (spec.md §4.H), using "V_"-prefixed variable names so the SLD engine's
// term parser (internal/engine/sld.ParseTerm) recognizes them as logic
// variables rather than ground constants named "X"/"Y"/"Z".
func HornArithmetic() []horn.Program {
	progs := make([]horn.Program, 0, len(ArithmeticBuiltins))
	for _, name := range ArithmeticBuiltins {
		progs = append(progs, horn.Program{
			Kind: horn.KindRule,
			Head: fmt.Sprintf("%s(V_A,V_B,V_R)", name),
			Body: []string{fmt.Sprintf("%s(V_A,V_B,V_R)", NativePredicate(name))},
		})
	}
	return progs
}

// EvalArithmetic evaluates a ground arithmetic predicate/function
// natively, returning (result, true) on success; MathError conditions
// (division/mod by zero) return (0, false).
func EvalArithmetic(name string, a, b float64) (float64, bool) {
	switch name {
	case "plus":
		return a + b, true
	case "minus":
		return a - b, true
	case "times":
		return a * b, true
	case "divide":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case "mod":
		if b == 0 {
			return 0, false
		}
		return float64(int64(a) % int64(b)), true
	case "lt":
		return boolf(a < b), true
	case "gt":
		return boolf(a > b), true
	case "lte":
		return boolf(a <= b), true
	case "gte":
		return boolf(a >= b), true
	default:
		return 0, false
	}
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
