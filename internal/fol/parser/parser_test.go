package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
)

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	n, err := Parse("p & q | r -> s <-> t.")
	require.NoError(t, err)
	// iff is outermost, then impl (right-assoc), then disj, then conj.
	iff, ok := n.(*ast.Iff)
	require.True(t, ok)
	rhs, ok := iff.R.(*ast.Predicate)
	require.True(t, ok)
	assert.Equal(t, "t", rhs.Name)
	implies, ok := iff.L.(*ast.Implies)
	require.True(t, ok)
	or, ok := implies.L.(*ast.Or)
	require.True(t, ok)
	_, ok = or.L.(*ast.And)
	assert.True(t, ok)
}

func TestParseRightAssociativeImplies(t *testing.T) {
	n, err := Parse("p -> q -> r.")
	require.NoError(t, err)
	top, ok := n.(*ast.Implies)
	require.True(t, ok)
	assert.IsType(t, &ast.Implies{}, top.R)
}

func TestParseQuantifierScopingAndShadowing(t *testing.T) {
	n, err := Parse("all x (p(x) & exists x q(x)).")
	require.NoError(t, err)
	forall := n.(*ast.Forall)
	and := forall.Body.(*ast.And)
	outerP := and.L.(*ast.Predicate)
	assert.IsType(t, &ast.Variable{}, outerP.Args[0])

	exists := and.R.(*ast.Exists)
	innerQ := exists.Body.(*ast.Predicate)
	assert.IsType(t, &ast.Variable{}, innerQ.Args[0])
}

func TestClassifyVariableConstantFunction(t *testing.T) {
	n, err := Parse("all x p(x, abe, father(x), B).")
	require.NoError(t, err)
	forall := n.(*ast.Forall)
	pred := forall.Body.(*ast.Predicate)

	assert.IsType(t, &ast.Variable{}, pred.Args[0]) // x: single lowercase letter, always a var
	assert.IsType(t, &ast.Constant{}, pred.Args[1])  // abe: lowercase, no args -> constant
	fn, ok := pred.Args[2].(*ast.Function) // father(x): lowercase with args -> function
	require.True(t, ok)
	assert.Equal(t, "father", fn.Name)
	assert.IsType(t, &ast.Constant{}, pred.Args[3]) // B: uppercase -> constant
}

func TestParseEquality(t *testing.T) {
	n, err := Parse("father(abe) = bob.")
	require.NoError(t, err)
	eq, ok := n.(*ast.Equals)
	require.True(t, ok)
	assert.IsType(t, &ast.Function{}, eq.L)
	assert.IsType(t, &ast.Constant{}, eq.R)
}

func TestParseOptionalTrailingDot(t *testing.T) {
	_, err := Parse("p(a)")
	require.NoError(t, err)
	_, err = Parse("p(a).")
	require.NoError(t, err)
}

func TestParseTrailingInputIsAnError(t *testing.T) {
	_, err := Parse("p(a). q(b).")
	assert.Error(t, err)
}

func TestParseUnbalancedParensSuggestsFix(t *testing.T) {
	_, err := Parse("all x (p(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ParseError")
	var perr *errs.Error
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Suggestion, "unbalanced parentheses")
}

func TestParseEmptyArgumentListIsAnError(t *testing.T) {
	_, err := Parse("p().")
	assert.Error(t, err)
}

func TestParseTrailingCommaIsAnError(t *testing.T) {
	_, err := Parse("p(a,).")
	assert.Error(t, err)
}

func TestDiagnoseReportsCleanFormulasWithNoErrors(t *testing.T) {
	diags := Diagnose([]string{"p(a).", "all x (p(x"})
	require.Len(t, diags, 2)
	assert.Empty(t, diags[0].Errors)
	assert.NotEmpty(t, diags[1].Errors)
}
