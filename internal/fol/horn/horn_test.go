package horn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

func lit(name string, neg bool, args ...string) clausify.Literal {
	return clausify.Literal{Predicate: name, Args: args, Negated: neg}
}

func TestTranslateFactHasNoBody(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{lit("human", false, "socrates")}}}
	progs, err := Translate(clauses)
	require.NoError(t, err)
	require.Len(t, progs, 1)
	assert.Equal(t, KindFact, progs[0].Kind)
	assert.Equal(t, "human(socrates)", progs[0].Head)
	assert.Equal(t, "human(socrates).", progs[0].String())
}

func TestTranslateRuleHasHeadAndOrderedBody(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{
		lit("mortal", false, "_v1"),
		lit("human", true, "_v1"),
	}}}
	progs, err := Translate(clauses)
	require.NoError(t, err)
	require.Len(t, progs, 1)
	assert.Equal(t, KindRule, progs[0].Kind)
	assert.Equal(t, "mortal(V__v1)", progs[0].Head)
	assert.Equal(t, []string{"human(V__v1)"}, progs[0].Body)
	assert.Equal(t, "mortal(V__v1) :- human(V__v1).", progs[0].String())
}

func TestTranslateRejectsNonHornClauseWithTwoPositives(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{
		lit("p", false, "a"),
		lit("q", false, "a"),
	}}}
	_, err := Translate(clauses)
	assert.Error(t, err)
}

func TestTranslateAllNegativeClauseIsAGoal(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{lit("mortal", true, "socrates")}}}
	progs, err := Translate(clauses)
	require.NoError(t, err)
	assert.Equal(t, KindGoal, progs[0].Kind)
	assert.Equal(t, "?- mortal(socrates).", progs[0].String())
}

func TestHornTermFoldsUppercaseConstantsAndRewritesVariables(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{lit("p", false, "X", "_v2", "Socrates")}}}
	progs, err := Translate(clauses)
	require.NoError(t, err)
	// X: uppercase, no args -> folds to lowercase constant "x"
	// _v2: standardized variable name -> logic variable "V__v2"
	// Socrates: uppercase constant -> folds to "socrates"
	assert.Equal(t, "p(x,V__v2,socrates)", progs[0].Head)
}

func TestHornTermRewritesNestedFunctionArguments(t *testing.T) {
	clauses := []clausify.Clause{{Literals: []clausify.Literal{lit("p", false, "f(x,A)")}}}
	progs, err := Translate(clauses)
	require.NoError(t, err)
	// x: single lowercase letter -> logic variable; A: uppercase constant -> folded
	assert.Equal(t, "p(f(V_x,a))", progs[0].Head)
}

func TestTranslateGoalRejectsEmptyClauseList(t *testing.T) {
	_, _, err := TranslateGoal(nil)
	assert.Error(t, err)
}

func TestTranslateGoalRejectsAllPositiveClauseSetAsUnqueryable(t *testing.T) {
	// A negated-goal clause set with no all-negative clause at all refutes
	// nothing -- there is no query to pose, only facts/rules to assert.
	clauses := []clausify.Clause{{Literals: []clausify.Literal{lit("p", false, "a")}}}
	_, _, err := TranslateGoal(clauses)
	assert.Error(t, err)
}

func TestTranslateGoalReturnsEachAllNegativeClauseAsAnAlternativeQuery(t *testing.T) {
	clauses := []clausify.Clause{
		{Literals: []clausify.Literal{lit("p", true, "a")}},
		{Literals: []clausify.Literal{lit("q", true, "b")}},
	}
	queries, extra, err := TranslateGoal(clauses)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, []string{"p(a)"}, queries[0].Body)
	assert.Equal(t, []string{"q(b)"}, queries[1].Body)
	assert.Empty(t, extra)
}

func TestTranslateGoalRoutesPositiveLiteralClausesToExtraAlongsideQueries(t *testing.T) {
	// Clausifying ¬(P | -P) yields [{-P}] and [{+P}]: the first is a real
	// query, the second is a fact that must be asserted so the query can
	// find it (spec.md §8 scenario 6, "prove({}, P | -P)" -> proved).
	clauses := []clausify.Clause{
		{Literals: []clausify.Literal{lit("p", true)}},
		{Literals: []clausify.Literal{lit("p", false)}},
	}
	queries, extra, err := TranslateGoal(clauses)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, []string{"p"}, queries[0].Body)
	require.Len(t, extra, 1)
	assert.Equal(t, KindFact, extra[0].Kind)
	assert.Equal(t, "p", extra[0].Head)
}

func TestCollectSignatureSkipsEqualityAndCollectsFunctionArity(t *testing.T) {
	clauses := []clausify.Clause{
		{Literals: []clausify.Literal{lit("=", false, "f(a,b)", "c")}},
		{Literals: []clausify.Literal{lit("human", false, "socrates")}},
	}
	predicates, functions := CollectSignature(clauses)
	assert.NotContains(t, predicates, "=")
	assert.Equal(t, 1, predicates["human"])
	assert.Equal(t, 2, functions["f"])
}
