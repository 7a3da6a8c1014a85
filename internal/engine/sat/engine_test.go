package sat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

func lit(pred string, neg bool, args ...string) clausify.Literal {
	return clausify.Literal{Predicate: pred, Args: args, Negated: neg}
}

func TestEngineCheckSat(t *testing.T) {
	t.Run("satisfiable unit clause", func(t *testing.T) {
		clauses := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", false, "rome")}},
		}
		e := New()
		result, err := e.CheckSat(context.Background(), clauses)
		require.NoError(t, err)
		assert.True(t, result.Sat)
		assert.True(t, result.TrueVars["p(rome)"])
	})

	t.Run("p and not p is unsatisfiable", func(t *testing.T) {
		clauses := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", false, "rome")}},
			{Literals: []clausify.Literal{lit("p", true, "rome")}},
		}
		e := New()
		result, err := e.CheckSat(context.Background(), clauses)
		require.NoError(t, err)
		assert.False(t, result.Sat)
	})
}

func TestEngineProve(t *testing.T) {
	t.Run("p(rome) and not p(rome) refutes to proved", func(t *testing.T) {
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", false, "rome")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", true, "rome")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})

	t.Run("unrelated goal is not provable", func(t *testing.T) {
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", false, "rome")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("q", true, "rome")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{})
		require.NoError(t, err)
		assert.Equal(t, engine.Failed, result.Verdict)
	})

	t.Run("equality enabled proves substitution into a predicate", func(t *testing.T) {
		// obj1=obj2, human(obj1) |- human(obj2): the Horn engine's
		// equality subset deliberately omits predicate substitution
		// (internal/engine/axioms.HornEquality's doc comment), so this
		// only succeeds via the SAT engine's full axiom set.
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("=", false, "obj1", "obj2")}},
			{Literals: []clausify.Literal{lit("human", false, "obj1")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("human", true, "obj2")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{EnableEquality: true})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})
}
