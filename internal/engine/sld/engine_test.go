package sld

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

func lit(pred string, neg bool, args ...string) clausify.Literal {
	return clausify.Literal{Predicate: pred, Args: args, Negated: neg}
}

func TestEngineProve(t *testing.T) {
	t.Run("Socrates is mortal", func(t *testing.T) {
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("human", false, "socrates")}},
			{Literals: []clausify.Literal{lit("human", true, "_v1"), lit("mortal", false, "_v1")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("mortal", true, "socrates")}},
		}

		e := New()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		result, err := e.Prove(ctx, premises, goal, engine.ProveOptions{MaxInferences: 1000})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})

	t.Run("unsupported goal fails within budget", func(t *testing.T) {
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("human", false, "socrates")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("mortal", true, "socrates")}},
		}

		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{MaxInferences: 50})
		require.NoError(t, err)
		assert.Equal(t, engine.Failed, result.Verdict)
		assert.False(t, result.HitLimit)
	})

	t.Run("Assert then Retract round-trips", func(t *testing.T) {
		e := New()
		clauses := []clausify.Clause{
			{Literals: []clausify.Literal{lit("human", false, "socrates")}},
		}
		require.NoError(t, e.Assert(context.Background(), clauses))
		removed, err := e.Retract(context.Background(), clauses)
		require.NoError(t, err)
		assert.True(t, removed)

		removedAgain, err := e.Retract(context.Background(), clauses)
		require.NoError(t, err)
		assert.False(t, removedAgain)
	})

	t.Run("checkSat is not natively supported", func(t *testing.T) {
		e := New()
		_, err := e.CheckSat(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("disjunctive goal with no premises still proves (excluded middle)", func(t *testing.T) {
		// prove({}, P | -P): clausifying -(P | -P) yields [{-P}] and
		// [{+P}] -- the second asserts P as a fact, letting the first
		// succeed as a query (spec.md §8 scenario 6).
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("p", true)}},
			{Literals: []clausify.Literal{lit("p", false)}},
		}
		e := New()
		result, err := e.Prove(context.Background(), nil, goal, engine.ProveOptions{MaxInferences: 1000})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})

	t.Run("equality enabled proves transitive chain", func(t *testing.T) {
		// prove({obj1=obj2, obj2=obj3}, obj1=obj3) with enableEquality=true
		// (spec.md §8 scenario 3; single-lowercase-letter names are reserved
		// by the horn translation for logic variables, so named individuals
		// here use multi-character constant names).
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("=", false, "obj1", "obj2")}},
			{Literals: []clausify.Literal{lit("=", false, "obj2", "obj3")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("=", true, "obj1", "obj3")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{MaxInferences: 5000, EnableEquality: true})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})

	t.Run("equality disabled does not prove the transitive chain", func(t *testing.T) {
		premises := []clausify.Clause{
			{Literals: []clausify.Literal{lit("=", false, "obj1", "obj2")}},
			{Literals: []clausify.Literal{lit("=", false, "obj2", "obj3")}},
		}
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("=", true, "obj1", "obj3")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), premises, goal, engine.ProveOptions{MaxInferences: 5000})
		require.NoError(t, err)
		assert.Equal(t, engine.Failed, result.Verdict)
	})

	t.Run("arithmetic enabled evaluates native plus", func(t *testing.T) {
		// prove({}, plus(2,3,5)) with enableArithmetic=true.
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("plus", true, "2", "3", "5")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), nil, goal, engine.ProveOptions{MaxInferences: 1000, EnableArithmetic: true})
		require.NoError(t, err)
		assert.Equal(t, engine.Proved, result.Verdict)
	})

	t.Run("arithmetic enabled rejects a wrong sum", func(t *testing.T) {
		goal := []clausify.Clause{
			{Literals: []clausify.Literal{lit("plus", true, "2", "3", "6")}},
		}
		e := New()
		result, err := e.Prove(context.Background(), nil, goal, engine.ProveOptions{MaxInferences: 1000, EnableArithmetic: true})
		require.NoError(t, err)
		assert.Equal(t, engine.Failed, result.Verdict)
	})
}
