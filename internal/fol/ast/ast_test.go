package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humanMortal() Node {
	// all x (human(x) -> mortal(x))
	return &Forall{Var: "x", Body: &Implies{
		L: &Predicate{Name: "human", Args: []Node{&Variable{Name: "x"}}},
		R: &Predicate{Name: "mortal", Args: []Node{&Variable{Name: "x"}}},
	}}
}

func TestStringRendersParenthesesOnlyAroundBinaryForms(t *testing.T) {
	n := humanMortal()
	assert.Equal(t, "all x (human(x) -> mortal(x))", n.String())
}

func TestCloneProducesAnIndependentTree(t *testing.T) {
	n := humanMortal().(*Forall)
	clone := Clone(n).(*Forall)

	clone.Body.(*Implies).L.(*Predicate).Name = "alien"
	assert.Equal(t, "human", n.Body.(*Implies).L.(*Predicate).Name)
	assert.Equal(t, "alien", clone.Body.(*Implies).L.(*Predicate).Name)
}

func TestWalkRewritesEveryPredicateName(t *testing.T) {
	n := humanMortal()
	Walk(n, func(node Node) Node {
		if p, ok := node.(*Predicate); ok && p.Name == "human" {
			p.Name = "person"
		}
		return nil
	})
	assert.Equal(t, "all x (person(x) -> mortal(x))", n.String())
}

func TestNodeCountCountsEveryVisitedNode(t *testing.T) {
	// Forall, Implies, Predicate, Variable, Predicate, Variable
	assert.Equal(t, 6, NodeCount(humanMortal()))
}

func TestFreeVarsExcludesBoundVariables(t *testing.T) {
	free := FreeVars(humanMortal())
	assert.Empty(t, free)

	open := &Predicate{Name: "p", Args: []Node{&Variable{Name: "x"}, &Variable{Name: "y"}}}
	free = FreeVars(open)
	assert.True(t, free["x"])
	assert.True(t, free["y"])
}

func TestNewSignatureCollectsPredicatesFunctionsAndConstants(t *testing.T) {
	n := &And{
		L: &Predicate{Name: "p", Args: []Node{&Constant{Name: "a"}}},
		R: &Equals{L: &Function{Name: "f", Args: []Node{&Constant{Name: "a"}}}, R: &Constant{Name: "b"}},
	}
	sig, err := NewSignature(n)
	require.NoError(t, err)
	assert.Equal(t, 1, sig.Predicates["p"])
	assert.Equal(t, 1, sig.Functions["f"])
	assert.True(t, sig.Constants["a"])
	assert.True(t, sig.Constants["b"])
	assert.True(t, sig.HasEquality)
}

func TestNewSignatureRejectsArityMismatch(t *testing.T) {
	n := &And{
		L: &Predicate{Name: "p", Args: []Node{&Constant{Name: "a"}}},
		R: &Predicate{Name: "p", Args: []Node{&Constant{Name: "a"}, &Constant{Name: "b"}}},
	}
	_, err := NewSignature(n)
	assert.Error(t, err)
}

func TestMergeSignaturesUnionsFields(t *testing.T) {
	a, err := NewSignature(&Predicate{Name: "p", Args: []Node{&Constant{Name: "a"}}})
	require.NoError(t, err)
	b, err := NewSignature(&Predicate{Name: "q", Args: []Node{&Constant{Name: "b"}}})
	require.NoError(t, err)

	merged := MergeSignatures(a, b)
	assert.Contains(t, merged.Predicates, "p")
	assert.Contains(t, merged.Predicates, "q")
	assert.True(t, merged.Constants["a"])
	assert.True(t, merged.Constants["b"])
}

func TestIsArithmeticPredicateRecognizesFixedVocabularyOnly(t *testing.T) {
	assert.True(t, IsArithmeticPredicate("plus"))
	assert.True(t, IsArithmeticPredicate("lte"))
	assert.False(t, IsArithmeticPredicate("human"))
}

func TestHasArithmeticAndHasEquality(t *testing.T) {
	withArith := &Predicate{Name: "lt", Args: []Node{&Constant{Name: "a"}, &Constant{Name: "b"}}}
	assert.True(t, HasArithmetic(withArith))
	assert.False(t, HasEquality(withArith))

	withEq := &Equals{L: &Constant{Name: "a"}, R: &Constant{Name: "b"}}
	assert.False(t, HasArithmetic(withEq))
	assert.True(t, HasEquality(withEq))
}

func TestPredicatesUsedCollectsEveryName(t *testing.T) {
	used := PredicatesUsed(humanMortal())
	assert.True(t, used["human"])
	assert.True(t, used["mortal"])
	assert.Len(t, used, 2)
}
