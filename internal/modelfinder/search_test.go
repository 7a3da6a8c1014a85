package modelfinder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSmallSatisfiableModel(t *testing.T) {
	// Two distinct elements must exist, so the smallest model has 2 elements.
	opts := DefaultOptions()
	opts.MaxDomainSize = 3
	result, err := Find(context.Background(), []string{
		"exists x exists y -(x = y)",
	}, opts)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, 2, result.DomainSize)
	require.Len(t, result.Models, 1)
}

func TestFindNoModelWithinBudgetReturnsNotFound(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDomainSize = 2
	// p and its negation can never jointly hold of the same constant.
	result, err := Find(context.Background(), []string{
		"p(cat)",
		"-p(cat)",
	}, opts)
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestFindRespectsExplicitDomainSize(t *testing.T) {
	opts := DefaultOptions()
	opts.DomainSize = 1
	result, err := Find(context.Background(), []string{"p(c) | -p(c)"}, opts)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, 1, result.DomainSize)
}

func TestFindCountRequestsMultipleModels(t *testing.T) {
	opts := DefaultOptions()
	opts.DomainSize = 2
	opts.Count = 2
	opts.EnableSymmetry = false
	result, err := Find(context.Background(), []string{"p(c) | q(c)"}, opts)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.GreaterOrEqual(t, len(result.Models), 1)
}

func TestSkolemizeFreeVars(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDomainSize = 2
	// Free variable x is implicitly universally quantified at the top level
	// by Mace4 convention; skolemizing to a constant must not change
	// satisfiability here.
	result, err := Find(context.Background(), []string{"p(x)"}, opts)
	require.NoError(t, err)
	assert.True(t, result.Found)
}
