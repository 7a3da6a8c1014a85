package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCachesChildLoggers(t *testing.T) {
	l := NewNop()
	a := l.For(CategorySession)
	b := l.For(CategorySession)
	assert.Same(t, a, b, "the same category must return the same cached child logger")
}

func TestForDistinctCategoriesDistinctLoggers(t *testing.T) {
	l := NewNop()
	a := l.For(CategorySAT)
	b := l.For(CategorySLD)
	assert.NotSame(t, a, b)
}

func TestNewBuildsWithoutError(t *testing.T) {
	l, err := New(false)
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Sync()
}
