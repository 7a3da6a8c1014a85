package ontology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalResolvesDeclaredSynonym(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	require.NoError(t, o.AddSynonym("person", "human"))

	canon, found, err := o.Canonical(context.Background(), "person")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "human", canon)
}

func TestCanonicalUnknownNameNotFound(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	_, found, err := o.Canonical(context.Background(), "unmapped")
	require.NoError(t, err)
	require.False(t, found)
}

func TestExpandPredicatesMapsOnlyDeclaredNames(t *testing.T) {
	o, err := New()
	require.NoError(t, err)
	require.NoError(t, o.AddSynonym("person", "human"))

	out, err := o.ExpandPredicates(context.Background(), []string{"person", "mortal"})
	require.NoError(t, err)
	require.Equal(t, "human", out["person"])
	_, ok := out["mortal"]
	require.False(t, ok)
}
