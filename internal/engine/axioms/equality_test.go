package axioms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logos-reasoner/logos/internal/fol/horn"
)

func TestHornEqualityEmitsReflexivityAtDepthZero(t *testing.T) {
	progs := HornEquality(nil, 2)
	var sawReflexive bool
	for _, p := range progs {
		if p.Kind == horn.KindFact && p.Head == "eq_d0(V_X,V_X)" {
			sawReflexive = true
		}
	}
	assert.True(t, sawReflexive)
}

func TestHornEqualityStepBridgesToFactInBothDirections(t *testing.T) {
	progs := HornEquality(nil, 1)
	var sawStep, sawStepSym bool
	for _, p := range progs {
		if p.Head == "eq_step1(V_X,V_Y)" && len(p.Body) == 1 && p.Body[0] == "eq_fact(V_X,V_Y)" {
			sawStep = true
		}
		if p.Head == "eq_step1(V_X,V_Y)" && len(p.Body) == 1 && p.Body[0] == "eq_fact(V_Y,V_X)" {
			sawStepSym = true
		}
	}
	assert.True(t, sawStep)
	assert.True(t, sawStepSym)
}

func TestHornEqualityEachLevelOnlyReferencesTheLevelBelow(t *testing.T) {
	progs := HornEquality(nil, 3)
	for _, p := range progs {
		if p.Head != "eq_d3(V_X,V_Y)" {
			continue
		}
		for _, b := range p.Body {
			assert.NotContains(t, b, "eq_d3(")
		}
	}
}

func TestHornEqualityEmitsCongruenceForEachNonZeroArityFunction(t *testing.T) {
	progs := HornEquality(map[string]int{"f": 2, "c": 0}, 1)
	var found bool
	for _, p := range progs {
		if p.Head == "eq_step1(f(V_X1,V_X2),f(V_Y1,V_Y2))" {
			found = true
			assert.Equal(t, []string{"eq_d0(V_X1,V_Y1)", "eq_d0(V_X2,V_Y2)"}, p.Body)
		}
		assert.NotContains(t, p.Head, "c(")
	}
	assert.True(t, found)
}

func TestHornEqualityDefaultsDepthWhenNonPositive(t *testing.T) {
	progs := HornEquality(nil, 0)
	var sawTop bool
	for _, p := range progs {
		if p.Head == "eq_d6(V_X,V_Y)" {
			sawTop = true
		}
	}
	assert.True(t, sawTop)
	assert.Equal(t, "eq_d6", EqualityTopPredicate(0))
}

func TestEqualityFormulasAlwaysIncludesCoreAxioms(t *testing.T) {
	fs := EqualityFormulas(nil, nil)
	assert.Contains(t, fs, "all x (x = x)")
	assert.Contains(t, fs, "all x all y (x = y -> y = x)")
	assert.Contains(t, fs, "all x all y all z ((x = y & y = z) -> x = z)")
}

func TestEqualityFormulasAddsCongruenceFormulaPerFunction(t *testing.T) {
	fs := EqualityFormulas(map[string]int{"f": 1}, nil)
	assert.Contains(t, fs, "all x1 all y1 (x1 = y1 -> f(x1) = f(y1))")
}

func TestEqualityFormulasAddsSubstitutionFormulaPerPredicate(t *testing.T) {
	fs := EqualityFormulas(nil, map[string]int{"human": 1})
	assert.Contains(t, fs, "all x1 all y1 ((x1 = y1 & human(x1)) -> human(y1))")
}

func TestEqualityFormulasSkipsEqualityAndZeroArityPredicates(t *testing.T) {
	fs := EqualityFormulas(nil, map[string]int{"=": 2, "prop": 0})
	assert.Len(t, fs, 3) // only the three core axioms
}
