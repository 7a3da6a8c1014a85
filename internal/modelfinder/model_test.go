package modelfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelStringRendering(t *testing.T) {
	m := newModel(2)
	m.Constants["rome"] = 0
	m.Functions["capitalOf"] = map[string]int{"0": 0, "1": 0}
	m.Predicates["city"] = map[string]bool{"0": true, "1": false}

	s := m.String()
	assert.Contains(t, s, "Domain size: 2")
	assert.Contains(t, s, "rome = 0")
	assert.Contains(t, s, "capitalOf")
	assert.Contains(t, s, "city")
}

func TestTupleKey(t *testing.T) {
	assert.Equal(t, "", tupleKey(nil))
	assert.Equal(t, "1,2", tupleKey([]int{1, 2}))
}

func TestModelClone(t *testing.T) {
	m := newModel(3)
	m.Constants["a"] = 1
	m.Predicates["p"] = map[string]bool{"1": true}

	c := m.clone()
	c.Constants["a"] = 2
	c.Predicates["p"]["1"] = false

	assert.Equal(t, 1, m.Constants["a"], "mutating the clone must not affect the original")
	assert.True(t, m.Predicates["p"]["1"])
}
