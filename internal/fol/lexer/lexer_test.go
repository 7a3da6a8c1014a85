package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/token"
)

func TestAllLexesEveryTokenKind(t *testing.T) {
	toks, err := All("all x (human(x) -> mortal(x)) & p | -q <-> r = s.")
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Contains(t, kinds, token.QUANT)
	assert.Contains(t, kinds, token.IDENT)
	assert.Contains(t, kinds, token.LP)
	assert.Contains(t, kinds, token.RP)
	assert.Contains(t, kinds, token.IMPLIES)
	assert.Contains(t, kinds, token.AND)
	assert.Contains(t, kinds, token.OR)
	assert.Contains(t, kinds, token.NOT)
	assert.Contains(t, kinds, token.IFF)
	assert.Contains(t, kinds, token.EQ)
	assert.Contains(t, kinds, token.DOT)
	assert.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestMinusBeforeGreaterThanIsImplies(t *testing.T) {
	toks, err := All("p -> q.")
	require.NoError(t, err)
	assert.Equal(t, token.IMPLIES, toks[1].Kind)
}

func TestBareMinusIsUnaryNot(t *testing.T) {
	toks, err := All("-p.")
	require.NoError(t, err)
	assert.Equal(t, token.NOT, toks[0].Kind)
}

func TestUnrecognizedCharacterReturnsParseError(t *testing.T) {
	_, err := All("p(x) < q")
	require.Error(t, err)
	assert.True(t, errs.As(err, errs.CodeParseError))
}

func TestLineColTracksNewlines(t *testing.T) {
	src := "p(a).\nq(b)."
	line, col := LineCol(src, len("p(a).\nq"))
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestScanIdentRecognizesQuantifierKeywords(t *testing.T) {
	toks, err := All("all exists foobar")
	require.NoError(t, err)
	assert.Equal(t, token.QUANT, toks[0].Kind)
	assert.Equal(t, token.QUANT, toks[1].Kind)
	assert.Equal(t, token.IDENT, toks[2].Kind)
}
