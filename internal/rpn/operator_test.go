package rpn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorTable(t *testing.T) {
	tests := []struct {
		symbol byte
		op     Operator
		prec   int
		assoc  Associativity
	}{
		{'+', Add, 1, LeftAssoc},
		{'-', Sub, 1, LeftAssoc},
		{'*', Mul, 2, LeftAssoc},
		{'/', Div, 2, LeftAssoc},
		{'^', Pow, 3, RightAssoc},
	}

	for _, tc := range tests {
		t.Run(string(tc.symbol), func(t *testing.T) {
			op, ok := OperatorFromSymbol(tc.symbol)
			assert.True(t, ok)
			assert.Equal(t, tc.op, op)
			assert.Equal(t, tc.prec, op.Precedence())
			assert.Equal(t, tc.assoc, op.Associativity())
			assert.Equal(t, tc.symbol, op.Symbol())
		})
	}
}

func TestOperatorFromSymbolRejectsUnknown(t *testing.T) {
	for _, c := range []byte{'(', ')', '%', '.', ' ', '7'} {
		_, ok := OperatorFromSymbol(c)
		assert.False(t, ok, "symbol %q", c)
	}
}

func TestUnknownOperatorHasSentinelPrecedence(t *testing.T) {
	assert.Equal(t, -1, Operator(42).Precedence())
	assert.Equal(t, "?", Operator(42).String())
}

func TestOperatorApply(t *testing.T) {
	assert.Equal(t, 5.0, Add.Apply(2, 3))
	assert.Equal(t, -1.0, Sub.Apply(2, 3))
	assert.Equal(t, 6.0, Mul.Apply(2, 3))
	assert.Equal(t, 0.5, Div.Apply(1, 2))
	assert.Equal(t, 8.0, Pow.Apply(2, 3))
}
