package rpn

import "math"

// Operator is one of the binary arithmetic operators understood by the engine.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Pow
)

// Associativity controls how operators of equal precedence group.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// noPrecedence is lower than every real operator so a pending "(" is never
// popped by a precedence comparison.
const noPrecedence = -1

type opInfo struct {
	symbol     byte
	precedence int
	assoc      Associativity
	apply      func(a, b float64) float64
}

var operators = [...]opInfo{
	Add: {'+', 1, LeftAssoc, func(a, b float64) float64 { return a + b }},
	Sub: {'-', 1, LeftAssoc, func(a, b float64) float64 { return a - b }},
	Mul: {'*', 2, LeftAssoc, func(a, b float64) float64 { return a * b }},
	// IEEE semantics: x/0 is ±Inf and 0/0 is NaN.
	Div: {'/', 2, LeftAssoc, func(a, b float64) float64 { return a / b }},
	Pow: {'^', 3, RightAssoc, math.Pow},
}

// OperatorFromSymbol maps a character to its Operator.
func OperatorFromSymbol(c byte) (Operator, bool) {
	for op, info := range operators {
		if info.symbol == c {
			return Operator(op), true
		}
	}
	return 0, false
}

func (o Operator) valid() bool {
	return o >= Add && o <= Pow
}

// Symbol returns the character the operator is written with.
func (o Operator) Symbol() byte {
	if !o.valid() {
		return '?'
	}
	return operators[o].symbol
}

func (o Operator) String() string {
	return string(o.Symbol())
}

// Precedence returns the binding strength: ^ = 3, * / = 2, + - = 1.
func (o Operator) Precedence() int {
	if !o.valid() {
		return noPrecedence
	}
	return operators[o].precedence
}

// Associativity reports whether the operator groups left or right.
func (o Operator) Associativity() Associativity {
	if !o.valid() {
		return LeftAssoc
	}
	return operators[o].assoc
}

// Apply computes left op right.
func (o Operator) Apply(left, right float64) float64 {
	return operators[o].apply(left, right)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
