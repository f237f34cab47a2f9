package rpn

import (
	"fmt"
	"math"
)

// Evaluate computes the value of a postfix expression as produced by
// ToPostfix. Spaces separate tokens, runs of digits are unsigned integer
// operands, and for each operator the first value popped is the right-hand
// side. Characters that are neither digits, spaces nor operators are ignored.
//
// Division by zero is not an error: it yields ±Inf or NaN following IEEE 754.
func Evaluate(postfix string) (float64, error) {
	var operands stack[float64]

	for i := 0; i < len(postfix); i++ {
		c := postfix[i]

		if c == ' ' {
			continue
		}

		if isDigit(c) {
			start := i
			var n float64
			for ; i < len(postfix) && isDigit(postfix[i]); i++ {
				n = n*10 + float64(postfix[i]-'0')
			}
			i--
			if math.IsInf(n, 0) {
				return 0, errorAt(ErrMalformedNumber, start, "literal %.20s... overflows float64", postfix[start:])
			}
			operands.push(n)
			continue
		}

		op, ok := OperatorFromSymbol(c)
		if !ok {
			continue
		}

		right, ok := operands.pop()
		if !ok {
			return 0, errorAt(ErrStackUnderflow, i, "operator %s has no operands", op)
		}
		left, ok := operands.pop()
		if !ok {
			return 0, errorAt(ErrStackUnderflow, i, "operator %s has one operand", op)
		}
		operands.push(op.Apply(left, right))
	}

	switch operands.len() {
	case 0:
		return 0, ErrEmptyResult
	case 1:
		result, _ := operands.pop()
		return result, nil
	default:
		return 0, fmt.Errorf("%w: %d operands left without an operator", ErrMalformedExpression, operands.len())
	}
}
