package rpn

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedParentheses reports a ")" without a matching "(" or a "("
	// left open at the end of input.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	// ErrInvalidCharacter reports a character outside the infix alphabet.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrStackUnderflow reports an operator with fewer than two operands.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMalformedExpression reports operands left over after evaluation.
	ErrMalformedExpression = errors.New("malformed expression")
	// ErrEmptyResult reports an expression that produced no operand at all.
	ErrEmptyResult = errors.New("empty result")
	// ErrMalformedNumber reports an integer literal that cannot be
	// represented as a finite float64.
	ErrMalformedNumber = errors.New("malformed number")
)

// Kind returns a stable snake_case name for the rpn error wrapped by err, or
// "unknown" if err does not wrap one.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnbalancedParentheses):
		return "unbalanced_parentheses"
	case errors.Is(err, ErrInvalidCharacter):
		return "invalid_character"
	case errors.Is(err, ErrStackUnderflow):
		return "stack_underflow"
	case errors.Is(err, ErrMalformedExpression):
		return "malformed_expression"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrMalformedNumber):
		return "malformed_number"
	default:
		return "unknown"
	}
}

func errorAt(sentinel error, pos int, format string, args ...any) error {
	return fmt.Errorf("%w at position %d: %s", sentinel, pos, fmt.Sprintf(format, args...))
}
