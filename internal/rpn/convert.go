package rpn

import "strings"

// pending is an operator stack entry: either an operator or an open
// parenthesis remembered with its input position.
type pending struct {
	open bool
	op   Operator
	pos  int
}

// ToPostfix converts an infix expression over the digits 0-9, the operators
// + - * / ^ and parentheses into postfix form using the shunting-yard
// algorithm. Tokens in the result are separated by exactly one space and
// adjacent digits always form a single operand.
//
// Any character outside that alphabet, including whitespace and '.', fails
// with ErrInvalidCharacter. A ")" without a matching "(" or a "(" still open
// at the end of input fails with ErrUnbalancedParentheses.
func ToPostfix(infix string) (string, error) {
	var (
		out []string
		ops stack[pending]
	)

	for i := 0; i < len(infix); i++ {
		c := infix[i]

		switch {
		case isDigit(c):
			j := i + 1
			for j < len(infix) && isDigit(infix[j]) {
				j++
			}
			out = append(out, infix[i:j])
			i = j - 1

		case c == '(':
			ops.push(pending{open: true, pos: i})

		case c == ')':
			for {
				top, ok := ops.pop()
				if !ok {
					return "", errorAt(ErrUnbalancedParentheses, i, "unmatched ')'")
				}
				if top.open {
					break
				}
				out = append(out, top.op.String())
			}

		default:
			op, ok := OperatorFromSymbol(c)
			if !ok {
				return "", errorAt(ErrInvalidCharacter, i, "%q", c)
			}
			for {
				top, ok := ops.peek()
				if !ok || top.open || !popsBefore(top.op, op) {
					break
				}
				ops.pop()
				out = append(out, top.op.String())
			}
			ops.push(pending{op: op, pos: i})
		}
	}

	for ops.len() > 0 {
		top, _ := ops.pop()
		if top.open {
			return "", errorAt(ErrUnbalancedParentheses, top.pos, "unclosed '('")
		}
		out = append(out, top.op.String())
	}

	return strings.Join(out, " "), nil
}

// popsBefore reports whether the stacked operator top must be emitted before
// the incoming operator in is pushed.
func popsBefore(top, in Operator) bool {
	if top.Precedence() > in.Precedence() {
		return true
	}
	return top.Precedence() == in.Precedence() && in.Associativity() == LeftAssoc
}
