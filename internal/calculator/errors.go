package calculator

import (
	"errors"
	"fmt"

	"rpn-calculator/internal/rpn"
)

// ErrExpressionTooLong is returned before conversion when an expression
// exceeds the engine's configured maximum length.
var ErrExpressionTooLong = errors.New("expression too long")

// Stages reported by InvalidExpressionError.
const (
	StageValidate = "validate"
	StageConvert  = "convert"
	StageEvaluate = "evaluate"
)

// InvalidExpressionError is the single error class surfaced to callers for
// any parse or evaluation failure. It unwraps to the underlying rpn sentinel.
type InvalidExpressionError struct {
	Expression string
	Stage      string
	Err        error
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Expression, e.Err)
}

func (e *InvalidExpressionError) Unwrap() error {
	return e.Err
}

// Kind names the failure, e.g. "unbalanced_parentheses".
func (e *InvalidExpressionError) Kind() string {
	if errors.Is(e.Err, ErrExpressionTooLong) {
		return "expression_too_long"
	}
	return rpn.Kind(e.Err)
}

func invalid(expr, stage string, err error) error {
	return &InvalidExpressionError{Expression: expr, Stage: stage, Err: err}
}
