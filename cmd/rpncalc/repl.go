package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"rpn-calculator/internal/calculator"
	"rpn-calculator/internal/history"
)

const replHelp = `Enter an infix expression such as (1+2)*3.
Commands:
  :history   show past calculations, newest first
  :clear     forget all past calculations
  :help      show this text
  :quit      leave`

// runREPL reads one expression per line from in and prints each result, or
// "Error: ..." for a rejected expression, to out. Prompts are only written
// when interactive is set.
func runREPL(ctx context.Context, engine *calculator.Engine, in io.Reader, out io.Writer, interactive bool) error {
	if interactive {
		fmt.Fprintln(out, "rpncalc (Ctrl+D or :quit to exit, :help for commands)")
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q", ":exit":
			return nil
		case ":help":
			fmt.Fprintln(out, replHelp)
			continue
		case ":history":
			writeHistory(out, engine)
			continue
		case ":clear":
			engine.ClearHistory(ctx)
			fmt.Fprintln(out, "history cleared")
			continue
		}

		result, err := engine.Calculate(ctx, line)
		if err != nil {
			var ie *calculator.InvalidExpressionError
			if !errors.As(err, &ie) {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", ie.Err)
			continue
		}
		fmt.Fprintln(out, result)
	}

	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// writeHistory prints the ledger newest first, the way a history pane shows it.
func writeHistory(out io.Writer, engine *calculator.Engine) {
	entries := engine.History()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no calculations yet")
		return
	}
	for _, e := range history.Reversed(entries) {
		fmt.Fprint(out, e.String())
	}
}
