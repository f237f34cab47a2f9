package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rpn-calculator/internal/calculator"
	"rpn-calculator/internal/history"
	"rpn-calculator/internal/observability"
)

type options struct {
	verbose     bool
	maxLength   int
	showPostfix bool
	showHistory bool

	engine *calculator.Engine
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rpncalc",
		Short: "Infix calculator backed by a postfix (RPN) engine",
		Long: `rpncalc converts infix arithmetic over non-negative integers and the
operators + - * / ^ into postfix form and evaluates it.

Examples:
  rpncalc calc "(1+2)*3"
  rpncalc calc --postfix "2^3^2" "8/4/2"
  rpncalc convert "3+4*2"
  rpncalc eval "3 4 2 * +"
  rpncalc repl`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := observability.InitCLILogger(opts.verbose); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			engine, err := calculator.NewEngine(history.NewLedger(),
				calculator.WithMaxExpressionLength(opts.maxLength),
			)
			if err != nil {
				return err
			}
			opts.engine = engine
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every calculation")
	root.PersistentFlags().IntVar(&opts.maxLength, "max-length", 1024, "Reject expressions longer than this many bytes (0 disables)")

	root.AddCommand(
		newCalcCmd(opts),
		newConvertCmd(opts),
		newEvalCmd(opts),
		newREPLCmd(opts),
	)

	return root
}

func newCalcCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <expression>...",
		Short: "Evaluate one or more infix expressions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, expr := range args {
				res, err := opts.engine.Evaluate(cmd.Context(), expr)
				if err != nil {
					return err
				}
				if opts.showPostfix {
					fmt.Fprintf(out, "%s => %s = %s\n", res.Infix, res.Postfix, res.Display())
				} else {
					fmt.Fprintln(out, res.Display())
				}
			}
			if opts.showHistory {
				fmt.Fprintln(out)
				writeHistory(out, opts.engine)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.showPostfix, "postfix", "p", false, "Print the postfix form next to each result")
	cmd.Flags().BoolVar(&opts.showHistory, "history", false, "Print the calculation history afterwards")

	return cmd
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <expression>",
		Short: "Print the postfix form of an infix expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postfix, err := opts.engine.Convert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), postfix)
			return nil
		},
	}
}

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <postfix>...",
		Short: "Evaluate a space separated postfix expression",
		Long: `Evaluate a postfix expression. Tokens may be passed as one quoted
argument or as separate arguments: rpncalc eval 3 4 +`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := opts.engine.EvaluatePostfix(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), history.FormatResult(value))
			return nil
		},
	}
}

func newREPLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator with history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			return runREPL(cmd.Context(), opts.engine, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
		},
	}
}
