// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var Version = "0.1.0-dev"

// Color utility functions for terminal output
func green(text string) string {
	return fmt.Sprintf("\033[32m%s\033[0m", text)
}

func red(text string) string {
	return fmt.Sprintf("\033[31m%s\033[0m", text)
}

func die(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s\n", red(message))
	os.Exit(1)
}

var (
	evalExpr    string
	asciiPowers bool
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Terminal units-aware RPN calculator",
	Long: `calc is a Reverse-Polish-Notation calculator that understands units.

Values are whitespace-separated tokens: reals, integers in several
bases (0x1f, 0o17, 0b101, $ff), bare units and quantities. A unit
token tags the number on top of the stack, so '2 in' is two inches and
'100 m 9.58 s /' is a speed. 'into' converts, 'drop' strips a unit.

Each input line is atomic: if any token fails, the stack is left
exactly as it was before the line.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCalc,
}

func init() {
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate an expression and print the final stack instead of starting the REPL")
	rootCmd.PersistentFlags().IntVarP(&options.precision, "precision", "p", options.precision, "significant digits for real numbers")
	rootCmd.PersistentFlags().BoolVarP(&options.trace, "trace", "t", false, "trace each token against the stack")
	rootCmd.PersistentFlags().BoolVarP(&options.group, "group", "g", false, "group digits with ',' (decimal) or '_' (other bases)")
	rootCmd.PersistentFlags().BoolVarP(&asciiPowers, "ascii", "S", false, "render unit powers with ^ instead of superscripts")
}

func runCalc(cmd *cobra.Command, args []string) error {
	options.superscript = !asciiPowers
	initCatalogs()
	calc := newCalc()

	expression := strings.TrimSpace(evalExpr + " " + strings.Join(args, " "))
	if expression != "" {
		if err := calc.evalLine(expression); err != nil && !errors.Is(err, errExit) {
			return err
		}
		fmt.Println(calc.stack.display())
		return nil
	}

	return repl(calc)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		die("%v", err)
	}
}
