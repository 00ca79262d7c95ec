// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// fixed display settings and seed currency rates so tests never
	// depend on flags or a cached rate database
	options = Options{precision: 12, superscript: true}
	initCatalogsWith(seedRates)

	os.Exit(m.Run())
}

// evalNew runs one line on a fresh stack and returns the calculator.
func evalNew(t *testing.T, line string) (*Calc, error) {
	t.Helper()
	calc := newCalc()
	return calc, calc.evalLine(line)
}

// display evaluates a line that must succeed and returns the stack display.
func display(t *testing.T, line string) string {
	t.Helper()
	calc, err := evalNew(t, line)
	if err != nil {
		t.Fatalf("evalLine(%q) failed: %v", line, err)
	}
	return calc.stack.display()
}

// failWith evaluates a line that must fail and returns the error kind.
func failWith(t *testing.T, line string) ErrorKind {
	t.Helper()
	_, err := evalNew(t, line)
	if err == nil {
		t.Fatalf("evalLine(%q) unexpectedly succeeded", line)
	}
	kind, ok := kindOf(err)
	if !ok {
		t.Fatalf("evalLine(%q) returned a foreign error: %v", line, err)
	}
	return kind
}
