// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"strings"
)

type Aliases map[string]string

func unalias(aliases Aliases, input string) string {
	if name, ok := aliases[input]; ok {
		return name
	}
	return input
}

// Calc owns the one mutable piece of state, the stack; the catalogs
// are immutable after initCatalogs.
type Calc struct {
	stack *Stack
}

func newCalc() *Calc {
	return &Calc{stack: newStack()}
}

// evalLine applies one input line transactionally: tokens run in
// order, and any failure restores the stack to its pre-line state.
// errExit passes through without a restore; it is a signal, not an
// error.
func (c *Calc) evalLine(line string) error {
	saved := c.stack.snapshot()

	for _, token := range strings.Fields(line) {
		if options.trace {
			fmt.Printf("[%s] %s\n", green(c.stack.oneline()), token)
		}
		if err := c.evalToken(token); err != nil {
			if !errors.Is(err, errExit) {
				c.stack.restore(saved)
			}
			return err
		}
	}
	return nil
}

// evalToken classifies one token: numeric literal, command, constant,
// then unit. The order matters; catalogs never shadow commands.
func (c *Calc) evalToken(token string) error {
	if v, ok, err := parseLiteral(token); err != nil {
		return err
	} else if ok {
		c.stack.push(v)
		return nil
	}

	name := unalias(COMMANDALIAS, token)
	if command, ok := COMMANDS[name]; ok {
		args, err := c.stack.popN(name, command.arity)
		if err != nil {
			return err
		}
		return command.exec(c.stack, args)
	}

	if constant, ok := CONSTANTS[token]; ok {
		c.stack.push(constant)
		return nil
	}

	if unit, ok := UNITS[token]; ok {
		c.applyUnit(unit)
		return nil
	}

	return errUnknown(token)
}

// applyUnit is the auto-tag rule: a unit token tags a bare number on
// top of the stack, and otherwise pushes itself for a later '*', '/'
// or 'into' to pick up.
func (c *Calc) applyUnit(unit Unit) {
	top, ok := c.stack.peek()
	if !ok {
		c.stack.push(unitValue(unit))
		return
	}

	switch top.kind {
	case KindReal:
		c.stack.replaceTop(quantityValue(top.real, unit))
	case KindInteger:
		c.stack.replaceTop(quantityValue(float64(top.whole), unit))
	default:
		c.stack.push(unitValue(unit))
	}
}
