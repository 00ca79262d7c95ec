// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

const historyFileName = ".calc_history"

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // readline just skips history persistence
	}
	return filepath.Join(home, historyFileName)
}

// completer offers every command, constant and unit name.
func completer() *readline.PrefixCompleter {
	names := make([]string, 0, len(COMMANDS)+len(CONSTANTS)+len(UNITS))
	for name := range COMMANDS {
		names = append(names, name)
	}
	for name := range CONSTANTS {
		names = append(names, name)
	}
	for name := range UNITS {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		items[i] = readline.PcItem(name)
	}
	return readline.NewPrefixCompleter(items...)
}

// repl reads lines until exit or EOF. History lives in ~/.calc_history,
// one line per entry, loaded at start and appended as lines are read.
func repl(calc *Calc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "calc> ",
		HistoryFile:     historyFile(),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			fmt.Println(calc.stack.display())
			continue
		}

		switch err := calc.evalLine(line); {
		case errors.Is(err, errExit):
			return nil
		case err != nil:
			fmt.Println(red(err.Error()))
		default:
			fmt.Println(calc.stack.display())
		}
	}
}
