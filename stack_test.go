// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"testing"
)

func TestStackBasics(t *testing.T) {
	s := newStack()

	if _, ok := s.pop(); ok {
		t.Error("pop on empty stack succeeded")
	}
	if _, ok := s.peek(); ok {
		t.Error("peek on empty stack succeeded")
	}

	s.push(intValue(1, Dec))
	s.push(intValue(2, Dec))
	s.push(intValue(3, Dec))

	if s.depth() != 3 {
		t.Errorf("depth = %d, want 3", s.depth())
	}

	top, ok := s.pop()
	if !ok || top.whole != 3 {
		t.Errorf("pop = %v, %v", top, ok)
	}
	if s.depth() != 2 {
		t.Errorf("depth after pop = %d", s.depth())
	}
}

func TestStackPopN(t *testing.T) {
	s := newStack()
	s.push(intValue(1, Dec))
	s.push(intValue(2, Dec))

	if _, err := s.popN("frob", 3); err == nil {
		t.Error("popN beyond depth succeeded")
	} else if kind, _ := kindOf(err); kind != StackUnderflow {
		t.Errorf("popN error kind = %v", kind)
	}
	if s.depth() != 2 {
		t.Errorf("failed popN disturbed the stack: depth %d", s.depth())
	}

	args, err := s.popN("frob", 2)
	if err != nil {
		t.Fatal(err)
	}
	// bottom-first order
	if args[0].whole != 1 || args[1].whole != 2 {
		t.Errorf("popN order = %d, %d", args[0].whole, args[1].whole)
	}
	if s.depth() != 0 {
		t.Errorf("depth after popN = %d", s.depth())
	}
}

func TestStackSnapshotRestore(t *testing.T) {
	s := newStack()
	s.push(intValue(1, Dec))
	s.push(intValue(2, Dec))

	saved := s.snapshot()
	s.push(intValue(3, Dec))
	s.clear()
	s.push(realValue(9.5))

	s.restore(saved)
	if got := s.display(); got != "(1 2)" {
		t.Errorf("restored stack = %s", got)
	}
}

func TestStackKeep(t *testing.T) {
	s := newStack()
	for i := int64(1); i <= 5; i++ {
		s.push(intValue(i, Dec))
	}

	s.keep(2)
	if got := s.display(); got != "(4 5)" {
		t.Errorf("keep(2) = %s", got)
	}

	s.keep(0)
	if got := s.display(); got != "()" {
		t.Errorf("keep(0) = %s", got)
	}
}
