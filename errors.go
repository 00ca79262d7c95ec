// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures so tests and callers can
// distinguish them without string matching.
type ErrorKind int

const (
	StackUnderflow ErrorKind = iota
	TypeError
	DimensionalityError
	IncommensurableUnits
	TemperatureKindMismatch
	NonLinearInCompound
	DivisionByZero
	DomainError
	RangeError
	UnknownToken
	NumberFormatError
)

var kindNames = map[ErrorKind]string{
	StackUnderflow:          "StackUnderflow",
	TypeError:               "TypeError",
	DimensionalityError:     "DimensionalityError",
	IncommensurableUnits:    "IncommensurableUnits",
	TemperatureKindMismatch: "TemperatureKindMismatch",
	NonLinearInCompound:     "NonLinearInCompound",
	DivisionByZero:          "DivisionByZero",
	DomainError:             "DomainError",
	RangeError:              "RangeError",
	UnknownToken:            "UnknownToken",
	NumberFormatError:       "NumberFormatError",
}

func (k ErrorKind) String() string {
	return kindNames[k]
}

// CalcError is the single error type produced by the evaluator; every
// user-visible failure is one of these.
type CalcError struct {
	kind    ErrorKind
	message string
}

func (e *CalcError) Error() string {
	return e.message
}

func (e *CalcError) Kind() ErrorKind {
	return e.kind
}

func calcErrorf(kind ErrorKind, format string, args ...any) *CalcError {
	return &CalcError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// kindOf extracts the ErrorKind from an evaluation error; ok is false
// for nil or foreign errors.
func kindOf(err error) (ErrorKind, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.kind, true
	}
	return 0, false
}

// errExit is the control signal raised by 'exit' and 'q'; the driver
// consumes it, nothing else treats it as a failure.
var errExit = errors.New("exit requested")

func errUnderflow(op string) error {
	return calcErrorf(StackUnderflow, "Not enough arguments for '%s'", op)
}

func errType(format string, args ...any) error {
	return calcErrorf(TypeError, format, args...)
}

func errUnknown(token string) error {
	return calcErrorf(UnknownToken, "Unrecognized token '%s'", token)
}
