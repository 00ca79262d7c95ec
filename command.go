// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"math"
)

// Command pairs an arity with its implementation. The dispatcher pops
// arity values (bottom-first in args) before calling exec; exec pushes
// any results. Commands never need to roll back: the line-level
// transaction in evalLine restores the stack on any error.
type Command struct {
	arity int
	exec  func(s *Stack, args []Value) error
}

var COMMANDALIAS = Aliases{
	"pow": "**",
	".":   "*",
	"•":   "*",
	"x":   "swap",
	"d":   "dup",
	"p":   "pop",
}

var COMMANDS = map[string]Command{
	// arithmetic
	"+": {arity: 2, exec: addSubOp("+")},
	"-": {arity: 2, exec: addSubOp("-")},
	"*": {arity: 2, exec: mulDivOp("*")},
	"/": {arity: 2, exec: mulDivOp("/")},

	// power family
	"**":   {arity: 2, exec: powOp},
	"/**":  {arity: 2, exec: nthRootOp},
	"exp":  {arity: 1, exec: expOp},
	"sqrt": {arity: 1, exec: rootOp("sqrt", 2)},
	"cbrt": {arity: 1, exec: rootOp("cbrt", 3)},
	"chs":  {arity: 1, exec: chsOp},
	"inv":  {arity: 1, exec: invOp},

	// logarithms (dimensionless)
	"ln":    {arity: 1, exec: logOp("ln", math.Log)},
	"log2":  {arity: 1, exec: logOp("log2", math.Log2)},
	"log10": {arity: 1, exec: logOp("log10", math.Log10)},

	// trigonometry
	"sin":  {arity: 1, exec: trigOp("sin", math.Sin)},
	"cos":  {arity: 1, exec: trigOp("cos", math.Cos)},
	"tan":  {arity: 1, exec: trigOp("tan", math.Tan)},
	"asin": {arity: 1, exec: arcOp("asin", math.Asin, true)},
	"acos": {arity: 1, exec: arcOp("acos", math.Acos, true)},
	"atan": {arity: 1, exec: arcOp("atan", math.Atan, false)},

	// bitwise (integers only)
	"&":    {arity: 2, exec: bitwiseOp("&")},
	"|":    {arity: 2, exec: bitwiseOp("|")},
	"^":    {arity: 2, exec: bitwiseOp("^")},
	"~":    {arity: 1, exec: bitwiseNotOp},
	"<<":   {arity: 2, exec: shiftOp("<<")},
	">>":   {arity: 2, exec: shiftOp(">>")},
	"bset": {arity: 2, exec: bitOp("bset")},
	"bclr": {arity: 2, exec: bitOp("bclr")},
	"bget": {arity: 2, exec: bitOp("bget")},

	// integer display radix
	"hex": {arity: 1, exec: radixOp("hex", Hex)},
	"dec": {arity: 1, exec: radixOp("dec", Dec)},
	"oct": {arity: 1, exec: radixOp("oct", Oct)},
	"bin": {arity: 1, exec: radixOp("bin", Bin)},

	// unit conversion
	"into": {arity: 2, exec: intoOp},
	"drop": {arity: 1, exec: dropOp},

	// stack manipulation
	"pop":   {arity: 1, exec: func(s *Stack, args []Value) error { return nil }},
	"dup":   {arity: 1, exec: dupOp},
	"swap":  {arity: 2, exec: swapOp},
	"clear": {arity: 0, exec: clearOp},
	"keep":  {arity: 1, exec: keepOp},
	"depth": {arity: 0, exec: depthOp},

	"exit": {arity: 0, exec: exitOp},
	"q":    {arity: 0, exec: exitOp},
}

// addSubOp implements '+' and '-'. Integers wrap in 64 bits and keep
// the left operand's radix; commensurable quantities convert the right
// operand into the left unit first. Subtracting two absolute
// temperatures cancels the offsets, so the result is an interval.
func addSubOp(op string) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		a, b := args[0], args[1]

		switch {
		case a.kind == KindInteger && b.kind == KindInteger:
			if op == "+" {
				s.push(intValue(a.whole+b.whole, a.radix))
			} else {
				s.push(intValue(a.whole-b.whole, a.radix))
			}

		case a.isNumber() && b.isNumber():
			if op == "+" {
				s.push(realValue(a.asFloat() + b.asFloat()))
			} else {
				s.push(realValue(a.asFloat() - b.asFloat()))
			}

		case a.kind == KindQuantity && b.kind == KindQuantity:
			if !a.unit.commensurable(b.unit) {
				return calcErrorf(DimensionalityError,
					"Incompatible units for '%s': %s vs %s", op, a.unit, b.unit)
			}
			converted, err := convert(b.real, b.unit, a.unit)
			if err != nil {
				return err
			}

			unit := a.unit
			if op == "-" {
				s.push(quantityValue(a.real-converted, subtractionUnit(a.unit, b.unit)))
				return nil
			}
			s.push(quantityValue(a.real+converted, unit))

		case a.kind == KindUnit || b.kind == KindUnit:
			return errType("Cannot apply '%s' to a bare unit", op)

		default:
			return calcErrorf(DimensionalityError,
				"Cannot apply '%s' to %s and %s: one has units, the other does not",
				op, a.describe(), b.describe())
		}
		return nil
	}
}

// subtractionUnit maps the difference of two temperature points to the
// matching interval unit; anything else keeps the left unit.
func subtractionUnit(a, b Unit) Unit {
	if a.tempStyle() != tempNone && b.tempStyle() != tempNone {
		return a.intervalTwin()
	}
	return a
}

// mulDivOp implements '*' and '/'. Bare units compose algebraically; a
// quantity and a plain number scale the magnitude with the unit
// unchanged; everything else multiplies magnitudes and units, with a
// zero-dimension result unwrapping to a Real.
func mulDivOp(op string) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		a, b := args[0], args[1]

		if a.isNumber() && b.isNumber() {
			return pushNumericMulDiv(s, a, b, op)
		}

		// quantity with plain number: scale the magnitude only
		if a.kind == KindQuantity && b.isNumber() || a.isNumber() && b.kind == KindQuantity {
			unit := a.unit
			if b.kind == KindQuantity {
				unit = b.unit
			}
			if unit.hasAbsolute() {
				return calcErrorf(NonLinearInCompound,
					"Cannot scale absolute temperature '%s'", unit)
			}
			if op == "/" && b.asFloat() == 0 {
				return calcErrorf(DivisionByZero, "Division by zero")
			}
			if op == "*" {
				s.push(quantityValue(a.asFloat()*b.asFloat(), unit))
			} else {
				s.push(quantityValue(a.asFloat()/b.asFloat(), unit))
			}
			return nil
		}

		// remaining combinations involve at least one Unit or two Quantities
		av, au := asMultiplicative(a)
		bv, bu := asMultiplicative(b)

		if op == "/" && b.kind != KindUnit && bv == 0 {
			return calcErrorf(DivisionByZero, "Division by zero")
		}

		var unit Unit
		var err error
		magnitude := av * bv
		if op == "*" {
			unit, err = unitMul(au, bu)
		} else {
			unit, err = unitDiv(au, bu)
			magnitude = av / bv
		}
		if err != nil {
			return err
		}

		if a.kind == KindUnit && b.kind == KindUnit {
			if unit.empty() {
				s.push(realValue(1))
			} else {
				s.push(unitValue(unit))
			}
			return nil
		}

		if unit.dims().zero() {
			s.push(realValue(magnitude * unit.scale()))
		} else {
			s.push(quantityValue(magnitude, unit))
		}
		return nil
	}
}

// asMultiplicative views any value as magnitude × unit for '*' and '/'.
func asMultiplicative(v Value) (float64, Unit) {
	switch v.kind {
	case KindUnit:
		return 1, v.unit
	case KindQuantity:
		return v.real, v.unit
	default:
		return v.asFloat(), Unit{}
	}
}

func pushNumericMulDiv(s *Stack, a, b Value, op string) error {
	if a.kind == KindInteger && b.kind == KindInteger {
		if op == "*" {
			s.push(intValue(a.whole*b.whole, a.radix))
			return nil
		}
		if b.whole == 0 {
			return calcErrorf(DivisionByZero, "Division by zero")
		}
		if a.whole%b.whole == 0 {
			s.push(intValue(a.whole/b.whole, a.radix))
		} else {
			s.push(realValue(float64(a.whole) / float64(b.whole)))
		}
		return nil
	}

	if op == "*" {
		s.push(realValue(a.asFloat() * b.asFloat()))
		return nil
	}
	if b.asFloat() == 0 {
		return calcErrorf(DivisionByZero, "Division by zero")
	}
	s.push(realValue(a.asFloat() / b.asFloat()))
	return nil
}

// powOp implements '**' on dimensionless numbers. An integer raised to
// a non-negative integer power stays an integer, wrapping in 64 bits.
func powOp(s *Stack, args []Value) error {
	a, b := args[0], args[1]
	if a.kind == KindUnit || b.kind == KindUnit {
		return errType("Cannot apply '**' to a bare unit")
	}
	if a.kind == KindQuantity || b.kind == KindQuantity {
		return calcErrorf(DimensionalityError, "Dimensionless values required for '**'")
	}

	if a.kind == KindInteger && b.kind == KindInteger && b.whole >= 0 {
		s.push(intValue(intPow(a.whole, b.whole), a.radix))
		return nil
	}

	base, exponent := a.asFloat(), b.asFloat()
	if base < 0 && exponent != math.Trunc(exponent) {
		return calcErrorf(DomainError, "Cannot raise a negative number to a non-integer power")
	}
	if base == 0 && exponent < 0 {
		return calcErrorf(DivisionByZero, "Division by zero")
	}
	s.push(realValue(math.Pow(base, exponent)))
	return nil
}

// intPow is wrapping 64-bit exponentiation by squaring.
func intPow(base, exponent int64) int64 {
	result := int64(1)
	for exponent > 0 {
		if exponent&1 == 1 {
			result *= base
		}
		base *= base
		exponent >>= 1
	}
	return result
}

func expOp(s *Stack, args []Value) error {
	v := args[0]
	if v.kind == KindUnit {
		return errType("Cannot apply 'exp' to a bare unit")
	}
	if v.kind == KindQuantity {
		return calcErrorf(DimensionalityError, "Dimensionless value required for 'exp'")
	}
	s.push(realValue(math.Exp(v.asFloat())))
	return nil
}

// rootOp builds sqrt and cbrt: plain numbers take the real root, and a
// quantity is accepted when every unit exponent divides by the index.
func rootOp(op string, index int) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		result, err := nthRoot(op, args[0], index)
		if err != nil {
			return err
		}
		s.push(result)
		return nil
	}
}

// nthRootOp is '/**': ( x n — x^(1/n) ) with n a positive integer.
func nthRootOp(s *Stack, args []Value) error {
	x, n := args[0], args[1]
	if n.kind != KindInteger {
		return errType("Integer root index required for '/**', got %s", n.describe())
	}
	if n.whole < 1 {
		return calcErrorf(DomainError, "Root index must be positive for '/**'")
	}
	result, err := nthRoot("/**", x, int(n.whole))
	if err != nil {
		return err
	}
	s.push(result)
	return nil
}

func nthRoot(op string, v Value, index int) (Value, error) {
	rootMagnitude := func(f float64) (float64, error) {
		if f < 0 {
			if index%2 == 0 {
				return 0, calcErrorf(DomainError, "Cannot take an even root of a negative number")
			}
			return -math.Pow(-f, 1/float64(index)), nil
		}
		return math.Pow(f, 1/float64(index)), nil
	}

	switch v.kind {
	case KindUnit:
		return Value{}, errType("Cannot apply '%s' to a bare unit", op)
	case KindQuantity:
		unit, ok := unitRoot(v.unit, index)
		if !ok {
			return Value{}, calcErrorf(DimensionalityError,
				"Unit '%s' has no exact %s", v.unit, rootName(index))
		}
		magnitude, err := rootMagnitude(v.real)
		if err != nil {
			return Value{}, err
		}
		if unit.empty() {
			return realValue(magnitude), nil
		}
		return quantityValue(magnitude, unit), nil
	default:
		magnitude, err := rootMagnitude(v.asFloat())
		if err != nil {
			return Value{}, err
		}
		return realValue(magnitude), nil
	}
}

func rootName(index int) string {
	switch index {
	case 2:
		return "square root"
	case 3:
		return "cube root"
	default:
		return "root"
	}
}

func chsOp(s *Stack, args []Value) error {
	v := args[0]
	switch v.kind {
	case KindReal:
		s.push(realValue(-v.real))
	case KindInteger:
		s.push(intValue(-v.whole, v.radix))
	case KindQuantity:
		s.push(quantityValue(-v.real, v.unit))
	default:
		return errType("Cannot apply 'chs' to a bare unit")
	}
	return nil
}

// invOp is the reciprocal; a bare unit or quantity inverts its unit too.
func invOp(s *Stack, args []Value) error {
	v := args[0]
	switch v.kind {
	case KindUnit:
		unit, err := unitDiv(Unit{}, v.unit)
		if err != nil {
			return err
		}
		s.push(unitValue(unit))
	case KindQuantity:
		if v.real == 0 {
			return calcErrorf(DivisionByZero, "Division by zero")
		}
		unit, err := unitDiv(Unit{}, v.unit)
		if err != nil {
			return err
		}
		s.push(quantityValue(1/v.real, unit))
	default:
		if v.asFloat() == 0 {
			return calcErrorf(DivisionByZero, "Division by zero")
		}
		s.push(realValue(1 / v.asFloat()))
	}
	return nil
}

func logOp(op string, fn func(float64) float64) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		v := args[0]
		if v.kind == KindUnit {
			return errType("Cannot apply '%s' to a bare unit", op)
		}
		if v.kind == KindQuantity {
			return calcErrorf(DimensionalityError, "Dimensionless value required for '%s'", op)
		}
		if v.asFloat() <= 0 {
			return calcErrorf(DomainError, "Cannot take '%s' of a non-positive number", op)
		}
		s.push(realValue(fn(v.asFloat())))
		return nil
	}
}

var angleDims = Dims{Angle: 1}

// trigOp builds sin/cos/tan: a bare number is radians, an angle
// quantity is converted to radians first.
func trigOp(op string, fn func(float64) float64) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		v := args[0]
		var radians float64
		switch v.kind {
		case KindReal, KindInteger:
			radians = v.asFloat()
		case KindQuantity:
			if v.unit.dims() != angleDims {
				return calcErrorf(DimensionalityError,
					"Angle required for '%s', got '%s'", op, v.unit)
			}
			radians = v.real * v.unit.scale()
		default:
			return errType("Cannot apply '%s' to a bare unit", op)
		}
		s.push(realValue(fn(radians)))
		return nil
	}
}

// arcOp builds asin/acos/atan; the result carries rad.
func arcOp(op string, fn func(float64) float64, bounded bool) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		v := args[0]
		if v.kind == KindUnit {
			return errType("Cannot apply '%s' to a bare unit", op)
		}
		if v.kind == KindQuantity {
			return calcErrorf(DimensionalityError, "Dimensionless value required for '%s'", op)
		}
		x := v.asFloat()
		if bounded && (x < -1 || x > 1) {
			return calcErrorf(DomainError, "Argument of '%s' must be in [-1, 1]", op)
		}
		s.push(quantityValue(fn(x), UNITS["rad"]))
		return nil
	}
}

func integerArg(op string, v Value) (int64, error) {
	if v.kind != KindInteger {
		return 0, errType("Integer values required for '%s', got %s", op, v.describe())
	}
	return v.whole, nil
}

func bitwiseOp(op string) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		a, err := integerArg(op, args[0])
		if err != nil {
			return err
		}
		b, err := integerArg(op, args[1])
		if err != nil {
			return err
		}

		var result int64
		switch op {
		case "&":
			result = a & b
		case "|":
			result = a | b
		case "^":
			result = a ^ b
		}
		s.push(intValue(result, args[0].radix))
		return nil
	}
}

func bitwiseNotOp(s *Stack, args []Value) error {
	a, err := integerArg("~", args[0])
	if err != nil {
		return err
	}
	s.push(intValue(^a, args[0].radix))
	return nil
}

func shiftOp(op string) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		a, err := integerArg(op, args[0])
		if err != nil {
			return err
		}
		count, err := integerArg(op, args[1])
		if err != nil {
			return err
		}
		if count < 0 || count > 63 {
			return calcErrorf(RangeError, "Shift count for '%s' must be in [0, 63]", op)
		}

		var result int64
		if op == "<<" {
			result = a << uint(count)
		} else {
			result = a >> uint(count)
		}
		s.push(intValue(result, args[0].radix))
		return nil
	}
}

// bitOp builds bset/bclr/bget with a bit index in [0, 63].
func bitOp(op string) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		a, err := integerArg(op, args[0])
		if err != nil {
			return err
		}
		index, err := integerArg(op, args[1])
		if err != nil {
			return err
		}
		if index < 0 || index > 63 {
			return calcErrorf(RangeError, "Bit index for '%s' must be in [0, 63]", op)
		}

		var result int64
		switch op {
		case "bset":
			result = a | 1<<uint(index)
		case "bclr":
			result = a &^ (1 << uint(index))
		case "bget":
			result = (a >> uint(index)) & 1
		}
		s.push(intValue(result, args[0].radix))
		return nil
	}
}

// radixOp changes an integer's display radix; the value is untouched.
func radixOp(op string, radix Radix) func(s *Stack, args []Value) error {
	return func(s *Stack, args []Value) error {
		v := args[0]
		if v.kind != KindInteger {
			return errType("Integer value required for '%s', got %s", op, v.describe())
		}
		s.push(intValue(v.whole, radix))
		return nil
	}
}

// intoOp converts a quantity to a target unit: ( [n u1] u2 — [n' u2] ).
func intoOp(s *Stack, args []Value) error {
	quantity, target := args[0], args[1]
	if target.kind != KindUnit {
		return errType("Unit required on top of the stack for 'into', got %s", target.describe())
	}
	if quantity.kind != KindQuantity {
		return errType("Quantity required for 'into', got %s", quantity.describe())
	}

	converted, err := convert(quantity.real, quantity.unit, target.unit)
	if err != nil {
		return err
	}
	s.push(quantityValue(converted, target.unit))
	return nil
}

// dropOp strips the unit from a quantity: ( [n u] — n ).
func dropOp(s *Stack, args []Value) error {
	v := args[0]
	if v.kind != KindQuantity {
		return errType("Quantity required for 'drop', got %s", v.describe())
	}
	s.push(realValue(v.real))
	return nil
}

func dupOp(s *Stack, args []Value) error {
	s.push(args[0])
	s.push(args[0])
	return nil
}

func swapOp(s *Stack, args []Value) error {
	s.push(args[1])
	s.push(args[0])
	return nil
}

func clearOp(s *Stack, args []Value) error {
	s.clear()
	return nil
}

// keepOp truncates the stack to its top n values; n itself was already
// consumed by the dispatcher.
func keepOp(s *Stack, args []Value) error {
	n := args[0]
	if n.kind != KindInteger || n.whole < 0 {
		return errType("Non-negative integer required for 'keep', got %s", n)
	}
	if n.whole > int64(s.depth()) {
		return calcErrorf(RangeError,
			"Cannot keep %d values, only %d on the stack", n.whole, s.depth())
	}
	s.keep(int(n.whole))
	return nil
}

func depthOp(s *Stack, args []Value) error {
	s.push(intValue(int64(s.depth()), Dec))
	return nil
}

func exitOp(s *Stack, args []Value) error {
	return errExit
}
