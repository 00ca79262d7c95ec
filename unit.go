// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const DOT = "·"

// TempStyle distinguishes the two ways a temperature unit can be read.
// An absolute unit (tempC, tempF) names a point on the scale and
// converts with an affine offset; K and R are usable either as points
// or as intervals since their offset is zero; everything else,
// including the interval units degC/degF, is plain linear.
type TempStyle int

const (
	tempNone TempStyle = iota
	tempAbsolute
	tempEither
)

// UnitKind is the user-visible classification from the conversion
// rules: a unit is either Linear or an AbsoluteTemperature.
type UnitKind int

const (
	Linear UnitKind = iota
	AbsoluteTemperature
)

// BaseUnit is a named unit with a fixed dimension signature, a scale
// to the SI base, and (for absolute temperatures only) an affine
// offset expressed in Kelvin.
type BaseUnit struct {
	name     string
	dims     Dims
	scale    float64
	offset   float64
	temp     TempStyle
	interval string // name of the interval twin produced by subtracting absolute temperatures
}

// Factor is one term of a compound unit.
type Factor struct {
	base  BaseUnit
	power int
}

// Unit is a canonicalised product of factors. Equal units always have
// identical factor lists, so structural comparison is unit equality.
type Unit struct {
	factors []Factor
}

func unitOf(base BaseUnit) Unit {
	return Unit{factors: []Factor{{base: base, power: 1}}}
}

// canonicalise merges factors with the same base name, removes zero
// powers, and sorts positive powers before negative, alphabetically
// within each group.
func canonicalise(factors []Factor) Unit {
	merged := map[string]Factor{}
	for _, f := range factors {
		if existing, ok := merged[f.base.name]; ok {
			existing.power += f.power
			merged[f.base.name] = existing
		} else {
			merged[f.base.name] = f
		}
	}

	result := make([]Factor, 0, len(merged))
	for _, f := range merged {
		if f.power != 0 {
			result = append(result, f)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if (a.power > 0) != (b.power > 0) {
			return a.power > 0
		}
		return a.base.name < b.base.name
	})

	return Unit{factors: result}
}

func (u Unit) empty() bool {
	return len(u.factors) == 0
}

func (u Unit) dims() Dims {
	var total Dims
	for _, f := range u.factors {
		total = total.add(f.base.dims.scaled(f.power))
	}
	return total
}

// scale is the multiplier taking a magnitude in this unit to the SI base.
func (u Unit) scale() float64 {
	scale := 1.0
	for _, f := range u.factors {
		scale *= math.Pow(f.base.scale, float64(f.power))
	}
	return scale
}

// tempStyle classifies the unit for the conversion-kind check. Only a
// single +1-power factor can be a temperature point; any compound is
// linear by construction.
func (u Unit) tempStyle() TempStyle {
	if len(u.factors) == 1 && u.factors[0].power == 1 {
		return u.factors[0].base.temp
	}
	return tempNone
}

func (u Unit) kind() UnitKind {
	if u.tempStyle() == tempAbsolute {
		return AbsoluteTemperature
	}
	return Linear
}

func (u Unit) offset() float64 {
	if len(u.factors) == 1 && u.factors[0].power == 1 {
		return u.factors[0].base.offset
	}
	return 0
}

// isInterval reports whether the unit is a pure temperature-difference
// unit (degC, degF and friends): one linear factor spanning exactly
// the Temperature dimension.
func (u Unit) isInterval() bool {
	return u.tempStyle() == tempNone && u.dims() == Dims{Temperature: 1}
}

// hasAbsolute reports whether any factor is an absolute-temperature
// unit. K and R count: tempEither only widens which conversions they
// take part in, it does not make them legal inside a compound.
func (u Unit) hasAbsolute() bool {
	for _, f := range u.factors {
		if f.base.temp != tempNone {
			return true
		}
	}
	return false
}

func (u Unit) equal(other Unit) bool {
	if len(u.factors) != len(other.factors) {
		return false
	}
	for i, f := range u.factors {
		if f.base.name != other.factors[i].base.name || f.power != other.factors[i].power {
			return false
		}
	}
	return true
}

func (u Unit) commensurable(other Unit) bool {
	return u.dims() == other.dims()
}

// intervalTwin is the unit carried by the difference of two absolute
// temperatures: tempC-tempC is a span in degC. K and R are their own
// twins since their offset is zero.
func (u Unit) intervalTwin() Unit {
	if len(u.factors) == 1 && u.factors[0].power == 1 && u.factors[0].base.interval != "" {
		if twin, ok := UNITS[u.factors[0].base.interval]; ok {
			return twin
		}
	}
	return u
}

// unitMul multiplies two units; unitDiv divides. Absolute temperatures
// cannot take part in compounds, not even with themselves.
func unitMul(a, b Unit) (Unit, error) {
	if a.hasAbsolute() || b.hasAbsolute() {
		return Unit{}, calcErrorf(NonLinearInCompound,
			"Cannot combine absolute temperature '%s' into a compound unit", pickAbsolute(a, b))
	}
	return canonicalise(append(append([]Factor{}, a.factors...), b.factors...)), nil
}

func unitDiv(a, b Unit) (Unit, error) {
	inverted := make([]Factor, 0, len(b.factors))
	for _, f := range b.factors {
		f.power = -f.power
		inverted = append(inverted, f)
	}
	return unitMul(a, Unit{factors: inverted})
}

// unitPow raises a unit to an integer power.
func unitPow(u Unit, n int) (Unit, error) {
	if u.hasAbsolute() && n != 1 {
		return Unit{}, calcErrorf(NonLinearInCompound,
			"Cannot raise absolute temperature '%s' to a power", u)
	}
	scaled := make([]Factor, 0, len(u.factors))
	for _, f := range u.factors {
		f.power *= n
		scaled = append(scaled, f)
	}
	return canonicalise(scaled), nil
}

// unitRoot takes the nth root of a unit; every factor power must be
// divisible by n.
func unitRoot(u Unit, n int) (Unit, bool) {
	rooted := make([]Factor, 0, len(u.factors))
	for _, f := range u.factors {
		if f.power%n != 0 {
			return Unit{}, false
		}
		f.power /= n
		rooted = append(rooted, f)
	}
	return canonicalise(rooted), true
}

func pickAbsolute(a, b Unit) Unit {
	if a.hasAbsolute() {
		return a
	}
	return b
}

// convert re-expresses a magnitude in a commensurable unit. Linear
// units convert by scale alone; absolute temperatures go through
// Kelvin with their affine offsets. Mixing a point temperature with an
// interval one is an error in either direction.
func convert(x float64, from, to Unit) (float64, error) {
	if !from.commensurable(to) {
		return 0, calcErrorf(IncommensurableUnits,
			"Cannot convert '%s' (%s) to '%s' (%s)", from, from.dims(), to, to.dims())
	}

	fromStyle, toStyle := from.tempStyle(), to.tempStyle()
	if fromStyle == tempAbsolute && to.isInterval() || from.isInterval() && toStyle == tempAbsolute {
		return 0, calcErrorf(TemperatureKindMismatch,
			"Cannot convert between temperature '%s' and temperature interval '%s'", from, to)
	}

	if fromStyle == tempAbsolute || toStyle == tempAbsolute {
		return (x*from.scale() + from.offset() - to.offset()) / to.scale(), nil
	}
	return x * from.scale() / to.scale(), nil
}

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

// superscript renders an exponent, e.g. -2 as ⁻², or as ^-2 when
// superscript output is disabled.
func superscript(power int) string {
	digits := strconv.Itoa(power)
	if !options.superscript {
		return "^" + digits
	}

	var sb strings.Builder
	for _, r := range digits {
		sb.WriteRune(superscriptDigits[r])
	}
	return sb.String()
}

func (u Unit) String() string {
	parts := make([]string, 0, len(u.factors))
	for _, f := range u.factors {
		if f.power == 1 {
			parts = append(parts, f.base.name)
		} else {
			parts = append(parts, f.base.name+superscript(f.power))
		}
	}
	return strings.Join(parts, DOT)
}
