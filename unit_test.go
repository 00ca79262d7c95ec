// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitRendering(t *testing.T) {
	speed, err := unitDiv(UNITS["mi"], UNITS["hr"])
	require.NoError(t, err)
	require.Equal(t, "mi·hr⁻¹", speed.String())

	accel, err := unitDiv(speed, UNITS["hr"])
	require.NoError(t, err)
	require.Equal(t, "mi·hr⁻²", accel.String())

	area, err := unitMul(UNITS["m"], UNITS["m"])
	require.NoError(t, err)
	require.Equal(t, "m²", area.String())

	require.Equal(t, "J", UNITS["J"].String())
}

func TestUnitRenderingASCII(t *testing.T) {
	options.superscript = false
	defer func() { options.superscript = true }()

	speed, err := unitDiv(UNITS["m"], UNITS["s"])
	require.NoError(t, err)
	require.Equal(t, "m·s^-1", speed.String())
}

func TestUnitCanonicalisation(t *testing.T) {
	// build mi·hr⁻¹ two different ways; they must be equal and render
	// identically
	a, err := unitDiv(UNITS["mi"], UNITS["hr"])
	require.NoError(t, err)

	perHour, err := unitDiv(Unit{}, UNITS["hr"])
	require.NoError(t, err)
	b, err := unitMul(perHour, UNITS["mi"])
	require.NoError(t, err)

	require.True(t, a.equal(b))
	require.Equal(t, a.String(), b.String())

	// cancelling factors leaves the empty unit
	cancelled, err := unitDiv(UNITS["mi"], UNITS["mi"])
	require.NoError(t, err)
	require.True(t, cancelled.empty())
}

func TestUnitDims(t *testing.T) {
	speed, err := unitDiv(UNITS["m"], UNITS["s"])
	require.NoError(t, err)
	require.Equal(t, Dims{Length: 1, Time: -1}, speed.dims())

	// dimensional closure under multiplication and division
	product, err := unitMul(speed, UNITS["s"])
	require.NoError(t, err)
	require.Equal(t, UNITS["m"].dims(), product.dims())

	require.Equal(t, Dims{Mass: 1, Length: 2, Time: -2}, UNITS["J"].dims())
	require.True(t, UNITS["Hz"].commensurable(mustInvert(t, UNITS["s"])))
}

func mustInvert(t *testing.T, u Unit) Unit {
	t.Helper()
	inverted, err := unitDiv(Unit{}, u)
	require.NoError(t, err)
	return inverted
}

func TestLinearConversion(t *testing.T) {
	tests := []struct {
		x        float64
		from, to string
		expected float64
	}{
		{2, "in", "cm", 5.08},
		{1, "mi", "m", 1609.344},
		{1.5, "hr", "min", 90},
		{1, "kg", "lb", 2.2046226218487757},
		{90, "deg", "rad", 1.5707963267948966},
		{100, "degF", "degC", 55.55555555555556},
	}

	for _, test := range tests {
		x, err := convert(test.x, UNITS[test.from], UNITS[test.to])
		require.NoError(t, err, "%s -> %s", test.from, test.to)
		require.InEpsilon(t, test.expected, x, 1e-12, "%g %s -> %s", test.x, test.from, test.to)
	}
}

func TestAbsoluteTemperatureConversion(t *testing.T) {
	tests := []struct {
		x        float64
		from, to string
		expected float64
	}{
		{78, "tempF", "tempC", 25.555555555555555},
		{25.555555555555555, "tempC", "tempF", 78},
		{0, "tempC", "K", 273.15},
		{273.15, "K", "tempC", 0},
		{32, "tempF", "K", 273.15},
		{0, "K", "R", 0},
		{491.67, "R", "tempC", 0},
	}

	for _, test := range tests {
		x, err := convert(test.x, UNITS[test.from], UNITS[test.to])
		require.NoError(t, err, "%s -> %s", test.from, test.to)
		require.InDelta(t, test.expected, x, 1e-9, "%g %s -> %s", test.x, test.from, test.to)
	}
}

func TestTemperatureKindMismatch(t *testing.T) {
	for _, pair := range [][2]string{
		{"tempC", "degC"},
		{"degF", "tempF"},
		{"tempF", "degC"},
	} {
		_, err := convert(1, UNITS[pair[0]], UNITS[pair[1]])
		kind, ok := kindOf(err)
		require.True(t, ok, "%s -> %s", pair[0], pair[1])
		require.Equal(t, TemperatureKindMismatch, kind, "%s -> %s", pair[0], pair[1])
	}

	// K and R work with both families
	for _, pair := range [][2]string{
		{"K", "degC"}, {"K", "tempC"}, {"R", "degF"}, {"R", "tempF"},
	} {
		_, err := convert(1, UNITS[pair[0]], UNITS[pair[1]])
		require.NoError(t, err, "%s -> %s", pair[0], pair[1])
	}
}

func TestIncommensurable(t *testing.T) {
	_, err := convert(1, UNITS["m"], UNITS["kg"])
	kind, ok := kindOf(err)
	require.True(t, ok)
	require.Equal(t, IncommensurableUnits, kind)
}

func TestCompoundAbsoluteTemperatureIllegal(t *testing.T) {
	_, err := unitDiv(UNITS["tempC"], UNITS["s"])
	kind, ok := kindOf(err)
	require.True(t, ok)
	require.Equal(t, NonLinearInCompound, kind)

	_, err = unitMul(UNITS["tempF"], UNITS["tempF"])
	kind, ok = kindOf(err)
	require.True(t, ok)
	require.Equal(t, NonLinearInCompound, kind)

	// K and R are absolute temperatures too, offset or not
	_, err = unitDiv(UNITS["K"], UNITS["s"])
	kind, ok = kindOf(err)
	require.True(t, ok)
	require.Equal(t, NonLinearInCompound, kind)

	_, err = unitMul(UNITS["R"], UNITS["m"])
	kind, ok = kindOf(err)
	require.True(t, ok)
	require.Equal(t, NonLinearInCompound, kind)

	_, err = unitPow(UNITS["K"], 2)
	kind, ok = kindOf(err)
	require.True(t, ok)
	require.Equal(t, NonLinearInCompound, kind)

	// interval temperatures compound freely
	cooling, err := unitDiv(UNITS["degC"], UNITS["s"])
	require.NoError(t, err)
	require.Equal(t, "degC·s⁻¹", cooling.String())
}

func TestConversionRoundTrip(t *testing.T) {
	bases := map[string]string{
		"in": "m", "mi": "m", "cm": "m",
		"lb": "kg", "oz": "kg",
		"hr": "s", "min": "s",
		"deg": "rad",
		"gal": "L",
		"EUR": "USD", "JPY": "USD",
	}
	values := []float64{1, 0.001, 3.25, 1e6, -40}

	for from, base := range bases {
		for _, x := range values {
			there, err := convert(x, UNITS[from], UNITS[base])
			require.NoError(t, err)
			back, err := convert(there, UNITS[base], UNITS[from])
			require.NoError(t, err)
			if x == 0 {
				require.InDelta(t, x, back, 1e-12)
			} else {
				require.InEpsilon(t, x, back, 1e-12, "%g %s", x, from)
			}
		}
	}

	// affine round trip
	for _, x := range []float64{-40, 0, 37, 100} {
		k, err := convert(x, UNITS["tempF"], UNITS["K"])
		require.NoError(t, err)
		back, err := convert(k, UNITS["K"], UNITS["tempF"])
		require.NoError(t, err)
		require.InDelta(t, x, back, 1e-9)
	}
}

func TestUnitRootAndPow(t *testing.T) {
	area, err := unitPow(UNITS["m"], 2)
	require.NoError(t, err)

	side, ok := unitRoot(area, 2)
	require.True(t, ok)
	require.True(t, side.equal(UNITS["m"]))

	_, ok = unitRoot(UNITS["m"], 2)
	require.False(t, ok)
}

func TestIntervalTwin(t *testing.T) {
	require.Equal(t, "degC", UNITS["tempC"].intervalTwin().String())
	require.Equal(t, "degF", UNITS["tempF"].intervalTwin().String())
	require.Equal(t, "K", UNITS["K"].intervalTwin().String())
	require.Equal(t, "R", UNITS["R"].intervalTwin().String())
}
