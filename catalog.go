// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import "math"

// UNITS and CONSTANTS are populated once by initCatalogs and read-only
// afterwards. Names are case-sensitive and never overlap the command
// table.
var (
	UNITS     map[string]Unit
	CONSTANTS map[string]Value
)

func baseUnits() []BaseUnit {
	return []BaseUnit{
		// length
		{name: "m", dims: Dims{Length: 1}, scale: 1},
		{name: "mm", dims: Dims{Length: 1}, scale: 0.001},
		{name: "cm", dims: Dims{Length: 1}, scale: 0.01},
		{name: "km", dims: Dims{Length: 1}, scale: 1000},
		{name: "in", dims: Dims{Length: 1}, scale: 0.0254},
		{name: "ft", dims: Dims{Length: 1}, scale: 0.3048},
		{name: "yd", dims: Dims{Length: 1}, scale: 0.9144},
		{name: "mi", dims: Dims{Length: 1}, scale: 1609.344},

		// mass
		{name: "kg", dims: Dims{Mass: 1}, scale: 1},
		{name: "g", dims: Dims{Mass: 1}, scale: 0.001},
		{name: "oz", dims: Dims{Mass: 1}, scale: 0.028349523125},
		{name: "lb", dims: Dims{Mass: 1}, scale: 0.45359237},

		// time
		{name: "s", dims: Dims{Time: 1}, scale: 1},
		{name: "min", dims: Dims{Time: 1}, scale: 60},
		{name: "hr", dims: Dims{Time: 1}, scale: 3600},
		{name: "day", dims: Dims{Time: 1}, scale: 86400},

		// temperature: K and R read as points or intervals but, like
		// tempC/tempF, never appear inside a compound; degC/degF are
		// plain intervals
		{name: "K", dims: Dims{Temperature: 1}, scale: 1, temp: tempEither},
		{name: "R", dims: Dims{Temperature: 1}, scale: 5.0 / 9.0, temp: tempEither},
		{name: "tempC", dims: Dims{Temperature: 1}, scale: 1, offset: 273.15, temp: tempAbsolute, interval: "degC"},
		{name: "tempF", dims: Dims{Temperature: 1}, scale: 5.0 / 9.0, offset: 273.15 - 32.0*5.0/9.0, temp: tempAbsolute, interval: "degF"},
		{name: "degC", dims: Dims{Temperature: 1}, scale: 1},
		{name: "degF", dims: Dims{Temperature: 1}, scale: 5.0 / 9.0},
		{name: "degK", dims: Dims{Temperature: 1}, scale: 1},
		{name: "degR", dims: Dims{Temperature: 1}, scale: 5.0 / 9.0},

		// angle
		{name: "rad", dims: Dims{Angle: 1}, scale: 1},
		{name: "deg", dims: Dims{Angle: 1}, scale: math.Pi / 180},

		// information
		{name: "bit", dims: Dims{Information: 1}, scale: 1},
		{name: "B", dims: Dims{Information: 1}, scale: 8},

		// derived units kept as single named factors so 'J' renders as
		// J, not as its expansion
		{name: "Hz", dims: Dims{Time: -1}, scale: 1},
		{name: "N", dims: Dims{Mass: 1, Length: 1, Time: -2}, scale: 1},
		{name: "J", dims: Dims{Mass: 1, Length: 2, Time: -2}, scale: 1},
		{name: "W", dims: Dims{Mass: 1, Length: 2, Time: -3}, scale: 1},

		// volume
		{name: "L", dims: Dims{Length: 3}, scale: 0.001},
		{name: "mL", dims: Dims{Length: 3}, scale: 0.000001},
		{name: "gal", dims: Dims{Length: 3}, scale: 0.003785411784},
	}
}

// initCatalogs builds the unit and constant tables. Currency rates come
// from the sqlite cache when present, otherwise from the seed table, so
// startup never needs the network.
func initCatalogs() {
	initCatalogsWith(loadRates())
}

func initCatalogsWith(usdPerUnit map[string]float64) {
	UNITS = make(map[string]Unit)
	for _, base := range baseUnits() {
		UNITS[base.name] = unitOf(base)
	}
	for code, rate := range usdPerUnit {
		UNITS[code] = unitOf(BaseUnit{name: code, dims: Dims{Currency: 1}, scale: rate})
	}
	UNITS["USD"] = unitOf(BaseUnit{name: "USD", dims: Dims{Currency: 1}, scale: 1})

	speed, _ := unitDiv(UNITS["m"], UNITS["s"])
	action, _ := unitMul(UNITS["J"], UNITS["s"])
	perCycle, _ := unitDiv(UNITS["J"], UNITS["Hz"])

	CONSTANTS = map[string]Value{
		"pi":   realValue(math.Pi),
		"e":    realValue(math.E),
		"c":    quantityValue(299792458, speed),          // speed of light
		"h":    quantityValue(6.62607015e-34, perCycle),  // Planck constant
		"hbar": quantityValue(1.054571817e-34, action),   // reduced Planck constant
		"G":    quantityValue(9.80665, accelerationUnit()), // standard gravity
		"NA":   realValue(6.02214076e23),                 // Avogadro number
	}
}

func accelerationUnit() Unit {
	perSecond, _ := unitDiv(UNITS["m"], UNITS["s"])
	accel, _ := unitDiv(perSecond, UNITS["s"])
	return accel
}
