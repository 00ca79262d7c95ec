// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Literal patterns. Decimal numbers allow ',' grouping between digits;
// the other bases allow '_'. A leading '$' is an alternate hex prefix.
var (
	binPattern    = regexp.MustCompile(`^[+-]?0[bB][01][01_]*$`)
	hexPattern    = regexp.MustCompile(`^[+-]?(0[xX]|\$)[0-9a-fA-F][0-9a-fA-F_]*$`)
	octPattern    = regexp.MustCompile(`^[+-]?0([oO][0-7][0-7_]*|[0-7_]+)$`)
	decIntPattern = regexp.MustCompile(`^[+-]?\d[\d,]*$`)
	realPattern   = regexp.MustCompile(`^[+-]?(\d[\d,]*(\.(\d[\d,]*)?)?|\.\d[\d,]*)([eE][+-]?\d+)?$`)
)

// parseLiteral classifies a token per the numeric grammar. ok is false
// when the token is not numeric at all; a token that is numeric but
// unrepresentable (64-bit overflow, infinite real) yields an error.
func parseLiteral(token string) (Value, bool, error) {
	switch {
	case binPattern.MatchString(token):
		return parseInteger(token, Bin)
	case hexPattern.MatchString(token):
		return parseInteger(token, Hex)
	case octPattern.MatchString(token):
		return parseInteger(token, Oct)
	case decIntPattern.MatchString(token):
		return parseInteger(token, Dec)
	case realPattern.MatchString(token) && strings.ContainsAny(token, ".eE"):
		return parseReal(token)
	}
	return Value{}, false, nil
}

// digitsOf splits off the sign and radix prefix and strips the digit
// group separators.
func digitsOf(token string, radix Radix) (sign, digits string) {
	if token[0] == '+' || token[0] == '-' {
		sign, token = token[:1], token[1:]
	}

	switch radix {
	case Bin, Hex, Oct:
		if strings.HasPrefix(token, "$") {
			token = token[1:]
		} else if len(token) > 1 && strings.ContainsRune("bBoOxX", rune(token[1])) {
			token = token[2:]
		} else {
			token = token[1:] // bare leading 0 octal keeps its remaining digits
		}
		token = strings.ReplaceAll(token, "_", "")
	default:
		token = strings.ReplaceAll(token, ",", "")
	}

	return sign, token
}

func parseInteger(token string, radix Radix) (Value, bool, error) {
	sign, digits := digitsOf(token, radix)

	// A lone 0 is the integer zero, not an octal literal.
	if radix == Oct && digits == "" {
		digits, radix = "0", Dec
	}
	if radix == Dec && len(digits) > 1 && digits[0] == '0' {
		return Value{}, true, calcErrorf(NumberFormatError, "Invalid octal number '%s'", token)
	}

	i, err := strconv.ParseInt(sign+digits, int(radix), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, true, calcErrorf(NumberFormatError, "Integer '%s' does not fit in 64 bits", token)
		}
		return Value{}, true, calcErrorf(NumberFormatError, "Invalid number '%s'", token)
	}

	return intValue(i, radix), true, nil
}

func parseReal(token string) (Value, bool, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, true, calcErrorf(NumberFormatError, "Invalid number '%s'", token)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, true, calcErrorf(NumberFormatError, "Number '%s' is not a finite real", token)
	}
	return realValue(f), true, nil
}

// formatReal stringifies with up to options.precision significant
// digits, grouped when -g is set.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', options.precision, 64)
	if options.group && !strings.ContainsAny(s, "eE") {
		return addCommaGrouping(s, ",")
	}
	return s
}

// formatInt renders an integer in its display radix, sign before the
// prefix: -0x2a, 0b101, 0o17, 255.
func formatInt(i int64, radix Radix) string {
	// negate via uint64 so MinInt64 keeps its magnitude
	magnitude := uint64(i)
	sign := ""
	if i < 0 {
		magnitude = -magnitude
		sign = "-"
	}

	var prefix string
	switch radix {
	case Bin:
		prefix = "0b"
	case Oct:
		prefix = "0o"
	case Hex:
		prefix = "0x"
	}

	result := sign + prefix + strconv.FormatUint(magnitude, int(radix))
	if options.group {
		if radix == Dec {
			return addCommaGrouping(result, ",")
		}
		return addUnderscoreGrouping(result)
	}
	return result
}

// addCommaGrouping adds comma grouping to a decimal number string
func addCommaGrouping(s, separator string) string {
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	integerPart := parts[0]

	// group every 3 digits from the right
	if len(integerPart) > 3 {
		var result strings.Builder
		for i, digit := range integerPart {
			if i > 0 && (len(integerPart)-i)%3 == 0 {
				result.WriteString(separator)
			}
			result.WriteRune(digit)
		}
		integerPart = result.String()
	}

	if len(parts) > 1 {
		integerPart += "." + parts[1]
	}

	if negative {
		return "-" + integerPart
	}
	return integerPart
}

// addUnderscoreGrouping adds underscore grouping to hex/binary/octal numbers (every 4 digits from right)
func addUnderscoreGrouping(s string) string {
	var prefix, sign, digits string

	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0o"):
		prefix = s[:2]
		digits = s[2:]
	default:
		digits = s
	}

	if len(digits) > 4 {
		var result strings.Builder
		for i, digit := range digits {
			if i > 0 && (len(digits)-i)%4 == 0 {
				result.WriteString("_")
			}
			result.WriteRune(digit)
		}
		digits = result.String()
	}

	return sign + prefix + digits
}
