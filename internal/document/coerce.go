package document

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var floatLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// Coerce turns raw cell input into a typed value. It never fails: a digit-only
// string becomes an Integer of any size (so "007" is 7), a signed or
// fractional decimal becomes a Float, and anything else is kept verbatim as a
// String.
func Coerce(raw string) Value {
	if isDigits(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Integer(n)
		}
		if n, ok := new(big.Int).SetString(raw, 10); ok {
			return BigInteger(n)
		}
	}
	trimmed := strings.TrimSpace(raw)
	if floatLiteral.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) {
			return Float(f)
		}
	}
	return String(raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
