package document

import (
	"math/big"
	"strconv"
	"strings"
)

// Kind tags the scalar held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is a flat JSON scalar. The kind is fixed when the value is built and is
// never re-inferred from the payload afterwards.
type Value struct {
	kind Kind
	i    int64
	big  *big.Int // set only for integers outside int64
	f    float64
	s    string
	b    bool
}

func Integer(n int64) Value  { return Value{kind: KindInteger, i: n} }

// BigInteger keeps an integer of any size exactly. Values that fit in int64
// are stored as a plain Integer.
func BigInteger(n *big.Int) Value {
	if n.IsInt64() {
		return Integer(n.Int64())
	}
	return Value{kind: KindInteger, big: new(big.Int).Set(n)}
}

func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Null() Value            { return Value{} }
func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt reports false for integers that do not fit in int64; see AsBigInt.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInteger && v.big == nil
}

func (v Value) AsBigInt() (*big.Int, bool) {
	if v.kind != KindInteger {
		return nil, false
	}
	if v.big != nil {
		return new(big.Int).Set(v.big), true
	}
	return big.NewInt(v.i), true
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Equal reports whether both values have the same kind and payload.
// Integer(3) and Float(3) are different values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInteger:
		if v.big != nil || o.big != nil {
			return v.big != nil && o.big != nil && v.big.Cmp(o.big) == 0
		}
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	default:
		return true
	}
}

// String returns the text shown in a cell and used to seed an edit.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInteger:
		if v.big != nil {
			return v.big.String()
		}
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	default:
		return "null"
	}
}

// formatFloat renders the shortest round-trip form and keeps a fraction or an
// exponent so the number reads back as a float. Exponent form kicks in below
// 1e-4 and at 1e16 and above.
func formatFloat(f float64) string {
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp := 0
	if i := strings.IndexByte(sci, 'e'); i >= 0 {
		exp, _ = strconv.Atoi(sci[i+1:])
	}
	if f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".e") {
		out += ".0"
	}
	return out
}
