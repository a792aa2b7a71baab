package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

const indent = "    "

var intLiteral = regexp.MustCompile(`^-?[0-9]+$`)

// Parse decodes a flat JSON object. Member order is preserved and a repeated
// name keeps its first position with the last value. Any failure is a
// *ParseError and no partial document is returned.
func Parse(raw []byte) (*Document, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(raw), jsontext.AllowDuplicateNames(true))
	fail := func(err error) (*Document, error) {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
	}

	tok, err := dec.ReadToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty input")
		}
		return fail(err)
	}
	if tok.Kind() != '{' {
		return fail(fmt.Errorf("top level is %s, want object", kindName(tok.Kind())))
	}

	doc := New()
	for {
		name, err := dec.ReadToken()
		if err != nil {
			return fail(err)
		}
		if name.Kind() == '}' {
			break
		}
		key := name.String()

		tok, err := dec.ReadToken()
		if err != nil {
			return fail(err)
		}
		v, err := scalarFromToken(tok)
		if err != nil {
			return fail(fmt.Errorf("key %q: %w", key, err))
		}
		doc.put(key, v)
	}

	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level object")
		}
		return fail(err)
	}
	return doc, nil
}

func scalarFromToken(tok jsontext.Token) (Value, error) {
	switch tok.Kind() {
	case '"':
		return String(tok.String()), nil
	case '0':
		return numberValue(tok.String())
	case 't':
		return Bool(true), nil
	case 'f':
		return Bool(false), nil
	case 'n':
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("%s: %w", kindName(tok.Kind()), ErrNestedValue)
	}
}

// numberValue keeps integer literals as Integer, at any size, and everything
// with a fraction or exponent as Float.
func numberValue(lit string) (Value, error) {
	if intLiteral.MatchString(lit) {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Integer(n), nil
		}
		if n, ok := new(big.Int).SetString(lit, 10); ok {
			return BigInteger(n), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("number %s out of range", lit)
	}
	return Float(f), nil
}

func kindName(k jsontext.Kind) string {
	switch k {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case '0':
		return "number"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "invalid token"
	}
}

// Serialize writes the document as JSON with 4-space indentation, one member
// per line, non-ASCII left unescaped, and exactly one trailing newline.
func Serialize(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf,
		jsontext.WithIndent(indent),
		jsontext.SpaceAfterColon(true),
		jsontext.EscapeForHTML(false),
		jsontext.EscapeForJS(false),
	)
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	for _, key := range doc.keys {
		if err := enc.WriteToken(jsontext.String(key)); err != nil {
			return nil, fmt.Errorf("serialize key %q: %w", key, err)
		}
		if err := writeScalar(enc, doc.values[key]); err != nil {
			return nil, fmt.Errorf("serialize value of %q: %w", key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}

func writeScalar(enc *jsontext.Encoder, v Value) error {
	switch v.kind {
	case KindString:
		return enc.WriteToken(jsontext.String(v.s))
	case KindInteger:
		if v.big != nil {
			return enc.WriteValue(jsontext.Value(v.big.String()))
		}
		return enc.WriteToken(jsontext.Int(v.i))
	case KindFloat:
		// Written as a raw literal so integral floats keep their ".0".
		return enc.WriteValue(jsontext.Value(formatFloat(v.f)))
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.b))
	default:
		return enc.WriteToken(jsontext.Null)
	}
}
