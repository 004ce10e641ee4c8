package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/aretw0/sfio/pkg/core"
)

const indentUnit = "    "

// Encode renders v as JSON indented with four spaces.
// With utf8 false every character outside printable ASCII is written as a \uXXXX escape;
// with utf8 true it is written literally. Output carries no trailing newline.
func Encode(v any, utf8 bool) ([]byte, error) {
	e := &encoder{ascii: !utf8}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf   bytes.Buffer
	ascii bool
}

func (e *encoder) value(v any, depth int) error {
	switch val := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case string:
		e.string(val)
	case bool:
		e.buf.WriteString(strconv.FormatBool(val))
	case json.Number:
		if val == "" {
			val = "0"
		}
		e.buf.WriteString(string(val))
	case int:
		e.buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		e.buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		e.buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		e.buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		e.buf.WriteString(strconv.FormatInt(val, 10))
	case uint:
		e.buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		e.buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		e.buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		e.buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		e.buf.WriteString(strconv.FormatUint(val, 10))
	case float32:
		e.float(float64(val), 32)
	case float64:
		e.float(val, 64)
	case *core.Map:
		if val == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.object(val, depth)
	case map[string]any, map[string]string:
		m, _ := core.AsMap(val)
		return e.object(m, depth)
	case []any:
		return encodeArray(e, val, depth)
	case []string:
		return encodeArray(e, val, depth)
	case [][]string:
		return encodeArray(e, val, depth)
	default:
		// Structs and other marshalable values go through encoding/json first.
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("%w: cannot encode %T as JSON: %v", core.ErrType, v, err)
		}
		decoded, err := Decode(raw)
		if err != nil {
			return err
		}
		return e.value(decoded, depth)
	}
	return nil
}

func (e *encoder) object(m *core.Map, depth int) error {
	if m.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if pair != m.Oldest() {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		e.string(pair.Key)
		e.buf.WriteString(": ")
		if err := e.value(pair.Value, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func encodeArray[T any](e *encoder, items []T, depth int) error {
	if len(items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.value(item, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) newline(depth int) {
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(indentUnit)
	}
}

// float follows the shortest round-trip representation, always keeping a decimal point
// or an exponent so the value reads back as a float.
func (e *encoder) float(f float64, bits int) {
	switch {
	case math.IsNaN(f):
		e.buf.WriteString("NaN")
		return
	case math.IsInf(f, 1):
		e.buf.WriteString("Infinity")
		return
	case math.IsInf(f, -1):
		e.buf.WriteString("-Infinity")
		return
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		e.buf.WriteString(strconv.FormatFloat(f, 'e', -1, bits))
		return
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	e.buf.WriteString(s)
}

const hexDigits = "0123456789abcdef"

func (e *encoder) string(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				e.escape(r)
			case e.ascii && r > 0x7e:
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					e.escape(hi)
					e.escape(lo)
				} else {
					e.escape(r)
				}
			default:
				e.buf.WriteRune(r)
			}
		}
	}
	e.buf.WriteByte('"')
}

func (e *encoder) escape(r rune) {
	e.buf.WriteString(`\u`)
	e.buf.WriteByte(hexDigits[(r>>12)&0xf])
	e.buf.WriteByte(hexDigits[(r>>8)&0xf])
	e.buf.WriteByte(hexDigits[(r>>4)&0xf])
	e.buf.WriteByte(hexDigits[r&0xf])
}
