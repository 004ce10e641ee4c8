package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/sfio/pkg/core"
)

// nonFinite lists the float literals Encode writes for NaN and the infinities.
// The longest form comes first so "-Infinity" is not taken for "Infinity".
var nonFinite = []string{"-Infinity", "Infinity", "NaN"}

// Decode parses a single JSON document.
// Objects become ordered Maps (a duplicated key keeps its first position and its last value),
// arrays become []any and numbers json.Number, so values survive a write back unchanged.
// The NaN, Infinity and -Infinity literals are accepted and come back as json.Number too.
func Decode(data []byte) (any, error) {
	data, specials := maskNonFinite(data)

	d := &decoder{dec: json.NewDecoder(bytes.NewReader(data)), specials: specials}
	d.dec.UseNumber()

	v, err := d.value()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", core.ErrParse, err)
	}
	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid json: extra data after top-level value", core.ErrParse)
	}
	return v, nil
}

// maskNonFinite replaces each non-finite literal outside strings with a "0" padded to the
// same length, so offsets are unchanged. The result maps the offset just past each
// placeholder to the literal it stands for.
func maskNonFinite(data []byte) ([]byte, map[int64]string) {
	var (
		out      []byte
		specials map[int64]string
		inString bool
		escaped  bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		if c != '-' && c != 'I' && c != 'N' {
			continue
		}
		for _, lit := range nonFinite {
			if !bytes.HasPrefix(data[i:], []byte(lit)) {
				continue
			}
			if out == nil {
				out = bytes.Clone(data)
				specials = make(map[int64]string)
			}
			out[i] = '0'
			for j := i + 1; j < i+len(lit); j++ {
				out[j] = ' '
			}
			specials[int64(i+1)] = lit
			i += len(lit) - 1
			break
		}
	}
	if out == nil {
		return data, nil
	}
	return out, specials
}

type decoder struct {
	dec      *json.Decoder
	specials map[int64]string
}

func (d *decoder) value() (any, error) {
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	if num, ok := tok.(json.Number); ok {
		if lit, masked := d.specials[d.dec.InputOffset()]; masked {
			return json.Number(lit), nil
		}
		return num, nil
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := core.NewMap()
		for d.dec.More() {
			keyTok, err := d.dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			val, err := d.value()
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		if _, err := d.dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		list := []any{}
		for d.dec.More() {
			val, err := d.value()
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := d.dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}
