package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sfio/pkg/core"
	"github.com/aretw0/sfio/pkg/jsonstore"
)

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers(strict, richEnv bool) map[string]core.Parser {
	return map[string]core.Parser{
		".toml": NewTOMLSerializer(strict),
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
		".env":  NewEnvSerializer(richEnv),
		".csv":  NewCSVSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files through the JSON store codec.
// Output is UTF-8 with four-space indentation.
type JSONSerializer struct {
	// Strict keeps numbers as json.Number to avoid precision loss.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
// Optional strict mode prevents float64 conversion for large integers.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid json: not valid UTF-8", core.ErrParse)
	}

	v, err := jsonstore.Decode(data)
	if err != nil {
		return nil, err
	}
	return recursiveNormalize(v, s.Strict), nil
}

func (s *JSONSerializer) Serialize(v any) ([]byte, error) {
	return jsonstore.Encode(v, true)
}

// --- TOML Serializer ---

// TOMLSerializer handles TOML files. Tables come back with sorted keys because the
// decoder does not report the order of the source.
type TOMLSerializer struct {
	// Strict converts decoded numbers to json.Number.
	Strict bool
}

// NewTOMLSerializer creates a new TOML serializer.
func NewTOMLSerializer(strict bool) *TOMLSerializer {
	return &TOMLSerializer{Strict: strict}
}

func (s *TOMLSerializer) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if err := toml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid toml: %v", core.ErrParse, err)
	}
	return recursiveNormalize(core.FromPlain(payload), s.Strict), nil
}

func (s *TOMLSerializer) Serialize(v any) ([]byte, error) {
	m, ok := core.AsMap(v)
	if !ok {
		return nil, fmt.Errorf("%w: toml document must be a mapping, got %T", core.ErrType, v)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(core.ToPlain(m)); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// maxYAMLDepth bounds alias expansion so self-referencing anchors fail instead of looping.
const maxYAMLDepth = 1000

// YAMLSerializer handles YAML files. Only the core schema is decoded: custom tags never
// construct anything beyond maps, lists and scalars.
type YAMLSerializer struct {
	// Strict converts decoded numbers to json.Number.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrParse, err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}

	d := &yamlDecoder{strict: s.Strict, anchors: make(map[*yaml.Node]any)}
	v, err := d.value(&doc, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrParse, err)
	}
	return v, nil
}

func (s *YAMLSerializer) Serialize(v any) ([]byte, error) {
	node, err := valueNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlDecoder turns a node tree into values. Every alias of an anchor yields the same
// decoded value, as with a shared object, so nested aliases cost one decode per anchor.
type yamlDecoder struct {
	strict  bool
	anchors map[*yaml.Node]any
}

func (d *yamlDecoder) value(n *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("document nested deeper than %d levels", maxYAMLDepth)
	}
	if n.Anchor == "" {
		return d.decode(n, depth)
	}

	if v, ok := d.anchors[n]; ok {
		return v, nil
	}
	v, err := d.decode(n, depth)
	if err != nil {
		return nil, err
	}
	d.anchors[n] = v
	return v, nil
}

func (d *yamlDecoder) decode(n *yaml.Node, depth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0], depth+1)
	case yaml.AliasNode:
		return d.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := d.value(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		m := core.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, valNode := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			if key.ShortTag() == "!!merge" {
				if err := d.mergeInto(m, valNode, depth+1); err != nil {
					return nil, err
				}
				continue
			}
			v, err := d.value(valNode, depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, v)
		}
		return m, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return recursiveNormalize(v, d.strict), nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
}

// mergeInto applies a "<<" merge key: keys already present win over merged ones.
func (d *yamlDecoder) mergeInto(m *core.Map, n *yaml.Node, depth int) error {
	v, err := d.value(n, depth)
	if err != nil {
		return err
	}

	sources := []any{v}
	if list, ok := v.([]any); ok {
		sources = list
	}
	for _, src := range sources {
		sm, ok := src.(*core.Map)
		if !ok {
			return fmt.Errorf("merge value at line %d is not a mapping", n.Line)
		}
		for pair := sm.Oldest(); pair != nil; pair = pair.Next() {
			if _, present := m.Get(pair.Key); !present {
				m.Set(pair.Key, pair.Value)
			}
		}
	}
	return nil
}

// valueNode builds a node tree so mapping order survives encoding.
func valueNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *core.Map:
		if val == nil {
			return scalarNode(nil)
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			k, err := scalarNode(pair.Key)
			if err != nil {
				return nil, err
			}
			item, err := valueNode(pair.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, k, item)
		}
		return n, nil
	case map[string]any, map[string]string:
		m, _ := core.AsMap(val)
		return valueNode(m)
	case []any:
		return sequenceNode(val)
	case []string:
		return sequenceNode(val)
	case [][]string:
		return sequenceNode(val)
	case json.Number:
		return scalarNode(core.ToPlain(val))
	default:
		return scalarNode(val)
	}
}

func sequenceNode[T any](items []T) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		child, err := valueNode(item)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, child)
	}
	return n, nil
}

func scalarNode(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: cannot encode %T as yaml: %v", core.ErrType, v, err)
	}
	return n, nil
}

// --- Env Serializer ---

// EnvSerializer handles KEY=VALUE files.
//
// With Rich set, parsing goes through godotenv (quotes, escapes, export prefixes, inline
// comments, variable expansion). Otherwise a line-based reader is used: blank and '#' lines
// are skipped and every other line splits on its first '='. Writing never quotes, so under
// the rich parser a value holding " #" or "$NAME" reads back truncated or expanded.
type EnvSerializer struct {
	Rich bool
}

// NewEnvSerializer creates a new env serializer.
func NewEnvSerializer(rich bool) *EnvSerializer {
	return &EnvSerializer{Rich: rich}
}

func (s *EnvSerializer) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if !s.Rich {
		return parseEnvLines(data)
	}

	parsed, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid env: %v", core.ErrParse, err)
	}
	return orderEnv(data, parsed), nil
}

func (s *EnvSerializer) Serialize(v any) ([]byte, error) {
	m, ok := core.AsMap(v)
	if !ok {
		return nil, fmt.Errorf("%w: env data must be a mapping, got %T", core.ErrType, v)
	}

	var buf bytes.Buffer
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		buf.WriteString(pair.Key)
		buf.WriteByte('=')
		buf.WriteString(stringify(pair.Value))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func parseEnvLines(data []byte) (*core.Map, error) {
	m := core.NewMap()
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w: invalid env: line %d has no '='", core.ErrParse, i+1)
		}
		m.Set(k, v)
	}
	return m, nil
}

// orderEnv lays out godotenv's result in the order keys first appear in the source.
func orderEnv(data []byte, parsed map[string]string) *core.Map {
	m := core.NewMap()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimPrefix(strings.TrimSpace(line), "export ")
		idx := strings.IndexAny(line, "=:")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if v, ok := parsed[key]; ok {
			if _, seen := m.Get(key); !seen {
				m.Set(key, v)
			}
		}
	}

	rest := make([]string, 0)
	for k := range parsed {
		if _, seen := m.Get(k); !seen {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		m.Set(k, parsed[k])
	}
	return m
}

// --- CSV Serializer ---

// CSVSerializer handles comma separated files as ordered rows of string cells.
// Rows may have different lengths.
type CSVSerializer struct{}

// NewCSVSerializer creates a new CSV serializer.
func NewCSVSerializer() *CSVSerializer {
	return &CSVSerializer{}
}

func (s *CSVSerializer) Parse(r io.Reader) (any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv: %v", core.ErrParse, err)
	}
	if rows == nil {
		rows = core.Rows{}
	}
	return rows, nil
}

func (s *CSVSerializer) Serialize(v any) ([]byte, error) {
	rows, err := asRows(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asRows(v any) (core.Rows, error) {
	switch val := v.(type) {
	case [][]string:
		return val, nil
	case []any:
		rows := make(core.Rows, 0, len(val))
		for i, item := range val {
			switch row := item.(type) {
			case []string:
				rows = append(rows, row)
			case []any:
				cells := make([]string, len(row))
				for j, cell := range row {
					cells[j] = stringify(cell)
				}
				rows = append(rows, cells)
			default:
				return nil, fmt.Errorf("%w: csv row %d must be a list, got %T", core.ErrType, i, item)
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: csv data must be a list of rows, got %T", core.ErrType, v)
}

// --- Text Serializer ---

// TextSerializer reads and writes files verbatim. It is the fallback for unknown extensions.
type TextSerializer struct{}

// NewTextSerializer creates a new text serializer.
func NewTextSerializer() *TextSerializer {
	return &TextSerializer{}
}

func (s *TextSerializer) Parse(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", core.ErrParse)
	}
	return string(data), nil
}

func (s *TextSerializer) Serialize(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return []byte(val), nil
	case []byte:
		return val, nil
	}
	return nil, fmt.Errorf("%w: text data must be a string, got %T", core.ErrType, v)
}

// --- Helpers ---

// stringify renders a scalar the way it should appear in an env line or a CSV cell.
func stringify(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// recursiveNormalize settles the number representation of decoded values.
// Strict turns every number into json.Number; otherwise json.Number becomes int64 or
// float64 when it fits.
func recursiveNormalize(val any, strict bool) any {
	switch v := val.(type) {
	case *core.Map:
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			pair.Value = recursiveNormalize(pair.Value, strict)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = recursiveNormalize(item, strict)
		}
		return v
	case json.Number:
		if strict {
			return v
		}
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v
	}

	if !strict {
		return val
	}
	switch v := val.(type) {
	case int:
		return json.Number(strconv.Itoa(v))
	case int64:
		return json.Number(strconv.FormatInt(v, 10))
	case uint64:
		return json.Number(strconv.FormatUint(v, 10))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		if b, err := jsonstore.Encode(v, false); err == nil {
			return json.Number(b)
		}
	}
	return val
}
