package jsonstore

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfio/pkg/core"
)

func TestEncode_Layout(t *testing.T) {
	doc := core.MapOf(
		"name", "sfio",
		"tags", []any{"a", json.Number("2")},
		"empty_obj", core.NewMap(),
		"empty_list", []any{},
		"nested", core.MapOf("ok", true, "none", nil),
	)

	got, err := Encode(doc, false)
	require.NoError(t, err)

	want := `{
    "name": "sfio",
    "tags": [
        "a",
        2
    ],
    "empty_obj": {},
    "empty_list": [],
    "nested": {
        "ok": true,
        "none": null
    }
}`
	assert.Equal(t, want, string(got))
}

func TestEncode_Strings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		utf8 bool
		want string
	}{
		{"ascii passthrough", "plain <b>&</b>", false, `"plain <b>&</b>"`},
		{"control chars", "a\"b\\c\n\t\x01", false, `"a\"b\\c\n\t\u0001"`},
		{"latin escaped", "café", false, `"caf\u00e9"`},
		{"latin literal", "café", true, `"café"`},
		{"astral escaped", "😀", false, `"\ud83d\ude00"`},
		{"astral literal", "😀", true, `"😀"`},
		{"delete escaped", "\x7f", false, `"\u007f"`},
		{"delete literal", "\x7f", true, "\"\x7f\""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in, tc.utf8)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestEncode_Numbers(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1, "1"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{1.0, "1.0"},
		{0.5, "0.5"},
		{0.0, "0.0"},
		{1e16, "1e+16"},
		{1.5e-05, "1.5e-05"},
		{123456789.25, "123456789.25"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
		{json.Number("12345678901234567890"), "12345678901234567890"},
	}

	for _, tc := range tests {
		got, err := Encode(tc.in, false)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(got), "%#v", tc.in)
	}
}

func TestEncode_MarshalableValues(t *testing.T) {
	type release struct {
		Name    string   `json:"name"`
		Version int      `json:"version"`
		Targets []string `json:"targets"`
	}

	got, err := Encode(release{Name: "x", Version: 2, Targets: []string{"linux"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"x\",\n    \"version\": 2,\n    \"targets\": [\n        \"linux\"\n    ]\n}", string(got))

	_, err = Encode(make(chan int), false)
	assert.ErrorIs(t, err, core.ErrType)
}

func TestEncode_PlainMapsSorted(t *testing.T) {
	got, err := Encode(map[string]any{"b": 1, "a": "x"}, false)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": \"x\",\n    \"b\": 1\n}", string(got))
}

func TestDecode(t *testing.T) {
	t.Run("keeps key order and number text", func(t *testing.T) {
		v, err := Decode([]byte(`{"z": 1.50, "a": [1, {"k": null}], "m": "é"}`))
		require.NoError(t, err)

		m, ok := v.(*core.Map)
		require.True(t, ok)
		assert.Equal(t, []string{"z", "a", "m"}, core.Keys(m))

		z, _ := m.Get("z")
		assert.Equal(t, json.Number("1.50"), z)
	})

	t.Run("duplicate keys keep first slot and last value", func(t *testing.T) {
		v, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
		require.NoError(t, err)
		m := v.(*core.Map)
		assert.Equal(t, []string{"a", "b"}, core.Keys(m))
		a, _ := m.Get("a")
		assert.Equal(t, json.Number("3"), a)
	})

	t.Run("scalars at the top level", func(t *testing.T) {
		v, err := Decode([]byte(` "text" `))
		require.NoError(t, err)
		assert.Equal(t, "text", v)
	})

	t.Run("non-finite literals", func(t *testing.T) {
		v, err := Decode([]byte(`{"nan": NaN, "list": [Infinity,-Infinity, -1], "text": "NaN -Infinity"}`))
		require.NoError(t, err)
		m := v.(*core.Map)

		nan, _ := m.Get("nan")
		assert.Equal(t, json.Number("NaN"), nan)
		list, _ := m.Get("list")
		assert.Equal(t, []any{json.Number("Infinity"), json.Number("-Infinity"), json.Number("-1")}, list)
		text, _ := m.Get("text")
		assert.Equal(t, "NaN -Infinity", text)

		top, err := Decode([]byte("-Infinity"))
		require.NoError(t, err)
		assert.Equal(t, json.Number("-Infinity"), top)
	})

	for name, input := range map[string]string{
		"empty":         "",
		"bare word":     `[NaNa]`,
		"literal key":   `{NaN: 1}`,
		"truncated":     `{"a": 1`,
		"trailing data": `{} {}`,
		"garbage":       `{"a": tru}`,
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.ErrorIs(t, err, core.ErrParse)
		})
	}
}

func TestEncodeDecode_RoundTripIsStable(t *testing.T) {
	src := []byte("{\n    \"a\": 1,\n    \"b\": [\n        1.5,\n        \"\\u00e9\"\n    ],\n    \"c\": {}\n}")

	v, err := Decode(src)
	require.NoError(t, err)
	out, err := Encode(v, false)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}
