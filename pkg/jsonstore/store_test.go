package jsonstore_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfio/pkg/core"
	"github.com/aretw0/sfio/pkg/jsonstore"
)

func writeRaw(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readRaw(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, jsonstore.Write(path, core.MapOf("greeting", "olá", "n", 1)))
	assert.Equal(t, "{\n    \"greeting\": \"ol\\u00e1\",\n    \"n\": 1\n}", readRaw(t, path))

	require.NoError(t, jsonstore.Write(path, core.MapOf("greeting", "olá"), jsonstore.WithUTF8(true)))
	assert.Equal(t, "{\n    \"greeting\": \"olá\"\n}", readRaw(t, path))

	v, err := jsonstore.Read(path, jsonstore.WithUTF8(true))
	require.NoError(t, err)
	m, ok := v.(*core.Map)
	require.True(t, ok)
	greeting, _ := m.Get("greeting")
	assert.Equal(t, "olá", greeting)
}

func TestRead_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := jsonstore.Read(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := jsonstore.Read(writeRaw(t, "bad.json", `{"a": `))
		assert.ErrorIs(t, err, core.ErrParse)
	})

	t.Run("invalid utf8 in utf8 mode", func(t *testing.T) {
		path := writeRaw(t, "latin1.json", "\"caf\xe9\"")
		_, err := jsonstore.Read(path, jsonstore.WithUTF8(true))
		assert.ErrorIs(t, err, core.ErrParse)

		_, err = jsonstore.Read(path)
		assert.NoError(t, err)
	})
}

func TestUpdate(t *testing.T) {
	path := writeRaw(t, "conf.json", `{"a": 1, "b": 2}`)

	require.NoError(t, jsonstore.Update(path, core.MapOf("b", 3, "c", 4)))

	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 3,\n    \"c\": 4\n}", readRaw(t, path))
}

func TestUpdate_IsShallow(t *testing.T) {
	path := writeRaw(t, "conf.json", `{"db": {"host": "x", "port": 1}}`)

	require.NoError(t, jsonstore.Update(path, map[string]any{"db": map[string]any{"port": 2}}))

	assert.Equal(t, "{\n    \"db\": {\n        \"port\": 2\n    }\n}", readRaw(t, path))
}

func TestUpdate_TypeErrorsLeaveFileUntouched(t *testing.T) {
	t.Run("existing is a list", func(t *testing.T) {
		path := writeRaw(t, "list.json", `[1, 2]`)
		err := jsonstore.Update(path, core.MapOf("a", 1))
		assert.ErrorIs(t, err, core.ErrType)
		assert.Equal(t, `[1, 2]`, readRaw(t, path))
	})

	t.Run("data is not a mapping", func(t *testing.T) {
		path := writeRaw(t, "obj.json", `{"a": 1}`)
		err := jsonstore.Update(path, []any{1})
		assert.ErrorIs(t, err, core.ErrType)
		assert.Equal(t, `{"a": 1}`, readRaw(t, path))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeRaw(t, "bad.json", `{"a": 1,}`)
		err := jsonstore.Update(path, core.MapOf("b", 2))
		assert.ErrorIs(t, err, core.ErrParse)
		assert.Equal(t, `{"a": 1,}`, readRaw(t, path))
	})
}

func TestAppend(t *testing.T) {
	t.Run("scalar becomes one element", func(t *testing.T) {
		path := writeRaw(t, "list.json", `[1, 2]`)
		require.NoError(t, jsonstore.Append(path, 3))
		assert.Equal(t, "[\n    1,\n    2,\n    3\n]", readRaw(t, path))
	})

	t.Run("list is not spread", func(t *testing.T) {
		path := writeRaw(t, "list.json", `[1, 2]`)
		require.NoError(t, jsonstore.Append(path, []any{3}))
		assert.Equal(t, "[\n    1,\n    2,\n    [\n        3\n    ]\n]", readRaw(t, path))
	})

	t.Run("object target is rejected", func(t *testing.T) {
		path := writeRaw(t, "obj.json", `{}`)
		assert.ErrorIs(t, jsonstore.Append(path, 1), core.ErrType)
		assert.Equal(t, `{}`, readRaw(t, path))
	})
}

func TestTouch(t *testing.T) {
	t.Run("creates once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")

		require.NoError(t, jsonstore.Touch(path))
		first := readRaw(t, path)
		assert.Equal(t, "{}", first)

		require.NoError(t, jsonstore.Touch(path, jsonstore.WithDefault([]any{"ignored"})))
		assert.Equal(t, first, readRaw(t, path))
	})

	t.Run("custom default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queue.json")
		require.NoError(t, jsonstore.Touch(path, jsonstore.WithDefault([]any{})))
		assert.Equal(t, "[]", readRaw(t, path))

		require.NoError(t, jsonstore.Append(path, "job"))
		assert.Equal(t, "[\n    \"job\"\n]", readRaw(t, path))
	})

	t.Run("existing file is not validated", func(t *testing.T) {
		path := writeRaw(t, "notes.json", "not json")
		require.NoError(t, jsonstore.Touch(path))
		assert.Equal(t, "not json", readRaw(t, path))
	})
}

func TestNonFiniteFloatsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, jsonstore.Write(path, []any{math.NaN(), math.Inf(1)}))
	assert.Equal(t, "[\n    NaN,\n    Infinity\n]", readRaw(t, path))

	require.NoError(t, jsonstore.Append(path, math.Inf(-1)))
	assert.Equal(t, "[\n    NaN,\n    Infinity,\n    -Infinity\n]", readRaw(t, path))

	v, err := jsonstore.Read(path)
	require.NoError(t, err)
	plain := core.ToPlain(v).([]any)
	require.Len(t, plain, 3)
	assert.True(t, math.IsNaN(plain[0].(float64)))
	assert.True(t, math.IsInf(plain[1].(float64), 1))
	assert.True(t, math.IsInf(plain[2].(float64), -1))

	obj := writeRaw(t, "obj.json", `{"x": NaN}`)
	require.NoError(t, jsonstore.Update(obj, core.MapOf("y", 1)))
	assert.Equal(t, "{\n    \"x\": NaN,\n    \"y\": 1\n}", readRaw(t, obj))
}
