package cain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cainfmt/cain/schema"
)

func TestDumpsLoadsWithExplicitSchema(t *testing.T) {
	s := schema.Object(map[string]*schema.Node{
		"id":   schema.UInt32(),
		"name": schema.String(),
	})
	value := map[string]any{"id": uint64(7), "name": "widget"}

	b, err := Dumps(value, s, false)
	require.NoError(t, err)

	got, err := Loads(b, s)
	require.NoError(t, err)
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "widget", m["name"])
}

func TestLoadsRejectsTrailingBytes(t *testing.T) {
	s := schema.Bool()
	b, err := Dumps(true, s, false)
	require.NoError(t, err)

	_, err = Loads(append(b, 0xFF), s)
	assert.Error(t, err)
}

func TestDumpsLoadsWithHeaderHidesSchemaFromCaller(t *testing.T) {
	s := schema.Array(schema.String())
	value := []any{"a", "b", "c"}

	b, err := Dumps(value, s, true)
	require.NoError(t, err)

	got, err := Loads(b, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, got)
}

func TestDumpAndLoadThroughReaders(t *testing.T) {
	s := schema.Int()
	var buf bytes.Buffer

	require.NoError(t, Dump(&buf, int64(42), s, true))

	got, err := Load(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestEncodeDecodeSchemaRoundTrip(t *testing.T) {
	s := schema.Object(map[string]*schema.Node{
		"tags": schema.Optional(schema.Array(schema.String())),
		"n":    schema.Int("long"),
	})

	b, err := EncodeSchema(s)
	require.NoError(t, err)

	got, err := DecodeSchema(b)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}
