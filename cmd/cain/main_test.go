package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cainfmt/cain"
	"github.com/cainfmt/cain/schema"
)

func TestNormalizeJSONRecursesThroughContainers(t *testing.T) {
	in := map[string]any{
		"a": []any{float64(1), map[string]any{"b": "c"}},
	}
	got := normalizeJSON(in)
	m, ok := got.(map[string]any)
	require.True(t, ok)
	arr, ok := m["a"].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), arr[0])
	nested, ok := arr[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "c", nested["b"])
}

func TestEncodeDecodeRoundTripViaCobraCommands(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.bin")
	inputPath := filepath.Join(dir, "input.json")
	encodedPath := filepath.Join(dir, "out.cain")
	decodedPath := filepath.Join(dir, "decoded.json")

	s := schema.Object(map[string]*schema.Node{
		"id":   schema.UInt32(),
		"name": schema.String(),
	})
	schemaBytes, err := cain.EncodeSchema(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(schemaPath, schemaBytes, 0o644))

	inputJSON, err := json.Marshal(map[string]any{"id": 7, "name": "widget"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(inputPath, inputJSON, 0o644))

	encodeCmd := newEncodeCmd()
	encodeCmd.SetArgs([]string{
		inputPath,
		"--schema-file", schemaPath,
		"--output", encodedPath,
	})
	require.NoError(t, encodeCmd.Execute())

	decodeCmd := newDecodeCmd()
	decodeCmd.SetArgs([]string{
		encodedPath,
		"--schema-file", schemaPath,
		"--output", decodedPath,
		"--minify",
	})
	require.NoError(t, decodeCmd.Execute())

	out, err := os.ReadFile(decodedPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "widget", got["name"])
	assert.Equal(t, float64(7), got["id"])
}

func TestEncodeWithHeaderThenDecodeWithoutSchema(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	encodedPath := filepath.Join(dir, "out.cain")
	decodedPath := filepath.Join(dir, "decoded.json")

	schemaYAML := []byte("kind: Array\nchildren:\n  - kind: String\n")
	schemaPath := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, schemaYAML, 0o644))

	inputJSON, err := json.Marshal([]any{"a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(inputPath, inputJSON, 0o644))

	encodeCmd := newEncodeCmd()
	encodeCmd.SetArgs([]string{
		inputPath,
		"--schema-yaml", schemaPath,
		"--header",
		"--output", encodedPath,
	})
	require.NoError(t, encodeCmd.Execute())

	decodeCmd := newDecodeCmd()
	decodeCmd.SetArgs([]string{
		encodedPath,
		"--from-header",
		"--output", decodedPath,
		"--minify",
	})
	require.NoError(t, decodeCmd.Execute())

	out, err := os.ReadFile(decodedPath)
	require.NoError(t, err)

	var got []any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []any{"a", "b", "c"}, got)
}

func TestSchemaExportFormats(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.bin")

	s := schema.Object(map[string]*schema.Node{"flag": schema.Bool()})
	schemaBytes, err := cain.EncodeSchema(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(schemaPath, schemaBytes, 0o644))

	for _, format := range []string{"yaml", "jsonschema"} {
		outPath := filepath.Join(dir, "export."+format)
		cmd := newSchemaExportCmd()
		cmd.SetArgs([]string{
			"--schema-file", schemaPath,
			"--format", format,
			"--output", outPath,
		})
		require.NoError(t, cmd.Execute(), "format %s", format)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.NotEmpty(t, data, "format %s produced no output", format)
	}
}
