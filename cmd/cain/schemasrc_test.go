package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cainfmt/cain"
	"github.com/cainfmt/cain/schema"
)

func newSrc(t *testing.T, allowFromHeader bool) (*schemaSource, *pflag.FlagSet) {
	t.Helper()
	var src schemaSource
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	src.register(flags, allowFromHeader)
	return &src, flags
}

func TestSchemaSourceResolveDefaultsToNil(t *testing.T) {
	src, _ := newSrc(t, false)
	got, err := src.resolve()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchemaSourceResolveFromHeaderReturnsNil(t *testing.T) {
	src, flags := newSrc(t, true)
	require.NoError(t, flags.Set("from-header", "true"))
	got, err := src.resolve()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchemaSourceResolveSchemaFile(t *testing.T) {
	want := schema.Object(map[string]*schema.Node{
		"id": schema.UInt32(),
	})
	b, err := cain.EncodeSchema(want)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.bin")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	src, flags := newSrc(t, false)
	require.NoError(t, flags.Set("schema-file", path))

	got, err := src.resolve()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestSchemaSourceResolveSchemaYAMLFile(t *testing.T) {
	want := schema.Array(schema.String())
	b, err := schema.ToYAML(want)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	src, flags := newSrc(t, false)
	require.NoError(t, flags.Set("schema-yaml", path))

	got, err := src.resolve()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestSchemaSourceResolveHostExprRequiresTrust(t *testing.T) {
	src, flags := newSrc(t, false)
	require.NoError(t, flags.Set("schema-expr", "kind: Bool\n"))

	_, err := src.resolve()
	assert.Error(t, err)
}

func TestSchemaSourceResolveHostExprWithTrust(t *testing.T) {
	src, flags := newSrc(t, false)
	require.NoError(t, flags.Set("schema-expr", "kind: Bool\n"))
	require.NoError(t, flags.Set("trust-schema-code", "true"))

	got, err := src.resolve()
	require.NoError(t, err)
	assert.True(t, schema.Bool().Equal(got))
}

func TestSchemaSourceResolveRejectsMultipleSources(t *testing.T) {
	src, flags := newSrc(t, false)
	require.NoError(t, flags.Set("schema-yaml", "a.yaml"))
	require.NoError(t, flags.Set("schema-expr", "kind: Bool\n"))
	require.NoError(t, flags.Set("trust-schema-code", "true"))

	_, err := src.resolve()
	assert.Error(t, err)
}
