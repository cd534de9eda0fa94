package cain

import "github.com/cainfmt/cain/schema"

// Document is a fluent, schema-inferring builder for an Object value, for
// callers who would rather assemble a record field-by-field than
// hand-build a schema.Node up front. It is a convenience layered on top
// of the core codec, not a replacement for it — Build returns the exact
// (*schema.Node, any) pair the codec package already knows how to encode.
type Document struct {
	fields map[string]*schema.Node
	values map[string]any
}

// NewDocument starts an empty Object document.
func NewDocument() *Document {
	return &Document{
		fields: make(map[string]*schema.Node),
		values: make(map[string]any),
	}
}

func (d *Document) set(name string, node *schema.Node, value any) *Document {
	d.fields[name] = node
	d.values[name] = value
	return d
}

// Null sets name to a Null field.
func (d *Document) Null(name string) *Document { return d.set(name, schema.Null(), nil) }

// Bool sets name to a Bool field.
func (d *Document) Bool(name string, v bool) *Document { return d.set(name, schema.Bool(), v) }

// Char sets name to a Char field.
func (d *Document) Char(name string, v rune) *Document { return d.set(name, schema.Char(), v) }

// String sets name to a String field.
func (d *Document) String(name string, v string) *Document {
	return d.set(name, schema.String(), v)
}

// Decimal sets name to a Decimal field (textual decimal representation).
func (d *Document) Decimal(name string, v string) *Document {
	return d.set(name, schema.Decimal(), v)
}

// Binary sets name to a Binary field, with optional width modifiers.
func (d *Document) Binary(name string, v []byte, mods ...string) *Document {
	return d.set(name, schema.Binary(mods...), v)
}

// Int sets name to a generic Int field, with optional width/sign
// modifiers.
func (d *Document) Int(name string, v int64, mods ...string) *Document {
	return d.set(name, schema.Int(mods...), v)
}

// Float sets name to a Float (binary32) field.
func (d *Document) Float(name string, v float32) *Document {
	return d.set(name, schema.Float(), v)
}

// Double sets name to a Double (binary64) field.
func (d *Document) Double(name string, v float64) *Document {
	return d.set(name, schema.Double(), v)
}

// Array sets name to a homogeneous Array field over elemSchema.
func (d *Document) Array(name string, elemSchema *schema.Node, values []any) *Document {
	return d.set(name, schema.Array(elemSchema), values)
}

// Object nests a sub-Document as an Object field.
func (d *Document) Object(name string, nested *Document) *Document {
	node, value := nested.Build()
	return d.set(name, node, value)
}

// Build returns the inferred schema and the assembled value, in the shape
// codec.Encode/Decode already understand.
func (d *Document) Build() (*schema.Node, any) {
	fields := make(map[string]*schema.Node, len(d.fields))
	for k, v := range d.fields {
		fields[k] = v
	}
	values := make(map[string]any, len(d.values))
	for k, v := range d.values {
		values[k] = v
	}
	return schema.Object(fields), values
}

// Encode builds the document and encodes it in one step.
func (d *Document) Encode(includeHeader bool) ([]byte, error) {
	node, value := d.Build()
	return Dumps(value, node, includeHeader)
}
