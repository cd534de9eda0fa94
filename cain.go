// Package cain implements a schema-directed binary data interchange
// format: big-endian, two's-complement, no self-description on the wire
// unless a header is requested. The wire engine lives in codec/schema/wire;
// this package is the small top-level Dumps/Loads/header surface.
package cain

import (
	"io"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/codec"
	"github.com/cainfmt/cain/schema"
)

// Dumps encodes value against s, optionally prefixing a §4.11 header so the
// bytes are self-decoding.
func Dumps(value any, s *schema.Node, includeHeader bool) ([]byte, error) {
	if includeHeader {
		return codec.EncodeHeader(value, s)
	}
	return codec.Encode(value, s)
}

// Dump is Dumps, writing its result to w.
func Dump(w io.Writer, value any, s *schema.Node, includeHeader bool) error {
	b, err := Dumps(value, s, includeHeader)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Loads decodes b against s. If s is nil, b is expected to carry a §4.11
// header and the schema is read from it.
func Loads(b []byte, s *schema.Node) (any, error) {
	if s == nil {
		v, rest, node, err := codec.DecodeHeader(b)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, cainerr.New(cainerr.DecodingFailure, node.Kind.String(), "", "trailing bytes after a header-framed message")
		}
		return v, nil
	}
	v, rest, err := codec.Decode(b, s)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, cainerr.New(cainerr.DecodingFailure, s.Kind.String(), "", "trailing bytes after the decoded value")
	}
	return v, nil
}

// Load is Loads, reading its input fully from r first.
func Load(r io.Reader, s *schema.Node) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Loads(b, s)
}

// EncodeSchema encodes s as ordinary Cain data via §4.10's Type codec, with
// no wrapping header and no payload — just the schema-of-a-schema bytes.
func EncodeSchema(s *schema.Node) ([]byte, error) {
	return codec.Encode(s, schema.Type())
}

// DecodeSchema is the inverse of EncodeSchema.
func DecodeSchema(b []byte) (*schema.Node, error) {
	v, rest, err := codec.Decode(b, schema.Type())
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, cainerr.New(cainerr.DecodingFailure, "Type", "", "trailing bytes after the decoded schema")
	}
	return v.(*schema.Node), nil
}
