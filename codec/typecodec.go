package codec

import (
	"fmt"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
)

// TypeCodec implements the Type codec: a schema node encodes as an
// Object record of (index, optional rename, annotation keys/values,
// positional arguments), letting schemas of schemas — including the Type
// kind's own registry entry — round-trip through ordinary Cain data.
//
// Enum's literal arguments have no dedicated slot in the record (the
// arguments field is Array[Union[String, Type]]); they are carried through
// the String alternative via their default string form. A schema
// round-tripped through TypeCodec therefore always holds string Enum
// literals, even if the original schema held some other comparable type.
type TypeCodec struct{}

func typeRecordSchema() *schema.Node {
	return schema.Object(map[string]*schema.Node{
		"index":             schema.UInt8(),
		"name":              schema.Optional(schema.String()),
		"annotation_keys":   schema.Array(schema.String()),
		"annotation_values": schema.Array(schema.Type()),
		"arguments":         schema.Array(schema.Union(schema.String(), schema.Type())),
	})
}

func (TypeCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	node, ok := v.(*schema.Node)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Type", "", "value is not a *schema.Node")
	}
	if node == nil {
		return nil, cainerr.New(cainerr.EncodingFailure, "Type", "", "nil schema node")
	}

	var name any
	if node.Renamed {
		name = node.Name
	}

	keys := make([]any, len(node.FieldOrder))
	values := make([]any, len(node.FieldOrder))
	for i, fname := range node.FieldOrder {
		keys[i] = fname
		values[i] = node.Fields[fname]
	}

	args := make([]any, 0, len(node.Args))
	for _, a := range node.Args {
		switch {
		case a.IsToken():
			args = append(args, Variant{Index: 0, Value: a.Token()})
		case a.IsNode():
			args = append(args, Variant{Index: 1, Value: a.Node()})
		case a.IsLiteral():
			args = append(args, Variant{Index: 0, Value: literalToString(a.Literal())})
		}
	}

	m := map[string]any{
		"index":             uint64(node.Kind),
		"name":              name,
		"annotation_keys":   keys,
		"annotation_values": values,
		"arguments":         args,
	}

	return objectCodec{}.Encode(m, typeRecordSchema())
}

func (TypeCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	v, rest, err := objectCodec{}.Decode(b, typeRecordSchema())
	if err != nil {
		return nil, b, err
	}
	m := v.(map[string]any)

	kind, ok := schema.KindFromIndex(uint8(m["index"].(uint64)))
	if !ok {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Type", "", "registry index out of range")
	}

	node := &schema.Node{Kind: kind}
	if name, ok := m["name"].(string); ok {
		node.Name = name
		node.Renamed = true
	}

	keysAny := m["annotation_keys"].([]any)
	valuesAny := m["annotation_values"].([]any)
	if len(keysAny) != len(valuesAny) {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Type", "", "annotation_keys and annotation_values length mismatch")
	}
	if len(keysAny) > 0 {
		fields := make(map[string]*schema.Node, len(keysAny))
		order := make([]string, len(keysAny))
		for i := range keysAny {
			name := keysAny[i].(string)
			order[i] = name
			fields[name] = valuesAny[i].(*schema.Node)
		}
		node.Fields = fields
		node.FieldOrder = order
	}

	argsAny := m["arguments"].([]any)
	if len(argsAny) > 0 {
		node.Args = make([]schema.Arg, len(argsAny))
		for i, raw := range argsAny {
			variant := raw.(Variant)
			if kind == schema.KindEnum {
				node.Args[i] = schema.ArgLiteral(variant.Value.(string))
				continue
			}
			switch variant.Index {
			case 0:
				node.Args[i] = schema.ArgToken(variant.Value.(string))
			case 1:
				node.Args[i] = schema.ArgNode(variant.Value.(*schema.Node))
			default:
				return nil, b, cainerr.New(cainerr.DecodingFailure, "Type", "", "argument variant index out of range")
			}
		}
	}

	return node, rest, nil
}

func literalToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
