package codec

import (
	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
)

// objectCodec implements §4.5's Object: a fixed-arity positional compound
// over FieldOrder (lexicographic ascending), run through the same dedup
// engine as the other ordered compounds. Every field must be present in
// the input map, including Optional ones — a caller that wants an
// Optional field to encode as absent supplies its key with value nil.
type objectCodec struct{}

func (objectCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Object", "", "value is not a map[string]any")
	}
	if len(n.FieldOrder) == 0 {
		return nil, cainerr.New(cainerr.EncodingFailure, "Object", "", "malformed schema: Object has no fields")
	}

	plan, err := fixedArityIxPlan(len(n.FieldOrder))
	if err != nil {
		return nil, err
	}

	elems := make([]elem, len(n.FieldOrder))
	values := make([]any, len(n.FieldOrder))
	for i, name := range n.FieldOrder {
		field := n.Fields[name]
		codec, cerr := Resolve(field)
		if cerr != nil {
			return nil, cerr
		}
		elems[i] = elem{codec: codec, node: field}

		fv, present := m[name]
		if !present {
			return nil, cainerr.New(cainerr.EncodingFailure, "Object", name, "required field is missing")
		}
		values[i] = fv
	}

	return encodeDedup(elems, values, plan)
}

func (objectCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	if len(n.FieldOrder) == 0 {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Object", "", "malformed schema: Object has no fields")
	}

	plan, err := fixedArityIxPlan(len(n.FieldOrder))
	if err != nil {
		return nil, b, err
	}

	codecs := make([]Codec, len(n.FieldOrder))
	for i, name := range n.FieldOrder {
		cd, cerr := Resolve(n.Fields[name])
		if cerr != nil {
			return nil, b, cerr
		}
		codecs[i] = cd
	}
	elemAt := func(i int) elem { return elem{codec: codecs[i], node: n.Fields[n.FieldOrder[i]]} }

	values, rest, derr := decodeDedup(b, elemAt, len(n.FieldOrder), plan)
	if derr != nil {
		return nil, b, derr
	}

	out := make(map[string]any, len(n.FieldOrder))
	for i, name := range n.FieldOrder {
		out[name] = values[i]
	}
	return out, rest, nil
}
