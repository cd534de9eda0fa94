package codec

import (
	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
)

// arrayCodec implements Array: homogeneous when the schema has one
// child (any length, repeated), heterogeneous fixed-arity when it has more
// than one (exactly that many positional values).
type arrayCodec struct{}

func (arrayCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	values, err := toAnySlice(v, "Array")
	if err != nil {
		return nil, err
	}
	children := n.Children()

	if len(children) == 1 {
		plan, perr := homogeneousIxPlan(n)
		if perr != nil {
			return nil, perr
		}
		codec, cerr := Resolve(children[0])
		if cerr != nil {
			return nil, cerr
		}
		elems := make([]elem, len(values))
		for i := range values {
			elems[i] = elem{codec: codec, node: children[0]}
		}
		return encodeDedup(elems, values, plan)
	}

	if len(values) != len(children) {
		return nil, cainerr.New(cainerr.EncodingFailure, "Array", "", "value length does not match the heterogeneous schema's arity")
	}
	plan, perr := fixedArityIxPlan(len(children))
	if perr != nil {
		return nil, perr
	}
	elems := make([]elem, len(children))
	for i, c := range children {
		codec, cerr := Resolve(c)
		if cerr != nil {
			return nil, cerr
		}
		elems[i] = elem{codec: codec, node: c}
	}
	return encodeDedup(elems, values, plan)
}

func (arrayCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	children := n.Children()

	if len(children) == 1 {
		plan, perr := homogeneousIxPlan(n)
		if perr != nil {
			return nil, b, perr
		}
		codec, cerr := Resolve(children[0])
		if cerr != nil {
			return nil, b, cerr
		}
		elemAt := func(int) elem { return elem{codec: codec, node: children[0]} }
		values, rest, err := decodeDedup(b, elemAt, 0, plan)
		if err != nil {
			return nil, b, err
		}
		return values, rest, nil
	}

	plan, perr := fixedArityIxPlan(len(children))
	if perr != nil {
		return nil, b, perr
	}
	codecs := make([]Codec, len(children))
	for i, c := range children {
		cd, cerr := Resolve(c)
		if cerr != nil {
			return nil, b, cerr
		}
		codecs[i] = cd
	}
	elemAt := func(i int) elem { return elem{codec: codecs[i], node: children[i]} }
	values, rest, err := decodeDedup(b, elemAt, len(children), plan)
	if err != nil {
		return nil, b, err
	}
	return values, rest, nil
}

func toAnySlice(v any, kind string) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case Set:
		return []any(t), nil
	case nil:
		return nil, nil
	default:
		return nil, cainerr.New(cainerr.EncodingFailure, kind, "", "value is not a slice")
	}
}

// tupleCodec implements Tuple: delegates to Array with identical
// arity rules.
type tupleCodec struct{ arrayCodec }

// setCodec implements Set: wraps its declared element types in a Union
// (since any element may be any of them, with no positional typing) and
// delegates to Array. Decoding reconstructs an unordered Set; encoding
// preserves the caller's iteration order, which is unspecified but
// deterministic per-run.
type setCodec struct{}

func (c setCodec) setArray(n *schema.Node) *schema.Node {
	children := n.Children()
	if len(children) == 1 {
		return schema.Array(schema.Union(children[0]))
	}
	return schema.Array(schema.Union(children...))
}

func (c setCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	s, ok := v.(Set)
	if !ok {
		sl, err := toAnySlice(v, "Set")
		if err != nil {
			return nil, err
		}
		s = Set(sl)
	}

	union := n.Children()
	wrapped := make([]any, len(s))
	for i, elv := range s {
		if vr, ok := elv.(Variant); ok {
			wrapped[i] = vr
			continue
		}
		variant, err := matchUnionVariant(elv, union)
		if err != nil {
			return nil, cainerr.WithPath(err, indexSegment(i))
		}
		wrapped[i] = variant
	}

	return arrayCodec{}.Encode(wrapped, c.setArray(n))
}

func (c setCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	v, rest, err := arrayCodec{}.Decode(b, c.setArray(n))
	if err != nil {
		return nil, b, err
	}
	wrapped := v.([]any)
	out := make(Set, len(wrapped))
	for i, wv := range wrapped {
		variant := wv.(Variant)
		out[i] = variant.Value
	}
	return out, rest, nil
}
