package codec

import (
	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// optionalCodec implements §4.6's Optional: a one-byte presence flag (0x00
// absent, 0x01 present) followed by the inner value when present. Optional
// always has exactly one child — either the sole alternative type, or a
// Union node when Optional was built from more than one alternative.
type optionalCodec struct{}

func (optionalCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	children := n.Children()
	if len(children) != 1 {
		return nil, cainerr.New(cainerr.EncodingFailure, "Optional", "", "malformed schema: Optional must have exactly one child")
	}
	if v == nil {
		return []byte{0}, nil
	}
	inner := children[0]
	codec, err := Resolve(inner)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Encode(v, inner)
	if err != nil {
		return nil, err
	}
	buf := wire.Buffer{}
	buf.AppendByte(1)
	buf.AppendBytes(payload)
	return buf.Bytes, nil
}

func (optionalCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	children := n.Children()
	if len(children) != 1 {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Optional", "", "malformed schema: Optional must have exactly one child")
	}
	r := wire.NewReader(b)
	flag := r.ReadByte()
	switch flag {
	case 0:
		return nil, r.Remaining(), nil
	case 1:
		inner := children[0]
		codec, err := Resolve(inner)
		if err != nil {
			return nil, b, err
		}
		v, rest, err := codec.Decode(r.Remaining(), inner)
		if err != nil {
			return nil, b, err
		}
		return v, rest, nil
	default:
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Optional", "", "presence byte is neither 0x00 nor 0x01")
	}
}

// unionCodec implements §4.7's Union: a single alternative is a transparent,
// zero-overhead passthrough; more than one alternative is prefixed by a
// recommended_size discriminant over [0, len(alternatives)-1].
type unionCodec struct{}

func (unionCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, cainerr.New(cainerr.EncodingFailure, "Union", "", "malformed schema: Union has no alternatives")
	}

	variant, ok := v.(Variant)
	if !ok {
		var err error
		variant, err = matchUnionVariant(v, children)
		if err != nil {
			return nil, err
		}
	}
	if variant.Index < 0 || variant.Index >= len(children) {
		return nil, cainerr.New(cainerr.EncodingFailure, "Union", "", "variant index out of range")
	}

	inner := children[variant.Index]
	codec, err := Resolve(inner)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Encode(variant.Value, inner)
	if err != nil {
		return nil, cainerr.WithPath(err, indexSegment(variant.Index))
	}

	if len(children) == 1 {
		return payload, nil
	}

	width, err := wire.RecommendedSize(int64(len(children)), false)
	if err != nil {
		return nil, err
	}
	buf := wire.Buffer{}
	buf.AppendUint(uint64(variant.Index), width)
	buf.AppendBytes(payload)
	return buf.Bytes, nil
}

func (unionCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Union", "", "malformed schema: Union has no alternatives")
	}

	if len(children) == 1 {
		codec, err := Resolve(children[0])
		if err != nil {
			return nil, b, err
		}
		v, rest, err := codec.Decode(b, children[0])
		if err != nil {
			return nil, b, err
		}
		return Variant{Index: 0, Value: v}, rest, nil
	}

	width, err := wire.RecommendedSize(int64(len(children)), false)
	if err != nil {
		return nil, b, err
	}
	r := wire.NewReader(b)
	index := int(r.ReadUint(width))
	if index < 0 || index >= len(children) {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Union", "", "discriminant out of range")
	}
	inner := children[index]
	codec, err := Resolve(inner)
	if err != nil {
		return nil, b, err
	}
	v, rest, err := codec.Decode(r.Remaining(), inner)
	if err != nil {
		return nil, b, cainerr.WithPath(err, indexSegment(index))
	}
	return Variant{Index: index, Value: v}, rest, nil
}

// matchUnionVariant finds the first alternative that can encode v,
// attempting each in declaration order. Used when the caller supplies a
// raw value instead of an explicit Variant (every plain Go value inserted
// into a Set, or an unambiguous Union field value).
func matchUnionVariant(v any, children []*schema.Node) (Variant, error) {
	var lastErr error
	for i, c := range children {
		codec, err := Resolve(c)
		if err != nil {
			return Variant{}, err
		}
		payload, err := codec.Encode(v, c)
		if err == nil {
			_ = payload
			return Variant{Index: i, Value: v}, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = cainerr.New(cainerr.EncodingFailure, "Union", "", "no alternative matched")
	}
	return Variant{}, cainerr.Wrap(cainerr.EncodingFailure, "Union", "", lastErr)
}
