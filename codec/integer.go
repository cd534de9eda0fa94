package codec

import (
	"math"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// intCodec implements §4.1/§4.2's generic Int: big-endian two's-complement,
// width/sign resolved from the node's modifier tokens (base width 2 bytes,
// default signed).
type intCodec struct{}

func intWidthSign(n *schema.Node) (width int, signed bool, err error) {
	return wire.ResolveWidth(n.Tokens(), 2, true)
}

// toInt64 coerces any Go integer kind to int64 for range-checking and
// encoding. An out-of-range value is a fatal EncodingFailure rather than
// a silent wraparound.
func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float64:
		// encoding/json decodes every number as float64; accept an
		// integral float here so JSON-sourced values round-trip.
		if t == float64(int64(t)) {
			return int64(t), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (intCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	width, signed, err := intWidthSign(n)
	if err != nil {
		return nil, err
	}
	iv, ok := toInt64(v)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Int", "", "value is not an integer within the int64 range")
	}

	buf := wire.Buffer{}
	if signed {
		if !wire.FitsSigned(iv, width) {
			return nil, cainerr.New(cainerr.EncodingFailure, "Int", "", "value does not fit the chosen signed width")
		}
		buf.AppendInt(iv, width)
	} else {
		if iv < 0 || !wire.FitsUnsigned(uint64(iv), width) {
			return nil, cainerr.New(cainerr.EncodingFailure, "Int", "", "value does not fit the chosen unsigned width")
		}
		buf.AppendUint(uint64(iv), width)
	}
	return buf.Bytes, nil
}

func (intCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	width, signed, err := intWidthSign(n)
	if err != nil {
		return nil, b, err
	}
	r := wire.NewReader(b)
	if signed {
		return r.ReadInt(width), r.Remaining(), nil
	}
	return r.ReadUint(width), r.Remaining(), nil
}
