package codec

import (
	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// rangeCodec implements §4.9's Range: a (start, stop, step) triple, each
// member encoded with the same width/sign as the generic Int codec would
// use, but with a 1-byte signed default rather than Int's 2-byte default.
type rangeCodec struct{}

func rangeWidthSign(n *schema.Node) (width int, signed bool, err error) {
	return wire.ResolveWidth(n.Tokens(), 1, true)
}

func (rangeCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	rg, ok := v.(Range)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Range", "", "value is not a Range")
	}
	width, signed, err := rangeWidthSign(n)
	if err != nil {
		return nil, err
	}

	buf := wire.Buffer{}
	for _, member := range [3]int64{rg.Start, rg.Stop, rg.Step} {
		if signed {
			if !wire.FitsSigned(member, width) {
				return nil, cainerr.New(cainerr.EncodingFailure, "Range", "", "member does not fit the chosen signed width")
			}
			buf.AppendInt(member, width)
		} else {
			if member < 0 || !wire.FitsUnsigned(uint64(member), width) {
				return nil, cainerr.New(cainerr.EncodingFailure, "Range", "", "member does not fit the chosen unsigned width")
			}
			buf.AppendUint(uint64(member), width)
		}
	}
	return buf.Bytes, nil
}

func (rangeCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	width, signed, err := rangeWidthSign(n)
	if err != nil {
		return nil, b, err
	}
	r := wire.NewReader(b)
	var members [3]int64
	for i := range members {
		if signed {
			members[i] = r.ReadInt(width)
		} else {
			members[i] = int64(r.ReadUint(width))
		}
	}
	return Range{Start: members[0], Stop: members[1], Step: members[2]}, r.Remaining(), nil
}
