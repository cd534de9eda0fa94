package codec

import (
	"fmt"
	"sort"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// enumCodec implements Enum: a recommended-size index over the member
// list, always in sorted order regardless of declaration order, so the
// wire index is stable across schemas built with different literal
// orderings. Cain requires a single comparable literal type per Enum; a
// mixed-type member list is rejected rather than sorted with an ad hoc
// cross-type ordering.
type enumCodec struct{}

func sortedLiterals(n *schema.Node) ([]any, error) {
	lits := n.Literals()
	if len(lits) == 0 {
		return nil, cainerr.New(cainerr.EncodingFailure, "Enum", "", "malformed schema: Enum has no members")
	}
	out := make([]any, len(lits))
	copy(out, lits)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		less, err := literalLess(out[i], out[j])
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

func literalLess(a, b any) (bool, error) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return false, cainerr.New(cainerr.EncodingFailure, "Enum", "", "Enum members are not all the same type")
		}
		return av < bv, nil
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return false, cainerr.New(cainerr.EncodingFailure, "Enum", "", "Enum members are not all the same type")
		}
		return !av && bv, nil
	default:
		af, aok := toEnumNumber(a)
		bf, bok := toEnumNumber(b)
		if !aok || !bok {
			return false, cainerr.New(cainerr.EncodingFailure, "Enum", "", "Enum members are not a supported comparable type")
		}
		return af < bf, nil
	}
}

func toEnumNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func literalEqual(a, b any) bool {
	return fmt.Sprintf("%#v", a) == fmt.Sprintf("%#v", b)
}

func (enumCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	sorted, err := sortedLiterals(n)
	if err != nil {
		return nil, err
	}
	index := -1
	for i, lit := range sorted {
		if literalEqual(lit, v) {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, cainerr.New(cainerr.EncodingFailure, "Enum", "", "value is not a member of this Enum")
	}
	width, err := wire.RecommendedSize(int64(len(sorted)), false)
	if err != nil {
		return nil, err
	}
	buf := wire.Buffer{}
	buf.AppendUint(uint64(index), width)
	return buf.Bytes, nil
}

func (enumCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	sorted, err := sortedLiterals(n)
	if err != nil {
		return nil, b, err
	}
	width, err := wire.RecommendedSize(int64(len(sorted)), false)
	if err != nil {
		return nil, b, err
	}
	r := wire.NewReader(b)
	index := int(r.ReadUint(width))
	if index < 0 || index >= len(sorted) {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Enum", "", "index out of range")
	}
	return sorted[index], r.Remaining(), nil
}
