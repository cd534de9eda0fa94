package codec

import (
	"strconv"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// elem is one position of an ordered compound: the codec+schema to use at
// that position, paired with its value on encode.
type elem struct {
	codec Codec
	node  *schema.Node
}

// ixPlan describes how the dedup engine picks its index-integer codec Ix
// for one call, per §4.3 step 3.
type ixPlan struct {
	width       int
	homogeneous bool // true: N is written first as a full modifier-sized uint
}

// homogeneousIxPlan resolves Ix for a homogeneous Array: "a full
// unsigned-int as per §4.1 modifiers" — base width 2, unsigned, widened or
// narrowed by any "long"/"short" tokens on the Array node itself.
func homogeneousIxPlan(n *schema.Node) (ixPlan, error) {
	width, _, err := wire.ResolveWidth(n.Tokens(), 2, false)
	if err != nil {
		return ixPlan{}, err
	}
	return ixPlan{width: width, homogeneous: true}, nil
}

// fixedArityIxPlan resolves Ix for a fixed-arity compound (heterogeneous
// Array/Tuple/Set, Object): recommended_size(N).
func fixedArityIxPlan(arity int) (ixPlan, error) {
	width, err := wire.RecommendedSize(int64(arity), false)
	if err != nil {
		return ixPlan{}, err
	}
	return ixPlan{width: width, homogeneous: false}, nil
}

// encodeDedup implements §4.3's dedup engine encode direction. elems and
// values are aligned by position. plan.homogeneous controls whether the
// total length is written before the repetition header.
func encodeDedup(elems []elem, values []any, plan ixPlan) ([]byte, error) {
	n := len(elems)
	payloads := make([][]byte, n)
	for i := range elems {
		p, err := elems[i].codec.Encode(values[i], elems[i].node)
		if err != nil {
			return nil, cainerr.WithPath(err, indexSegment(i))
		}
		payloads[i] = p
	}

	// Group positions by identical payload, preserving first-occurrence
	// order so the output is deterministic for equal inputs. Set is the
	// one kind with unordered input, but it only reaches this engine
	// wrapped in a Union, so payload grouping still behaves.
	type group struct {
		payload []byte
		pos     []int
	}
	order := make([]int, 0, n)     // key index in first-seen order
	groups := make(map[string]int) // payload -> index into order/groupList
	var groupList []*group

	for i, p := range payloads {
		key := string(p)
		if gi, ok := groups[key]; ok {
			groupList[gi].pos = append(groupList[gi].pos, i)
			continue
		}
		groups[key] = len(groupList)
		groupList = append(groupList, &group{payload: p, pos: []int{i}})
		order = append(order, len(groupList)-1)
	}

	worthwhile := make([]*group, 0)
	covered := make([]bool, n)
	for _, gi := range order {
		g := groupList[gi]
		if len(g.pos) >= 2 && len(g.payload) > plan.width {
			worthwhile = append(worthwhile, g)
			for _, p := range g.pos {
				covered[p] = true
			}
		}
	}

	buf := wire.Buffer{}
	if plan.homogeneous {
		if !wire.FitsUnsigned(uint64(n), plan.width) {
			return nil, cainerr.New(cainerr.EncodingFailure, "", "", "array length does not fit the resolved index width")
		}
		buf.AppendUint(uint64(n), plan.width)
	}

	buf.AppendUint(uint64(len(worthwhile)), plan.width)

	for _, g := range worthwhile {
		buf.AppendUint(uint64(len(g.pos)), plan.width)
		for _, p := range g.pos {
			buf.AppendUint(uint64(p), plan.width)
		}
		buf.AppendBytes(g.payload)
	}

	for i := 0; i < n; i++ {
		if !covered[i] {
			buf.AppendBytes(payloads[i])
		}
	}

	return buf.Bytes, nil
}

// decodeDedup implements §4.3's dedup engine decode direction. elemAt
// returns the codec+schema to apply at a given position; for a
// homogeneous Array this is constant, for fixed-arity forms it varies per
// position. arity is used directly when plan is not homogeneous.
func decodeDedup(b []byte, elemAt func(i int) elem, arity int, plan ixPlan) ([]any, []byte, error) {
	r := wire.NewReader(b)

	n := arity
	if plan.homogeneous {
		n = int(r.ReadUint(plan.width))
	}

	values := make([]any, n)
	covered := make([]bool, n)

	repCount := int(r.ReadUint(plan.width))
	for rep := 0; rep < repCount; rep++ {
		count := int(r.ReadUint(plan.width))
		if count == 0 {
			return nil, b, cainerr.New(cainerr.DecodingFailure, "", "", "repetition block has zero count")
		}
		indices := make([]int, count)
		for j := 0; j < count; j++ {
			idx := int(r.ReadUint(plan.width))
			if idx < 0 || idx >= n {
				return nil, b, cainerr.New(cainerr.DecodingFailure, "", "", "repetition index out of range")
			}
			indices[j] = idx
		}

		first := elemAt(indices[0])
		firstRemaining := r.Remaining()
		v, rest, err := first.codec.Decode(firstRemaining, first.node)
		if err != nil {
			return nil, b, cainerr.WithPath(err, indexSegment(indices[0]))
		}
		consumed := len(firstRemaining) - len(rest)
		payload := firstRemaining[:consumed]
		r.Read(consumed)

		values[indices[0]] = v
		covered[indices[0]] = true

		for _, idx := range indices[1:] {
			e := elemAt(idx)
			dv, drest, derr := e.codec.Decode(payload, e.node)
			if derr != nil {
				return nil, b, cainerr.WithPath(derr, indexSegment(idx))
			}
			_ = drest
			values[idx] = dv
			covered[idx] = true
		}
	}

	for i := 0; i < n; i++ {
		if covered[i] {
			continue
		}
		e := elemAt(i)
		remaining := r.Remaining()
		v, rest, err := e.codec.Decode(remaining, e.node)
		if err != nil {
			return nil, b, cainerr.WithPath(err, indexSegment(i))
		}
		r.Read(len(remaining) - len(rest))
		values[i] = v
	}

	return values, r.Remaining(), nil
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
