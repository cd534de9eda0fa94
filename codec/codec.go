// Package codec implements Cain's schema-directed encode/decode engine:
// the recursive codec over every schema.Kind, the dedup engine shared by
// the ordered compounds, and the Type (schema self-description) codec.
package codec

import (
	"errors"
	"fmt"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
)

// Codec is the per-kind encode/decode contract. Encode is deterministic
// for a given (value, node) pair except where input iteration order is
// undefined (Set). Decode consumes a prefix of b and returns the
// unconsumed suffix, so every codec can recurse without knowing the
// total message length.
type Codec interface {
	Encode(v any, n *schema.Node) ([]byte, error)
	Decode(b []byte, n *schema.Node) (any, []byte, error)
}

// registry maps each schema.Kind to its codec singleton. Every codec here
// is stateless: the schema.Node passed to Encode/Decode carries whatever
// per-call configuration (modifiers, children, fields) the codec needs.
var registry = map[schema.Kind]Codec{
	schema.KindNull:          nullCodec{},
	schema.KindBool:          boolCodec{},
	schema.KindChar:          charCodec{},
	schema.KindString:        stringCodec{},
	schema.KindBinary:        binaryCodec{},
	schema.KindInt:           intCodec{},
	schema.KindFloat:         floatCodec{},
	schema.KindDouble:        doubleCodec{},
	schema.KindDecimal:       decimalCodec{},
	schema.KindComplex:       complexCodec{},
	schema.KindDoubleComplex: doubleComplexCodec{},
	schema.KindArray:         arrayCodec{},
	schema.KindTuple:         tupleCodec{},
	schema.KindSet:           setCodec{},
	schema.KindObject:        objectCodec{},
	schema.KindOptional:      optionalCodec{},
	schema.KindUnion:         unionCodec{},
	schema.KindEnum:          enumCodec{},
	schema.KindRange:         rangeCodec{},
	schema.KindType:          TypeCodec{},
}

// Resolve looks up the codec registered for n's kind. Cain schemas are
// always an explicit, already-built tree rather than a host-language type
// reference requiring reflection, so resolution is a straight map lookup;
// an unknown kind is fatal.
func Resolve(n *schema.Node) (Codec, error) {
	if n == nil {
		return nil, cainerr.New(cainerr.UnknownKind, "", "", "nil schema node")
	}
	c, ok := registry[n.Kind]
	if !ok {
		return nil, cainerr.New(cainerr.UnknownKind, n.Kind.String(), "", "no codec registered for kind")
	}
	return c, nil
}

// Encode resolves n's codec and encodes v. A panicking wire.Fault is
// recovered into a DecodingFailure *cainerr.Error; any other returned error
// that is not already a *cainerr.Error is wrapped as an EncodingFailure.
func Encode(v any, n *schema.Node) (out []byte, err error) {
	defer cainerr.Recover(kindName(n), "", &err)
	c, rerr := Resolve(n)
	if rerr != nil {
		return nil, rerr
	}
	out, err = c.Encode(v, n)
	var ce *cainerr.Error
	if err != nil && !errors.As(err, &ce) {
		err = cainerr.Wrap(cainerr.EncodingFailure, kindName(n), "", err)
	}
	return out, err
}

// Decode resolves n's codec and decodes b. Errors leave as *cainerr.Error,
// the same way as Encode's, with DecodingFailure as the wrapping category.
func Decode(b []byte, n *schema.Node) (v any, rest []byte, err error) {
	defer cainerr.Recover(kindName(n), "", &err)
	c, rerr := Resolve(n)
	if rerr != nil {
		return nil, b, rerr
	}
	v, rest, err = c.Decode(b, n)
	var ce *cainerr.Error
	if err != nil && !errors.As(err, &ce) {
		err = cainerr.Wrap(cainerr.DecodingFailure, kindName(n), "", err)
	}
	return v, rest, err
}

func kindName(n *schema.Node) string {
	if n == nil {
		return ""
	}
	return n.Kind.String()
}

// Variant is the value representation of a resolved Union choice: which
// argument index matched, and the inner value.
type Variant struct {
	Index int
	Value any
}

// Range is the value representation of a Range schema's data: a
// (start,stop,step) triple, opaque to Cain beyond its three integers.
type Range struct {
	Start, Stop, Step int64
}

// Set is the value representation of a Set: an ordered slice on the way
// in (encoder iteration order, unspecified but deterministic per-run),
// compared by set-equality on the way out.
type Set []any

// Equal reports set-equality between two Sets: same length, and every
// element of s has a matching element in other under fmt.Sprintf
// structural comparison (Set elements may be of any of the declared
// Union alternative types, so Go's built-in == is not always defined;
// this admits equality checks in tests without requiring comparable
// elements).
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	used := make([]bool, len(other))
	for _, a := range s {
		found := false
		for i, b := range other {
			if used[i] {
				continue
			}
			if fmt.Sprintf("%#v", a) == fmt.Sprintf("%#v", b) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
