// Package schema models Cain schema trees as plain data: a closed set of
// kinds, an ordered argument list per node, and a field map for Object
// nodes. Schemas are built once with the constructor functions in this
// package and shared read-only afterwards.
package schema

// Kind identifies one of the fixed family of schema node kinds. The order
// below is the registry order used by the Type codec (codec.TypeCodec) to
// serialise a kind as a single byte index; it is append-only so that new
// kinds never perturb the index of an existing one.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindChar
	KindString
	KindBinary
	KindInt
	KindFloat
	KindDouble
	KindDecimal
	KindComplex
	KindDoubleComplex
	KindArray
	KindTuple
	KindSet
	KindObject
	KindOptional
	KindUnion
	KindEnum
	KindRange
	KindType

	kindCount
)

// Registry lists every kind in registry order, indexed by its Kind value.
// Appending a new kind means adding a new constant above kindCount and a
// new entry here in the same position; existing entries never move.
var Registry = [kindCount]string{
	KindNull:          "Null",
	KindBool:          "Bool",
	KindChar:          "Char",
	KindString:        "String",
	KindBinary:        "Binary",
	KindInt:           "Int",
	KindFloat:         "Float",
	KindDouble:        "Double",
	KindDecimal:       "Decimal",
	KindComplex:       "Complex",
	KindDoubleComplex: "DoubleComplex",
	KindArray:         "Array",
	KindTuple:         "Tuple",
	KindSet:           "Set",
	KindObject:        "Object",
	KindOptional:      "Optional",
	KindUnion:         "Union",
	KindEnum:          "Enum",
	KindRange:         "Range",
	KindType:          "Type",
}

// String returns the registry name for k, or "UnknownKind" if k falls
// outside the registry (a decoded index with no matching entry).
func (k Kind) String() string {
	if int(k) < len(Registry) {
		return Registry[k]
	}
	return "UnknownKind"
}

// KindFromIndex resolves a registry index back to a Kind. ok is false when
// the index names no known kind — the DecodingFailure case for an
// out-of-range Type index.
func KindFromIndex(index uint8) (Kind, bool) {
	if int(index) >= len(Registry) {
		return 0, false
	}
	return Kind(index), true
}
