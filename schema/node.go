package schema

import "sort"

// argKind distinguishes the three shapes an argument list slot can hold.
type argKind uint8

const (
	argKindNode argKind = iota
	argKindToken
	argKindLiteral
)

// Arg is one entry of a node's ordered argument list: a nested schema, a
// string token (width/sign modifiers such as "long" or "signed"), or a
// literal value (an Enum member of any type, strings included). Exactly
// one of the three is populated, selected by kind.
type Arg struct {
	node    *Node
	token   string
	literal any
	kind    argKind
}

// ArgNode wraps a child schema as an argument list entry.
func ArgNode(n *Node) Arg { return Arg{kind: argKindNode, node: n} }

// ArgToken wraps a string modifier/keyword as an argument list entry.
func ArgToken(s string) Arg { return Arg{kind: argKindToken, token: s} }

// ArgLiteral wraps an arbitrary comparable literal (an Enum member) as an
// argument list entry.
func ArgLiteral(v any) Arg { return Arg{kind: argKindLiteral, literal: v} }

// IsNode reports whether this argument carries a child schema.
func (a Arg) IsNode() bool { return a.kind == argKindNode }

// IsToken reports whether this argument carries a string token.
func (a Arg) IsToken() bool { return a.kind == argKindToken }

// IsLiteral reports whether this argument carries a literal value.
func (a Arg) IsLiteral() bool { return a.kind == argKindLiteral }

// Node returns the child schema, or nil if this argument is not a node.
func (a Arg) Node() *Node { return a.node }

// Token returns the string token, or "" if this argument is not a token.
func (a Arg) Token() string { return a.token }

// Literal returns the literal value, or nil if this argument is not a literal.
func (a Arg) Literal() any { return a.literal }

// Equal reports structural equality between two arguments.
func (a Arg) Equal(b Arg) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case argKindNode:
		return a.node.Equal(b.node)
	case argKindToken:
		return a.token == b.token
	default:
		return a.literal == b.literal
	}
}

// Node is one element of a schema tree. It is immutable once returned from
// a constructor function and safe to share across goroutines and across
// many encode/decode calls.
type Node struct {
	Kind Kind
	Args []Arg

	// Fields and FieldOrder are populated only for KindObject. FieldOrder
	// is the lexicographic ascending sort of the keys in Fields — the
	// positional order the Object codec drives the dedup engine with.
	Fields     map[string]*Node
	FieldOrder []string

	// Name overrides the kind's default registry name when the node was
	// built with Rename. Renamed is false for the common case.
	Name    string
	Renamed bool
}

// Equal reports whether two schema trees are structurally identical: same
// kind, same rename, same arguments (recursively), and for Object nodes the
// same field names mapped to structurally-equal child schemas.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.Kind != other.Kind || n.Renamed != other.Renamed || n.Name != other.Name {
		return false
	}
	if len(n.Args) != len(other.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	if len(n.FieldOrder) != len(other.FieldOrder) {
		return false
	}
	for i, name := range n.FieldOrder {
		if other.FieldOrder[i] != name {
			return false
		}
		if !n.Fields[name].Equal(other.Fields[name]) {
			return false
		}
	}
	return true
}

// Rename returns a copy of n with its wire/Type-codec name overridden.
func Rename(n *Node, name string) *Node {
	cp := *n
	cp.Name = name
	cp.Renamed = true
	return &cp
}

// Tokens returns the string-token arguments of n, in order, ignoring any
// node or literal arguments. Used by the integer sizing policy and the
// Binary/Range codecs to read their width/sign modifiers.
func (n *Node) Tokens() []string {
	var out []string
	for _, a := range n.Args {
		if a.IsToken() {
			out = append(out, a.token)
		}
	}
	return out
}

// Children returns the node-valued arguments of n, in order, ignoring any
// token or literal arguments. Used by Array/Tuple/Set/Optional/Union to
// read their child schemas.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, a := range n.Args {
		if a.IsNode() {
			out = append(out, a.node)
		}
	}
	return out
}

// Literals returns the literal-valued arguments of n, in declaration order.
// Used by Enum.
func (n *Node) Literals() []any {
	out := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		if a.IsLiteral() {
			out = append(out, a.literal)
		}
	}
	return out
}

// Null builds a Null schema node.
func Null() *Node { return &Node{Kind: KindNull} }

// Bool builds a Bool schema node.
func Bool() *Node { return &Node{Kind: KindBool} }

// Char builds a Char schema node.
func Char() *Node { return &Node{Kind: KindChar} }

// String builds a String schema node.
func String() *Node { return &Node{Kind: KindString} }

// Decimal builds a Decimal schema node (textual decimal, encoded as String).
func Decimal() *Node { return &Node{Kind: KindDecimal} }

// Float builds a Float (IEEE-754 binary32) schema node.
func Float() *Node { return &Node{Kind: KindFloat} }

// Double builds a Double (IEEE-754 binary64) schema node.
func Double() *Node { return &Node{Kind: KindDouble} }

// Complex builds a Complex (two binary32) schema node.
func Complex() *Node { return &Node{Kind: KindComplex} }

// DoubleComplex builds a DoubleComplex (two binary64) schema node.
func DoubleComplex() *Node { return &Node{Kind: KindDoubleComplex} }

// Binary builds a Binary schema node. mods are width modifiers ("long"
// widens the length prefix by one byte, "short" narrows it by one byte)
// applied to the default 4-byte unsigned length prefix.
func Binary(mods ...string) *Node {
	return &Node{Kind: KindBinary, Args: tokenArgs(mods)}
}

// Int builds a generic Int schema node. mods may contain "long"/"short"
// (each widens/narrows the default 2-byte width by one byte) and
// "signed"/"unsigned" (overrides the default signed flag).
func Int(mods ...string) *Node {
	return &Node{Kind: KindInt, Args: tokenArgs(mods)}
}

// Int8 builds a fixed 1-byte signed integer schema node. Unlike Int, the
// named fixed-width constructors take no modifiers.
func Int8() *Node { return &Node{Kind: KindInt, Args: tokenArgs([]string{"short"})} }

// Int16 builds a fixed 2-byte signed integer schema node.
func Int16() *Node { return &Node{Kind: KindInt} }

// Int32 builds a fixed 4-byte signed integer schema node.
func Int32() *Node { return &Node{Kind: KindInt, Args: tokenArgs([]string{"long", "long"})} }

// Int64 builds a fixed 8-byte signed integer schema node.
func Int64() *Node {
	return &Node{Kind: KindInt, Args: tokenArgs([]string{"long", "long", "long", "long", "long", "long"})}
}

// UInt8 builds a fixed 1-byte unsigned integer schema node.
func UInt8() *Node { return &Node{Kind: KindInt, Args: tokenArgs([]string{"short", "unsigned"})} }

// UInt16 builds a fixed 2-byte unsigned integer schema node.
func UInt16() *Node { return &Node{Kind: KindInt, Args: tokenArgs([]string{"unsigned"})} }

// UInt32 builds a fixed 4-byte unsigned integer schema node.
func UInt32() *Node {
	return &Node{Kind: KindInt, Args: tokenArgs([]string{"long", "long", "unsigned"})}
}

// UInt64 builds a fixed 8-byte unsigned integer schema node.
func UInt64() *Node {
	return &Node{Kind: KindInt, Args: tokenArgs([]string{"long", "long", "long", "long", "long", "long", "unsigned"})}
}

// Range builds a Range schema node: a (start,stop,step) triple. mods widen
// or narrow the default 1-byte signed width applied to all three members.
func Range(mods ...string) *Node {
	return &Node{Kind: KindRange, Args: tokenArgs(mods)}
}

// Array builds an Array schema node. A single child makes it homogeneous
// (any length, the child schema repeated); more than one child makes it
// heterogeneous fixed-arity (exactly len(children) values, positional).
func Array(children ...*Node) *Node {
	return &Node{Kind: KindArray, Args: nodeArgs(children)}
}

// Tuple builds a Tuple schema node. Tuple delegates to Array with the same
// arity rules.
func Tuple(children ...*Node) *Node {
	return &Node{Kind: KindTuple, Args: nodeArgs(children)}
}

// Set builds a Set schema node over the given element type alternatives.
// Set wraps its children in a Union before delegating to Array, because set
// elements may be any of the declared types.
func Set(children ...*Node) *Node {
	return &Node{Kind: KindSet, Args: nodeArgs(children)}
}

// Object builds an Object schema node from a field-name-to-schema map.
// FieldOrder is computed immediately as the lexicographic ascending sort of
// the field names — the order the dedup engine positions fields in.
func Object(fields map[string]*Node) *Node {
	order := make([]string, 0, len(fields))
	for name := range fields {
		order = append(order, name)
	}
	sort.Strings(order)
	return &Node{Kind: KindObject, Fields: fields, FieldOrder: order}
}

// Optional builds an Optional schema node. A single alternative is used
// directly as the inner codec; more than one alternative is wrapped in a
// Union automatically.
func Optional(alternatives ...*Node) *Node {
	if len(alternatives) == 1 {
		return &Node{Kind: KindOptional, Args: nodeArgs(alternatives)}
	}
	return &Node{Kind: KindOptional, Args: []Arg{ArgNode(Union(alternatives...))}}
}

// Union builds a Union schema node. A single argument makes it a
// transparent, zero-overhead passthrough for that type.
func Union(alternatives ...*Node) *Node {
	return &Node{Kind: KindUnion, Args: nodeArgs(alternatives)}
}

// Enum builds an Enum schema node from a non-empty, possibly-unsorted list
// of literal values. The codec always sorts them before use, so the
// argument list order here is for round-tripping through the Type codec
// only — not the order the wire index is computed against.
func Enum(literals ...any) *Node {
	args := make([]Arg, len(literals))
	for i, l := range literals {
		args[i] = ArgLiteral(l)
	}
	return &Node{Kind: KindEnum, Args: args}
}

// Type builds a Type schema node — the schema-of-schemas kind used to
// encode a Node tree as ordinary Cain data (see codec.TypeCodec).
func Type() *Node { return &Node{Kind: KindType} }

func tokenArgs(toks []string) []Arg {
	if len(toks) == 0 {
		return nil
	}
	args := make([]Arg, len(toks))
	for i, t := range toks {
		args[i] = ArgToken(t)
	}
	return args
}

func nodeArgs(nodes []*Node) []Arg {
	if len(nodes) == 0 {
		return nil
	}
	args := make([]Arg, len(nodes))
	for i, n := range nodes {
		args[i] = ArgNode(n)
	}
	return args
}
