package schema

import (
	"strings"
	"testing"
)

func TestTokensChildrenLiterals(t *testing.T) {
	n := Int("long", "unsigned")
	if got := n.Tokens(); len(got) != 2 || got[0] != "long" || got[1] != "unsigned" {
		t.Fatalf("Tokens() = %v", got)
	}

	arr := Array(String(), Bool())
	children := arr.Children()
	if len(children) != 2 || children[0].Kind != KindString || children[1].Kind != KindBool {
		t.Fatalf("Children() = %#v", children)
	}

	e := Enum("a", "b", "c")
	if got := e.Literals(); len(got) != 3 {
		t.Fatalf("Literals() = %v", got)
	}
}

func TestArrayArityFromChildCount(t *testing.T) {
	homogeneous := Array(String())
	if len(homogeneous.Children()) != 1 {
		t.Fatalf("expected a single child for a homogeneous Array")
	}

	fixed := Tuple(String(), Int(), Bool())
	if len(fixed.Children()) != 3 {
		t.Fatalf("expected three children for a fixed-arity Tuple")
	}
}

func TestOptionalCollapsesSingleAlternative(t *testing.T) {
	opt := Optional(String())
	children := opt.Children()
	if len(children) != 1 || children[0].Kind != KindString {
		t.Fatalf("Optional(String()) should carry String directly, got %#v", children)
	}
}

func TestOptionalWrapsMultipleAlternatives(t *testing.T) {
	opt := Optional(String(), Int())
	children := opt.Children()
	if len(children) != 1 || children[0].Kind != KindUnion {
		t.Fatalf("Optional(String(),Int()) should wrap a Union, got %#v", children)
	}
	if len(children[0].Children()) != 2 {
		t.Fatalf("expected the inner Union to carry both alternatives")
	}
}

func TestFixedWidthIntConstructors(t *testing.T) {
	cases := []struct {
		node   *Node
		tokens []string
	}{
		{Int8(), []string{"short"}},
		{Int16(), nil},
		{Int32(), []string{"long", "long"}},
		{Int64(), []string{"long", "long", "long", "long", "long", "long"}},
		{UInt8(), []string{"short", "unsigned"}},
		{UInt16(), []string{"unsigned"}},
		{UInt32(), []string{"long", "long", "unsigned"}},
		{UInt64(), []string{"long", "long", "long", "long", "long", "long", "unsigned"}},
	}
	for _, c := range cases {
		got := c.node.Tokens()
		if len(got) != len(c.tokens) {
			t.Fatalf("Tokens() = %v, want %v", got, c.tokens)
		}
		for i := range got {
			if got[i] != c.tokens[i] {
				t.Fatalf("Tokens() = %v, want %v", got, c.tokens)
			}
		}
	}
}

func TestObjectFieldOrderIsSortedAscending(t *testing.T) {
	n := Object(map[string]*Node{
		"zebra": Bool(),
		"alpha": Bool(),
		"mango": Bool(),
	})
	want := []string{"alpha", "mango", "zebra"}
	if len(n.FieldOrder) != len(want) {
		t.Fatalf("FieldOrder = %v", n.FieldOrder)
	}
	for i, name := range want {
		if n.FieldOrder[i] != name {
			t.Fatalf("FieldOrder = %v, want %v", n.FieldOrder, want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Object(map[string]*Node{"x": Int(), "y": Optional(String())})
	b := Object(map[string]*Node{"x": Int(), "y": Optional(String())})
	c := Object(map[string]*Node{"x": Int(), "y": String()})

	if !a.Equal(b) {
		t.Fatal("expected structurally identical trees to be Equal")
	}
	if a.Equal(c) {
		t.Fatal("did not expect trees with different field schemas to be Equal")
	}
}

func TestRename(t *testing.T) {
	n := Rename(String(), "Email")
	if !n.Renamed || n.Name != "Email" {
		t.Fatalf("got %#v", n)
	}
	if n.Kind != KindString {
		t.Fatal("Rename should not change the underlying kind")
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	if got := Kind(250).String(); got != "UnknownKind" {
		t.Fatalf("got %q, want UnknownKind", got)
	}
}

func TestKindFromIndexRoundTrip(t *testing.T) {
	for k := Kind(0); int(k) < len(Registry); k++ {
		idx := uint8(k)
		got, ok := KindFromIndex(idx)
		if !ok || got != k {
			t.Fatalf("KindFromIndex(%d) = (%v,%v)", idx, got, ok)
		}
	}
	if _, ok := KindFromIndex(255); ok {
		t.Fatal("expected KindFromIndex(255) to fail")
	}
}

func TestDescribeObjectTree(t *testing.T) {
	n := Object(map[string]*Node{
		"name": String(),
		"age":  Int(),
	})
	out := Describe(n)
	if !strings.Contains(out, "Object {") {
		t.Fatalf("expected an Object header, got %q", out)
	}
	if !strings.Contains(out, "age:") || !strings.Contains(out, "name:") {
		t.Fatalf("expected both field names, got %q", out)
	}
}

func TestDescribeEnum(t *testing.T) {
	out := Describe(Enum("red", "green"))
	if !strings.Contains(out, "Enum[red, green]") {
		t.Fatalf("got %q", out)
	}
}

func TestDescribeNil(t *testing.T) {
	if got := Describe(nil); !strings.Contains(got, "<nil>") {
		t.Fatalf("got %q", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	n := Object(map[string]*Node{
		"id":   UInt64(),
		"name": String(),
		"tags": Optional(Array(String())),
	})

	b, err := ToYAML(n)
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	got, err := ParseYAML(b)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if !n.Equal(got) {
		t.Fatalf("YAML round trip changed the schema:\n%s", b)
	}
}

func TestYAMLRoundTripEnumAndRename(t *testing.T) {
	n := Rename(Enum("a", "b", "c"), "Choice")
	b, err := ToYAML(n)
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	got, err := ParseYAML(b)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if !n.Equal(got) {
		t.Fatalf("YAML round trip changed the schema:\n%s", b)
	}
}

func TestParseYAMLUnknownKind(t *testing.T) {
	_, err := ParseYAML([]byte("kind: NotAKind\n"))
	if err == nil {
		t.Fatal("expected an error for an unrecognised schema kind")
	}
}

func TestToJSONSchemaPrimitives(t *testing.T) {
	cases := []struct {
		node *Node
		want string
	}{
		{Null(), "null"},
		{Bool(), "boolean"},
		{String(), "string"},
		{Int(), "integer"},
		{Double(), "number"},
	}
	for _, c := range cases {
		got := ToJSONSchema(c.node)
		if got.Type != c.want {
			t.Fatalf("ToJSONSchema(%v).Type = %q, want %q", c.node.Kind, got.Type, c.want)
		}
	}
}

func TestToJSONSchemaObject(t *testing.T) {
	n := Object(map[string]*Node{
		"name":     String(),
		"nickname": Optional(String()),
	})
	s := ToJSONSchema(n)
	if s.Type != "object" {
		t.Fatalf("got type %q", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "name" {
		t.Fatalf("Required = %v, want [name]", s.Required)
	}
	if _, ok := s.Properties["nickname"]; !ok {
		t.Fatal("expected nickname to still appear in Properties")
	}
}
