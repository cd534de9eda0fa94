package schema

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// yamlNode is the textual schema-description shape ParseYAML/ToYAML
// read and write: a small declarative DSL over the same kinds the
// constructor functions in node.go build, used by `cain schema export
// --format yaml` and by the CLI's --schema-yaml/--schema-var/--schema-expr
// sources (see cmd/cain's schemasrc.go).
type yamlNode struct {
	Kind     string               `yaml:"kind"`
	Name     string               `yaml:"name,omitempty"`
	Mods     []string             `yaml:"mods,omitempty"`
	Children []yamlNode           `yaml:"children,omitempty"`
	Fields   map[string]yamlNode  `yaml:"fields,omitempty"`
	Literals []any                `yaml:"literals,omitempty"`
}

// ParseYAML parses the small schema-description DSL (see yamlNode) into a
// schema tree.
func ParseYAML(data []byte) (*Node, error) {
	var yn yamlNode
	if err := yaml.Unmarshal(data, &yn); err != nil {
		return nil, fmt.Errorf("parsing schema YAML: %w", err)
	}
	return fromYAMLNode(yn)
}

func fromYAMLNode(yn yamlNode) (*Node, error) {
	children := make([]*Node, len(yn.Children))
	for i, c := range yn.Children {
		cn, err := fromYAMLNode(c)
		if err != nil {
			return nil, err
		}
		children[i] = cn
	}

	var n *Node
	switch yn.Kind {
	case "Null":
		n = Null()
	case "Bool":
		n = Bool()
	case "Char":
		n = Char()
	case "String":
		n = String()
	case "Decimal":
		n = Decimal()
	case "Float":
		n = Float()
	case "Double":
		n = Double()
	case "Complex":
		n = Complex()
	case "DoubleComplex":
		n = DoubleComplex()
	case "Binary":
		n = Binary(yn.Mods...)
	case "Int":
		n = Int(yn.Mods...)
	case "Range":
		n = Range(yn.Mods...)
	case "Array":
		n = Array(children...)
	case "Tuple":
		n = Tuple(children...)
	case "Set":
		n = Set(children...)
	case "Optional":
		n = Optional(children...)
	case "Union":
		n = Union(children...)
	case "Enum":
		n = Enum(yn.Literals...)
	case "Type":
		n = Type()
	case "Object":
		fields := make(map[string]*Node, len(yn.Fields))
		for name, fyn := range yn.Fields {
			fn, err := fromYAMLNode(fyn)
			if err != nil {
				return nil, err
			}
			fields[name] = fn
		}
		n = Object(fields)
	default:
		return nil, fmt.Errorf("unknown schema kind %q", yn.Kind)
	}

	if yn.Name != "" {
		n = Rename(n, yn.Name)
	}
	return n, nil
}

// ToYAML renders n back into the schema-description DSL ParseYAML reads.
func ToYAML(n *Node) ([]byte, error) {
	yn := toYAMLNode(n)
	out, err := yaml.Marshal(yn)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema YAML: %w", err)
	}
	return out, nil
}

func toYAMLNode(n *Node) yamlNode {
	yn := yamlNode{Kind: n.Kind.String()}
	if n.Renamed {
		yn.Name = n.Name
	}
	if toks := n.Tokens(); len(toks) > 0 {
		yn.Mods = toks
	}
	if lits := n.Literals(); len(lits) > 0 {
		yn.Literals = lits
	}
	if children := n.Children(); len(children) > 0 {
		yn.Children = make([]yamlNode, len(children))
		for i, c := range children {
			yn.Children[i] = toYAMLNode(c)
		}
	}
	if len(n.FieldOrder) > 0 {
		yn.Fields = make(map[string]yamlNode, len(n.FieldOrder))
		for _, name := range n.FieldOrder {
			yn.Fields[name] = toYAMLNode(n.Fields[name])
		}
	}
	return yn
}
