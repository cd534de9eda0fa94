package schema

import "github.com/google/jsonschema-go/jsonschema"

// ToJSONSchema renders a best-effort JSON Schema (Draft 7, via the same
// library the rest of the example pack uses to generate one from YAML)
// view of n, for human inspection through `cain schema export --format
// jsonschema`. The mapping is lossy: Cain's width/sign modifiers, Range,
// Set-vs-Array, and Type itself have no JSON Schema equivalent and are
// rendered as their closest approximation.
func ToJSONSchema(n *Node) *jsonschema.Schema {
	if n == nil {
		return &jsonschema.Schema{}
	}

	switch n.Kind {
	case KindNull:
		return &jsonschema.Schema{Type: "null"}
	case KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case KindChar, KindString, KindBinary, KindDecimal:
		return &jsonschema.Schema{Type: "string"}
	case KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case KindFloat, KindDouble, KindComplex, KindDoubleComplex:
		return &jsonschema.Schema{Type: "number"}
	case KindArray, KindTuple, KindSet:
		children := n.Children()
		s := &jsonschema.Schema{Type: "array"}
		if len(children) > 0 {
			s.Items = ToJSONSchema(children[0])
		}
		return s
	case KindObject:
		s := &jsonschema.Schema{
			Type:       "object",
			Properties: make(map[string]*jsonschema.Schema, len(n.FieldOrder)),
		}
		for _, name := range n.FieldOrder {
			field := n.Fields[name]
			s.Properties[name] = ToJSONSchema(field)
			if field.Kind != KindOptional {
				s.Required = append(s.Required, name)
			}
		}
		return s
	case KindOptional:
		children := n.Children()
		if len(children) == 1 {
			return ToJSONSchema(children[0])
		}
		return &jsonschema.Schema{}
	case KindUnion:
		children := n.Children()
		s := &jsonschema.Schema{}
		for _, c := range children {
			s.AnyOf = append(s.AnyOf, ToJSONSchema(c))
		}
		return s
	case KindEnum:
		s := &jsonschema.Schema{}
		s.Enum = n.Literals()
		return s
	case KindRange:
		return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "integer"}}
	case KindType:
		return &jsonschema.Schema{Type: "object"}
	default:
		return &jsonschema.Schema{}
	}
}
