package codec

import (
	"fmt"
	"strings"

	"github.com/cainfmt/cain/schema"
)

// Inspect walks a header-framed document and renders its schema and
// values as an indented tree. It is used by the CLI's default mode.
func Inspect(b []byte) (string, error) {
	v, rest, node, err := DecodeHeader(b)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(schema.Describe(node))
	out.WriteString("\n")
	writeValue(&out, node, v, "")
	if len(rest) > 0 {
		fmt.Fprintf(&out, "\n(%d trailing byte(s) ignored)\n", len(rest))
	}
	return out.String(), nil
}

func writeValue(out *strings.Builder, n *schema.Node, v any, indent string) {
	switch n.Kind {
	case schema.KindObject:
		m, _ := v.(map[string]any)
		for _, name := range n.FieldOrder {
			fmt.Fprintf(out, "%s%s:\n", indent, name)
			writeValue(out, n.Fields[name], m[name], indent+"  ")
		}
	case schema.KindArray, schema.KindTuple:
		values, _ := v.([]any)
		children := n.Children()
		for i, ev := range values {
			child := children[0]
			if len(children) > 1 {
				child = children[i]
			}
			fmt.Fprintf(out, "%s[%d]:\n", indent, i)
			writeValue(out, child, ev, indent+"  ")
		}
	case schema.KindSet:
		s, _ := v.(Set)
		for i, ev := range s {
			fmt.Fprintf(out, "%s{%d}: %v\n", indent, i, ev)
		}
	case schema.KindOptional:
		if v == nil {
			fmt.Fprintf(out, "%s<absent>\n", indent)
			return
		}
		writeValue(out, n.Children()[0], v, indent)
	case schema.KindUnion:
		variant, ok := v.(Variant)
		if !ok {
			fmt.Fprintf(out, "%s%v\n", indent, v)
			return
		}
		children := n.Children()
		if variant.Index < len(children) {
			writeValue(out, children[variant.Index], variant.Value, indent)
			return
		}
		fmt.Fprintf(out, "%s%v\n", indent, variant.Value)
	case schema.KindRange:
		rg, ok := v.(Range)
		if !ok {
			fmt.Fprintf(out, "%s%v\n", indent, v)
			return
		}
		fmt.Fprintf(out, "%sstart=%d stop=%d step=%d\n", indent, rg.Start, rg.Stop, rg.Step)
		if rg.Step == 0 {
			fmt.Fprintf(out, "%s  warning: step is 0, this range never advances\n", indent)
		}
	default:
		fmt.Fprintf(out, "%s%v\n", indent, v)
	}
}
