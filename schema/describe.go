package schema

import (
	"fmt"
	"strings"
)

// Describe renders a human-readable indented tree view of a schema. Used
// by the CLI's "schema lookup" subcommand.
func Describe(n *Node) string {
	var b strings.Builder
	describe(&b, n, "")
	return b.String()
}

func describe(b *strings.Builder, n *Node, indent string) {
	if n == nil {
		b.WriteString(indent + "<nil>\n")
		return
	}

	label := n.Kind.String()
	if n.Renamed {
		label = fmt.Sprintf("%s (renamed %q)", label, n.Name)
	}

	switch n.Kind {
	case KindObject:
		b.WriteString(indent + label + " {\n")
		for _, name := range n.FieldOrder {
			b.WriteString(indent + "  " + name + ":\n")
			describe(b, n.Fields[name], indent+"    ")
		}
		b.WriteString(indent + "}\n")

	case KindEnum:
		lits := make([]string, len(n.Literals()))
		for i, l := range n.Literals() {
			lits[i] = fmt.Sprintf("%v", l)
		}
		b.WriteString(indent + label + "[" + strings.Join(lits, ", ") + "]\n")

	case KindInt, KindBinary, KindRange:
		toks := n.Tokens()
		if len(toks) == 0 {
			b.WriteString(indent + label + "\n")
			break
		}
		b.WriteString(indent + label + "[" + strings.Join(toks, ",") + "]\n")

	default:
		children := n.Children()
		if len(children) == 0 {
			b.WriteString(indent + label + "\n")
			break
		}
		b.WriteString(indent + label + ":\n")
		for _, c := range children {
			describe(b, c, indent+"  ")
		}
	}
}
