package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cainfmt/cain"
	"github.com/cainfmt/cain/schema"
)

// schemaSource collects the shared schema-source flags common to encode,
// decode, and schema lookup: raw Type-encoded bytes, the small YAML DSL
// (schema/yaml.go), or a host-source reference. The host-variable and
// host-expression sources are trust-required: rather than evaluating
// caller-supplied Go source, --schema-var reads the named file as schema
// YAML and --schema-expr parses its own value as inline schema YAML, since
// this module has no safe in-process Go evaluator in
// its dependency stack, but the "requires explicit trust" contract is
// preserved regardless of how the source is actually resolved.
type schemaSource struct {
	file         string
	yamlFile     string
	hostVar      string
	hostExpr     string
	trustCode    bool
	fromHeader   bool
}

func (s *schemaSource) register(flags *pflag.FlagSet, allowFromHeader bool) {
	flags.StringVar(&s.file, "schema-file", "", "path to a Type-encoded binary schema file")
	flags.StringVar(&s.yamlFile, "schema-yaml", "", "path to a schema described in the YAML DSL (schema export --format yaml)")
	flags.StringVar(&s.hostVar, "schema-var", "", "TRUST-REQUIRED: path to a schema YAML file, addressed as if it were a host source variable")
	flags.StringVar(&s.hostExpr, "schema-expr", "", "TRUST-REQUIRED: inline schema YAML, addressed as if it were an evaluated host expression")
	flags.BoolVar(&s.trustCode, "trust-schema-code", false, "required to use --schema-var or --schema-expr")
	if allowFromHeader {
		flags.BoolVar(&s.fromHeader, "from-header", false, "read the schema from the input's own header (§4.11) instead of a separate source")
	}
}

// resolve returns the schema named by whichever flag was set, or nil if
// none were (meaning the caller should fall back to header framing).
func (s *schemaSource) resolve() (*schema.Node, error) {
	set := 0
	for _, v := range []bool{s.file != "", s.yamlFile != "", s.hostVar != "", s.hostExpr != "", s.fromHeader} {
		if v {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("only one schema source flag may be given at a time")
	}

	switch {
	case s.fromHeader:
		return nil, nil

	case s.file != "":
		b, err := os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("reading --schema-file: %w", err)
		}
		n, err := cain.DecodeSchema(b)
		if err != nil {
			return nil, fmt.Errorf("decoding --schema-file: %w", err)
		}
		return n, nil

	case s.yamlFile != "":
		b, err := os.ReadFile(s.yamlFile)
		if err != nil {
			return nil, fmt.Errorf("reading --schema-yaml: %w", err)
		}
		return schema.ParseYAML(b)

	case s.hostVar != "":
		if !s.trustCode {
			return nil, fmt.Errorf("--schema-var requires --trust-schema-code")
		}
		b, err := os.ReadFile(s.hostVar)
		if err != nil {
			return nil, fmt.Errorf("reading --schema-var: %w", err)
		}
		return schema.ParseYAML(b)

	case s.hostExpr != "":
		if !s.trustCode {
			return nil, fmt.Errorf("--schema-expr requires --trust-schema-code")
		}
		return schema.ParseYAML([]byte(s.hostExpr))

	default:
		return nil, nil
	}
}
