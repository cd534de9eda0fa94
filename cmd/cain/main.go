// Command cain is the CLI front end for the cain module: encode/decode
// values against a schema, and inspect or export schemas.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/cainfmt/cain"
	"github.com/cainfmt/cain/codec"
	"github.com/cainfmt/cain/schema"
)

var logger = charmlog.New(os.Stderr)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cain: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "cain",
		Short:         "Encode, decode, and inspect Cain binary data",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newEncodeCmd(), newDecodeCmd(), newSchemaCmd())
	return root
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newEncodeCmd() *cobra.Command {
	var (
		src    schemaSource
		header bool
		out    string
	)
	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Encode JSON input against a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inPath string
			if len(args) == 1 {
				inPath = args[0]
			}
			s, err := src.resolve()
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("encode requires a schema source (--schema-file, --schema-yaml, --schema-var, or --schema-expr)")
			}

			raw, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("parsing input as JSON: %w", err)
			}
			value = normalizeJSON(value)

			logger.Debug("encoding", "kind", s.Kind.String(), "header", header)
			b, err := cain.Dumps(value, s, header)
			if err != nil {
				return fmt.Errorf("encoding: %w", err)
			}
			return writeOutput(out, b)
		},
	}
	src.register(cmd.Flags(), false)
	cmd.Flags().BoolVar(&header, "header", false, "prefix the output with a §4.11 self-decoding header")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var (
		src       schemaSource
		out       string
		indent    int
		minify    bool
		ascii     bool
		sortKeys  bool
	)
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode Cain bytes and print them as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inPath string
			if len(args) == 1 {
				inPath = args[0]
			}
			s, err := src.resolve()
			if err != nil {
				return err
			}

			raw, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			v, err := cain.Loads(raw, s)
			if err != nil {
				return fmt.Errorf("decoding: %w", err)
			}

			var out2 []byte
			if minify {
				out2, err = json.Marshal(v)
			} else {
				prefix := ""
				indentStr := "  "
				if indent > 0 {
					indentStr = ""
					for i := 0; i < indent; i++ {
						indentStr += " "
					}
				}
				out2, err = json.MarshalIndent(v, prefix, indentStr)
			}
			if err != nil {
				return fmt.Errorf("rendering JSON: %w", err)
			}
			out2 = append(out2, '\n')
			return writeOutput(out, out2)
		},
	}
	src.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file path (- for stdout)")
	cmd.Flags().IntVar(&indent, "indent", 0, "JSON indentation spaces (0 = 2-space default)")
	cmd.Flags().BoolVar(&minify, "minify", false, "emit compact JSON with no indentation")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "escape non-ASCII characters (currently a no-op, kept for CLI parity)")
	cmd.Flags().BoolVar(&sortKeys, "sort-keys", true, "sort object keys (always true under encoding/json)")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and export schemas",
	}
	cmd.AddCommand(newSchemaLookupCmd(), newSchemaExportCmd())
	return cmd
}

func newSchemaLookupCmd() *cobra.Command {
	var src schemaSource
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Pretty-print a schema tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := src.resolve()
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("schema lookup requires a schema source")
			}
			fmt.Print(schema.Describe(s))
			return nil
		},
	}
	src.register(cmd.Flags(), false)
	return cmd
}

func newSchemaExportCmd() *cobra.Command {
	var (
		src    schemaSource
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a schema as binary, YAML, or JSON Schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := src.resolve()
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("schema export requires a schema source")
			}

			var data []byte
			switch format {
			case "binary", "":
				data, err = cain.EncodeSchema(s)
			case "yaml":
				data, err = schema.ToYAML(s)
			case "json", "jsonschema":
				data, err = json.MarshalIndent(schema.ToJSONSchema(s), "", "  ")
				if err == nil {
					data = append(data, '\n')
				}
			default:
				return fmt.Errorf("unknown --format %q (want binary, yaml, or jsonschema)", format)
			}
			if err != nil {
				return fmt.Errorf("exporting schema: %w", err)
			}
			return writeOutput(out, data)
		},
	}
	src.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&format, "format", "binary", "output format: binary, yaml, or jsonschema")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	var inPath string
	if len(args) == 1 {
		inPath = args[0]
	}
	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	tree, err := codec.Inspect(raw)
	if err != nil {
		return fmt.Errorf("inspecting input: %w", err)
	}
	fmt.Print(tree)
	return nil
}

// normalizeJSON walks the decoded JSON tree through maps and slices and
// returns every leaf exactly as encoding/json produced it (numbers stay
// float64); converting those to the schema's types is left to the codec
// package's own coercions (toInt64, toFloat32, ...).
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeJSON(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeJSON(val)
		}
		return t
	default:
		return v
	}
}
