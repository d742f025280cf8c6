package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge"
)

var (
	inputFile  string
	fromFormat string
	toKind     string
	outputFile string

	rootName        string
	packageName     string
	tableNameMethod bool
	inlineNested    bool
	intWidth        string
	floatWidth      string
	protoPackage    string
	protoSyntax     string
	nestedMode      string
	indentWidth     int

	dbURL  string
	tables string
)

var rootCmd = &cobra.Command{
	Use:   "schemaforge",
	Short: "Convert, diff, and extract structured schemas",
	Long: `SchemaForge converts SQL DDL (MySQL, PostgreSQL, SQLite) and JSON
documents into Go structs, protobuf messages, or reformatted configuration
files, computes ALTER scripts between two table versions, and extracts
schemas from live databases.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert DDL, JSON, or config input into the requested output",
	RunE:  runConvert,
}

var diffCmd = &cobra.Command{
	Use:   "diff <target.sql> <source.sql>",
	Short: "Print the ALTER statements migrating target to source",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract schemas from a live database and generate code",
	RunE:  runExtract,
}

func init() {
	convertCmd.Flags().StringVar(&inputFile, "in", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVar(&fromFormat, "from", "", "Input format override: mysql, postgresql, sqlite, json, yaml, toml, or xml (default: auto-detect)")
	convertCmd.Flags().StringVar(&toKind, "to", "struct", "Output kind: struct, proto, json, yaml, toml, or xml")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().StringVar(&rootName, "name", "", "Root struct/message name for JSON input")
	convertCmd.Flags().StringVar(&packageName, "package", "", "Package clause for generated Go source")
	convertCmd.Flags().BoolVar(&tableNameMethod, "table-name-method", false, "Emit a TableName() method on the root struct")
	convertCmd.Flags().BoolVar(&inlineNested, "inline-nested", false, "Emit nested objects as anonymous inline structs")
	convertCmd.Flags().StringVar(&intWidth, "int-width", "", "Integer width for generated fields: int32 or int64")
	convertCmd.Flags().StringVar(&floatWidth, "float-width", "", "Float width for generated fields: float32 or float64")
	convertCmd.Flags().StringVar(&protoPackage, "proto-package", "", "Package clause for generated protobuf")
	convertCmd.Flags().StringVar(&protoSyntax, "syntax", "", "Protobuf syntax: proto2 or proto3 (default: proto3)")
	convertCmd.Flags().StringVar(&nestedMode, "nested", "inline", "Nested message placement for proto output: inline or separate")
	convertCmd.Flags().IntVar(&indentWidth, "indent", 0, "Indent width for config output (default: 2)")

	diffCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	extractCmd.Flags().StringVar(&dbURL, "url", "", "Database URL: postgres://, mysql://, or sqlite://")
	extractCmd.Flags().StringVarP(&tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	extractCmd.Flags().StringVar(&toKind, "to", "struct", "Output kind: struct or proto")
	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().StringVar(&packageName, "package", "", "Package clause for generated Go source")
	extractCmd.Flags().BoolVar(&tableNameMethod, "table-name-method", false, "Emit a TableName() method on each struct")
	extractCmd.Flags().StringVar(&protoPackage, "proto-package", "", "Package clause for generated protobuf")
	extractCmd.Flags().StringVar(&protoSyntax, "syntax", "", "Protobuf syntax: proto2 or proto3 (default: proto3)")

	rootCmd.AddCommand(convertCmd, diffCmd, extractCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	text, err := readInput(inputFile)
	if err != nil {
		return err
	}

	out, err := parseOutputKind(toKind)
	if err != nil {
		return err
	}

	opts := &schemaforge.ConvertOptions{
		RootName: rootName,
		Struct: schemaforge.StructOptions{
			Package:         packageName,
			TableNameMethod: tableNameMethod,
			InlineNested:    inlineNested,
			IntWidth:        intWidth,
			FloatWidth:      floatWidth,
		},
		Proto: schemaforge.ProtoOptions{
			Package:    protoPackage,
			Syntax:     protoSyntax,
			IntWidth:   intWidth,
			FloatWidth: floatWidth,
		},
		Indent: indentWidth,
	}
	if nestedMode == "separate" {
		opts.Proto.NestedMode = schemaforge.NestedSeparate
	}

	var result string
	if fromFormat == "" {
		result, err = schemaforge.Convert(text, out, opts)
		if err != nil {
			return err
		}
	} else {
		result, err = convertFrom(text, fromFormat, out, opts)
		if err != nil {
			return err
		}
	}
	return writeOutput(outputFile, result)
}

// convertFrom bypasses detection when the caller named the input format.
func convertFrom(text, from string, out schemaforge.OutputKind, opts *schemaforge.ConvertOptions) (string, error) {
	f, err := parseFormat(from)
	if err != nil {
		return "", err
	}

	switch out {
	case schemaforge.OutputJSON, schemaforge.OutputYAML, schemaforge.OutputTOML, schemaforge.OutputXML:
		return schemaforge.FormatConfig(text, f, opts.Indent)
	}

	var res *schemaforge.ParseResult
	if d, ok := schemaforge.DialectOf(f); ok {
		res, err = schemaforge.ParseDDL(text, d)
	} else if f == schemaforge.FormatJSON {
		res, err = schemaforge.ParseJSON(text, opts.RootName)
	} else {
		return "", fmt.Errorf("cannot generate code from %s input", f)
	}
	if err != nil {
		return "", err
	}

	if out == schemaforge.OutputProto {
		return schemaforge.GenerateProto(res, &opts.Proto)
	}
	return schemaforge.GenerateStruct(res, &opts.Struct)
}

func runDiff(cmd *cobra.Command, args []string) error {
	target, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read target: %w", err)
	}
	source, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	stmts := schemaforge.DiffDDL(string(target), string(source))
	return writeOutput(outputFile, strings.Join(stmts, "\n")+"\n")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--url must be specified")
	}

	out, err := parseOutputKind(toKind)
	if err != nil {
		return err
	}
	if out != schemaforge.OutputStruct && out != schemaforge.OutputProto {
		return fmt.Errorf("extract supports struct or proto output, got %s", toKind)
	}

	ctx := context.Background()
	results, err := schemaforge.ExtractSchemas(ctx, dbURL, parseTableList(tables))
	if err != nil {
		return fmt.Errorf("failed to extract schemas: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no tables found")
	}

	var parts []string
	for i, res := range results {
		var text string
		if out == schemaforge.OutputProto {
			opts := schemaforge.ProtoOptions{Syntax: protoSyntax}
			if i == 0 {
				opts.Package = protoPackage
			}
			text, err = schemaforge.GenerateProto(res, &opts)
			if err != nil {
				return err
			}
			if i > 0 {
				// One syntax declaration per output, not per table.
				text = stripProtoHeader(text)
			}
		} else {
			text, err = schemaforge.GenerateStruct(res, &schemaforge.StructOptions{
				TableNameMethod: tableNameMethod,
			})
			if err != nil {
				return err
			}
		}
		parts = append(parts, text)
	}

	body := strings.Join(parts, "\n")
	if out == schemaforge.OutputStruct && packageName != "" {
		header := "package " + packageName + "\n\n"
		if strings.Contains(body, "time.Time") {
			header += "import \"time\"\n\n"
		}
		body = header + body
	}
	return writeOutput(outputFile, body)
}

// stripProtoHeader removes the leading syntax declaration so concatenated
// per-table outputs form one valid file.
func stripProtoHeader(text string) string {
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) == 2 && strings.HasPrefix(lines[0], "syntax") {
		return strings.TrimLeft(lines[1], "\n")
	}
	return text
}

func parseOutputKind(s string) (schemaforge.OutputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "struct", "go":
		return schemaforge.OutputStruct, nil
	case "proto", "protobuf":
		return schemaforge.OutputProto, nil
	case "json":
		return schemaforge.OutputJSON, nil
	case "yaml", "yml":
		return schemaforge.OutputYAML, nil
	case "toml":
		return schemaforge.OutputTOML, nil
	case "xml":
		return schemaforge.OutputXML, nil
	default:
		return schemaforge.OutputStruct, fmt.Errorf("invalid output kind: %s (must be struct, proto, json, yaml, toml, or xml)", s)
	}
}

func parseFormat(s string) (schemaforge.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return schemaforge.FormatMySQL, nil
	case "postgres", "postgresql":
		return schemaforge.FormatPostgres, nil
	case "sqlite":
		return schemaforge.FormatSQLite, nil
	case "json":
		return schemaforge.FormatJSON, nil
	case "yaml", "yml":
		return schemaforge.FormatYAML, nil
	case "toml":
		return schemaforge.FormatTOML, nil
	case "xml":
		return schemaforge.FormatXML, nil
	default:
		return schemaforge.FormatUnknown, fmt.Errorf("invalid format: %s", s)
	}
}

func parseTableList(tablesStr string) []string {
	if tablesStr == "" {
		return nil
	}
	list := strings.Split(tablesStr, ",")
	for i, t := range list {
		list[i] = strings.TrimSpace(t)
	}
	return list
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, text string) error {
	if path == "" {
		fmt.Print(text)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
		}
	}()
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
