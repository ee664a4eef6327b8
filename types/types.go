// Package types implements the closed DataType sum described in spec.md §3:
// parsing and rendering of type expressions, ordinal tagging for on-disk
// encoding, and physical size computation for the row codec.
//
// Ordinals are a permanent on-disk contract (spec.md §3 invariants) — never
// renumber an existing Kind.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solidcoredata/coredb/errs"
)

// Kind discriminates the DataType variants in memory. It is not the
// on-disk ordinal (KindTable and KindUuid differ from TTable and TUuid);
// DataType.Ordinal maps a Kind to the frozen T* constants below.
type Kind uint8

const (
	KindBlob Kind = iota
	KindBoolean
	KindClob
	KindDate
	KindEnum
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindRecordNumber
	KindString
	KindStructure
	KindTable
	KindUuid
)

// Ordinal byte constants, frozen per spec.md §3 / original_source data_types.rs.
const (
	TBlob         = 0
	TBoolean      = 1
	TClob         = 2
	TDate         = 3
	TEnum         = 4
	TInt8         = 5
	TInt16        = 6
	TInt32        = 7
	TInt64        = 8
	TFloat32      = 9
	TFloat64      = 10
	TRecordNumber = 11
	TString       = 12
	TStructure    = 13
	TTable        = 15 // gap at 14 preserved intentionally, mirrors the original ordinal table
	TUuid         = 16
)

// Column describes one field of a Structure or Table type (spec.md §3
// Column). The row codec uses its own row.Column.
type Column struct {
	Name     string
	Type     DataType
	Default  interface{}
	Nullable bool
}

// DataType is the closed sum of physical data types. Exactly one of the
// fields below is meaningful for a given Kind.
type DataType struct {
	Kind    Kind
	Size    int      // Blob/Clob/String
	Labels  []string // Enum
	Columns []Column // Structure/Table
}

func Blob(size int) DataType      { return DataType{Kind: KindBlob, Size: size} }
func Boolean() DataType           { return DataType{Kind: KindBoolean} }
func Clob(size int) DataType      { return DataType{Kind: KindClob, Size: size} }
func Date() DataType              { return DataType{Kind: KindDate} }
func Enum(labels []string) DataType { return DataType{Kind: KindEnum, Labels: labels} }
func Int8() DataType               { return DataType{Kind: KindInt8} }
func Int16() DataType              { return DataType{Kind: KindInt16} }
func Int32() DataType              { return DataType{Kind: KindInt32} }
func Int64() DataType              { return DataType{Kind: KindInt64} }
func Float32() DataType            { return DataType{Kind: KindFloat32} }
func Float64() DataType            { return DataType{Kind: KindFloat64} }
func RecordNumber() DataType       { return DataType{Kind: KindRecordNumber} }
func String(size int) DataType     { return DataType{Kind: KindString, Size: size} }
func Structure(cols []Column) DataType { return DataType{Kind: KindStructure, Columns: cols} }
func Table(cols []Column) DataType     { return DataType{Kind: KindTable, Columns: cols} }
func Uuid() DataType                   { return DataType{Kind: KindUuid} }

// Ordinal returns the frozen on-disk discriminant byte for t.
func (t DataType) Ordinal() uint8 {
	switch t.Kind {
	case KindBlob:
		return TBlob
	case KindBoolean:
		return TBoolean
	case KindClob:
		return TClob
	case KindDate:
		return TDate
	case KindEnum:
		return TEnum
	case KindInt8:
		return TInt8
	case KindInt16:
		return TInt16
	case KindInt32:
		return TInt32
	case KindInt64:
		return TInt64
	case KindFloat32:
		return TFloat32
	case KindFloat64:
		return TFloat64
	case KindRecordNumber:
		return TRecordNumber
	case KindString:
		return TString
	case KindStructure:
		return TStructure
	case KindTable:
		return TTable
	case KindUuid:
		return TUuid
	default:
		return 0xFF
	}
}

// PhysicalSize returns the fixed number of bytes this type occupies in a row,
// excluding the 1-byte field metadata prefix (row.Stride adds that).
// Variable-length strings/blobs/clobs serialize as a length prefix (8 bytes,
// this package's lengthPrefixSize) followed by Size bytes.
func (t DataType) PhysicalSize() int {
	switch t.Kind {
	case KindBlob:
		return t.Size + lengthPrefixSize
	case KindBoolean:
		return 1
	case KindClob:
		return t.Size + lengthPrefixSize
	case KindDate:
		return 8
	case KindEnum:
		return 2
	case KindInt8:
		return 1
	case KindInt16:
		return 2
	case KindInt32:
		return 4
	case KindInt64:
		return 8
	case KindFloat32:
		return 4
	case KindFloat64:
		return 8
	case KindRecordNumber:
		return 8
	case KindString:
		return t.Size + lengthPrefixSize
	case KindStructure:
		return 8
	case KindTable:
		return 8
	case KindUuid:
		return 16
	default:
		return 0
	}
}

// lengthPrefixSize is the width, in bytes, of the length prefix written
// before variable-length field data (spec.md §3/§4.3).
const lengthPrefixSize = 8

// Render is the canonical inverse of Parse for every DataType produced by
// Parse (spec.md T2: render(parse(t)) = t).
func (t DataType) Render() string {
	switch t.Kind {
	case KindBlob:
		return fmt.Sprintf("BLOB(%d)", t.Size)
	case KindBoolean:
		return "Boolean"
	case KindClob:
		return fmt.Sprintf("CLOB(%d)", t.Size)
	case KindDate:
		return "Date"
	case KindEnum:
		return fmt.Sprintf("Enum(%s)", strings.Join(t.Labels, ", "))
	case KindInt8:
		return "Byte"
	case KindInt16:
		return "Short"
	case KindInt32:
		return "Int"
	case KindInt64:
		return "Long"
	case KindFloat32:
		return "Float"
	case KindFloat64:
		return "f64"
	case KindRecordNumber:
		return "RecordNumber"
	case KindString:
		return fmt.Sprintf("String(%d)", t.Size)
	case KindStructure:
		return fmt.Sprintf("Struct(%s)", renderColumns(t.Columns))
	case KindTable:
		return fmt.Sprintf("Table(%s)", renderColumns(t.Columns))
	case KindUuid:
		return "UUID"
	default:
		return "?"
	}
}

func renderColumns(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s %s", c.Name, c.Type.Render())
	}
	return strings.Join(parts, ", ")
}

// Parse accepts the three surface shapes spec.md §6's grammar describes:
// a bare name, a parameterized scalar, and a composite with nested columns.
func Parse(text string) (DataType, error) {
	text = strings.TrimSpace(text)
	name, argsText, err := splitNameArgs(text)
	if err != nil {
		return DataType{}, err
	}
	if argsText == "" {
		return Resolve(name, nil)
	}
	if isComposite(name) {
		cols, err := parseColumns(argsText)
		if err != nil {
			return DataType{}, err
		}
		return Resolve(name, []string{}, cols...)
	}
	args := splitArgs(argsText)
	return Resolve(name, args)
}

func isComposite(name string) bool {
	return name == "Struct" || name == "Structure" || name == "Table" || name == "TableType"
}

// splitNameArgs separates "Name" or "Name(...)" into the bare name and the
// raw text between the outermost parentheses (empty if parameterless).
func splitNameArgs(text string) (string, string, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		if strings.ContainsAny(text, ")") {
			return "", "", &errs.Exact{Message: fmt.Sprintf("malformed type definition near %q", text)}
		}
		return text, "", nil
	}
	if !strings.HasSuffix(text, ")") {
		return "", "", &errs.Exact{Message: fmt.Sprintf("malformed type definition near %q", text)}
	}
	name := strings.TrimSpace(text[:open])
	inner := text[open+1 : len(text)-1]
	return name, inner, nil
}

// splitArgs splits a flat, non-nested comma list ("60" or "A,B,C").
func splitArgs(argsText string) []string {
	raw := strings.Split(argsText, ",")
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// parseColumns tokenizes a nested column list such as
// "sym String(8), last f64" into Column descriptors, recursing into
// Parse for each column's type text (which may itself be composite).
func parseColumns(argsText string) ([]Column, error) {
	parts := splitTopLevelCommas(argsText)
	cols := make([]Column, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, " ", 2)
		if len(fields) != 2 {
			return nil, &errs.Exact{Message: fmt.Sprintf("malformed column definition near %q", part)}
		}
		colName := strings.TrimSpace(fields[0])
		colType, err := Parse(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: colName, Type: colType})
	}
	return cols, nil
}

// splitTopLevelCommas splits on commas that are not nested inside
// parentheses, so "sym String(8), last f64" splits into two columns rather
// than three arguments.
func splitTopLevelCommas(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// Resolve looks up a DataType by its surface name and validates the
// argument shape for that name, per spec.md §4.1. cols is only consulted
// for the composite Struct/Table forms.
func Resolve(name string, args []string, cols ...Column) (DataType, error) {
	parameterless := func(dt DataType) (DataType, error) {
		if len(args) != 0 {
			return DataType{}, &errs.Exact{Message: "parameters are not supported for this type"}
		}
		return dt, nil
	}
	sized := func(build func(int) DataType) (DataType, error) {
		if len(args) != 1 {
			return DataType{}, &errs.Exact{Message: "a single parameter was expected for this type"}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return DataType{}, &errs.Exact{Message: fmt.Sprintf("invalid size parameter %q", args[0])}
		}
		return build(n), nil
	}

	switch name {
	case "BLOB":
		return sized(Blob)
	case "Boolean":
		return parameterless(Boolean())
	case "Byte":
		return parameterless(Int8())
	case "CLOB":
		return sized(Clob)
	case "Date":
		return parameterless(Date())
	case "f64":
		return parameterless(Float64())
	case "Enum":
		return Enum(args), nil
	case "Float":
		return parameterless(Float32())
	case "Int":
		return parameterless(Int32())
	case "Long":
		return parameterless(Int64())
	case "RecordNumber":
		return parameterless(RecordNumber())
	case "Short":
		return parameterless(Int16())
	case "String":
		return sized(String)
	case "Struct", "Structure":
		return Structure(cols), nil
	case "Table", "TableType":
		return Table(cols), nil
	case "UUID":
		return parameterless(Uuid())
	default:
		return DataType{}, &errs.Exact{Message: fmt.Sprintf("unrecognized type %s", name)}
	}
}
