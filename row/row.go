// Package row implements the row/field codec described in spec.md §3/§4.3:
// row layout (metadata byte + fields), field metadata, and stride
// computation from a column schema.
package row

import (
	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

// Column describes one field of a table schema (spec.md §3 Column).
type Column struct {
	Name     string
	Type     types.DataType
	Default  value.TypedValue
	Nullable bool
}

// RowMetadata is the single-byte prefix of a row; bit 0 is the allocated
// (active) bit. All other bits are reserved (spec.md §3).
type RowMetadata struct {
	Allocated bool
}

const allocatedBit = 1 << 0

// Encode packs m into its on-disk byte.
func (m RowMetadata) Encode() byte {
	if m.Allocated {
		return allocatedBit
	}
	return 0
}

// DecodeRowMetadata unpacks a RowMetadata from its on-disk byte.
func DecodeRowMetadata(b byte) RowMetadata {
	return RowMetadata{Allocated: b&allocatedBit != 0}
}

// FieldMetadata is the single-byte prefix of a field; bit 0 is the
// present (non-null) bit.
type FieldMetadata struct {
	Present bool
}

const presentBit = 1 << 0

func (m FieldMetadata) Encode() byte {
	if m.Present {
		return presentBit
	}
	return 0
}

func DecodeFieldMetadata(b byte) FieldMetadata {
	return FieldMetadata{Present: b&presentBit != 0}
}

// Row is a stable-id, schema-bound, dense vector of field values.
type Row struct {
	ID      uint64
	Columns []Column
	Fields  []value.TypedValue
}

// New builds an empty (all-Null) row bound to columns at the given id.
func New(id uint64, columns []Column) Row {
	fields := make([]value.TypedValue, len(columns))
	for i := range fields {
		fields[i] = value.Null()
	}
	return Row{ID: id, Columns: columns, Fields: fields}
}

// Stride computes the fixed byte width of a row for the given schema:
// 1 (row metadata) + sum(physical_size(col) + 1 field-metadata byte).
func Stride(columns []Column) int {
	stride := 1
	for _, c := range columns {
		stride += 1 + c.Type.PhysicalSize()
	}
	return stride
}

// Offset computes the byte offset of row id within a file using the given
// schema's stride (spec.md §4.3/§6: offset = id * stride).
func Offset(id uint64, columns []Column) int64 {
	return int64(id) * int64(Stride(columns))
}

// Encode serializes r (including its RowMetadata) into exactly
// Stride(r.Columns) bytes.
func Encode(r Row, metadata RowMetadata) []byte {
	buf := make([]byte, 0, Stride(r.Columns))
	buf = append(buf, metadata.Encode())
	for i, col := range r.Columns {
		v := r.Fields[i]
		present := v.Kind != value.KindNull && v.Kind != value.KindUndefined
		buf = append(buf, FieldMetadata{Present: present}.Encode())
		field := make([]byte, col.Type.PhysicalSize())
		if present {
			enc := v.Encode()
			copy(field, enc)
		}
		buf = append(buf, field...)
	}
	return buf
}

// Decode reads a Row and its RowMetadata out of a Stride(columns)-sized
// byte slice. A tombstoned row is still fully decodable (spec.md §4.4).
func Decode(id uint64, columns []Column, buf []byte) (Row, RowMetadata, error) {
	if len(buf) < Stride(columns) {
		return Row{}, RowMetadata{}, &errs.Exact{Message: "truncated row buffer"}
	}
	metadata := DecodeRowMetadata(buf[0])
	offset := 1
	fields := make([]value.TypedValue, len(columns))
	for i, col := range columns {
		fm := DecodeFieldMetadata(buf[offset])
		offset++
		size := col.Type.PhysicalSize()
		if !fm.Present {
			fields[i] = value.Null()
			offset += size
			continue
		}
		v, err := value.Decode(col.Type, buf, offset)
		if err != nil {
			return Row{}, RowMetadata{}, err
		}
		fields[i] = v
		offset += size
	}
	return Row{ID: id, Columns: columns, Fields: fields}, metadata, nil
}

// DecodeField reads a single field (spec.md §4.3 read_field) out of a
// full row buffer, by column index.
func DecodeField(columns []Column, buf []byte, colIdx int) (value.TypedValue, error) {
	offset := 1
	for i := 0; i < colIdx; i++ {
		offset += 1 + columns[i].Type.PhysicalSize()
	}
	fm := DecodeFieldMetadata(buf[offset])
	offset++
	if !fm.Present {
		return value.Null(), nil
	}
	return value.Decode(columns[colIdx].Type, buf, offset)
}

// ColumnIndex returns the index of the named column, or -1.
func ColumnIndex(columns []Column, name string) int {
	for i, c := range columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// WithField returns a copy of r with column name set to v (used when
// building a transformed row for overwrite_where/update_where).
func (r Row) WithField(name string, v value.TypedValue) Row {
	idx := ColumnIndex(r.Columns, name)
	if idx < 0 {
		return r
	}
	out := r
	out.Fields = append([]value.TypedValue(nil), r.Fields...)
	out.Fields[idx] = v
	return out
}

// Defaults builds a row at id with every field set to its column default.
func Defaults(id uint64, columns []Column) Row {
	fields := make([]value.TypedValue, len(columns))
	for i, c := range columns {
		fields[i] = c.Default
	}
	return Row{ID: id, Columns: columns, Fields: fields}
}
