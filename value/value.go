// Package value implements the TypedValue closed sum described in
// spec.md §3/§4.2: arithmetic and relational operators with Null/Undefined
// absorption, a minimal big-endian codec against a byte buffer, JSON
// projection, and best-effort text wrap/unwrap coercion.
package value

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/types"
)

// Kind discriminates the TypedValue variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindUndefined
	KindBlob
	KindBoolean
	KindClob
	KindDate
	KindFloat32
	KindFloat64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindRecordNumber
	KindString
	KindUuid
	KindArray
	KindStructure
	KindTable
	KindNamespace
	KindFunction
	KindPlatformOp
	KindError
	KindOutcome
	KindEnum
)

// TypedValue is the runtime universe of values. Exactly one field is
// meaningful for a given Kind; see the constructor functions below.
type TypedValue struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Bytes   []byte
	Date    int64 // epoch milliseconds
	Uuid    [16]byte
	Array   []TypedValue
	Fields  map[string]TypedValue // Structure
	Table   TableValue             // Table (opaque handle; see dataframe package)
	Err     error
	Outcome int64 // rows-affected style outcome
}

// TableValue is implemented by dataframe.Dataframe; kept as an interface
// here so value does not import dataframe (which imports value), avoiding
// an import cycle.
type TableValue interface {
	Len() (int, error)
}

func Null() TypedValue      { return TypedValue{Kind: KindNull} }
func Undefined() TypedValue { return TypedValue{Kind: KindUndefined} }
func Boolean(b bool) TypedValue { return TypedValue{Kind: KindBoolean, Bool: b} }
func Blob(b []byte) TypedValue  { return TypedValue{Kind: KindBlob, Bytes: b} }
func Clob(s string) TypedValue  { return TypedValue{Kind: KindClob, Str: s} }
func DateMillis(ms int64) TypedValue { return TypedValue{Kind: KindDate, Date: ms} }
func Float32v(f float32) TypedValue  { return TypedValue{Kind: KindFloat32, Float: float64(f)} }
func Float64v(f float64) TypedValue  { return TypedValue{Kind: KindFloat64, Float: f} }
func Int8v(i int8) TypedValue        { return TypedValue{Kind: KindInt8, Int: int64(i)} }
func Int16v(i int16) TypedValue      { return TypedValue{Kind: KindInt16, Int: int64(i)} }
func Int32v(i int32) TypedValue      { return TypedValue{Kind: KindInt32, Int: int64(i)} }
func Int64v(i int64) TypedValue      { return TypedValue{Kind: KindInt64, Int: i} }
func RecordNumber(id int64) TypedValue { return TypedValue{Kind: KindRecordNumber, Int: id} }
func StringV(s string) TypedValue      { return TypedValue{Kind: KindString, Str: s} }
func UuidV(id [16]byte) TypedValue     { return TypedValue{Kind: KindUuid, Uuid: id} }

// EnumV holds an enum's frozen ordinal (Int) alongside its resolved label
// text (Str), the way Decode reconstructs it from a column's types.Enum
// Labels list.
func EnumV(label string, ordinal int64) TypedValue {
	return TypedValue{Kind: KindEnum, Str: label, Int: ordinal}
}
func ArrayV(items []TypedValue) TypedValue { return TypedValue{Kind: KindArray, Array: items} }
func StructureV(fields map[string]TypedValue) TypedValue {
	return TypedValue{Kind: KindStructure, Fields: fields}
}
func ErrorV(err error) TypedValue { return TypedValue{Kind: KindError, Err: err} }
func Outcome(rowsAffected int64) TypedValue {
	return TypedValue{Kind: KindOutcome, Outcome: rowsAffected}
}

// TypeOf projects v onto its corresponding DataType (spec.md §4.2 contract).
func (v TypedValue) TypeOf() types.DataType {
	switch v.Kind {
	case KindBlob:
		return types.Blob(len(v.Bytes))
	case KindBoolean:
		return types.Boolean()
	case KindClob:
		return types.Clob(len(v.Str))
	case KindDate:
		return types.Date()
	case KindFloat32:
		return types.Float32()
	case KindFloat64:
		return types.Float64()
	case KindInt8:
		return types.Int8()
	case KindInt16:
		return types.Int16()
	case KindInt32:
		return types.Int32()
	case KindInt64:
		return types.Int64()
	case KindRecordNumber:
		return types.RecordNumber()
	case KindString:
		return types.String(len(v.Str))
	case KindUuid:
		return types.Uuid()
	case KindEnum:
		return types.Enum(nil)
	default:
		return types.DataType{}
	}
}

func (v TypedValue) String() string { return v.Unwrap() }

// interceptUnknowns reports whether a or b is Null or Undefined, and returns
// the dominant unknown of (a, b) per spec.md §4.2: Undefined absorbs Null.
func interceptUnknowns(a, b TypedValue) (TypedValue, bool) {
	if a.Kind == KindUndefined || b.Kind == KindUndefined {
		return Undefined(), true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return Null(), true
	}
	return TypedValue{}, false
}

func isInt(k Kind) bool {
	return k == KindInt8 || k == KindInt16 || k == KindInt32 || k == KindInt64
}
func isFloat(k Kind) bool { return k == KindFloat32 || k == KindFloat64 }
func isNumeric(k Kind) bool { return isInt(k) || isFloat(k) }

// numericFloat reads a numeric TypedValue as a float64 for arithmetic and
// comparison, pulling integer magnitude from Int rather than the unset
// Float field (mirrors platform/util's numericOf).
func numericFloat(v TypedValue) float64 {
	if isFloat(v.Kind) {
		return v.Float
	}
	return float64(v.Int)
}

func rank(k Kind) int {
	switch k {
	case KindInt8:
		return 1
	case KindInt16:
		return 2
	case KindInt32:
		return 3
	case KindInt64:
		return 4
	case KindFloat32:
		return 5
	case KindFloat64:
		return 6
	default:
		return 0
	}
}

func withKind(k Kind, f float64) TypedValue {
	switch k {
	case KindInt8:
		return Int8v(int8(f))
	case KindInt16:
		return Int16v(int16(f))
	case KindInt32:
		return Int32v(int32(f))
	case KindInt64:
		return Int64v(int64(f))
	case KindFloat32:
		return Float32v(float32(f))
	case KindFloat64:
		return Float64v(f)
	default:
		return Undefined()
	}
}

// widen applies spec.md §3's widening rule: smaller int + same-kind int
// keeps the kind (here: the wider of the two integer kinds); mixed
// int/float promotes to float (Float64 if either side is Float64,
// otherwise Float32).
func widen(a, b Kind) Kind {
	if isInt(a) && isInt(b) {
		if rank(a) >= rank(b) {
			return a
		}
		return b
	}
	if isFloat(a) || isFloat(b) {
		if a == KindFloat64 || b == KindFloat64 {
			return KindFloat64
		}
		return KindFloat32
	}
	return a
}

// numericOp implements the pairwise arithmetic operators of spec.md §4.2
// that need no zero-divisor handling; Div and Mod handle an integer zero
// divisor themselves (spec.md §9).
func numericOp(a, b TypedValue, f func(x, y float64) float64) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if a.Kind == KindString && b.Kind == KindString {
		return Undefined()
	}
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return Undefined()
	}
	result := f(numericFloat(a), numericFloat(b))
	return withKind(widen(a.Kind, b.Kind), result)
}

func maxOfKind(k Kind) float64 {
	switch k {
	case KindInt8:
		return math.MaxInt8
	case KindInt16:
		return math.MaxInt16
	case KindInt32:
		return math.MaxInt32
	default:
		return math.MaxInt64
	}
}

// Plus implements `+`: numeric addition, or string concatenation.
func (a TypedValue) Plus(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if a.Kind == KindString && b.Kind == KindString {
		return StringV(a.Str + b.Str)
	}
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return Undefined()
	}
	return withKind(widen(a.Kind, b.Kind), numericFloat(a)+numericFloat(b))
}

// Minus implements `-`.
func (a TypedValue) Minus(b TypedValue) TypedValue {
	return numericOp(a, b, func(x, y float64) float64 { return x - y })
}

// Times implements `*`.
func (a TypedValue) Times(b TypedValue) TypedValue {
	return numericOp(a, b, func(x, y float64) float64 { return x * y })
}

// Div implements `/`. Integer division by zero deterministically yields
// the kind's maximum positive value rather than erroring (spec.md §9).
func (a TypedValue) Div(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return Undefined()
	}
	k := widen(a.Kind, b.Kind)
	if isInt(k) && b.Int == 0 {
		if k == KindInt64 {
			return Int64v(math.MaxInt64)
		}
		return withKind(k, maxOfKind(k))
	}
	return withKind(k, numericFloat(a)/numericFloat(b))
}

// Mod implements `%`.
func (a TypedValue) Mod(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return Undefined()
	}
	k := widen(a.Kind, b.Kind)
	if isInt(k) && b.Int == 0 {
		return withKind(k, maxOfKind(k))
	}
	return withKind(k, math.Mod(numericFloat(a), numericFloat(b)))
}

// Pow implements `**`.
func (a TypedValue) Pow(b TypedValue) TypedValue {
	return numericOp(a, b, math.Pow)
}

// ShiftLeft implements `<<`, defined on integer variants only.
func (a TypedValue) ShiftLeft(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isInt(a.Kind) || !isInt(b.Kind) {
		return Undefined()
	}
	return withKind(a.Kind, float64(a.Int<<uint(b.Int)))
}

// ShiftRight implements `>>`.
func (a TypedValue) ShiftRight(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isInt(a.Kind) || !isInt(b.Kind) {
		return Undefined()
	}
	return withKind(a.Kind, float64(a.Int>>uint(b.Int)))
}

// Xor implements bitwise exclusive-or on integer variants.
func (a TypedValue) Xor(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isInt(a.Kind) || !isInt(b.Kind) {
		return Undefined()
	}
	return withKind(a.Kind, float64(a.Int^b.Int))
}

// Factorial implements the unary `!` operator over integer variants.
func (a TypedValue) Factorial() TypedValue {
	if a.Kind == KindUndefined {
		return Undefined()
	}
	if a.Kind == KindNull {
		return Null()
	}
	if !isInt(a.Kind) || a.Int < 0 {
		return Undefined()
	}
	result := int64(1)
	for i := int64(2); i <= a.Int; i++ {
		result *= i
	}
	return withKind(a.Kind, float64(result))
}

// Range implements the `..` operator, producing an Array of integers.
func (a TypedValue) Range(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return Undefined()
	}
	lo, hi := int64(numericFloat(a)), int64(numericFloat(b))
	if hi < lo {
		return ArrayV(nil)
	}
	items := make([]TypedValue, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		items = append(items, Int64v(i))
	}
	return ArrayV(items)
}

// asNumeric coerces a scalar numeric variant to float64 for comparisons,
// matching the Rust assume_numeric helper (original_source typed_values.rs).
func asNumeric(v TypedValue) (float64, bool) {
	if isNumeric(v.Kind) {
		return numericFloat(v), true
	}
	return 0, false
}

func compare(a, b TypedValue) (int, bool) {
	if a.Kind == KindString && b.Kind == KindString {
		return strings.Compare(a.Str, b.Str), true
	}
	af, aok := asNumeric(a)
	bf, bok := asNumeric(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// Eq implements `==`. Returns Boolean, or Undefined/Null when an operand is unknown.
func (a TypedValue) Eq(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	c, ok := compare(a, b)
	if !ok {
		return Undefined()
	}
	return Boolean(c == 0)
}

func (a TypedValue) Ne(b TypedValue) TypedValue {
	eq := a.Eq(b)
	if eq.Kind != KindBoolean {
		return eq
	}
	return Boolean(!eq.Bool)
}

func (a TypedValue) Lt(b TypedValue) TypedValue { return relOp(a, b, func(c int) bool { return c < 0 }) }
func (a TypedValue) Lte(b TypedValue) TypedValue {
	return relOp(a, b, func(c int) bool { return c <= 0 })
}
func (a TypedValue) Gt(b TypedValue) TypedValue { return relOp(a, b, func(c int) bool { return c > 0 }) }
func (a TypedValue) Gte(b TypedValue) TypedValue {
	return relOp(a, b, func(c int) bool { return c >= 0 })
}

func relOp(a, b TypedValue, pred func(int) bool) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	c, ok := compare(a, b)
	if !ok {
		return Undefined()
	}
	return Boolean(pred(c))
}

// Between implements the ternary `between` operator: lo <= self <= hi.
func (self TypedValue) Between(lo, hi TypedValue) TypedValue {
	c, ok1 := asNumeric(self)
	l, ok2 := asNumeric(lo)
	h, ok3 := asNumeric(hi)
	if !ok1 || !ok2 || !ok3 {
		return Undefined()
	}
	return Boolean(c >= l && c <= h)
}

// And implements boolean conjunction, defined only on Booleans.
func (a TypedValue) And(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if a.Kind != KindBoolean || b.Kind != KindBoolean {
		return Undefined()
	}
	return Boolean(a.Bool && b.Bool)
}

// Or implements boolean disjunction.
func (a TypedValue) Or(b TypedValue) TypedValue {
	if uv, ok := interceptUnknowns(a, b); ok {
		return uv
	}
	if a.Kind != KindBoolean || b.Kind != KindBoolean {
		return Undefined()
	}
	return Boolean(a.Bool || b.Bool)
}

// Not implements boolean negation.
func (a TypedValue) Not() TypedValue {
	if a.Kind == KindUndefined {
		return Undefined()
	}
	if a.Kind == KindNull {
		return Null()
	}
	if a.Kind != KindBoolean {
		return Undefined()
	}
	return Boolean(!a.Bool)
}

////////////////////////////////////////////////////////////////////////////
// Codec
////////////////////////////////////////////////////////////////////////////

// Encode produces the minimal big-endian byte image for v (spec.md §4.2).
func (v TypedValue) Encode() []byte {
	switch v.Kind {
	case KindBlob:
		return encodeVarBytes(v.Bytes)
	case KindBoolean:
		if v.Bool {
			return []byte{1}
		}
		return []byte{0}
	case KindClob:
		return encodeVarBytes([]byte(v.Str))
	case KindDate:
		return encodeInt64(v.Date)
	case KindFloat32:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, math.Float32bits(float32(v.Float)))
		return buf
	case KindFloat64:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, math.Float64bits(v.Float))
		return buf
	case KindInt8:
		return []byte{byte(v.Int)}
	case KindInt16:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(v.Int))
		return buf
	case KindInt32:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(v.Int))
		return buf
	case KindInt64:
		return encodeInt64(v.Int)
	case KindRecordNumber:
		return encodeInt64(v.Int)
	case KindString:
		return encodeVarBytes([]byte(v.Str))
	case KindUuid:
		return v.Uuid[:]
	case KindEnum:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(v.Int))
		return buf
	case KindNull, KindUndefined:
		return []byte{}
	default:
		return []byte{}
	}
}

func encodeInt64(n int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func encodeVarBytes(b []byte) []byte {
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, uint64(len(b)))
	return append(prefix, b...)
}

// Decode reads a TypedValue out of buffer at offset, driven by dt
// (spec.md §4.2: "decode is driven by an externally supplied DataType").
func Decode(dt types.DataType, buffer []byte, offset int) (TypedValue, error) {
	switch dt.Kind {
	case types.KindBlob:
		b, err := decodeVarBytes(buffer, offset)
		return Blob(b), err
	case types.KindBoolean:
		return Boolean(buffer[offset] == 1), nil
	case types.KindClob:
		b, err := decodeVarBytes(buffer, offset)
		return Clob(string(b)), err
	case types.KindDate:
		return DateMillis(int64(binary.BigEndian.Uint64(buffer[offset : offset+8]))), nil
	case types.KindFloat32:
		return Float32v(math.Float32frombits(binary.BigEndian.Uint32(buffer[offset : offset+4]))), nil
	case types.KindFloat64:
		return Float64v(math.Float64frombits(binary.BigEndian.Uint64(buffer[offset : offset+8]))), nil
	case types.KindInt8:
		return Int8v(int8(buffer[offset])), nil
	case types.KindInt16:
		return Int16v(int16(binary.BigEndian.Uint16(buffer[offset : offset+2]))), nil
	case types.KindInt32:
		return Int32v(int32(binary.BigEndian.Uint32(buffer[offset : offset+4]))), nil
	case types.KindInt64:
		return Int64v(int64(binary.BigEndian.Uint64(buffer[offset : offset+8]))), nil
	case types.KindRecordNumber:
		return RecordNumber(int64(binary.BigEndian.Uint64(buffer[offset : offset+8]))), nil
	case types.KindString:
		b, err := decodeVarBytes(buffer, offset)
		return StringV(string(b)), err
	case types.KindUuid:
		var id [16]byte
		copy(id[:], buffer[offset:offset+16])
		return UuidV(id), nil
	case types.KindEnum:
		ordinal := int64(binary.BigEndian.Uint16(buffer[offset : offset+2]))
		if ordinal < 0 || int(ordinal) >= len(dt.Labels) {
			return Undefined(), &errs.TypeMismatch{Expected: "Enum ordinal within Labels", Got: dt.Render()}
		}
		return EnumV(dt.Labels[ordinal], ordinal), nil
	default:
		return Undefined(), &errs.TypeMismatch{Expected: "decodable scalar", Got: dt.Render()}
	}
}

func decodeVarBytes(buffer []byte, offset int) ([]byte, error) {
	if offset+8 > len(buffer) {
		return nil, &errs.Exact{Message: "truncated length prefix"}
	}
	n := int(binary.BigEndian.Uint64(buffer[offset : offset+8]))
	start := offset + 8
	if start+n > len(buffer) {
		return nil, &errs.Exact{Message: "truncated variable-length field"}
	}
	out := make([]byte, n)
	copy(out, buffer[start:start+n])
	return out, nil
}

////////////////////////////////////////////////////////////////////////////
// JSON projection
////////////////////////////////////////////////////////////////////////////

// ToJSON projects v losslessly for scalars and arrays, per spec.md §4.2:
// dates as ISO-8601-with-milliseconds-UTC, UUIDs in 8-4-4-4-12 hex.
func (v TypedValue) ToJSON() (json.RawMessage, error) {
	var out interface{}
	switch v.Kind {
	case KindBlob:
		out = v.Bytes
	case KindBoolean:
		out = v.Bool
	case KindClob:
		out = v.Str
	case KindDate:
		out = millisToISO(v.Date)
	case KindFloat32, KindFloat64:
		out = v.Float
	case KindInt8, KindInt16, KindInt32, KindInt64:
		out = v.Int
	case KindRecordNumber:
		out = v.Int
	case KindString:
		out = v.Str
	case KindUuid:
		out = uuid.UUID(v.Uuid).String()
	case KindEnum:
		out = v.Str
	case KindNull, KindUndefined:
		out = nil
	case KindArray:
		items := make([]json.RawMessage, len(v.Array))
		for i, item := range v.Array {
			raw, err := item.ToJSON()
			if err != nil {
				return nil, err
			}
			items[i] = raw
		}
		return json.Marshal(items)
	case KindStructure:
		m := make(map[string]json.RawMessage, len(v.Fields))
		for k, fv := range v.Fields {
			raw, err := fv.ToJSON()
			if err != nil {
				return nil, err
			}
			m[k] = raw
		}
		return json.Marshal(m)
	default:
		out = nil
	}
	return json.Marshal(out)
}

func millisToISO(ms int64) string {
	t := time.UnixMilli(ms).UTC()
	return t.Format("2006-01-02T15:04:05.000Z")
}

////////////////////////////////////////////////////////////////////////////
// Text wrap/unwrap
////////////////////////////////////////////////////////////////////////////

var (
	intRegex     = regexp.MustCompile(`^-?\d+$`)
	decimalRegex = regexp.MustCompile(`^-?\d+\.\d+$`)
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d\d-\d\dT\d\d:\d\d:\d\d(\.\d+)?(([+-]\d\d:\d\d)|Z)?$`)
	uuidRegex    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// Wrap is a best-effort text-to-value coercion (spec.md §4.2), trying
// booleans, null, integers, decimals, ISO-8601 dates and UUIDs in turn
// before falling back to String.
func Wrap(raw string) (TypedValue, error) {
	switch {
	case raw == "false":
		return Boolean(false), nil
	case raw == "true":
		return Boolean(true), nil
	case raw == "null" || raw == "":
		return Null(), nil
	case intRegex.MatchString(raw):
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return TypedValue{}, &errs.ConversionError{Message: err.Error()}
		}
		return Int64v(n), nil
	case decimalRegex.MatchString(raw):
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return TypedValue{}, &errs.ConversionError{Message: err.Error()}
		}
		return Float64v(f), nil
	case isoDateRegex.MatchString(raw):
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return TypedValue{}, &errs.ConversionError{Message: err.Error()}
		}
		return DateMillis(t.UnixMilli()), nil
	case uuidRegex.MatchString(raw):
		id, err := uuid.Parse(raw)
		if err != nil {
			return TypedValue{}, &errs.ConversionError{Message: err.Error()}
		}
		return UuidV(id), nil
	default:
		return StringV(raw), nil
	}
}

// WrapOpt wraps an optional string, mapping a missing value to Null.
func WrapOpt(raw *string) (TypedValue, error) {
	if raw == nil {
		return Null(), nil
	}
	return Wrap(*raw)
}

// Unwrap renders v back to text (the inverse of Wrap for round-tripping).
func (v TypedValue) Unwrap() string {
	switch v.Kind {
	case KindBlob:
		return fmt.Sprintf("%x", v.Bytes)
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindClob:
		return v.Str
	case KindDate:
		return millisToISO(v.Date)
	case KindFloat32:
		return strconv.FormatFloat(v.Float, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.Int, 10)
	case KindRecordNumber:
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return v.Str
	case KindUuid:
		return uuid.UUID(v.Uuid).String()
	case KindEnum:
		return v.Str
	case KindNull:
		return "null"
	case KindUndefined:
		return "undef"
	default:
		return ""
	}
}
