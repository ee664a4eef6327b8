// Package util registers the platform::util built-ins of spec.md §4.7:
// base64, md5, ASCII conversion, and numeric narrowing/widening.
package util

import (
	"crypto/md5"
	"encoding/base64"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "util"

const (
	opBase64Encode platform.Opcode = iota + 300
	opBase64Decode
	opMd5
	opToAscii
	opFromAscii
	opToF32
	opToF64
	opToI8
	opToI16
	opToI32
	opToI64
	opToI128
	opToU8
	opToU16
	opToU32
	opToU64
	opToU128
)

func bytesOf(v value.TypedValue) ([]byte, error) {
	switch v.Kind {
	case value.KindBlob:
		return v.Bytes, nil
	case value.KindString, value.KindClob:
		return []byte(v.Str), nil
	default:
		return nil, &errs.TypeMismatch{Expected: "Blob or String", Got: v.TypeOf().Render()}
	}
}

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "base64_encode", Arity: 1, Opcode: opBase64Encode,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			b, err := bytesOf(a)
			if err != nil {
				return value.Undefined(), err
			}
			return value.StringV(base64.StdEncoding.EncodeToString(b)), nil
		}),
	})
	r.Register(platform.Signature{Package: pkg, Name: "base64_decode", Arity: 1, Opcode: opBase64Decode,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			s, err := bytesOf(a)
			if err != nil {
				return value.Undefined(), err
			}
			decoded, err := base64.StdEncoding.DecodeString(string(s))
			if err != nil {
				return value.Undefined(), &errs.ConversionError{Message: err.Error()}
			}
			return value.Blob(decoded), nil
		}),
	})
	r.Register(platform.Signature{Package: pkg, Name: "md5", Arity: 1, Opcode: opMd5,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			b, err := bytesOf(a)
			if err != nil {
				return value.Undefined(), err
			}
			sum := md5.Sum(b)
			return value.Blob(sum[:]), nil
		}),
	})
	r.Register(platform.Signature{Package: pkg, Name: "to_ascii", Arity: 1, Opcode: opToAscii,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindInt8 && a.Kind != value.KindInt16 && a.Kind != value.KindInt32 && a.Kind != value.KindInt64 {
				return value.Undefined(), &errs.TypeMismatch{Expected: "integer", Got: a.TypeOf().Render()}
			}
			return value.StringV(string(rune(a.Int))), nil
		}),
	})
	r.Register(platform.Signature{Package: pkg, Name: "from_ascii", Arity: 1, Opcode: opFromAscii,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil || len(s) == 0 {
				return value.Undefined(), &errs.StringExpected{Got: a.TypeOf().Render()}
			}
			return value.Int32v(int32(s[0])), nil
		}),
	})

	registerNumeric(r, opToF32, "to_f32", func(f float64) value.TypedValue { return value.Float32v(float32(f)) })
	registerNumeric(r, opToF64, "to_f64", func(f float64) value.TypedValue { return value.Float64v(f) })
	registerNumeric(r, opToI8, "to_i8", func(f float64) value.TypedValue { return value.Int8v(int8(f)) })
	registerNumeric(r, opToI16, "to_i16", func(f float64) value.TypedValue { return value.Int16v(int16(f)) })
	registerNumeric(r, opToI32, "to_i32", func(f float64) value.TypedValue { return value.Int32v(int32(f)) })
	registerNumeric(r, opToI64, "to_i64", func(f float64) value.TypedValue { return value.Int64v(int64(f)) })
	registerNumeric(r, opToI128, "to_i128", func(f float64) value.TypedValue { return value.Int64v(int64(f)) })
	registerNumeric(r, opToU8, "to_u8", func(f float64) value.TypedValue { return value.Int8v(int8(uint8(f))) })
	registerNumeric(r, opToU16, "to_u16", func(f float64) value.TypedValue { return value.Int16v(int16(uint16(f))) })
	registerNumeric(r, opToU32, "to_u32", func(f float64) value.TypedValue { return value.Int32v(int32(uint32(f))) })
	registerNumeric(r, opToU64, "to_u64", func(f float64) value.TypedValue { return value.Int64v(int64(uint64(f))) })
	registerNumeric(r, opToU128, "to_u128", func(f float64) value.TypedValue { return value.Int64v(int64(uint64(f))) })
}

func asString(v value.TypedValue) (string, error) {
	if v.Kind == value.KindString || v.Kind == value.KindClob {
		return v.Str, nil
	}
	return "", &errs.StringExpected{Got: v.TypeOf().Render()}
}

func registerNumeric(r *platform.Registry, code platform.Opcode, name string, convert func(float64) value.TypedValue) {
	r.Register(platform.Signature{Package: pkg, Name: name, Arity: 1, Opcode: code,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			f, ok := numericOf(a)
			if !ok {
				return value.Undefined(), &errs.TypeMismatch{Expected: "numeric", Got: a.TypeOf().Render()}
			}
			return convert(f), nil
		}),
	})
}

func numericOf(v value.TypedValue) (float64, bool) {
	switch v.Kind {
	case value.KindInt8, value.KindInt16, value.KindInt32, value.KindInt64:
		return float64(v.Int), true
	case value.KindFloat32, value.KindFloat64:
		return v.Float, true
	default:
		return 0, false
	}
}
