// Package tools registers the platform::tools built-ins of spec.md §4.7:
// dataframe verbs exposed as platform calls (compact, describe, fetch,
// reverse, scan) plus projections to other representations (to_array,
// to_csv, to_json, to_table).
package tools

import (
	"encoding/json"
	"strings"

	"github.com/solidcoredata/coredb/dataframe"
	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/storage"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "tools"

const (
	opCompact platform.Opcode = iota + 800
	opDescribe
	opFetch
	opReverse
	opScan
	opToArray
	opToCSV
	opToJSON
	opToTable
)

func asTable(v value.TypedValue) (*dataframe.Dataframe, error) {
	if v.Kind != value.KindTable {
		return nil, &errs.TableExpected{Kind: "Table", Got: v.TypeOf().Render()}
	}
	df, ok := v.Table.(*dataframe.Dataframe)
	if !ok || df == nil {
		return nil, &errs.TableExpected{Kind: "Table", Got: "nil"}
	}
	return df, nil
}

func asTableValue(df *dataframe.Dataframe) value.TypedValue {
	return value.TypedValue{Kind: value.KindTable, Table: df}
}

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "compact", Arity: 1, Opcode: opCompact,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			if err := df.Compact(); err != nil {
				return value.Undefined(), err
			}
			return value.Outcome(1), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "describe", Arity: 1, Opcode: opDescribe,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			return asTableValue(df.DescribeSelf()), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "reverse", Arity: 1, Opcode: opReverse,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			reversed, err := df.Reverse()
			if err != nil {
				return value.Undefined(), err
			}
			return asTableValue(reversed), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "scan", Arity: 1, Opcode: opScan,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			snap, err := df.Scan()
			if err != nil {
				return value.Undefined(), err
			}
			return asTableValue(snap), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "fetch", Arity: 3, Opcode: opFetch,
		Call: platform.Arity3(func(a, from, to value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			slice, err := df.Fetch(uint64(from.Int), uint64(to.Int))
			if err != nil {
				return value.Undefined(), err
			}
			return asTableValue(slice), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "to_array", Arity: 1, Opcode: opToArray,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			rows, err := df.Rows()
			if err != nil {
				return value.Undefined(), err
			}
			items := make([]value.TypedValue, len(rows))
			for i, r := range rows {
				items[i] = value.ArrayV(append([]value.TypedValue(nil), r.Fields...))
			}
			return value.ArrayV(items), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "to_table", Arity: 1, Opcode: opToTable,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindArray {
				return value.Undefined(), &errs.CollectionExpected{Got: a.TypeOf().Render()}
			}
			rows := make([]row.Row, len(a.Array))
			var columns []row.Column
			for i, item := range a.Array {
				if item.Kind != value.KindStructure {
					return value.Undefined(), &errs.CollectionExpected{Got: item.TypeOf().Render()}
				}
				if columns == nil {
					columns = columnsFromStruct(item.Fields)
				}
				rows[i] = row.Row{Columns: columns, Fields: fieldsInColumnOrder(columns, item.Fields)}
			}
			return asTableValue(dataframe.New(storage.FromRows(columns, rows))), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "to_csv", Arity: 1, Opcode: opToCSV,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			df, err := asTable(a)
			if err != nil {
				return value.Undefined(), err
			}
			columns := df.Columns()
			rows, err := df.Rows()
			if err != nil {
				return value.Undefined(), err
			}
			var b strings.Builder
			names := make([]string, len(columns))
			for i, c := range columns {
				names[i] = c.Name
			}
			b.WriteString(strings.Join(names, ","))
			b.WriteByte('\n')
			for _, r := range rows {
				fields := make([]string, len(r.Fields))
				for i, f := range r.Fields {
					fields[i] = f.Unwrap()
				}
				b.WriteString(strings.Join(fields, ","))
				b.WriteByte('\n')
			}
			return value.StringV(b.String()), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "to_json", Arity: 1, Opcode: opToJSON,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind == value.KindTable {
				df, err := asTable(a)
				if err != nil {
					return value.Undefined(), err
				}
				rows, err := df.Rows()
				if err != nil {
					return value.Undefined(), err
				}
				columns := df.Columns()
				out := make([]map[string]json.RawMessage, len(rows))
				for i, r := range rows {
					obj := make(map[string]json.RawMessage, len(columns))
					for j, c := range columns {
						raw, err := r.Fields[j].ToJSON()
						if err != nil {
							return value.Undefined(), err
						}
						obj[c.Name] = raw
					}
					out[i] = obj
				}
				buf, err := json.Marshal(out)
				if err != nil {
					return value.Undefined(), errs.Wrap(err, "encoding table as json")
				}
				return value.StringV(string(buf)), nil
			}
			raw, err := a.ToJSON()
			if err != nil {
				return value.Undefined(), err
			}
			return value.StringV(string(raw)), nil
		}),
	})
}

func columnsFromStruct(fields map[string]value.TypedValue) []row.Column {
	columns := make([]row.Column, 0, len(fields))
	for name, v := range fields {
		columns = append(columns, row.Column{Name: name, Type: v.TypeOf()})
	}
	return columns
}

func fieldsInColumnOrder(columns []row.Column, fields map[string]value.TypedValue) []value.TypedValue {
	out := make([]value.TypedValue, len(columns))
	for i, c := range columns {
		if v, ok := fields[c.Name]; ok {
			out[i] = v
		} else {
			out[i] = value.Null()
		}
	}
	return out
}
