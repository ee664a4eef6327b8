// Package dataframe implements the polymorphic dataframe facade of
// spec.md §4.4/§4.6: a thin tagged wrapper over the four storage.RowCollection
// backends, plus the set-oriented SQL verbs (delete_where, overwrite_where,
// update_where, undelete_where).
//
// Predicate and field/value transformation are supplied by the caller
// (the machine package) as plain functions, so dataframe never imports
// machine — avoiding the evaluator <-> dataframe import cycle that a direct
// dependency would create.
package dataframe

import (
	"github.com/solidcoredata/coredb/namespace"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/storage"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

// Predicate reports whether row r matches a condition. A nil Predicate
// matches every row (spec.md §4.6 "a missing (none) predicate matches
// every row").
type Predicate func(r row.Row) (bool, error)

// Transform evaluates the `fields`/`values` expressions of an
// overwrite_where/update_where invocation against row r, returning the
// column names to set and their new values (spec.md §4.4).
type Transform func(r row.Row) (fieldNames []string, values []value.TypedValue, err error)

// Dataframe is a typed, mutable row collection sharing one schema, backed
// by one of storage's four RowCollection variants (spec.md glossary).
type Dataframe struct {
	backend storage.RowCollection
}

// New wraps an already-constructed backend as a Dataframe.
func New(backend storage.RowCollection) *Dataframe {
	return &Dataframe{backend: backend}
}

// Backend exposes the underlying storage.RowCollection for callers (e.g.
// the machine package) that need direct CRUD access beyond the verbs here.
func (df *Dataframe) Backend() storage.RowCollection { return df.backend }

func (df *Dataframe) Columns() []row.Column { return df.backend.Columns() }

// Len implements value.TableValue so a Dataframe can be stored directly
// inside a value.TypedValue (Kind: Table).
func (df *Dataframe) Len() (int, error) {
	n, err := df.backend.Len()
	return int(n), err
}

// CreateTable persists ns's ObjectConfig and an empty Disk-backed row file,
// then opens it as a Dataframe (spec.md §3 Table lifecycle).
func CreateTable(home string, ns namespace.Namespace, columns []row.Column) (*Dataframe, error) {
	cfg := namespace.BuildObjectConfig(columns)
	if err := cfg.Save(home, ns); err != nil {
		return nil, err
	}
	if err := namespace.Touch(home, ns); err != nil {
		return nil, err
	}
	return OpenDisk(home, ns, columns)
}

// OpenDisk opens an existing on-disk table as a Disk-backed Dataframe.
func OpenDisk(home string, ns namespace.Namespace, columns []row.Column) (*Dataframe, error) {
	backend, err := storage.OpenDisk(ns.DataPath(home), columns)
	if err != nil {
		return nil, err
	}
	return New(backend), nil
}

// Open resolves ns under home, loading its schema descriptor and opening
// its Disk backend (spec.md §6: "consulted on open").
func Open(home string, ns namespace.Namespace) (*Dataframe, error) {
	cfg, err := namespace.Load(home, ns)
	if err != nil {
		return nil, err
	}
	columns, err := cfg.ToRowColumns()
	if err != nil {
		return nil, err
	}
	return OpenDisk(home, ns, columns)
}

func (df *Dataframe) Close() error { return df.backend.Close() }

// allIDs enumerates every candidate row id in ascending order; callers cap
// affected-row counts against limit themselves (spec.md §4.4 "limit =
// Undefined means no bound" — the predicate, not the scan, is what limit
// bounds).
func allIDs(count uint64) []uint64 {
	ids := make([]uint64, count)
	for id := range ids {
		ids[id] = uint64(id)
	}
	return ids
}

// reachedLimit reports whether affected has already hit limit (nil or
// negative limit means unbounded).
func reachedLimit(affected int64, limit *int64) bool {
	return limit != nil && *limit >= 0 && affected >= *limit
}

// DeleteWhere tombstones active rows matching pred, examining ids in
// ascending order and stopping once limit rows have been tombstoned
// (spec.md §4.4). limit counts affected rows, not ids examined.
func (df *Dataframe) DeleteWhere(pred Predicate, limit *int64) (int64, error) {
	count, err := df.backend.Len()
	if err != nil {
		return 0, err
	}
	var deleted int64
	for _, id := range allIDs(count) {
		if reachedLimit(deleted, limit) {
			break
		}
		r, md, err := df.backend.ReadRow(id)
		if err != nil {
			return deleted, err
		}
		if !md.Allocated {
			continue
		}
		matched, err := matches(pred, r)
		if err != nil {
			return deleted, err
		}
		if !matched {
			continue
		}
		n, err := df.backend.DeleteRow(id)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

// UndeleteWhere restores tombstoned rows matching pred (spec.md §4.4,
// symmetric to DeleteWhere).
func (df *Dataframe) UndeleteWhere(pred Predicate, limit *int64) (int64, error) {
	count, err := df.backend.Len()
	if err != nil {
		return 0, err
	}
	var restored int64
	for _, id := range allIDs(count) {
		if reachedLimit(restored, limit) {
			break
		}
		r, md, err := df.backend.ReadRow(id)
		if err != nil {
			return restored, err
		}
		if md.Allocated {
			continue
		}
		matched, err := matches(pred, r)
		if err != nil {
			return restored, err
		}
		if !matched {
			continue
		}
		n, err := df.backend.UndeleteRow(id)
		if err != nil {
			return restored, err
		}
		restored += n
	}
	return restored, nil
}

// OverwriteWhere replaces matching rows: unspecified columns reset to their
// schema default (spec.md open question #3 / SPEC_FULL.md §5.3).
func (df *Dataframe) OverwriteWhere(transform Transform, pred Predicate, limit *int64) (int64, error) {
	return df.mutateWhere(transform, pred, limit, true)
}

// UpdateWhere replaces matching rows: unspecified columns retain their
// existing values (spec.md §4.4: "does not reset untouched columns to
// defaults").
func (df *Dataframe) UpdateWhere(transform Transform, pred Predicate, limit *int64) (int64, error) {
	return df.mutateWhere(transform, pred, limit, false)
}

func (df *Dataframe) mutateWhere(transform Transform, pred Predicate, limit *int64, resetToDefaults bool) (int64, error) {
	count, err := df.backend.Len()
	if err != nil {
		return 0, err
	}
	columns := df.backend.Columns()
	var affected int64
	for _, id := range allIDs(count) {
		if reachedLimit(affected, limit) {
			break
		}
		r, md, err := df.backend.ReadRow(id)
		if err != nil {
			return affected, err
		}
		if !md.Allocated {
			continue
		}
		matched, err := matches(pred, r)
		if err != nil {
			return affected, err
		}
		if !matched {
			continue
		}
		fieldNames, values, err := transform(r)
		if err != nil {
			return affected, err
		}
		base := r
		if resetToDefaults {
			base = row.Defaults(r.ID, columns)
		}
		for i, name := range fieldNames {
			if i >= len(values) {
				break
			}
			base = base.WithField(name, values[i])
		}
		n, err := df.backend.OverwriteRow(id, base)
		if err != nil {
			return affected, err
		}
		affected += n
	}
	return affected, nil
}

func matches(pred Predicate, r row.Row) (bool, error) {
	if pred == nil {
		return true, nil
	}
	return pred(r)
}

// AppendRow appends r and returns its assigned id (spec.md §4.4).
func (df *Dataframe) AppendRow(r row.Row) (uint64, error) { return df.backend.AppendRow(r) }

// Compact rewrites the backing store, dropping tombstones and renumbering
// active rows densely from 0 (spec.md T5).
func (df *Dataframe) Compact() error { return df.backend.Compact() }

// Reverse returns a new in-memory Dataframe with active rows in reverse
// order (tools::reverse / Expression Reverse, spec.md §4.5/§4.7).
func (df *Dataframe) Reverse() (*Dataframe, error) {
	rows, err := activeRows(df.backend)
	if err != nil {
		return nil, err
	}
	reversed := make([]row.Row, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}
	return New(storage.FromRows(df.Columns(), reversed)), nil
}

// Scan returns the active rows as a new in-memory Dataframe snapshot
// (tools::scan, spec.md §4.7).
func (df *Dataframe) Scan() (*Dataframe, error) {
	rows, err := activeRows(df.backend)
	if err != nil {
		return nil, err
	}
	return New(storage.FromRows(df.Columns(), rows)), nil
}

// Rows returns every active row, for callers projecting a Dataframe to
// another representation (tools::to_array/to_csv/to_json/to_table).
func (df *Dataframe) Rows() ([]row.Row, error) { return activeRows(df.backend) }

// DescribeSelf returns this Dataframe's own column description table
// (tools::describe, spec.md §4.7).
func (df *Dataframe) DescribeSelf() *Dataframe { return Describe(df.Columns()) }

func activeRows(backend storage.RowCollection) ([]row.Row, error) {
	cursor, err := backend.Iter()
	if err != nil {
		return nil, err
	}
	var rows []row.Row
	for {
		r, ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Describe returns one row per column describing name/type/nullable
// (tools::describe, Expression Describe, spec.md §4.5/§4.7).
func Describe(columns []row.Column) *Dataframe {
	descCols := []row.Column{
		{Name: "name", Type: types.String(64)},
		{Name: "type", Type: types.String(64)},
		{Name: "nullable", Type: types.Boolean()},
	}
	rows := make([]row.Row, len(columns))
	for i, c := range columns {
		rows[i] = row.Row{
			Columns: descCols,
			Fields: []value.TypedValue{
				value.StringV(c.Name),
				value.StringV(c.Type.Render()),
				value.Boolean(c.Nullable),
			},
		}
	}
	return New(storage.FromRows(descCols, rows))
}

// Fetch reads a contiguous [from, to) id range as a new in-memory
// Dataframe, for tools::fetch / the REST range endpoint (spec.md §6).
func (df *Dataframe) Fetch(from, to uint64) (*Dataframe, error) {
	count, err := df.backend.Len()
	if err != nil {
		return nil, err
	}
	if to > count {
		to = count
	}
	var rows []row.Row
	for id := from; id < to; id++ {
		r, md, err := df.backend.ReadRow(id)
		if err != nil {
			return nil, err
		}
		if md.Allocated {
			rows = append(rows, r)
		}
	}
	return New(storage.FromRows(df.Columns(), rows)), nil
}
