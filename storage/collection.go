// Package storage implements the row-collection abstraction of spec.md §4.4:
// a uniform CRUD contract over rows with tombstone-based deletion and
// compaction, backed by four polymorphic implementations (model, byteb,
// disk, hybrid).
package storage

import (
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/value"
)

// RowCollection is the capability set every backend implements identically
// (spec.md §4.4's operation table).
type RowCollection interface {
	Columns() []row.Column
	Len() (uint64, error)
	RecordSize() int
	ReadRow(id uint64) (row.Row, row.RowMetadata, error)
	ReadRowMetadata(id uint64) (row.RowMetadata, error)
	ReadField(id uint64, col int) (value.TypedValue, error)
	OverwriteRow(id uint64, r row.Row) (int64, error)
	OverwriteRowMetadata(id uint64, md row.RowMetadata) (int64, error)
	OverwriteField(id uint64, col int, v value.TypedValue) (int64, error)
	AppendRow(r row.Row) (uint64, error)
	DeleteRow(id uint64) (int64, error)
	UndeleteRow(id uint64) (int64, error)
	Resize(n uint64) error
	Iter() (Cursor, error)
	Compact() error
	Close() error
}

// Cursor walks active rows in ascending id order (spec.md §4.4 iter).
type Cursor interface {
	Next() (row.Row, bool, error)
}

// sliceCursor is a Cursor over a pre-materialized slice of active rows,
// returned by the Iter of every backend (model, byteb, disk; hybrid
// delegates to its current tier).
type sliceCursor struct {
	rows []row.Row
	pos  int
}

func (c *sliceCursor) Next() (row.Row, bool, error) {
	if c.pos >= len(c.rows) {
		return row.Row{}, false, nil
	}
	r := c.rows[c.pos]
	c.pos++
	return r, true, nil
}

func newSliceCursor(rows []row.Row) Cursor {
	return &sliceCursor{rows: rows}
}
