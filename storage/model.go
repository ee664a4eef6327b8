package storage

import (
	"sync"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/value"
)

// Model is a contiguous in-memory RowCollection, fastest for ephemeral
// results (spec.md §4.4).
type Model struct {
	mu       sync.RWMutex
	columns  []row.Column
	rows     []row.Row
	metadata []row.RowMetadata
}

var _ RowCollection = (*Model)(nil)

// NewModel creates an empty Model bound to columns.
func NewModel(columns []row.Column) *Model {
	return &Model{columns: columns}
}

// FromRows builds a Model pre-populated with rows, all marked active, ids
// assigned 0..len(rows)-1. Used by tools::to_table and query results.
func FromRows(columns []row.Column, rows []row.Row) *Model {
	m := NewModel(columns)
	m.rows = make([]row.Row, len(rows))
	m.metadata = make([]row.RowMetadata, len(rows))
	for i, r := range rows {
		r.ID = uint64(i)
		m.rows[i] = r
		m.metadata[i] = row.RowMetadata{Allocated: true}
	}
	return m
}

func (m *Model) Columns() []row.Column { return m.columns }

func (m *Model) Len() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.rows)), nil
}

func (m *Model) RecordSize() int { return row.Stride(m.columns) }

func (m *Model) checkBounds(id uint64) error {
	if id >= uint64(len(m.rows)) {
		return &errs.Exact{Message: "row id out of range"}
	}
	return nil
}

func (m *Model) ReadRow(id uint64) (row.Row, row.RowMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkBounds(id); err != nil {
		return row.Row{}, row.RowMetadata{}, err
	}
	return m.rows[id], m.metadata[id], nil
}

func (m *Model) ReadRowMetadata(id uint64) (row.RowMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkBounds(id); err != nil {
		return row.RowMetadata{}, err
	}
	return m.metadata[id], nil
}

func (m *Model) ReadField(id uint64, col int) (value.TypedValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkBounds(id); err != nil {
		return value.Undefined(), err
	}
	return m.rows[id].Fields[col], nil
}

func (m *Model) OverwriteRow(id uint64, r row.Row) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.growTo(id + 1)
	r.ID = id
	m.rows[id] = r
	m.metadata[id] = row.RowMetadata{Allocated: true}
	return 1, nil
}

func (m *Model) OverwriteRowMetadata(id uint64, md row.RowMetadata) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkBounds(id); err != nil {
		return 0, err
	}
	m.metadata[id] = md
	return 1, nil
}

func (m *Model) OverwriteField(id uint64, col int, v value.TypedValue) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkBounds(id); err != nil {
		return 0, err
	}
	m.rows[id].Fields[col] = v
	return 1, nil
}

func (m *Model) AppendRow(r row.Row) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uint64(len(m.rows))
	r.ID = id
	m.rows = append(m.rows, r)
	m.metadata = append(m.metadata, row.RowMetadata{Allocated: true})
	return id, nil
}

func (m *Model) DeleteRow(id uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkBounds(id); err != nil {
		return 0, err
	}
	if !m.metadata[id].Allocated {
		return 0, nil
	}
	m.metadata[id] = row.RowMetadata{Allocated: false}
	return 1, nil
}

func (m *Model) UndeleteRow(id uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkBounds(id); err != nil {
		return 0, err
	}
	if m.metadata[id].Allocated {
		return 0, nil
	}
	m.metadata[id] = row.RowMetadata{Allocated: true}
	return 1, nil
}

// growTo zero-extends the collection to at least n rows (spec.md §4.4:
// "appending to a table whose file is shorter than id*stride zero-extends
// the gap").
func (m *Model) growTo(n uint64) {
	for uint64(len(m.rows)) < n {
		id := uint64(len(m.rows))
		m.rows = append(m.rows, row.Defaults(id, m.columns))
		m.metadata = append(m.metadata, row.RowMetadata{Allocated: true})
	}
}

func (m *Model) Resize(n uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= uint64(len(m.rows)) {
		m.rows = m.rows[:n]
		m.metadata = m.metadata[:n]
		return nil
	}
	m.growTo(n)
	return nil
}

func (m *Model) Iter() (Cursor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	active := make([]row.Row, 0, len(m.rows))
	for i, r := range m.rows {
		if m.metadata[i].Allocated {
			active = append(active, r)
		}
	}
	return newSliceCursor(active), nil
}

// Compact rewrites the collection, dropping tombstones and renumbering
// active rows densely from 0, preserving relative order (spec.md T5).
func (m *Model) Compact() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	newRows := make([]row.Row, 0, len(m.rows))
	newMeta := make([]row.RowMetadata, 0, len(m.rows))
	for i, r := range m.rows {
		if m.metadata[i].Allocated {
			r.ID = uint64(len(newRows))
			newRows = append(newRows, r)
			newMeta = append(newMeta, row.RowMetadata{Allocated: true})
		}
	}
	m.rows = newRows
	m.metadata = newMeta
	return nil
}

func (m *Model) Close() error { return nil }
