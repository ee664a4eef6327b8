package storage

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/value"
)

// Hybrid is memory-first with a disk spill threshold (spec.md §4.4):
// appends go to an in-memory Model until SpillThreshold rows are buffered,
// then the whole backlog migrates onto a Disk backend. Once spilled, a
// Hybrid behaves like a thin pass-through to its Disk tier.
type Hybrid struct {
	mu             sync.Mutex
	columns        []row.Column
	spillThreshold int
	diskPath       string

	mem      *Model
	disk     *Disk
	onDisk   bool
}

var _ RowCollection = (*Hybrid)(nil)

// NewHybrid creates a Hybrid bound to columns; spillThreshold is the row
// count at which the memory tier migrates to the disk tier at diskPath.
func NewHybrid(columns []row.Column, spillThreshold int, diskPath string) *Hybrid {
	return &Hybrid{
		columns:        columns,
		spillThreshold: spillThreshold,
		diskPath:       diskPath,
		mem:            NewModel(columns),
	}
}

func (h *Hybrid) active() RowCollection {
	if h.onDisk {
		return h.disk
	}
	return h.mem
}

func (h *Hybrid) Columns() []row.Column { return h.columns }
func (h *Hybrid) RecordSize() int       { return row.Stride(h.columns) }

func (h *Hybrid) Len() (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().Len()
}

func (h *Hybrid) ReadRow(id uint64) (row.Row, row.RowMetadata, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().ReadRow(id)
}

func (h *Hybrid) ReadRowMetadata(id uint64) (row.RowMetadata, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().ReadRowMetadata(id)
}

func (h *Hybrid) ReadField(id uint64, col int) (value.TypedValue, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().ReadField(id, col)
}

func (h *Hybrid) OverwriteRow(id uint64, r row.Row) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().OverwriteRow(id, r)
}

func (h *Hybrid) OverwriteRowMetadata(id uint64, md row.RowMetadata) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().OverwriteRowMetadata(id, md)
}

func (h *Hybrid) OverwriteField(id uint64, col int, v value.TypedValue) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().OverwriteField(id, col, v)
}

// AppendRow appends to the current tier, migrating memory -> disk first if
// the append would cross spillThreshold.
func (h *Hybrid) AppendRow(r row.Row) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.onDisk {
		n, err := h.mem.Len()
		if err != nil {
			return 0, err
		}
		if h.spillThreshold > 0 && int(n) >= h.spillThreshold {
			if err := h.migrateToDiskLocked(); err != nil {
				return 0, err
			}
		}
	}
	return h.active().AppendRow(r)
}

func (h *Hybrid) migrateToDiskLocked() error {
	disk, err := OpenDisk(h.diskPath, h.columns)
	if err != nil {
		return err
	}
	cursor, err := h.mem.Iter()
	if err != nil {
		return err
	}
	n, err := h.mem.Len()
	if err != nil {
		return err
	}
	for id := uint64(0); id < n; id++ {
		r, md, err := h.mem.ReadRow(id)
		if err != nil {
			return err
		}
		if _, err := disk.OverwriteRow(id, r); err != nil {
			return err
		}
		if _, err := disk.OverwriteRowMetadata(id, md); err != nil {
			return err
		}
	}
	_ = cursor
	logrus.WithFields(logrus.Fields{"path": h.diskPath, "rows": n}).Debug("hybrid backend spilled to disk")
	h.disk = disk
	h.onDisk = true
	h.mem = nil
	return nil
}

func (h *Hybrid) DeleteRow(id uint64) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().DeleteRow(id)
}

func (h *Hybrid) UndeleteRow(id uint64) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().UndeleteRow(id)
}

func (h *Hybrid) Resize(n uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().Resize(n)
}

func (h *Hybrid) Iter() (Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().Iter()
}

func (h *Hybrid) Compact() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active().Compact()
}

func (h *Hybrid) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.onDisk {
		return h.disk.Close()
	}
	return nil
}
