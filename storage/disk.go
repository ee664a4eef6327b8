package storage

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/value"
)

// Disk is a file-backed RowCollection with no write coalescing: every
// mutation issues one positioned write (spec.md §5: "File writes are not
// coalesced; every row write issues one positioned write"). Not safe for
// concurrent use from multiple goroutines beyond Disk's own mutex — callers
// requiring cross-process concurrency must serialize externally.
type Disk struct {
	mu      sync.Mutex
	columns []row.Column
	stride  int
	file    *os.File
	path    string
}

var _ RowCollection = (*Disk)(nil)

// OpenDisk opens (creating if absent) the row file at path for columns.
func OpenDisk(path string, columns []row.Column) (*Disk, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errs.Wrap(err, "opening row file")
	}
	return &Disk{columns: columns, stride: row.Stride(columns), file: f, path: path}, nil
}

func (d *Disk) Columns() []row.Column { return d.columns }
func (d *Disk) RecordSize() int       { return d.stride }

func (d *Disk) Len() (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, err := d.file.Stat()
	if err != nil {
		return 0, errs.Wrap(err, "stat row file")
	}
	return uint64(info.Size()) / uint64(d.stride), nil
}

func (d *Disk) readAt(id uint64) ([]byte, error) {
	buf := make([]byte, d.stride)
	n, err := d.file.ReadAt(buf, int64(id)*int64(d.stride))
	if err != nil && n != d.stride {
		return nil, errs.Wrap(err, "reading row")
	}
	return buf, nil
}

func (d *Disk) writeAt(id uint64, buf []byte) error {
	_, err := d.file.WriteAt(buf, int64(id)*int64(d.stride))
	if err != nil {
		return errs.Wrap(err, "writing row")
	}
	return nil
}

func (d *Disk) ReadRow(id uint64) (row.Row, row.RowMetadata, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return row.Row{}, row.RowMetadata{}, err
	}
	return row.Decode(id, d.columns, buf)
}

func (d *Disk) ReadRowMetadata(id uint64) (row.RowMetadata, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return row.RowMetadata{}, err
	}
	return row.DecodeRowMetadata(buf[0]), nil
}

func (d *Disk) ReadField(id uint64, col int) (value.TypedValue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return value.Undefined(), err
	}
	return row.DecodeField(d.columns, buf, col)
}

// growToLocked zero-extends the file to cover id, per spec.md §4.4.
func (d *Disk) growToLocked(id uint64) error {
	info, err := d.file.Stat()
	if err != nil {
		return errs.Wrap(err, "stat row file")
	}
	have := uint64(info.Size()) / uint64(d.stride)
	for n := have; n < id; n++ {
		encoded := row.Encode(row.Defaults(n, d.columns), row.RowMetadata{Allocated: true})
		if err := d.writeAt(n, encoded); err != nil {
			return err
		}
	}
	return nil
}

func (d *Disk) OverwriteRow(id uint64, r row.Row) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.growToLocked(id); err != nil {
		return 0, err
	}
	encoded := row.Encode(r, row.RowMetadata{Allocated: true})
	if err := d.writeAt(id, encoded); err != nil {
		return 0, err
	}
	return 1, nil
}

func (d *Disk) OverwriteRowMetadata(id uint64, md row.RowMetadata) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.file.WriteAt([]byte{md.Encode()}, int64(id)*int64(d.stride))
	if err != nil {
		return 0, errs.Wrap(err, "writing row metadata")
	}
	return 1, nil
}

func (d *Disk) OverwriteField(id uint64, col int, v value.TypedValue) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return 0, err
	}
	r, md, err := row.Decode(id, d.columns, buf)
	if err != nil {
		return 0, err
	}
	r.Fields[col] = v
	encoded := row.Encode(r, md)
	if err := d.writeAt(id, encoded); err != nil {
		return 0, err
	}
	return 1, nil
}

func (d *Disk) AppendRow(r row.Row) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, err := d.file.Stat()
	if err != nil {
		return 0, errs.Wrap(err, "stat row file")
	}
	id := uint64(info.Size()) / uint64(d.stride)
	r.ID = id
	encoded := row.Encode(r, row.RowMetadata{Allocated: true})
	if err := d.writeAt(id, encoded); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *Disk) DeleteRow(id uint64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return 0, err
	}
	md := row.DecodeRowMetadata(buf[0])
	if !md.Allocated {
		return 0, nil
	}
	if _, err := d.file.WriteAt([]byte{row.RowMetadata{Allocated: false}.Encode()}, int64(id)*int64(d.stride)); err != nil {
		return 0, errs.Wrap(err, "tombstoning row")
	}
	return 1, nil
}

func (d *Disk) UndeleteRow(id uint64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.readAt(id)
	if err != nil {
		return 0, err
	}
	md := row.DecodeRowMetadata(buf[0])
	if md.Allocated {
		return 0, nil
	}
	if _, err := d.file.WriteAt([]byte{row.RowMetadata{Allocated: true}.Encode()}, int64(id)*int64(d.stride)); err != nil {
		return 0, errs.Wrap(err, "restoring row")
	}
	return 1, nil
}

func (d *Disk) Resize(n uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.file.Truncate(int64(n) * int64(d.stride)); err != nil {
		return errs.Wrap(err, "truncating row file")
	}
	return d.growToLocked(n)
}

func (d *Disk) Iter() (Cursor, error) {
	count, err := d.Len()
	if err != nil {
		return nil, err
	}
	active := make([]row.Row, 0, count)
	for id := uint64(0); id < count; id++ {
		r, md, err := d.ReadRow(id)
		if err != nil {
			return nil, err
		}
		if md.Allocated {
			active = append(active, r)
		}
	}
	return newSliceCursor(active), nil
}

// Compact rewrites the row file through a temporary file that then
// replaces it, dropping tombstones and
// renumbering active rows densely (spec.md T5).
func (d *Disk) Compact() error {
	count, err := d.Len()
	if err != nil {
		return err
	}
	tmpPath := d.path + ".compact"
	tmp, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.Wrap(err, "creating compaction file")
	}
	nextID := uint64(0)
	for id := uint64(0); id < count; id++ {
		r, md, err := d.ReadRow(id)
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return err
		}
		if !md.Allocated {
			continue
		}
		r.ID = nextID
		encoded := row.Encode(r, row.RowMetadata{Allocated: true})
		if _, err := tmp.WriteAt(encoded, int64(nextID)*int64(d.stride)); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return errs.Wrap(err, "writing compacted row")
		}
		nextID++
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "closing compaction file")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.file.Close(); err != nil {
		return errs.Wrap(err, "closing row file")
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		return errs.Wrap(err, "installing compacted row file")
	}
	f, err := os.OpenFile(d.path, os.O_RDWR, 0o644)
	if err != nil {
		return errs.Wrap(err, "reopening row file")
	}
	d.file = f
	logrus.WithFields(logrus.Fields{"path": d.path, "rows": nextID}).Debug("compaction complete")
	return nil
}

func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.Close()
}
