package storage

import (
	"sync"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/value"
)

// Byte is an in-memory byte buffer encoded with the same fixed-stride codec
// as Disk (spec.md §4.4): useful for tests and zero-copy serialization.
type Byte struct {
	mu      sync.RWMutex
	columns []row.Column
	stride  int
	buf     []byte
}

var _ RowCollection = (*Byte)(nil)

// NewByte creates an empty Byte collection bound to columns.
func NewByte(columns []row.Column) *Byte {
	return &Byte{columns: columns, stride: row.Stride(columns)}
}

// NewByteFromBuffer wraps an existing encoded buffer (e.g. received over
// the wire) as a Byte collection.
func NewByteFromBuffer(columns []row.Column, buf []byte) *Byte {
	return &Byte{columns: columns, stride: row.Stride(columns), buf: buf}
}

// Bytes returns the raw encoded buffer, for serialization.
func (b *Byte) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

func (b *Byte) Columns() []row.Column { return b.columns }
func (b *Byte) RecordSize() int       { return b.stride }

func (b *Byte) Len() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint64(len(b.buf) / b.stride), nil
}

func (b *Byte) rowBytes(id uint64) ([]byte, error) {
	offset := int(id) * b.stride
	if offset+b.stride > len(b.buf) {
		return nil, &errs.Exact{Message: "row id out of range"}
	}
	return b.buf[offset : offset+b.stride], nil
}

func (b *Byte) ReadRow(id uint64) (row.Row, row.RowMetadata, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return row.Row{}, row.RowMetadata{}, err
	}
	return row.Decode(id, b.columns, buf)
}

func (b *Byte) ReadRowMetadata(id uint64) (row.RowMetadata, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return row.RowMetadata{}, err
	}
	return row.DecodeRowMetadata(buf[0]), nil
}

func (b *Byte) ReadField(id uint64, col int) (value.TypedValue, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return value.Undefined(), err
	}
	return row.DecodeField(b.columns, buf, col)
}

func (b *Byte) growTo(n uint64) {
	needed := int(n) * b.stride
	for len(b.buf) < needed {
		id := uint64(len(b.buf) / b.stride)
		encoded := row.Encode(row.Defaults(id, b.columns), row.RowMetadata{Allocated: true})
		b.buf = append(b.buf, encoded...)
	}
}

func (b *Byte) OverwriteRow(id uint64, r row.Row) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.growTo(id + 1)
	encoded := row.Encode(r, row.RowMetadata{Allocated: true})
	copy(b.buf[int(id)*b.stride:], encoded)
	return 1, nil
}

func (b *Byte) OverwriteRowMetadata(id uint64, md row.RowMetadata) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return 0, err
	}
	buf[0] = md.Encode()
	return 1, nil
}

func (b *Byte) OverwriteField(id uint64, col int, v value.TypedValue) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return 0, err
	}
	r, md, err := row.Decode(id, b.columns, buf)
	if err != nil {
		return 0, err
	}
	r.Fields[col] = v
	encoded := row.Encode(r, md)
	copy(buf, encoded)
	return 1, nil
}

func (b *Byte) AppendRow(r row.Row) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uint64(len(b.buf) / b.stride)
	r.ID = id
	encoded := row.Encode(r, row.RowMetadata{Allocated: true})
	b.buf = append(b.buf, encoded...)
	return id, nil
}

func (b *Byte) DeleteRow(id uint64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return 0, err
	}
	md := row.DecodeRowMetadata(buf[0])
	if !md.Allocated {
		return 0, nil
	}
	buf[0] = row.RowMetadata{Allocated: false}.Encode()
	return 1, nil
}

func (b *Byte) UndeleteRow(id uint64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, err := b.rowBytes(id)
	if err != nil {
		return 0, err
	}
	md := row.DecodeRowMetadata(buf[0])
	if md.Allocated {
		return 0, nil
	}
	buf[0] = row.RowMetadata{Allocated: true}.Encode()
	return 1, nil
}

func (b *Byte) Resize(n uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	needed := int(n) * b.stride
	if needed <= len(b.buf) {
		b.buf = b.buf[:needed]
		return nil
	}
	b.growTo(n)
	return nil
}

func (b *Byte) Iter() (Cursor, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	count := uint64(len(b.buf) / b.stride)
	active := make([]row.Row, 0, count)
	for id := uint64(0); id < count; id++ {
		buf, _ := b.rowBytes(id)
		md := row.DecodeRowMetadata(buf[0])
		if !md.Allocated {
			continue
		}
		r, _, err := row.Decode(id, b.columns, buf)
		if err != nil {
			return nil, err
		}
		active = append(active, r)
	}
	return newSliceCursor(active), nil
}

func (b *Byte) Compact() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := uint64(len(b.buf) / b.stride)
	newBuf := make([]byte, 0, len(b.buf))
	nextID := uint64(0)
	for id := uint64(0); id < count; id++ {
		offset := int(id) * b.stride
		buf := b.buf[offset : offset+b.stride]
		md := row.DecodeRowMetadata(buf[0])
		if !md.Allocated {
			continue
		}
		r, _, err := row.Decode(id, b.columns, buf)
		if err != nil {
			return err
		}
		r.ID = nextID
		newBuf = append(newBuf, row.Encode(r, row.RowMetadata{Allocated: true})...)
		nextID++
	}
	b.buf = newBuf
	return nil
}

func (b *Byte) Close() error { return nil }
