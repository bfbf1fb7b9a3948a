package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bitfsorg/reflink-go/address"
)

// Every serialized record starts with:
//
//	kind(1) || version(1)
//
// followed by kind-specific fields in big-endian order. Strings are
// u16(len) || bytes. Booleans are one byte.
const (
	headerSize    = 2
	codecVersion  = 1
	maxStringSize = math.MaxUint16
)

// Kind returns the kind tag of a serialized record without decoding it.
func Kind(data []byte) (address.Kind, error) {
	if len(data) < headerSize {
		return 0, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidRecordData, len(data))
	}
	return address.Kind(data[0]), nil
}

type encoder struct {
	buf []byte
	err error
}

func newEncoder(kind address.Kind, sizeHint int) *encoder {
	e := &encoder{buf: make([]byte, 0, headerSize+sizeHint)}
	e.buf = append(e.buf, byte(kind), codecVersion)
	return e
}

func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u16(v uint16) { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.BigEndian.AppendUint64(e.buf, v) }
func (e *encoder) i64(v int64)  { e.u64(uint64(v)) }

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
		return
	}
	e.u8(0)
}

func (e *encoder) bytes(b []byte) { e.buf = append(e.buf, b...) }

func (e *encoder) str(field, s string) {
	if len(s) > maxStringSize {
		if e.err == nil {
			e.err = fmt.Errorf("%w: %s is %d bytes", ErrFieldTooLong, field, len(s))
		}
		return
	}
	e.u16(uint16(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) asset(a Asset) {
	e.u8(uint8(a.Kind))
	e.bytes(a.Mint[:])
}

func (e *encoder) finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

type decoder struct {
	data   []byte
	offset int
	err    error
}

func newDecoder(data []byte, kind address.Kind) (*decoder, error) {
	got, err := Kind(data)
	if err != nil {
		return nil, err
	}
	if got != kind {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, kind, got)
	}
	if data[1] != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidRecordData, data[1])
	}
	return &decoder{data: data, offset: headerSize}, nil
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data)-d.offset < n {
		d.err = fmt.Errorf("%w: truncated at offset %d (need %d bytes, have %d)",
			ErrInvalidRecordData, d.offset, n, len(d.data)-d.offset)
		return nil
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b
}

func (d *decoder) u8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *decoder) u16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (d *decoder) u64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (d *decoder) i64() int64 { return int64(d.u64()) }

func (d *decoder) boolean() bool { return d.u8() != 0 }

func (d *decoder) str() string {
	n := d.u16()
	return string(d.take(int(n)))
}

func (d *decoder) fixed(dst []byte) {
	if b := d.take(len(dst)); b != nil {
		copy(dst, b)
	}
}

func (d *decoder) addr() (a address.Address) {
	d.fixed(a[:])
	return a
}

func (d *decoder) identity() (id address.Identity) {
	d.fixed(id[:])
	return id
}

func (d *decoder) asset() Asset {
	a := Asset{Kind: AssetKind(d.u8())}
	d.fixed(a.Mint[:])
	return a
}

// finish rejects trailing bytes so every record has exactly one encoding.
func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if d.offset != len(d.data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidRecordData, len(d.data)-d.offset)
	}
	return nil
}
