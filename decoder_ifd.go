// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const entrySize = 12

// SkippedEntry is a directory entry that was left out of the IFD
// because its field type is not one of the 12 TIFF types.
type SkippedEntry struct {
	Tag   uint16
	Type  FieldType
	Count uint32
}

// A directory entry is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the field type
//   - 4 bytes for the number of values of the field type
//   - 4 bytes for the value itself, if it fits, otherwise for the offset
//     from the start of the file where the value is stored.
type entry struct {
	tag         uint16
	typ         FieldType
	count       uint32
	valueOffset uint32
}

func (e entry) payloadSize() uint64 {
	return uint64(e.typ.Size()) * uint64(e.count)
}

type ifdDecoder struct {
	*streamReader
	order ByteOrder
	opts  Options

	iso88591CharsetDecoder *encoding.Decoder

	numEntries int
	skipped    []SkippedEntry
}

func newIFDDecoder(r io.ReadSeeker, order ByteOrder, opts Options) *ifdDecoder {
	return &ifdDecoder{
		streamReader:           newStreamReader(r, order.Binary()),
		order:                  order,
		opts:                   opts,
		iso88591CharsetDecoder: charmap.ISO8859_1.NewDecoder(),
	}
}

// DecodeIFD decodes the IFD starting at the current position of r.
// opts.R is ignored.
// Entries with an unknown field type are not added to the IFD,
// they are reported to opts.Warnf and returned as skipped.
func DecodeIFD(r io.ReadSeeker, byteOrder ByteOrder, opts Options) (IFD, []SkippedEntry, error) {
	if byteOrder.Binary() == nil {
		return IFD{}, nil, fmt.Errorf("tiffmeta: invalid byte order %d", byteOrder)
	}
	opts.init()
	d := newIFDDecoder(r, byteOrder, opts)
	ifd, err := d.decode()
	if err != nil {
		return IFD{}, nil, err
	}
	return ifd, d.skipped, nil
}

func (d *ifdDecoder) decode() (IFD, error) {
	numEntries, err := d.read2E()
	if err != nil {
		return IFD{}, fmt.Errorf("tiffmeta: reading IFD entry count: %w", err)
	}
	if uint32(numEntries) > d.opts.LimitNumEntries {
		return IFD{}, newInvalidFormatErrorf("IFD entry count %d exceeds limit %d", numEntries, d.opts.LimitNumEntries)
	}
	d.numEntries = int(numEntries)

	ifd := IFD{
		Tags: make(map[uint16]Value, numEntries),
	}

	for i := 0; i < d.numEntries; i++ {
		e, err := d.readEntry()
		if err != nil {
			return IFD{}, fmt.Errorf("tiffmeta: reading IFD entry %d: %w", i, err)
		}

		if !e.typ.IsKnown() {
			d.opts.Warnf("tiff: field type %d of tag 0x%x not supported, skipping", uint16(e.typ), e.tag)
			d.skipped = append(d.skipped, SkippedEntry{Tag: e.tag, Type: e.typ, Count: e.count})
			continue
		}

		v, err := d.decodeValue(e)
		if err != nil {
			return IFD{}, err
		}

		d.opts.Debugf("tiff: tag %s (%d) type %s count %d value/offset %d: %v", TagName(e.tag), e.tag, e.typ, e.count, e.valueOffset, v)

		// Last one wins.
		ifd.Tags[e.tag] = v
	}

	ifd.ImageSize = ImageSize{
		Width:  ifd.Tags[TagImageWidth],
		Height: ifd.Tags[TagImageLength],
	}

	return ifd, nil
}

func (d *ifdDecoder) readEntry() (entry, error) {
	b, err := d.readBytesVolatileE(entrySize)
	if err != nil {
		return entry{}, err
	}
	return entry{
		tag:         d.byteOrder.Uint16(b[0:2]),
		typ:         FieldType(d.byteOrder.Uint16(b[2:4])),
		count:       d.byteOrder.Uint32(b[4:8]),
		valueOffset: d.byteOrder.Uint32(b[8:12]),
	}, nil
}

func (d *ifdDecoder) decodeValue(e entry) (Value, error) {
	size := e.payloadSize()

	if size <= 4 {
		if d.opts.RawInlineValues {
			return d.rawInlineValue(e), nil
		}
		// Restore the bytes as they were laid out in the file.
		var b [4]byte
		d.byteOrder.PutUint32(b[:], e.valueOffset)
		return d.convertValues(e.typ, b[:size]), nil
	}

	if size > uint64(d.opts.LimitTagSize) {
		return nil, newInvalidFormatErrorf("tag 0x%x: value of %d bytes exceeds limit %d", e.tag, size, d.opts.LimitTagSize)
	}

	p := getPayloadBuffer(int(size))
	defer putPayloadBuffer(p)

	if err := d.readAt(p.b, int64(e.valueOffset)); err != nil {
		return nil, fmt.Errorf("tiffmeta: reading value of tag 0x%x at offset %d: %w", e.tag, e.valueOffset, err)
	}

	return d.convertValues(e.typ, p.b), nil
}

// rawInlineValue extracts an inline value as a plain unsigned integer,
// ignoring signedness and floating point types.
func (d *ifdDecoder) rawInlineValue(e entry) Int {
	size := e.payloadSize()
	if d.order == LittleEndian {
		return Int(uint64(e.valueOffset) & (1<<(8*size) - 1))
	}
	return Int(e.valueOffset >> (8 * (4 - size)))
}

// convertValues decodes b as a sequence of units of typ.
// A single unit is returned as a scalar.
func (d *ifdDecoder) convertValues(typ FieldType, b []byte) Value {
	if typ == TypeASCII {
		return Text(d.decodeText(b))
	}

	unitSize := typ.unitSize()
	n := len(b) / unitSize

	if n == 1 {
		if typ.isFloat() {
			return Float(d.floatUnit(typ, b))
		}
		return Int(d.intUnit(typ, b))
	}

	switch {
	case typ == TypeRational || typ == TypeSRational:
		values := make(Rationals, n/2)
		for i := range values {
			off := i * 2 * unitSize
			values[i] = Rational{
				Num: d.intUnit(typ, b[off:]),
				Den: d.intUnit(typ, b[off+unitSize:]),
			}
		}
		return values
	case typ.isFloat():
		values := make(Floats, n)
		for i := range values {
			values[i] = d.floatUnit(typ, b[i*unitSize:])
		}
		return values
	default:
		values := make(Ints, n)
		for i := range values {
			values[i] = d.intUnit(typ, b[i*unitSize:])
		}
		return values
	}
}

func (d *ifdDecoder) intUnit(typ FieldType, b []byte) int64 {
	bo := d.byteOrder
	switch typ {
	case TypeSByte:
		return int64(int8(b[0]))
	case TypeShort:
		return int64(bo.Uint16(b))
	case TypeSShort:
		return int64(int16(bo.Uint16(b)))
	case TypeLong, TypeRational:
		return int64(bo.Uint32(b))
	case TypeSLong, TypeSRational:
		return int64(int32(bo.Uint32(b)))
	default:
		// BYTE and UNDEFINED.
		return int64(b[0])
	}
}

func (d *ifdDecoder) floatUnit(typ FieldType, b []byte) float64 {
	if typ == TypeDouble {
		return math.Float64frombits(d.byteOrder.Uint64(b))
	}
	return float64(math.Float32frombits(d.byteOrder.Uint32(b)))
}

// decodeText decodes b as ASCII and removes any trailing NUL padding.
// Bytes outside of ASCII are decoded as ISO 8859-1 so the result is always valid UTF-8.
func (d *ifdDecoder) decodeText(b []byte) string {
	b = trimTrailingNulls(b)
	if isASCII(b) {
		return string(b)
	}
	s, err := d.iso88591CharsetDecoder.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
