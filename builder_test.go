// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta_test

import (
	"bytes"
	"encoding/binary"

	"github.com/bep/tiffmeta"
)

// tiffBuilder writes a minimal TIFF: the header, IFD0 at offset 8,
// followed by the payloads of all indirect values.
type tiffBuilder struct {
	bo      binary.ByteOrder
	entries []builderEntry
}

type builderEntry struct {
	tag         uint16
	typ         tiffmeta.FieldType
	count       uint32
	valueOffset uint32
	payload     []byte
}

func newTIFFBuilder(bo binary.ByteOrder) *tiffBuilder {
	return &tiffBuilder{bo: bo}
}

// inline adds an entry with valueOffset written as is.
func (b *tiffBuilder) inline(tag uint16, typ tiffmeta.FieldType, count, valueOffset uint32) *tiffBuilder {
	b.entries = append(b.entries, builderEntry{tag: tag, typ: typ, count: count, valueOffset: valueOffset})
	return b
}

// indirect adds an entry whose value is stored after the IFD.
func (b *tiffBuilder) indirect(tag uint16, typ tiffmeta.FieldType, count uint32, payload []byte) *tiffBuilder {
	b.entries = append(b.entries, builderEntry{tag: tag, typ: typ, count: count, payload: payload})
	return b
}

func (b *tiffBuilder) marker() string {
	if b.bo == binary.BigEndian {
		return "MM"
	}
	return "II"
}

func (b *tiffBuilder) bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(b.marker())
	buf.Write(b.u16(42))
	buf.Write(b.u32(8))

	dataStart := 8 + 2 + 12*len(b.entries) + 4
	var data []byte

	buf.Write(b.u16(uint16(len(b.entries))))
	for _, e := range b.entries {
		buf.Write(b.u16(e.tag))
		buf.Write(b.u16(uint16(e.typ)))
		buf.Write(b.u32(e.count))
		if e.payload != nil {
			buf.Write(b.u32(uint32(dataStart + len(data))))
			data = append(data, e.payload...)
		} else {
			buf.Write(b.u32(e.valueOffset))
		}
	}
	// No next IFD.
	buf.Write(b.u32(0))
	buf.Write(data)

	return buf.Bytes()
}

func (b *tiffBuilder) u16(v uint16) []byte {
	p := make([]byte, 2)
	b.bo.PutUint16(p, v)
	return p
}

func (b *tiffBuilder) u32(v uint32) []byte {
	p := make([]byte, 4)
	b.bo.PutUint32(p, v)
	return p
}

func (b *tiffBuilder) u32s(vv ...uint32) []byte {
	var p []byte
	for _, v := range vv {
		p = append(p, b.u32(v)...)
	}
	return p
}

func (b *tiffBuilder) u64(v uint64) []byte {
	p := make([]byte, 8)
	b.bo.PutUint64(p, v)
	return p
}
