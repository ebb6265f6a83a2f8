// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	byteOrderBigEndian    = 0x4d4d // "MM"
	byteOrderLittleEndian = 0x4949 // "II"
	meaningOfLife         = 42

	headerSize = 8
)

const (
	// LittleEndian is the "II" byte order (Intel).
	LittleEndian ByteOrder = iota + 1
	// BigEndian is the "MM" byte order (Motorola).
	BigEndian
)

// ByteOrder is the byte order of all multi-byte fields in a TIFF file.
type ByteOrder uint8

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(b))
	}
}

// Binary returns the encoding/binary equivalent of b, nil if b is not valid.
func (b ByteOrder) Binary() binary.ByteOrder {
	switch b {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// DecodeHeader reads the 8 byte TIFF header from r and returns the byte order
// and the offset of the first IFD from the start of the file.
// The offset is not validated; an offset outside of the file will fail
// on the first read from it.
func DecodeHeader(r io.Reader) (ByteOrder, uint32, error) {
	var b [headerSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, 0, fmt.Errorf("tiffmeta: reading header: %w", normalizeReadErr(err))
	}

	var byteOrder ByteOrder
	// The marker is a byte pair, so the order it is read in does not matter.
	switch binary.BigEndian.Uint16(b[0:2]) {
	case byteOrderLittleEndian:
		byteOrder = LittleEndian
	case byteOrderBigEndian:
		byteOrder = BigEndian
	default:
		return 0, 0, newInvalidFormatErrorf("not a TIFF file")
	}

	bo := byteOrder.Binary()

	if magic := bo.Uint16(b[2:4]); magic != meaningOfLife {
		return 0, 0, newInvalidFormatErrorf("bad magic number %d", magic)
	}

	return byteOrder, bo.Uint32(b[4:8]), nil
}
