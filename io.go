// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"encoding/binary"
	"io"
	"sync"
)

type payloadBuffer struct {
	b []byte
}

var payloadBufferPool = &sync.Pool{
	New: func() any {
		return &payloadBuffer{
			b: make([]byte, 1024),
		}
	},
}

func getPayloadBuffer(length int) *payloadBuffer {
	p := payloadBufferPool.Get().(*payloadBuffer)
	if length > cap(p.b) {
		p.b = make([]byte, length)
	}
	p.b = p.b[:length]
	return p
}

func putPayloadBuffer(p *payloadBuffer) {
	p.b = p.b[:0]
	payloadBufferPool.Put(p)
}

// streamReader is a wrapper around a ReadSeeker that provides methods to read binary data.
// Note that this is not thread safe.
type streamReader struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	buf []byte
}

func newStreamReader(r io.ReadSeeker, byteOrder binary.ByteOrder) *streamReader {
	return &streamReader{
		r:         r,
		byteOrder: byteOrder,
	}
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

func (e *streamReader) readNIntoBufE(n int) error {
	e.allocateBuf(n)
	if _, err := io.ReadFull(e.r, e.buf[:n]); err != nil {
		return normalizeReadErr(err)
	}
	return nil
}

func (e *streamReader) read2E() (uint16, error) {
	const n = 2
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(e.buf[:n]), nil
}

func (e *streamReader) read4E() (uint32, error) {
	const n = 4
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint32(e.buf[:n]), nil
}

// readBytesVolatileE reads a slice of bytes from the stream
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatileE(n int) ([]byte, error) {
	if err := e.readNIntoBufE(n); err != nil {
		return nil, err
	}
	return e.buf[:n], nil
}

func (e *streamReader) pos() (int64, error) {
	return e.r.Seek(0, io.SeekCurrent)
}

func (e *streamReader) seek(pos int64) error {
	_, err := e.r.Seek(pos, io.SeekStart)
	return err
}

func (e *streamReader) preservePos(f func() error) error {
	pos, err := e.pos()
	if err != nil {
		return err
	}
	err = f()
	if err2 := e.seek(pos); err == nil {
		err = err2
	}
	return err
}

// readAt fills b from the absolute offset off without moving the stream's cursor.
// Sources implementing io.ReaderAt are read directly; others are seeked
// to off and back again.
func (e *streamReader) readAt(b []byte, off int64) error {
	if ra, ok := e.r.(io.ReaderAt); ok {
		n, err := ra.ReadAt(b, off)
		if n == len(b) {
			return nil
		}
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return normalizeReadErr(err)
	}

	return e.preservePos(func() error {
		if err := e.seek(off); err != nil {
			return err
		}
		_, err := io.ReadFull(e.r, b)
		return normalizeReadErr(err)
	})
}
