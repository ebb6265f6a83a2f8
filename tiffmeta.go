// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package tiffmeta reads the header and the first Image File Directory (IFD0)
// of a TIFF file and decodes its tags into typed values.
package tiffmeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bep/tiffmeta/internal/source"
)

// ImageSizeKey is the key the derived image size is stored under
// when an IFD is marshaled to JSON.
const ImageSizeKey = "_image_size"

const (
	defaultLimitNumEntries = 1<<16 - 1
	defaultLimitTagSize    = 10 << 20
)

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read the TIFF from.
	R io.ReadSeeker

	// Warnf will be called for each warning, e.g. for entries
	// with an unknown field type.
	Warnf func(string, ...any)

	// Debugf will be called with the details of each decoded entry.
	Debugf func(string, ...any)

	// If set, values that fit in the 4 byte value field are returned as the
	// raw unsigned Int found in that field, masked (little endian) or shifted
	// (big endian) to the value's size, without regard to the field type.
	// The default is to decode inline values the same way as values stored
	// elsewhere in the file, e.g. an SSHORT -1 is Int(-1) and not Int(65535).
	RawInlineValues bool

	// LimitNumEntries is the maximum number of entries in the IFD.
	// The default allows every count the 16 bit entry count can hold.
	LimitNumEntries uint32

	// LimitTagSize is the maximum size in bytes of a tag value.
	// Default value is 10 MiB.
	LimitTagSize uint32
}

func (o *Options) init() {
	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	if o.Debugf == nil {
		o.Debugf = func(string, ...any) {}
	}
	if o.LimitNumEntries == 0 {
		o.LimitNumEntries = defaultLimitNumEntries
	}
	if o.LimitTagSize == 0 {
		o.LimitTagSize = defaultLimitTagSize
	}
}

// Result contains the result of a Decode operation.
type Result struct {
	// ByteOrder is the byte order given in the file header.
	ByteOrder ByteOrder

	// IFDOffset is the offset of IFD0 from the start of the file.
	IFDOffset uint32

	// NumEntries is the entry count stored in the IFD,
	// including any skipped entries.
	NumEntries int

	// IFD holds the decoded tags.
	IFD IFD

	// Skipped lists the entries that were not decoded.
	Skipped []SkippedEntry
}

// IFD is a decoded Image File Directory.
type IFD struct {
	// Tags maps tag numbers to their decoded value.
	// If a tag is repeated, the last entry wins.
	Tags map[uint16]Value

	// ImageSize holds the ImageWidth and ImageLength tags.
	ImageSize ImageSize
}

// MarshalJSON encodes the IFD as an object keyed by the decimal tag number,
// with the image size stored below ImageSizeKey as a [width, height] pair.
func (d IFD) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Tags)+1)
	for tag, v := range d.Tags {
		m[strconv.Itoa(int(tag))] = v
	}
	m[ImageSizeKey] = d.ImageSize
	return json.Marshal(m)
}

// ImageSize holds the image dimensions exactly as decoded.
// A nil Width or Height means that the tag was not present.
type ImageSize struct {
	Width  Value
	Height Value
}

// Dimensions returns the width and height as ints.
// ok is false unless both are present and single integers.
func (s ImageSize) Dimensions() (width, height int, ok bool) {
	w, ok1 := s.Width.(Int)
	h, ok2 := s.Height.(Int)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int(w), int(h), true
}

// MarshalJSON encodes s as a [width, height] pair, with null for missing values.
func (s ImageSize) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Value{s.Width, s.Height})
}

// Decode reads the TIFF header and IFD0 from opts.R.
// opts.R is read from the start, regardless of its current position.
func Decode(opts Options) (Result, error) {
	if opts.R == nil {
		return Result{}, errors.New("tiffmeta: no reader provided")
	}
	opts.init()

	if _, err := opts.R.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("tiffmeta: seeking to start: %w", err)
	}

	byteOrder, ifdOffset, err := DecodeHeader(opts.R)
	if err != nil {
		return Result{}, err
	}

	// Seeking past the end is fine, the following read will fail.
	if _, err := opts.R.Seek(int64(ifdOffset), io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("tiffmeta: seeking to IFD at offset %d: %w", ifdOffset, err)
	}

	d := newIFDDecoder(opts.R, byteOrder, opts)
	ifd, err := d.decode()
	if err != nil {
		return Result{}, err
	}

	return Result{
		ByteOrder:  byteOrder,
		IFDOffset:  ifdOffset,
		NumEntries: d.numEntries,
		IFD:        ifd,
		Skipped:    d.skipped,
	}, nil
}

// DecodeFile opens filename, decodes it and closes it again.
// Files ending in .zst are read as seekable zstd archives.
// opts.R is ignored.
func DecodeFile(filename string, opts Options) (result Result, err error) {
	f, err := source.Open(filename)
	if err != nil {
		return result, err
	}
	defer func() {
		if err2 := f.Close(); err == nil && err2 != nil {
			result, err = Result{}, err2
		}
	}()

	opts.R = f

	return Decode(opts)
}
