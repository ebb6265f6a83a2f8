// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/bep/tiffmeta"
	xtiff "golang.org/x/image/tiff"
)

func FuzzDecode(f *testing.F) {
	le := newTIFFBuilder(binary.LittleEndian)
	le.inline(256, tiffmeta.TypeShort, 1, 100)
	le.indirect(270, tiffmeta.TypeASCII, 6, []byte("Hello\x00"))
	le.indirect(282, tiffmeta.TypeRational, 1, le.u32s(72, 1))
	f.Add(le.bytes())

	be := newTIFFBuilder(binary.BigEndian)
	be.inline(257, tiffmeta.TypeLong, 1, 480)
	be.indirect(0x9000, tiffmeta.TypeDouble, 2, make([]byte, 16))
	be.inline(300, tiffmeta.FieldType(99), 1, 0)
	f.Add(be.bytes())

	var buf bytes.Buffer
	if err := xtiff.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		f.Fatal(err)
	}
	f.Add(buf.Bytes())

	f.Fuzz(func(t *testing.T, imageBytes []byte) {
		for _, raw := range []bool{false, true} {
			_, err := tiffmeta.Decode(tiffmeta.Options{R: bytes.NewReader(imageBytes), RawInlineValues: raw})
			if err != nil && !tiffmeta.IsInvalidFormat(err) && !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("unknown error in Decode: %v %T", err, err)
			}
		}
	})
}
