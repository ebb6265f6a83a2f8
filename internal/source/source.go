// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package source opens files for decoding.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	seekable "github.com/SaveTheRbtz/zstd-seekable-format-go"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// ZstdExt is the extension of files read as seekable zstd archives.
const ZstdExt = ".zst"

// ReadSeekCloser is the source the decoder reads from.
// It is not safe for concurrent use.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

type options struct {
	logger *zap.Logger
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger the seekable zstd reader logs frame reads to.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens filename for reading.
// Files ending in ZstdExt must be in the zstd seekable format,
// which allows the decoder to jump to offsets without decompressing
// everything before them.
func Open(filename string, opts ...Option) (ReadSeekCloser, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(filename), ZstdExt) {
		return f, nil
	}

	rc, err := newZstdReader(f, o.logger)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %q: %w", filename, err)
	}

	return rc, nil
}

// zstdReader reads a seekable zstd archive.
// It implements io.ReaderAt.
type zstdReader struct {
	seekable.Reader
	dec *zstd.Decoder
	f   *os.File
}

func newZstdReader(f *os.File, logger *zap.Logger) (*zstdReader, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	r, err := seekable.NewReader(f, dec, seekable.WithRLogger(logger.Named("zstd")))
	if err != nil {
		dec.Close()
		return nil, err
	}

	return &zstdReader{Reader: r, dec: dec, f: f}, nil
}

// Close closes the archive, the decoder and the underlying file.
func (z *zstdReader) Close() error {
	err := z.Reader.Close()
	z.dec.Close()
	if err2 := z.f.Close(); err == nil {
		err = err2
	}
	return err
}
