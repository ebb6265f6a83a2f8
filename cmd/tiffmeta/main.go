// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command tiffmeta prints the tags of the first IFD in a TIFF file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/bep/tiffmeta"
	"github.com/bep/tiffmeta/internal/source"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tiffmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tiffmeta [options] <file>\n\n")
		fmt.Fprintf(stderr, "Print the tags of the first IFD in a TIFF file (.tif or seekable zstd .zst).\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	raw := fs.Bool("raw", false, "Return inline values as the raw integer stored in the entry")
	asJSON := fs.Bool("json", false, "Print the IFD as JSON")
	verbose := fs.Bool("v", false, "Log every decoded entry")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	logger := newLogger(stderr, *verbose)
	defer logger.Sync()
	log := logger.Sugar()

	filename := fs.Arg(0)

	result, err := decodeFile(filename, logger, tiffmeta.Options{
		Warnf:           log.Warnf,
		Debugf:          log.Debugf,
		RawInlineValues: *raw,
	})
	if err != nil {
		log.Errorw("decode failed", "file", filename, "error", err)
		return 1
	}

	log.Debugw("decoded header", "byteOrder", result.ByteOrder, "ifdOffset", result.IFDOffset, "entries", result.NumEntries)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.IFD); err != nil {
			log.Errorw("encoding JSON failed", "error", err)
			return 1
		}
		return 0
	}

	printResult(stdout, result)

	return 0
}

// decodeFile is tiffmeta.DecodeFile with logger also passed to the source,
// so -v shows frame reads of .zst archives.
func decodeFile(filename string, logger *zap.Logger, opts tiffmeta.Options) (result tiffmeta.Result, err error) {
	f, err := source.Open(filename, source.WithLogger(logger))
	if err != nil {
		return result, err
	}
	defer func() {
		if err2 := f.Close(); err == nil && err2 != nil {
			result, err = tiffmeta.Result{}, err2
		}
	}()

	opts.R = f

	return tiffmeta.Decode(opts)
}

func printResult(w io.Writer, result tiffmeta.Result) {
	fmt.Fprintf(w, "Byte order: %s\n", result.ByteOrder)
	fmt.Fprintf(w, "IFD offset: %d\n", result.IFDOffset)
	fmt.Fprintf(w, "Number of IFD entries: %d\n", result.NumEntries)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped entries: %d\n", len(result.Skipped))
	}
	fmt.Fprintln(w)

	for _, tag := range slices.Sorted(maps.Keys(result.IFD.Tags)) {
		fmt.Fprintf(w, "%s (%d): %s\n", tiffmeta.TagName(tag), tag, formatValue(result.IFD.Tags[tag]))
	}

	size := result.IFD.ImageSize
	fmt.Fprintf(w, "\nFinal Width/Height: (%s, %s)\n", formatValue(size.Width), formatValue(size.Height))
}

func formatValue(v tiffmeta.Value) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case tiffmeta.Text:
		return fmt.Sprintf("%q", string(vv))
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}
