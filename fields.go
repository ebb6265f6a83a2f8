// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import "fmt"

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

const (
	// TagImageWidth is the number of columns in the image.
	TagImageWidth uint16 = 0x100
	// TagImageLength is the number of rows in the image.
	TagImageLength uint16 = 0x101
)

// FieldType is the TIFF data type of a directory entry.
type FieldType uint16

// The 12 field types defined by TIFF 6.0.
const (
	TypeByte FieldType = iota + 1
	TypeASCII
	TypeShort
	TypeLong
	TypeRational
	TypeSByte
	TypeUndefined
	TypeSShort
	TypeSLong
	TypeSRational
	TypeFloat
	TypeDouble
)

// Size returns the size in bytes of one value of type t,
// or 0 if t is not a known type.
func (t FieldType) Size() uint32 {
	switch t {
	case TypeByte, TypeASCII, TypeSByte, TypeUndefined:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeLong, TypeSLong, TypeFloat:
		return 4
	case TypeRational, TypeSRational, TypeDouble:
		return 8
	default:
		return 0
	}
}

// IsKnown reports whether t is one of the 12 TIFF 6.0 types.
func (t FieldType) IsKnown() bool {
	return t.Size() != 0
}

func (t FieldType) String() string {
	switch t {
	case TypeByte:
		return "BYTE"
	case TypeASCII:
		return "ASCII"
	case TypeShort:
		return "SHORT"
	case TypeLong:
		return "LONG"
	case TypeRational:
		return "RATIONAL"
	case TypeSByte:
		return "SBYTE"
	case TypeUndefined:
		return "UNDEFINED"
	case TypeSShort:
		return "SSHORT"
	case TypeSLong:
		return "SLONG"
	case TypeSRational:
		return "SRATIONAL"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	default:
		return fmt.Sprintf("FieldType(%d)", uint16(t))
	}
}

// units returns the number of primitive units that make up one value.
// A rational is stored as two 32-bit units.
func (t FieldType) units() uint32 {
	if t == TypeRational || t == TypeSRational {
		return 2
	}
	return 1
}

func (t FieldType) unitSize() int {
	return int(t.Size() / t.units())
}

func (t FieldType) isFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// Baseline and extension tags from TIFF 6.0, plus a few common private tags.
var tiffFields = map[uint16]string{
	0x00fe: "NewSubfileType",
	0x00ff: "SubfileType",
	0x0100: "ImageWidth",
	0x0101: "ImageLength",
	0x0102: "BitsPerSample",
	0x0103: "Compression",
	0x0106: "PhotometricInterpretation",
	0x0107: "Thresholding",
	0x0108: "CellWidth",
	0x0109: "CellLength",
	0x010a: "FillOrder",
	0x010d: "DocumentName",
	0x010e: "ImageDescription",
	0x010f: "Make",
	0x0110: "Model",
	0x0111: "StripOffsets",
	0x0112: "Orientation",
	0x0115: "SamplesPerPixel",
	0x0116: "RowsPerStrip",
	0x0117: "StripByteCounts",
	0x0118: "MinSampleValue",
	0x0119: "MaxSampleValue",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x011c: "PlanarConfiguration",
	0x011d: "PageName",
	0x011e: "XPosition",
	0x011f: "YPosition",
	0x0120: "FreeOffsets",
	0x0121: "FreeByteCounts",
	0x0122: "GrayResponseUnit",
	0x0123: "GrayResponseCurve",
	0x0124: "T4Options",
	0x0125: "T6Options",
	0x0128: "ResolutionUnit",
	0x0129: "PageNumber",
	0x012d: "TransferFunction",
	0x0131: "Software",
	0x0132: "DateTime",
	0x013b: "Artist",
	0x013c: "HostComputer",
	0x013d: "Predictor",
	0x013e: "WhitePoint",
	0x013f: "PrimaryChromaticities",
	0x0140: "ColorMap",
	0x0141: "HalftoneHints",
	0x0142: "TileWidth",
	0x0143: "TileLength",
	0x0144: "TileOffsets",
	0x0145: "TileByteCounts",
	0x014c: "InkSet",
	0x0152: "ExtraSamples",
	0x0153: "SampleFormat",
	0x0211: "YCbCrCoefficients",
	0x0212: "YCbCrSubSampling",
	0x0213: "YCbCrPositioning",
	0x0214: "ReferenceBlackWhite",
	0x02bc: "ApplicationNotes",
	0x8298: "Copyright",
	0x83bb: "IPTC-NAA",
	0x8769: "ExifOffset",
	0x8773: "ICC_Profile",
	0x8825: "GPSInfo",
}

// TagName returns the TIFF name of tag, e.g. "ImageWidth" for 256.
// Unknown tags are named UnknownPrefix followed by the tag in hex.
func TagName(tag uint16) string {
	if name, found := tiffFields[tag]; found {
		return name
	}
	return fmt.Sprintf("%s0x%x", UnknownPrefix, tag)
}
