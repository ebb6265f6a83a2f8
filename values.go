// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a decoded tag value.
// It is one of Int, Float, Text, Rationals, Ints or Floats.
type Value interface {
	isValue()
}

type (
	// Int is a single integer value.
	Int int64

	// Float is a single FLOAT or DOUBLE value.
	Float float64

	// Text is a decoded ASCII value with the trailing NUL padding removed.
	Text string

	// Rationals is a list of RATIONAL or SRATIONAL values.
	Rationals []Rational

	// Ints is a list of integer values.
	Ints []int64

	// Floats is a list of FLOAT or DOUBLE values.
	Floats []float64
)

func (Int) isValue()       {}
func (Float) isValue()     {}
func (Text) isValue()      {}
func (Rationals) isValue() {}
func (Ints) isValue()      {}
func (Floats) isValue()    {}

// MarshalJSON encodes NaN and infinities as strings,
// which encoding/json would otherwise reject.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

// MarshalJSON encodes f like a list of Float.
func (f Floats) MarshalJSON() ([]byte, error) {
	ff := make([]Float, len(f))
	for i, v := range f {
		ff[i] = Float(v)
	}
	return json.Marshal(ff)
}

// Rational is a numerator/denominator pair exactly as stored in the file.
// Unlike math/big.Rat it is never normalized, and a zero denominator is allowed.
type Rational struct {
	Num int64
	Den int64
}

// Float64 returns the float64 representation of the rational number.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r Rational) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// MarshalJSON encodes r as a [numerator, denominator] pair.
func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{r.Num, r.Den})
}

func trimTrailingNulls(b []byte) []byte {
	hi := len(b)
	for hi > 0 && b[hi-1] == 0 {
		hi--
	}
	return b[:hi]
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
