// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import "github.com/luxfi/lbf/lbferr"

// TvType classifies how a TestVector's upper half [p, 2p) relates to its
// lower half [0, p), so a single negacyclic blind rotation plus a
// constant correction can realise any boolean function of domain 2p.
type TvType int

const (
	// TvZero: upper half identical to lower half (padding bit unused).
	TvZero TvType = iota
	// TvHalf: upper half is the bitwise negation of the lower half.
	TvHalf
	// TvOne: both halves agree and are true at every examined pair.
	TvOne
)

// TestVector is a boolean truth table extended to length p, tagged with
// the TvType its upper-half pairs were classified as.
type TestVector struct {
	val []bool
	typ TvType
}

// classify maps one (upper, lower) pair to a TvType:
// a != b -> Half; a == b == true -> One; a == b == false -> Zero.
func classify(a, b bool) TvType {
	switch {
	case a != b:
		return TvHalf
	case a && b:
		return TvOne
	default:
		return TvZero
	}
}

// New validates val (len(val) <= 2p), classifies its upper half, and
// right-pads to length p with false if val is shorter.
func New(val []bool, p uint64) (*TestVector, error) {
	if uint64(len(val)) > 2*p {
		return nil, lbferr.New(lbferr.TestVector, "table length exceeds 2p")
	}

	var typ TvType
	haveType := false
	for i := p; i < uint64(len(val)); i++ {
		got := classify(val[i], val[i-p])
		if !haveType {
			typ, haveType = got, true
		} else if got != typ {
			return nil, lbferr.New(lbferr.TestVector, "invalid test vector element types")
		}
	}

	// make's length is p; copy truncates to p when val is longer and
	// leaves the false zero-value in place when val is shorter.
	padded := make([]bool, p)
	copy(padded, val)

	return &TestVector{val: padded, typ: typ}, nil
}

// Fnc returns val[idx] for idx < p, the lower-half lookup a blind
// rotation's accumulator is built from.
func (tv *TestVector) Fnc(idx uint64) bool {
	return tv.val[idx]
}

// Type reports the upper-half classification used for post-shift correction.
func (tv *TestVector) Type() TvType { return tv.typ }
