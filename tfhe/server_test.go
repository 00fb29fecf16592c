// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// expectedBootstrap reproduces the bootstrap-correctness formula directly
// from a TvType and padded truth table, independent of Server.Bootstrap,
// so the test checks the formula rather than Server against itself.
func expectedBootstrap(tv *TestVector, p, msg uint64) bool {
	if msg < p {
		return tv.Fnc(msg)
	}
	switch tv.Type() {
	case TvZero:
		return false
	case TvOne:
		return true
	default: // TvHalf
		return !tv.Fnc(msg - p)
	}
}

func TestServerBootstrapMatchesSpecFormula(t *testing.T) {
	tc := newTestContext(t)
	p := tc.params.PtMod()

	cases := []struct {
		name string
		val  []bool
	}{
		{"zero", []bool{false, true}},       // pairs: val[2]? not reached, len==p -> defaults to Zero
		{"half", []bool{false, true, true}}, // i=2: classify(val[2]=true,val[0]=false) = Half
		{"one", []bool{true, true, true}},   // i=2: classify(true,true) = One
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			tv, err := tc.srv.NewTestVector(tcase.val)
			require.NoError(t, err)

			for msg := uint64(0); msg < 2*p; msg++ {
				ct := tc.enc.EncryptWithMessageModulus(msg)
				res, err := tc.srv.Bootstrap(ct, tv)
				require.NoError(t, err, "bootstrap msg=%d", msg)

				got := tc.dec.DecryptMessageAndCarry(res) != 0
				want := expectedBootstrap(tv, p, msg)
				require.Equal(t, want, got, "bootstrap(%d) under %s test vector", msg, tcase.name)
			}
		})
	}
}

func TestServerLincombMatchesLinearFormula(t *testing.T) {
	tc := newTestContext(t)
	ptModFull := tc.params.PtModFull()

	for _, a := range []uint64{0, 1} {
		for _, b := range []uint64{0, 1} {
			ctA := tc.enc.EncryptWithMessageModulus(a)
			ctB := tc.enc.EncryptWithMessageModulus(b)

			out, err := tc.srv.Lincomb([]*Ciphertext{ctA, ctB}, []int8{2, 1}, 0)
			require.NoError(t, err)

			got := tc.dec.DecryptMessageAndCarry(out)
			want := (2*a + b) % ptModFull
			require.Equal(t, want, got, "lincomb(2*%d + %d)", a, b)
		}
	}
}

func TestServerLincombZeroCoefficientIsNoOp(t *testing.T) {
	tc := newTestContext(t)

	ctA := tc.enc.EncryptWithMessageModulus(1)
	ctB := tc.enc.EncryptWithMessageModulus(1)

	out, err := tc.srv.Lincomb([]*Ciphertext{ctA, ctB}, []int8{0, 1}, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), tc.dec.DecryptMessageAndCarry(out))
}

func TestServerLincombArityMismatch(t *testing.T) {
	tc := newTestContext(t)
	ctA := tc.enc.EncryptWithMessageModulus(1)

	_, err := tc.srv.Lincomb([]*Ciphertext{ctA}, []int8{1, 2}, 0)
	require.Error(t, err)
}
