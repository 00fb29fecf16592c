// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/tfhe"
)

// newXorCircuit builds a, b -> sum := a+b -> out := bootstrap(sum, [0,1]),
// which realises XOR(a,b) over the zero-type test vector (spec property
// 4's "for Zero -> 0" upper-half rule folds msg=2,3 both to false).
func newXorCircuit(t *testing.T) (*circuit.Circuit, circuit.SignalID, circuit.SignalID, circuit.SignalID) {
	t.Helper()

	c := circuit.New()
	a := c.Table.Intern("a")
	b := c.Table.Intern("b")
	sum := c.Table.Intern("sum")
	out := c.Table.Intern("out")

	c.Inputs = []circuit.SignalID{a, b}
	c.Nodes = []circuit.Node{
		{Kind: circuit.KindInput, InputName: a},
		{Kind: circuit.KindInput, InputName: b},
		{Kind: circuit.KindLinComb, LCOutput: sum, LCInputs: []circuit.SignalID{a, b}, LCCoefs: []int8{1, 1}},
		{Kind: circuit.KindBootstrap, BSInput: sum, BSOutputs: []circuit.SignalID{out}, BSTables: [][]bool{{false, true}}},
	}
	c.Outputs = []circuit.SignalID{out}

	require.NoError(t, c.Check(2))

	return c, a, b, out
}

func TestRunSequentialMatchesClearEval(t *testing.T) {
	tc := newTestContext(t)
	c, aID, bID, outID := newXorCircuit(t)

	for _, av := range []uint64{0, 1} {
		for _, bv := range []uint64{0, 1} {
			wantMap := clearEval(c, map[circuit.SignalID]uint64{aID: av, bID: bv}, tc.params.PtModFull())

			got, err := RunSequential(c, tc.srv, map[circuit.SignalID]*tfhe.Ciphertext{
				aID: tc.enc.EncryptWithMessageModulus(av),
				bID: tc.enc.EncryptWithMessageModulus(bv),
			})
			require.NoError(t, err)

			got2 := tc.dec.DecryptMessageAndCarry(got[outID])
			require.Equal(t, wantMap[outID], got2, "a=%d b=%d", av, bv)
		}
	}
}

func TestRunParallelMatchesRunSequential(t *testing.T) {
	tc := newTestContext(t)
	c, aID, bID, outID := newXorCircuit(t)

	for _, av := range []uint64{0, 1} {
		for _, bv := range []uint64{0, 1} {
			seqResult, err := RunSequential(c, tc.srv, map[circuit.SignalID]*tfhe.Ciphertext{
				aID: tc.enc.EncryptWithMessageModulus(av),
				bID: tc.enc.EncryptWithMessageModulus(bv),
			})
			require.NoError(t, err)

			parResult, err := RunParallel(context.Background(), c, tc.srv, map[circuit.SignalID]*tfhe.Ciphertext{
				aID: tc.enc.EncryptWithMessageModulus(av),
				bID: tc.enc.EncryptWithMessageModulus(bv),
			}, 4)
			require.NoError(t, err)

			require.Equal(t,
				tc.dec.DecryptMessageAndCarry(seqResult[outID]),
				tc.dec.DecryptMessageAndCarry(parResult[outID]),
				"a=%d b=%d", av, bv)
		}
	}
}

func TestRunSequentialRejectsMissingInput(t *testing.T) {
	tc := newTestContext(t)
	c, aID, _, _ := newXorCircuit(t)

	_, err := RunSequential(c, tc.srv, map[circuit.SignalID]*tfhe.Ciphertext{
		aID: tc.enc.EncryptWithMessageModulus(0),
	})
	require.Error(t, err)
}

func TestRunParallelPropagatesTaskError(t *testing.T) {
	tc := newTestContext(t)
	c, aID, _, _ := newXorCircuit(t)

	_, err := RunParallel(context.Background(), c, tc.srv, map[circuit.SignalID]*tfhe.Ciphertext{
		aID: tc.enc.EncryptWithMessageModulus(0),
	}, 2)
	require.Error(t, err)
}
