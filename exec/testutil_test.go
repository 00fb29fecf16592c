// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/tfhe"
)

// testContext mirrors the tfhe package's fixture so exec tests exercise
// the real lincomb/bootstrap path rather than a stand-in.
type testContext struct {
	params tfhe.Parameters
	sk     *tfhe.SecretKey
	srv    *tfhe.Server
	enc    *tfhe.Encryptor
	dec    *tfhe.Decryptor
}

func newTestContext(t testing.TB) *testContext {
	t.Helper()

	params, err := tfhe.NewParametersFromLiteral(tfhe.PN10QP27)
	require.NoError(t, err)

	kg := tfhe.NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	bsk := kg.GenBootstrapKey(sk)

	return &testContext{
		params: params,
		sk:     sk,
		srv:    tfhe.NewServer(params, bsk),
		enc:    tfhe.NewEncryptor(params, sk),
		dec:    tfhe.NewDecryptor(params, sk),
	}
}

// clearEval evaluates a circuit over plain uint64 message values
// (each reduced modulo ptModFull = 2p), without any ciphertext
// involved. It is the reference oracle the homomorphic-correctness
// property compares executor output against; it is test-only, never
// reachable from production code.
func clearEval(c *circuit.Circuit, inputs map[circuit.SignalID]uint64, ptModFull uint64) map[circuit.SignalID]uint64 {
	store := make(map[circuit.SignalID]uint64, c.Table.Len())

	for _, n := range c.Nodes {
		switch n.Kind {
		case circuit.KindInput:
			store[n.InputName] = inputs[n.InputName] % ptModFull

		case circuit.KindLinComb:
			acc := int64(n.LCConstCoef)
			for i, ref := range n.LCInputs {
				acc += int64(n.LCCoefs[i]) * int64(store[ref])
			}
			acc %= int64(ptModFull)
			if acc < 0 {
				acc += int64(ptModFull)
			}
			store[n.LCOutput] = uint64(acc)

		case circuit.KindBootstrap:
			msg := store[n.BSInput]
			p := ptModFull / 2
			for i, out := range n.BSOutputs {
				table := n.BSTables[i]
				paddedLen := uint64(len(table))
				if paddedLen > p {
					paddedLen = p
				}
				var lower uint64
				if msg < paddedLen {
					if table[msg] {
						lower = 1
					}
				}

				var val bool
				if msg < p {
					val = lower != 0
				} else {
					// Mirror tfhe.TestVector's classification against
					// the original (unpadded) table to pick the same
					// TvType the real bootstrap would use.
					typ := classifyTable(table, p)
					lowerAtPair := tableAt(table, msg-p, p)
					switch typ {
					case tvZero:
						val = lowerAtPair
					case tvOne:
						val = true
					default: // half
						val = !lowerAtPair
					}
				}

				store[out] = boolToU64(val)
			}
		}
	}

	result := make(map[circuit.SignalID]uint64, len(c.Outputs))
	for _, id := range c.Outputs {
		result[id] = store[id]
	}
	return result
}

type tvType int

const (
	tvZero tvType = iota
	tvHalf
	tvOne
)

func classifyTable(table []bool, p uint64) tvType {
	typ := tvZero
	for i := p; i < uint64(len(table)); i++ {
		a, b := table[i], tableAt(table, i-p, p)
		var got tvType
		switch {
		case a != b:
			got = tvHalf
		case a && b:
			got = tvOne
		default:
			got = tvZero
		}
		typ = got
	}
	return typ
}

func tableAt(table []bool, idx, p uint64) bool {
	if idx < uint64(len(table)) && idx < p {
		return table[idx]
	}
	return false
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
