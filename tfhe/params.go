// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package tfhe wraps github.com/luxfi/lattice/v6's RLWE/GLWE primitives
// into the fixed server/client interface an LBF circuit evaluator needs:
// a padded-plaintext-space lincomb/bootstrap server, an encrypt/decrypt
// client, and the three-case negacyclic test vector that lets a single
// blind rotation realise any boolean function of domain 2p.
//
// Everything below the Server/Client/TestVector surface (NTT, external
// product, key switching) is lattice's concern, not ours; we only call
// its public API, the same way the upstream evaluator does.
package tfhe

import (
	"fmt"

	"github.com/luxfi/lattice/v6/core/rlwe"
	"github.com/luxfi/lattice/v6/ring"
)

// Parameters bundles the two RLWE parameter sets a blind rotation needs
// (the bootstrapping-key ring paramsBR, and the LWE-dimension ring
// paramsLWE the ciphertexts that enter/leave bootstrap live in) plus the
// boolean-circuit plaintext sizing: message_modulus * carry_modulus.
type Parameters struct {
	paramsBR  rlwe.Parameters
	paramsLWE rlwe.Parameters

	messageModulus uint64
	carryModulus   uint64
}

// Literal names a canned PN10QP27-style parameter set.
type Literal int

const (
	// PN10QP27 is a toy-secure 10-bit-ring parameter set sized for
	// single-bit boolean circuits: message_modulus=2, carry_modulus=1,
	// so p=2 and the padded domain 2p=4 exactly matches the lincomb
	// range of a two-input linear layer.
	PN10QP27 Literal = iota
)

// NewParametersFromLiteral builds Parameters from a named literal.
func NewParametersFromLiteral(lit Literal) (Parameters, error) {
	switch lit {
	case PN10QP27:
		paramsBR, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
			LogN:  10,
			LogQ:  []int{27},
			Xe:    ring.DiscreteGaussian{Sigma: 3.2, Bound: 19},
			Xs:    ring.Ternary{H: 192},
			RingType: ring.Standard,
		})
		if err != nil {
			return Parameters{}, fmt.Errorf("build bootstrapping-ring parameters: %w", err)
		}

		paramsLWE, err := rlwe.NewParametersFromLiteral(rlwe.ParametersLiteral{
			LogN:     9,
			LogQ:     []int{14},
			Xe:       ring.DiscreteGaussian{Sigma: 3.2, Bound: 19},
			Xs:       ring.Ternary{H: 192},
			RingType: ring.Standard,
		})
		if err != nil {
			return Parameters{}, fmt.Errorf("build lwe-ring parameters: %w", err)
		}

		return Parameters{
			paramsBR:       paramsBR,
			paramsLWE:      paramsLWE,
			messageModulus: 2,
			carryModulus:   1,
		}, nil
	default:
		return Parameters{}, fmt.Errorf("unknown parameter literal %d", lit)
	}
}

// PtMod is the "small" plaintext ring p = message_modulus * carry_modulus.
func (p Parameters) PtMod() uint64 { return p.messageModulus * p.carryModulus }

// PtModFull is the full negacyclic domain 2p the padding bit extends to.
func (p Parameters) PtModFull() uint64 { return 2 * p.PtMod() }

// N is the polynomial ring degree of the bootstrapping-key ring.
func (p Parameters) N() int { return p.paramsBR.RingQ().N() }

// QLWE is the ciphertext modulus of the LWE-dimension ring.
func (p Parameters) QLWE() uint64 { return p.paramsLWE.RingQ().Modulus()[0] }

// ringQBR exposes the bootstrapping-ring for package-internal use.
func (p Parameters) ringQBR() *ring.Ring { return p.paramsBR.RingQ() }

func (p Parameters) ringQLWE() *ring.Ring { return p.paramsLWE.RingQ() }
