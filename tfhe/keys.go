// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"github.com/luxfi/lattice/v6/core/rgsw/blindrot"
	"github.com/luxfi/lattice/v6/core/rlwe"
)

// SecretKey holds the two secrets a padded-bootstrap setup needs: the
// bootstrapping-ring secret the accumulator lookup runs under, and the
// LWE-ring secret the client encrypts/decrypts under and the
// post-bootstrap ciphertext is key-switched back to.
type SecretKey struct {
	skBR  *rlwe.SecretKey
	skLWE *rlwe.SecretKey
}

// BootstrapKey bundles the blind-rotation key and the key-switching key
// a Server needs to evaluate bootstrap without ever seeing SecretKey.
type BootstrapKey struct {
	BRK blindrot.MemBlindRotationEvaluationKeySet
	KSK *rlwe.EvaluationKey
}

// KeyGenerator produces secret and bootstrap keys for a Parameters set.
type KeyGenerator struct {
	params  Parameters
	kgenBR  *rlwe.KeyGenerator
	kgenLWE *rlwe.KeyGenerator
}

// NewKeyGenerator builds a KeyGenerator for params.
func NewKeyGenerator(params Parameters) *KeyGenerator {
	return &KeyGenerator{
		params:  params,
		kgenBR:  rlwe.NewKeyGenerator(params.paramsBR),
		kgenLWE: rlwe.NewKeyGenerator(params.paramsLWE),
	}
}

// GenSecretKey samples a fresh secret pair (bootstrapping-ring + LWE-ring).
func (kg *KeyGenerator) GenSecretKey() *SecretKey {
	return &SecretKey{
		skBR:  kg.kgenBR.GenSecretKeyNew(),
		skLWE: kg.kgenLWE.GenSecretKeyNew(),
	}
}

// GenBootstrapKey derives the public bootstrapping material for sk: a
// blind-rotation key (for the accumulator lookup, under skBR) and a
// key-switching key (from skBR back to skLWE, the ring the sample
// extracted from a blind-rotated ciphertext is keyed under).
func (kg *KeyGenerator) GenBootstrapKey(sk *SecretKey) *BootstrapKey {
	brk := blindrot.GenEvaluationKeyNew(kg.params.paramsBR, sk.skBR, kg.params.paramsLWE, sk.skLWE)
	ksk := kg.kgenBR.GenEvaluationKeyNew(sk.skBR, sk.skLWE)

	return &BootstrapKey{BRK: brk, KSK: ksk}
}
