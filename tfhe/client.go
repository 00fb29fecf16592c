// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"math"

	"github.com/luxfi/lattice/v6/core/rlwe"
)

// Encryptor encrypts plaintext messages under the enlarged, padding-bit
// plaintext modulus pt_mod_full = 2*pt_mod (spec §4.C).
type Encryptor struct {
	params Parameters
	enc    *rlwe.Encryptor
}

// NewEncryptor builds an Encryptor for sk.
func NewEncryptor(params Parameters, sk *SecretKey) *Encryptor {
	return &Encryptor{params: params, enc: rlwe.NewEncryptor(params.paramsLWE, sk.skLWE)}
}

// Decryptor decrypts ciphertexts produced under the same Parameters.
type Decryptor struct {
	params Parameters
	dec    *rlwe.Decryptor
}

// NewDecryptor builds a Decryptor for sk.
func NewDecryptor(params Parameters, sk *SecretKey) *Decryptor {
	return &Decryptor{params: params, dec: rlwe.NewDecryptor(params.paramsLWE, sk.skLWE)}
}

// scaleFull returns delta_full = Q/pt_mod_full, the encoding placing the
// message in the MSBs of the torus the way spec §4.B.2 expects.
func (p Parameters) scaleFull() uint64 {
	q := p.QLWE()
	return uint64(math.Round(float64(q) / float64(p.PtModFull())))
}

// EncryptWithMessageModulus encrypts a u64 message reduced modulo and
// scaled under the enlarged plaintext modulus pt_mod_full = 2*pt_mod
// (spec §6's ClientKey::encrypt_with_message_modulus).
func (e *Encryptor) EncryptWithMessageModulus(msg uint64) *Ciphertext {
	ringQ := e.params.ringQLWE()

	pt := rlwe.NewPlaintext(e.params.paramsLWE, e.params.paramsLWE.MaxLevel())
	pt.Value.Coeffs[0][0] = (msg % e.params.PtModFull()) * e.params.scaleFull() % ringQ.Modulus()[0]
	pt.IsNTT = false

	ct := rlwe.NewCiphertext(e.params.paramsLWE, 1, e.params.paramsLWE.MaxLevel())
	e.enc.Encrypt(pt, ct)

	return &Ciphertext{ct: ct, Degree: msg % e.params.PtModFull()}
}

// DecryptMessageAndCarry recovers the message-and-carry plaintext (spec
// §6's ClientKey::decrypt_message_and_carry), reduced modulo pt_mod_full.
func (d *Decryptor) DecryptMessageAndCarry(ct *Ciphertext) uint64 {
	pt := rlwe.NewPlaintext(d.params.paramsLWE, ct.ct.Level())
	d.dec.Decrypt(ct.ct, pt)

	raw := pt.Value.Coeffs[0][0]
	scale := d.params.scaleFull()

	return uint64(math.Round(float64(raw)/float64(scale))) % d.params.PtModFull()
}
