// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import "github.com/luxfi/lattice/v6/core/rlwe"

// Ciphertext is an opaque LWE ciphertext plus the noise-budget bound
// ("degree") the underlying library tracks for it. It is owned
// exclusively by whichever component is currently computing with it:
// Bootstrap consumes its input by value, Lincomb borrows its inputs for
// a multi-reference read.
type Ciphertext struct {
	ct     *rlwe.Ciphertext
	Degree uint64
}

// Clone deep-copies the ciphertext so the original can still be referenced.
func (c *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{ct: c.ct.CopyNew(), Degree: c.Degree}
}
