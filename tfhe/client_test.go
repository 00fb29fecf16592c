// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tc := newTestContext(t)
	ptModFull := tc.params.PtModFull()

	for msg := uint64(0); msg < ptModFull; msg++ {
		ct := tc.enc.EncryptWithMessageModulus(msg)
		got := tc.dec.DecryptMessageAndCarry(ct)
		require.Equal(t, msg, got, "round trip %d", msg)
	}
}

func TestCiphertextClonePreservesPlaintext(t *testing.T) {
	tc := newTestContext(t)

	ct := tc.enc.EncryptWithMessageModulus(1)
	clone := ct.Clone()

	require.Equal(t, uint64(1), tc.dec.DecryptMessageAndCarry(clone))
}
