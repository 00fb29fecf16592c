// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/lbf/exec"
	"github.com/luxfi/lbf/tfhe"
)

func TestBatchEngineRunsBootstrapJobs(t *testing.T) {
	params, err := tfhe.NewParametersFromLiteral(tfhe.PN10QP27)
	require.NoError(t, err)

	kg := tfhe.NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	bsk := kg.GenBootstrapKey(sk)
	srv := tfhe.NewServer(params, bsk)
	enc := tfhe.NewEncryptor(params, sk)
	dec := tfhe.NewDecryptor(params, sk)

	tv, err := srv.NewTestVector([]bool{false, true})
	require.NoError(t, err)

	ct := enc.EncryptWithMessageModulus(1)

	eng := New()
	require.NotEmpty(t, eng.Describe())

	results, err := eng.BatchBootstrap(srv, []exec.BootstrapJob{{Ciphertext: ct, TestVector: tv}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint64(1), dec.DecryptMessageAndCarry(results[0]))
}
