// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testContext holds common fixtures for tfhe tests.
type testContext struct {
	params Parameters
	kg     *KeyGenerator
	sk     *SecretKey
	bsk    *BootstrapKey
	srv    *Server
	enc    *Encryptor
	dec    *Decryptor
}

// newTestContext creates a test context with the toy-secure boolean
// parameter set (p=2, padded domain 2p=4).
func newTestContext(t testing.TB) *testContext {
	t.Helper()

	params, err := NewParametersFromLiteral(PN10QP27)
	require.NoError(t, err, "create parameters")

	kg := NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	bsk := kg.GenBootstrapKey(sk)

	return &testContext{
		params: params,
		kg:     kg,
		sk:     sk,
		bsk:    bsk,
		srv:    NewServer(params, bsk),
		enc:    NewEncryptor(params, sk),
		dec:    NewDecryptor(params, sk),
	}
}
