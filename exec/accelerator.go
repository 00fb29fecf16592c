// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package exec

import "github.com/luxfi/lbf/tfhe"

// BootstrapJob is one pending Bootstrap task RunParallelWithAccelerator
// may hand to an Accelerator instead of running through tfhe.Server
// directly.
type BootstrapJob struct {
	Ciphertext *tfhe.Ciphertext
	TestVector *tfhe.TestVector
}

// Accelerator evaluates a batch of bootstrap jobs against a shared
// Server, e.g. by dispatching them as one GPU call instead of one
// per goroutine. Package gpu provides a cgo-gated implementation on
// github.com/luxfi/mlx; it is optional, and RunParallel falls back to
// calling tfhe.Server.Bootstrap directly when none is supplied.
type Accelerator interface {
	BatchBootstrap(srv *tfhe.Server, jobs []BootstrapJob) ([]*tfhe.Ciphertext, error)
}
