//go:build !cgo

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/luxfi/lbf/exec"
	"github.com/luxfi/lbf/tfhe"
)

// BatchEngine is the pure-Go fallback used when mlx's cgo bindings are
// unavailable: it satisfies exec.Accelerator but just calls through to
// tfhe.Server, so callers can wire an Accelerator unconditionally. The
// cgo build runs jobs the same way and differs only in probing and
// reporting the mlx backend and device.
type BatchEngine struct{}

// New returns a BatchEngine; there is no device to probe without cgo.
func New() *BatchEngine { return &BatchEngine{} }

// Describe reports that no accelerator backend is available.
func (e *BatchEngine) Describe() string { return "mlx unavailable (built without cgo)" }

// BatchBootstrap runs every job through srv directly.
func (e *BatchEngine) BatchBootstrap(srv *tfhe.Server, jobs []exec.BootstrapJob) ([]*tfhe.Ciphertext, error) {
	out := make([]*tfhe.Ciphertext, len(jobs))
	for i, job := range jobs {
		res, err := srv.Bootstrap(job.Ciphertext, job.TestVector)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}
