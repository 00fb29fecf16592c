//go:build cgo

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu provides an optional exec.Accelerator backed by
// github.com/luxfi/mlx for device detection around the parallel
// executor's bootstrap tasks. The blind-rotation math itself stays in
// package tfhe on top of lattice/v6; mlx has no TFHE primitives of its
// own, so this package never reimplements NTT, external-product, or
// CMUX; it only probes which mlx backend and device are present and runs
// each job through tfhe.Server.Bootstrap.
package gpu

import (
	"fmt"

	"github.com/luxfi/mlx"

	"github.com/luxfi/lbf/exec"
	"github.com/luxfi/lbf/tfhe"
)

// BatchEngine is an exec.Accelerator that reports the detected mlx
// backend/device and runs bootstrap jobs through tfhe.Server.
type BatchEngine struct {
	backend mlx.Backend
	device  *mlx.Device
}

// New probes the local mlx backend and device. It never fails: if no
// GPU is present, mlx itself falls back to a CPU backend.
func New() *BatchEngine {
	return &BatchEngine{
		backend: mlx.GetBackend(),
		device:  mlx.GetDevice(),
	}
}

// Describe reports the backend name, for CLI/log diagnostics.
func (e *BatchEngine) Describe() string {
	return fmt.Sprintf("mlx backend=%v device=%v", e.backend, e.device)
}

// BatchBootstrap evaluates every job against srv in order through
// tfhe.Server.Bootstrap. The backend and device probed in New are not
// used here; they are only reported by Describe.
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
