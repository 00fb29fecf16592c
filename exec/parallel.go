// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package exec

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/lbferr"
	"github.com/luxfi/lbf/tfhe"
)

// RunParallel evaluates c as a task DAG on the pure-Go bootstrap path;
// it is RunParallelWithAccelerator with a nil Accelerator.
func RunParallel(ctx context.Context, c *circuit.Circuit, srv *tfhe.Server, inputs map[circuit.SignalID]*tfhe.Ciphertext, poolSize int) (map[circuit.SignalID]*tfhe.Ciphertext, error) {
	return RunParallelWithAccelerator(ctx, c, srv, inputs, poolSize, nil)
}

// RunParallelWithAccelerator evaluates c as a task DAG: one goroutine
// per node (a multi-output Bootstrap node becomes one goroutine per
// output, each subscribing to the shared input signal's channel).
// Every signal gets a single-producer channel buffered to its static
// consumer count (circuit.RefCounts), so the producer sends its value
// once per consumer and each consumer performs exactly one receive.
// Channel waits do not hold a worker-pool slot; only the CPU-bound
// lincomb/bootstrap calls are gated to poolSize concurrent in flight,
// matching the "tasks suspend only at channel receives" scheduling
// model. Any task error cancels the remaining tasks via errgroup's
// context. When accel is non-nil, each Bootstrap task is routed through
// it instead of tfhe.Server.Bootstrap directly.
func RunParallelWithAccelerator(ctx context.Context, c *circuit.Circuit, srv *tfhe.Server, inputs map[circuit.SignalID]*tfhe.Ciphertext, poolSize int, accel Accelerator) (map[circuit.SignalID]*tfhe.Ciphertext, error) {
	if poolSize < 1 {
		poolSize = 1
	}

	refs := c.RefCounts()

	chans := make(map[circuit.SignalID]chan *tfhe.Ciphertext, c.Table.Len())
	chanFor := func(id circuit.SignalID) chan *tfhe.Ciphertext {
		ch, ok := chans[id]
		if !ok {
			n := refs[id]
			if n < 1 {
				n = 1
			}
			ch = make(chan *tfhe.Ciphertext, n)
			chans[id] = ch
		}
		return ch
	}

	publish := func(id circuit.SignalID, ct *tfhe.Ciphertext) {
		ch := chanFor(id)
		for i := 0; i < refs[id]; i++ {
			ch <- ct
		}
	}

	sem := make(chan struct{}, poolSize)
	g, gctx := errgroup.WithContext(ctx)

	acquire := func() error {
		select {
		case sem <- struct{}{}:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	}
	release := func() { <-sem }

	recv := func(id circuit.SignalID) (*tfhe.Ciphertext, error) {
		select {
		case ct, ok := <-chanFor(id):
			if !ok {
				return nil, lbferr.New(lbferr.Join, fmt.Sprintf("channel for %q closed unexpectedly", c.Table.Name(id)))
			}
			return ct, nil
		case <-gctx.Done():
			return nil, gctx.Err()
		}
	}

	for _, n := range c.Nodes {
		n := n
		switch n.Kind {
		case circuit.KindInput:
			g.Go(func() error {
				ct, ok := inputs[n.InputName]
				if !ok {
					return lbferr.New(lbferr.Execute, fmt.Sprintf("missing input ciphertext for %q", c.Table.Name(n.InputName)))
				}
				publish(n.InputName, ct)
				return nil
			})

		case circuit.KindLinComb:
			g.Go(func() error {
				cts := make([]*tfhe.Ciphertext, len(n.LCInputs))
				for i, ref := range n.LCInputs {
					ct, err := recv(ref)
					if err != nil {
						return err
					}
					cts[i] = ct
				}

				if err := acquire(); err != nil {
					return err
				}
				out, err := srv.Lincomb(cts, n.LCCoefs, n.LCConstCoef)
				release()
				if err != nil {
					return err
				}

				publish(n.LCOutput, out)
				return nil
			})

		case circuit.KindBootstrap:
			for i, out := range n.BSOutputs {
				table := n.BSTables[i]
				out := out
				g.Go(func() error {
					in, err := recv(n.BSInput)
					if err != nil {
						return err
					}

					tv, err := srv.NewTestVector(table)
					if err != nil {
						return err
					}

					if err := acquire(); err != nil {
						return err
					}
					var res *tfhe.Ciphertext
					if accel != nil {
						var batch []*tfhe.Ciphertext
						batch, err = accel.BatchBootstrap(srv, []BootstrapJob{{Ciphertext: in.Clone(), TestVector: tv}})
						if err == nil {
							res = batch[0]
						}
					} else {
						res, err = srv.Bootstrap(in.Clone(), tv)
					}
					release()
					if err != nil {
						return err
					}

					publish(out, res)
					return nil
				})
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[circuit.SignalID]*tfhe.Ciphertext, len(c.Outputs))
	for _, id := range c.Outputs {
		select {
		case ct, ok := <-chanFor(id):
			if !ok {
				return nil, lbferr.New(lbferr.Execute, fmt.Sprintf("output channel for %q closed unexpectedly", c.Table.Name(id)))
			}
			results[id] = ct
		default:
			return nil, lbferr.New(lbferr.Execute, fmt.Sprintf("missing ciphertext for output %q", c.Table.Name(id)))
		}
	}

	return results, nil
}
