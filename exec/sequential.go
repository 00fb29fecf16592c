// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package exec runs a circuit.Circuit against a tfhe.Server, either on a
// single goroutine with refcount-driven ciphertext deallocation
// (RunSequential) or as a task DAG over a worker pool (RunParallel).
package exec

import (
	"fmt"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/lbferr"
	"github.com/luxfi/lbf/tfhe"
)

type storeEntry struct {
	ct    *tfhe.Ciphertext
	count int
}

// RunSequential evaluates c in declaration order, consulting inputs for
// each declared circuit input's ciphertext. A ciphertext is dropped from
// the internal store the instant its statically-computed reference
// count (circuit.RefCounts, output names counted once more) reaches
// zero, so memory use stays proportional to the circuit's live width
// rather than its total node count.
func RunSequential(c *circuit.Circuit, srv *tfhe.Server, inputs map[circuit.SignalID]*tfhe.Ciphertext) (map[circuit.SignalID]*tfhe.Ciphertext, error) {
	refs := c.RefCounts()
	store := make(map[circuit.SignalID]*storeEntry, c.Table.Len())

	get := func(id circuit.SignalID) (*tfhe.Ciphertext, error) {
		e, ok := store[id]
		if !ok {
			return nil, lbferr.New(lbferr.Execute, fmt.Sprintf("missing ciphertext for %q", c.Table.Name(id)))
		}
		return e.ct, nil
	}
	unref := func(id circuit.SignalID) {
		e, ok := store[id]
		if !ok {
			return
		}
		e.count--
		if e.count <= 0 {
			delete(store, id)
		}
	}
	insert := func(id circuit.SignalID, ct *tfhe.Ciphertext) {
		store[id] = &storeEntry{ct: ct, count: refs[id]}
	}

	for _, n := range c.Nodes {
		switch n.Kind {
		case circuit.KindInput:
			ct, ok := inputs[n.InputName]
			if !ok {
				return nil, lbferr.New(lbferr.Execute, fmt.Sprintf("missing input ciphertext for %q", c.Table.Name(n.InputName)))
			}
			insert(n.InputName, ct)

		case circuit.KindLinComb:
			cts := make([]*tfhe.Ciphertext, len(n.LCInputs))
			for i, ref := range n.LCInputs {
				ct, err := get(ref)
				if err != nil {
					return nil, err
				}
				cts[i] = ct
			}

			out, err := srv.Lincomb(cts, n.LCCoefs, n.LCConstCoef)
			if err != nil {
				return nil, err
			}
			for _, ref := range n.LCInputs {
				unref(ref)
			}
			insert(n.LCOutput, out)

		case circuit.KindBootstrap:
			in, err := get(n.BSInput)
			if err != nil {
				return nil, err
			}

			for i, out := range n.BSOutputs {
				tv, err := srv.NewTestVector(n.BSTables[i])
				if err != nil {
					return nil, err
				}

				res, err := srv.Bootstrap(in.Clone(), tv)
				if err != nil {
					return nil, err
				}

				insert(out, res)
				unref(n.BSInput)
			}
		}
	}

	result := make(map[circuit.SignalID]*tfhe.Ciphertext, len(c.Outputs))
	for _, id := range c.Outputs {
		ct, err := get(id)
		if err != nil {
			return nil, err
		}
		result[id] = ct
	}

	return result, nil
}
