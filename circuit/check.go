// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package circuit

import (
	"fmt"

	"github.com/luxfi/lbf/lbferr"
)

// Check validates every invariant spec §3 requires of a fully-built
// Circuit: unique definitions, no forward/undefined references, every
// declared output defined exactly once, LinComb coefficient counts
// matching, and Bootstrap output/table counts matching with tables no
// longer than 2*ptMod. Table-length validation is deferred to the
// caller-supplied ptMod because the modulus is a TFHE parameter, not a
// circuit-level concept.
func (c *Circuit) Check(ptMod uint64) error {
	defined := make(map[SignalID]bool, c.Table.Len())

	for _, in := range c.Inputs {
		if defined[in] {
			return lbferr.New(lbferr.Validate, fmt.Sprintf("signal %q redefined as input", c.Table.Name(in)))
		}
		defined[in] = true
	}

	for ni, n := range c.Nodes {
		switch n.Kind {
		case KindInput:
			// Inputs are recorded via c.Inputs and already marked above;
			// a KindInput node is only ever emitted for that bookkeeping.
		case KindLinComb:
			if len(n.LCInputs) != len(n.LCCoefs) {
				return lbferr.New(lbferr.Validate, fmt.Sprintf("lincomb node %d: %d inputs but %d coefficients", ni, len(n.LCInputs), len(n.LCCoefs)))
			}
			for _, ref := range n.LCInputs {
				if !defined[ref] {
					return lbferr.New(lbferr.Validate, fmt.Sprintf("lincomb node %d: undefined reference %q", ni, c.Table.Name(ref)))
				}
			}
			if defined[n.LCOutput] {
				return lbferr.New(lbferr.Validate, fmt.Sprintf("signal %q redefined by lincomb node %d", c.Table.Name(n.LCOutput), ni))
			}
			defined[n.LCOutput] = true

		case KindBootstrap:
			if !defined[n.BSInput] {
				return lbferr.New(lbferr.Validate, fmt.Sprintf("bootstrap node %d: undefined reference %q", ni, c.Table.Name(n.BSInput)))
			}
			if len(n.BSOutputs) != len(n.BSTables) {
				return lbferr.New(lbferr.Validate, fmt.Sprintf("bootstrap node %d: %d outputs but %d tables", ni, len(n.BSOutputs), len(n.BSTables)))
			}
			for _, tbl := range n.BSTables {
				if uint64(len(tbl)) > 2*ptMod {
					return lbferr.New(lbferr.Validate, fmt.Sprintf("bootstrap node %d: table length %d exceeds 2*p (%d)", ni, len(tbl), 2*ptMod))
				}
			}
			for _, out := range n.BSOutputs {
				if defined[out] {
					return lbferr.New(lbferr.Validate, fmt.Sprintf("signal %q redefined by bootstrap node %d", c.Table.Name(out), ni))
				}
				defined[out] = true
			}

		default:
			return lbferr.New(lbferr.Validate, fmt.Sprintf("node %d: unknown kind %d", ni, n.Kind))
		}
	}

	if len(c.Outputs) == 0 {
		return lbferr.New(lbferr.Validate, "circuit declares no outputs")
	}
	for _, out := range c.Outputs {
		if !defined[out] {
			return lbferr.New(lbferr.Validate, fmt.Sprintf("output %q is never defined", c.Table.Name(out)))
		}
	}

	return nil
}

// DanglingSignals returns the names of every defined signal that is
// neither a declared output nor referenced by any later node (spec §3
// invariant 4). This is informational only: the spec allows downgrading
// the violation to a warning (§9), so Check does not fail on it and
// callers decide whether to log it.
func (c *Circuit) DanglingSignals() []string {
	referenced := make(map[SignalID]bool, c.Table.Len())
	for _, n := range c.Nodes {
		switch n.Kind {
		case KindLinComb:
			for _, ref := range n.LCInputs {
				referenced[ref] = true
			}
		case KindBootstrap:
			referenced[n.BSInput] = true
		}
	}
	for _, out := range c.Outputs {
		referenced[out] = true
	}

	var dangling []string
	for _, n := range c.Nodes {
		var defs []SignalID
		switch n.Kind {
		case KindInput:
			defs = append(defs, n.InputName)
		case KindLinComb:
			defs = append(defs, n.LCOutput)
		case KindBootstrap:
			defs = append(defs, n.BSOutputs...)
		}
		for _, d := range defs {
			if !referenced[d] {
				dangling = append(dangling, c.Table.Name(d))
			}
		}
	}
	return dangling
}

// RefCounts returns, for every SignalID, the number of times it is
// consumed: once per LinComb input reference, once per Bootstrap
// *output* a shared input feeds (a bootstrap clones its input ciphertext
// per output table and unrefs it after each one, so an m-output
// bootstrap node counts as m consumers of its single input, not one),
// plus one for every declared circuit output. Component F and G use this
// to free a ciphertext's storage slot the moment its last consumer has
// run.
func (c *Circuit) RefCounts() map[SignalID]int {
	counts := make(map[SignalID]int, c.Table.Len())

	for _, n := range c.Nodes {
		switch n.Kind {
		case KindLinComb:
			for _, ref := range n.LCInputs {
				counts[ref]++
			}
		case KindBootstrap:
			counts[n.BSInput] += len(n.BSOutputs)
		}
	}
	for _, out := range c.Outputs {
		counts[out]++
	}

	return counts
}
