// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package circuit

// Stats summarises a Circuit's node-kind composition (spec §4.H), used
// by the CLI's --stats flag and by tests asserting a parsed circuit has
// the expected shape.
type Stats struct {
	Inputs     int
	LinCombs   int
	Bootstraps int
	Outputs    int

	// BootstrapOutputs counts individual Bootstrap node outputs, not
	// Bootstrap nodes: a single multi-output bootstrap node contributes
	// len(node.BSOutputs) here.
	BootstrapOutputs int
}

// ComputeStats walks c once and tallies its node kinds.
func (c *Circuit) ComputeStats() Stats {
	var s Stats
	s.Inputs = len(c.Inputs)
	s.Outputs = len(c.Outputs)

	for _, n := range c.Nodes {
		switch n.Kind {
		case KindLinComb:
			s.LinCombs++
		case KindBootstrap:
			s.Bootstraps++
			s.BootstrapOutputs += len(n.BSOutputs)
		}
	}

	return s
}
