// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package lbf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/lbf/circuit"
	"github.com/luxfi/lbf/lbferr"
)

// Parse builds a circuit.Circuit from LBF source text and validates it
// against ptMod (the TFHE plaintext modulus a `.bootstrap` table length
// must not exceed 2*ptMod). The returned Circuit carries its SignalTable
// (c.Table), which callers use to resolve names for input assignment and
// output collection.
func Parse(src string, ptMod uint64) (*circuit.Circuit, error) {
	lines := splitLogicalLines(src)
	directives := splitDirectives(lines)

	c := circuit.New()
	tbl := c.Table

	for _, d := range directives {
		switch d.keyword {
		case "inputs":
			for _, name := range d.header {
				id := tbl.Intern(name)
				c.Inputs = append(c.Inputs, id)
				c.Nodes = append(c.Nodes, circuit.Node{Kind: circuit.KindInput, InputName: id})
			}

		case "outputs":
			for _, name := range d.header {
				id, ok := tbl.Lookup(name)
				if !ok {
					id = tbl.Intern(name)
				}
				c.Outputs = append(c.Outputs, id)
			}

		case "lincomb":
			if err := parseLincomb(tbl, c, d); err != nil {
				return nil, err
			}

		case "bootstrap":
			if err := parseBootstrap(tbl, c, d); err != nil {
				return nil, err
			}

		case "end":
			// nothing further to do; splitDirectives already truncated here.

		default:
			return nil, lbferr.New(lbferr.Parse, fmt.Sprintf("unknown directive %q", d.keyword))
		}
	}

	if err := c.Check(ptMod); err != nil {
		return nil, err
	}

	return c, nil
}

// parseLincomb handles `.lincomb in... out\n coef...`. The directive's
// own header line is `in... out` (the last field is the defined name);
// the body holds |in| or |in|+1 whitespace-separated i8 coefficients,
// the extra one (if present) being the trailing const_coef.
func parseLincomb(tbl *circuit.SignalTable, c *circuit.Circuit, d directive) error {
	if len(d.header) == 0 {
		return lbferr.New(lbferr.Parse, "lincomb: missing output name")
	}

	inputNames := d.header[:len(d.header)-1]
	outName := d.header[len(d.header)-1]

	inputs := make([]circuit.SignalID, len(inputNames))
	for i, name := range inputNames {
		id, ok := tbl.Lookup(name)
		if !ok {
			return lbferr.New(lbferr.Parse, fmt.Sprintf("lincomb: undefined reference %q", name))
		}
		inputs[i] = id
	}

	fields := strings.Fields(strings.Join(d.body, " "))
	coefs := make([]int8, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 8)
		if err != nil {
			return lbferr.Wrap(lbferr.Parse, fmt.Sprintf("lincomb: bad coefficient %q", f), err)
		}
		coefs = append(coefs, int8(v))
	}

	var constCoef int8
	switch len(coefs) {
	case len(inputs):
		// no trailing constant
	case len(inputs) + 1:
		constCoef = coefs[len(coefs)-1]
		coefs = coefs[:len(coefs)-1]
	default:
		return lbferr.New(lbferr.Parse, fmt.Sprintf("lincomb %q: %d inputs but %d coefficients", outName, len(inputs), len(coefs)))
	}

	out := tbl.Intern(outName)
	c.Nodes = append(c.Nodes, circuit.Node{
		Kind:        circuit.KindLinComb,
		LCOutput:    out,
		LCInputs:    inputs,
		LCCoefs:     coefs,
		LCConstCoef: constCoef,
	})

	return nil
}

// parseBootstrap handles `.bootstrap in out...\n row...`, one truth-table
// row per declared output, each row's '0'/'1' characters read with
// interior whitespace ignored.
func parseBootstrap(tbl *circuit.SignalTable, c *circuit.Circuit, d directive) error {
	if len(d.header) < 2 {
		return lbferr.New(lbferr.Parse, "bootstrap: requires an input and at least one output")
	}

	inName := d.header[0]
	outNames := d.header[1:]

	in, ok := tbl.Lookup(inName)
	if !ok {
		return lbferr.New(lbferr.Parse, fmt.Sprintf("bootstrap: undefined reference %q", inName))
	}

	if len(d.body) != len(outNames) {
		return lbferr.New(lbferr.Parse, fmt.Sprintf("bootstrap %q: %d outputs but %d table rows", inName, len(outNames), len(d.body)))
	}

	outputs := make([]circuit.SignalID, len(outNames))
	tables := make([][]bool, len(outNames))
	for i, name := range outNames {
		outputs[i] = tbl.Intern(name)

		row := strings.Join(strings.Fields(d.body[i]), "")
		table := make([]bool, len(row))
		for j, ch := range row {
			switch ch {
			case '0':
				table[j] = false
			case '1':
				table[j] = true
			default:
				return lbferr.New(lbferr.Parse, fmt.Sprintf("bootstrap %q: invalid truth table character %q", name, ch))
			}
		}
		tables[i] = table
	}

	c.Nodes = append(c.Nodes, circuit.Node{
		Kind:      circuit.KindBootstrap,
		BSInput:   in,
		BSOutputs: outputs,
		BSTables:  tables,
	})

	return nil
}
