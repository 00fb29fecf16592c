// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package circuit holds the in-memory DAG an LBF file compiles to: a
// signal table interning names to dense integer ids (spec §9's design
// note, adopted as mandatory), a node list in declaration order (which
// doubles as topological order), and the input/output name lists.
package circuit

import "github.com/luxfi/lbf/lbferr"

// SignalID is a dense, zero-based id a SignalTable assigns to a name the
// first time it is seen. Every downstream bookkeeping structure (refcounts,
// channel maps, clear-eval storage) is keyed by SignalID, not by string.
type SignalID int

// SignalTable interns signal names to SignalIDs and back, so the rest of
// the evaluator never hashes a string at run time.
type SignalTable struct {
	names []string
	ids   map[string]SignalID
}

// NewSignalTable returns an empty table.
func NewSignalTable() *SignalTable {
	return &SignalTable{ids: make(map[string]SignalID)}
}

// Intern returns name's existing id, or assigns and returns a fresh one.
func (t *SignalTable) Intern(name string) SignalID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := SignalID(len(t.names))
	t.names = append(t.names, name)
	t.ids[name] = id
	return id
}

// Lookup returns name's id without interning, for reference resolution
// where an undefined reference must be an error rather than a new id.
func (t *SignalTable) Lookup(name string) (SignalID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the original string a SignalID was interned from.
func (t *SignalTable) Name(id SignalID) string {
	return t.names[id]
}

// Len reports how many distinct names have been interned.
func (t *SignalTable) Len() int { return len(t.names) }

// NodeKind distinguishes the three node variants spec §3 defines.
type NodeKind int

const (
	KindInput NodeKind = iota
	KindLinComb
	KindBootstrap
)

// Node is one definition in circuit order. Exactly one of the per-kind
// fields below is meaningful, selected by Kind.
type Node struct {
	Kind NodeKind

	// KindInput
	InputName SignalID

	// KindLinComb
	LCOutput    SignalID
	LCInputs    []SignalID
	LCCoefs     []int8
	LCConstCoef int8

	// KindBootstrap
	BSInput   SignalID
	BSOutputs []SignalID
	BSTables  [][]bool
}

// Circuit is an ordered sequence of nodes plus the declared input and
// output name lists. Insertion order is a valid topological order: any
// name a node references must have been defined earlier.
type Circuit struct {
	Table   *SignalTable
	Nodes   []Node
	Inputs  []SignalID
	Outputs []SignalID
}

// New builds an empty Circuit over a fresh SignalTable.
func New() *Circuit {
	return &Circuit{Table: NewSignalTable()}
}

func (c *Circuit) wrap(kind lbferr.Kind, context string) error {
	return lbferr.New(kind, context)
}
