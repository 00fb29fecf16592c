// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package lbferr defines the tagged error taxonomy shared by every LBF
// package: parsing, validation, test-vector construction, execution and
// task-join failures all surface as an *Error carrying a Kind and the
// offending context, never a bare string.
package lbferr

import "fmt"

// Kind classifies the stage that produced an error.
type Kind int

const (
	// Parse covers malformed directives, bad integers, missing fields.
	Parse Kind = iota
	// Validate covers Circuit.Check failures: duplicate names, undefined
	// references, count mismatches. Dangling definitions are not errors;
	// Circuit.DanglingSignals reports them for the caller to log.
	Validate
	// TestVector covers oversized tables and inconsistent classification.
	TestVector
	// Execute covers missing inputs and other run-time failures.
	Execute
	// Join covers parallel-executor task failures and channel closures.
	Join
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Validate:
		return "validate"
	case TestVector:
		return "test-vector"
	case Execute:
		return "execute"
	case Join:
		return "join"
	default:
		return "unknown"
	}
}

// Error is the single error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

// Wrap builds an *Error around an existing error.
func Wrap(kind Kind, context string, err error) *Error {
	return &Error{Kind: kind, Context: context, Err: err}
}
