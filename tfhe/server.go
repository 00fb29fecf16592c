// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"fmt"

	"github.com/luxfi/lattice/v6/core/rgsw/blindrot"
	"github.com/luxfi/lattice/v6/core/rlwe"
	"github.com/luxfi/lattice/v6/ring"
	"github.com/luxfi/lbf/lbferr"
)

// Server wraps a BootstrapKey and Parameters into the two ciphertext
// operations an LBF circuit needs: Lincomb (plaintext-ring arithmetic,
// no noise reduction) and Bootstrap (negacyclic functional lookup that
// simultaneously refreshes noise). It never sees a SecretKey.
type Server struct {
	params Parameters
	bsk    *BootstrapKey

	br     *blindrot.Evaluator
	ks     *rlwe.Evaluator
	ringBR *ring.Ring
	ringLW *ring.Ring
}

// NewServer builds a Server over params using bsk for bootstrapping.
func NewServer(params Parameters, bsk *BootstrapKey) *Server {
	return &Server{
		params: params,
		bsk:    bsk,
		br:     blindrot.NewEvaluator(params.paramsBR, params.paramsLWE),
		ks:     rlwe.NewEvaluator(params.paramsBR, nil),
		ringBR: params.ringQBR(),
		ringLW: params.ringQLWE(),
	}
}

// PtMod exposes the small plaintext modulus p, for circuit validation
// (table length <= 2p) and NewTestVector.
func (s *Server) PtMod() uint64 { return s.params.PtMod() }

// NewTestVector is a thin wrapper calling tfhe.New with this server's p
// (spec §4.B.3).
func (s *Server) NewTestVector(val []bool) (*TestVector, error) {
	return New(val, s.params.PtMod())
}

// trivial builds a noiseless ciphertext encoding the given plaintext-ring
// value (wrapping a negative const_coef modulo the ring, per spec §4.B.1
// step 1).
func (s *Server) trivial(value uint64) *Ciphertext {
	ct := rlwe.NewCiphertext(s.params.paramsLWE, 1, s.params.paramsLWE.MaxLevel())
	ct.Value[0].Coeffs[0][0] = (value % s.params.PtModFull()) * s.params.scaleFull() % s.ringLW.Modulus()[0]
	return &Ciphertext{ct: ct}
}

// Lincomb computes const_coef + sum(coefs[i]*cts[i]) in ciphertext space,
// with no bootstrap/noise-reduction step (spec §4.B.1). Zero coefficients
// are silent no-ops (spec §9: the source's stderr warning is dropped).
func (s *Server) Lincomb(cts []*Ciphertext, coefs []int8, constCoef int8) (*Ciphertext, error) {
	if len(cts) != len(coefs) {
		return nil, lbferr.New(lbferr.Execute, fmt.Sprintf("lincomb: %d ciphertexts but %d coefficients", len(cts), len(coefs)))
	}

	acc := s.trivial(uint64(int64(constCoef)))

	for i, c := range coefs {
		switch {
		case c > 0:
			scaled := s.scalarMul(cts[i], uint64(c))
			s.addAssign(acc, scaled)
		case c < 0:
			scaled := s.scalarMul(cts[i], uint64(-c))
			s.subAssign(acc, scaled)
		default:
			// zero coefficient: silent no-op.
		}
	}

	return acc, nil
}

func (s *Server) scalarMul(ct *Ciphertext, scalar uint64) *Ciphertext {
	out := rlwe.NewCiphertext(s.params.paramsLWE, 1, ct.ct.Level())
	s.ringLW.MulScalar(ct.ct.Value[0], scalar, out.Value[0])
	s.ringLW.MulScalar(ct.ct.Value[1], scalar, out.Value[1])
	out.IsNTT = ct.ct.IsNTT
	return &Ciphertext{ct: out, Degree: ct.Degree * scalar}
}

func (s *Server) addAssign(dst, src *Ciphertext) {
	s.ringLW.Add(dst.ct.Value[0], src.ct.Value[0], dst.ct.Value[0])
	s.ringLW.Add(dst.ct.Value[1], src.ct.Value[1], dst.ct.Value[1])
	dst.Degree += src.Degree
}

func (s *Server) subAssign(dst, src *Ciphertext) {
	s.ringLW.Sub(dst.ct.Value[0], src.ct.Value[0], dst.ct.Value[0])
	s.ringLW.Sub(dst.ct.Value[1], src.ct.Value[1], dst.ct.Value[1])
	dst.Degree += src.Degree
}

// addHalfShift adds n*delta_full to ct's constant (body) plaintext slot
// and bumps its tracked degree by n, used both for the pre-rotation
// correction (n=1) and the post-shift correction (n in {0,1,2}).
func (s *Server) addHalfShift(ct *Ciphertext, n uint64) {
	deltaFull := s.params.scaleFull()
	q := s.ringLW.Modulus()[0]
	ct.ct.Value[0].Coeffs[0][0] = (ct.ct.Value[0].Coeffs[0][0] + n*deltaFull) % q
	ct.Degree += n
}

// buildAccumulator realises spec §4.B.2 step 1: a bootstrapping-ring
// polynomial whose box i (of box_size = N/p_sup coefficients) holds
// tv.Fnc(i)*delta - f_delta, where f_delta is chosen from {0, delta/2,
// delta} by tv's TvType so that a single negacyclic lookup plus the pre-
// and post-rotation corrections realise a boolean function over the full
// padded domain [0, 2p).
func (s *Server) buildAccumulator(tv *TestVector) *ring.Poly {
	pSup := s.params.PtMod()
	n := s.params.N()
	boxSize := n / int(pSup)

	q := s.ringBR.Modulus()[0]
	delta := q / (2 * pSup)

	var fDelta uint64
	switch tv.Type() {
	case TvZero:
		fDelta = 0
	case TvHalf:
		fDelta = delta / 2
	case TvOne:
		fDelta = delta
	}

	acc := s.ringBR.NewPoly()
	for i := uint64(0); i < pSup; i++ {
		var v uint64
		if tv.Fnc(i) {
			v = delta
		}
		v = (v + q - fDelta) % q // wrapping_sub(f_delta)

		lo := int(i) * boxSize
		hi := lo + boxSize
		for j := lo; j < hi; j++ {
			acc.Coeffs[0][j] = v
		}
	}

	return acc
}

// Bootstrap applies a programmable bootstrap realising tv over the
// padded domain [0, 2p), consuming ct (spec §4.B.2).
func (s *Server) Bootstrap(ct *Ciphertext, tv *TestVector) (*Ciphertext, error) {
	// Step 2: pre-rotation correction compensates the half-box offset of
	// the non-rotated accumulator.
	s.addHalfShift(ct, 1)

	acc := s.buildAccumulator(tv)

	results, err := s.br.Evaluate(ct.ct, map[int]*ring.Poly{0: acc}, s.bsk.BRK)
	if err != nil {
		return nil, lbferr.Wrap(lbferr.Execute, "blind rotation", err)
	}

	ctBR, ok := results[0]
	if !ok {
		return nil, lbferr.New(lbferr.Execute, "blind rotation produced no result for slot 0")
	}

	out, err := s.sampleExtractAndKeySwitch(ctBR)
	if err != nil {
		return nil, err
	}

	switch tv.Type() {
	case TvZero:
		// no correction
	case TvHalf:
		s.addHalfShift(out, 1)
	case TvOne:
		s.addHalfShift(out, 2)
	}

	return out, nil
}

// sampleExtractAndKeySwitch extracts the constant coefficient of a
// bootstrapping-ring ciphertext and key-switches it back to the LWE
// ring, the same sample-extraction-then-keyswitch pattern the upstream
// evaluator uses to avoid ever decrypting mid-bootstrap.
func (s *Server) sampleExtractAndKeySwitch(ctBR *rlwe.Ciphertext) (*Ciphertext, error) {
	if s.bsk.KSK == nil {
		return nil, lbferr.New(lbferr.Execute, "bootstrap key does not contain a key-switching key")
	}

	level := ctBR.Level()
	ringBR := s.ringBR.AtLevel(level)
	N := ringBR.N()
	q := s.params.paramsBR.RingQ().AtLevel(level).Modulus()[0]

	c0 := ctBR.Value[0].CopyNew()
	c1 := ctBR.Value[1].CopyNew()
	if ctBR.IsNTT {
		ringBR.INTT(*c0, *c0)
		ringBR.INTT(*c1, *c1)
	}

	extracted := rlwe.NewCiphertext(s.params.paramsBR, 1, level)
	extracted.Value[0].Coeffs[0][0] = c0.Coeffs[0][0]
	extracted.Value[1].Coeffs[0][0] = c1.Coeffs[0][0]
	for i := 1; i < N; i++ {
		extracted.Value[1].Coeffs[0][i] = (q - c1.Coeffs[0][N-i]) % q
	}
	ringBR.NTT(extracted.Value[0], extracted.Value[0])
	ringBR.NTT(extracted.Value[1], extracted.Value[1])
	extracted.IsNTT = true

	switched := rlwe.NewCiphertext(s.params.paramsLWE, 1, s.params.paramsLWE.MaxLevel())
	switched.IsNTT = true
	if err := s.ks.ApplyEvaluationKey(extracted, s.bsk.KSK, switched); err != nil {
		return nil, lbferr.Wrap(lbferr.Execute, "key switching", err)
	}

	return &Ciphertext{ct: switched}, nil
}
