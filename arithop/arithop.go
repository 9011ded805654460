// Package arithop implements the arithmetic-domain operations this module
// exposes over masked values: Add and Sub, which are linear and need no
// randomness, and Mult, which is built on the DOM-indep gadget.
package arithop

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/gadget"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

func checkPair[T word.Word](a, b *mv.MV[T], fn domerr.Func) error {
	if a == nil || b == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if a.Domain() != mv.Arithmetic || b.Domain() != mv.Arithmetic {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	if a.Signature() != b.Signature() {
		return domerr.New(domerr.SigMismatch, fn, 2)
	}
	return nil
}

// Add computes the masked sum of a and b modulo 2^w by adding shares
// share-wise. Addition in the arithmetic domain commutes with the
// sharing's combining operation, so this needs no fresh randomness.
func Add[T word.Word](a, b *mv.MV[T]) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncArithAdd); err != nil {
		return nil, err
	}
	out, err := mv.Alloc[T](a.Order(), mv.Arithmetic)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncArithAdd, 3)
	}
	as, bs, os := a.Shares(), b.Shares(), out.Shares()
	for i := range os {
		os[i] = as[i] + bs[i]
	}
	return out, nil
}

// Sub computes the masked difference of a and b modulo 2^w by subtracting
// shares share-wise.
func Sub[T word.Word](a, b *mv.MV[T]) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncArithSub); err != nil {
		return nil, err
	}
	out, err := mv.Alloc[T](a.Order(), mv.Arithmetic)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncArithSub, 3)
	}
	as, bs, os := a.Shares(), b.Shares(), out.Shares()
	for i := range os {
		os[i] = as[i] - bs[i]
	}
	return out, nil
}

// Mult computes the masked product of a and b modulo 2^w via the
// DOM-indep gadget.
func Mult[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncArithMult); err != nil {
		return nil, err
	}
	return gadget.Mult[T](a, b, rng)
}
