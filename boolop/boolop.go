// Package boolop implements the boolean-domain operations this module
// exposes over masked values: the linear bit-manipulation ops (Xor, Not,
// Shl, Shr, Rotl, Rotr), which need no randomness, and the non-linear ops
// (And, Or, Add, Sub), which are built on the gadget and ksa packages.
package boolop

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/gadget"
	"github.com/sidechannel/dom/ksa"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

func checkPair[T word.Word](a, b *mv.MV[T], fn domerr.Func) error {
	if a == nil || b == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if a.Domain() != mv.Boolean || b.Domain() != mv.Boolean {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	if a.Signature() != b.Signature() {
		return domerr.New(domerr.SigMismatch, fn, 2)
	}
	return nil
}

func checkOne[T word.Word](a *mv.MV[T], fn domerr.Func) error {
	if a == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if a.Domain() != mv.Boolean {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	return nil
}

// Xor computes a share-wise XOR of two boolean-domain masked values. XOR
// commutes with the sharing's combining operation, so this needs no fresh
// randomness.
func Xor[T word.Word](a, b *mv.MV[T]) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncBoolXor); err != nil {
		return nil, err
	}
	out, err := mv.Alloc[T](a.Order(), mv.Boolean)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolXor, 3)
	}
	as, bs, os := a.Shares(), b.Shares(), out.Shares()
	for i := range os {
		os[i] = as[i] ^ bs[i]
	}
	return out, nil
}

// Not computes the bitwise complement of a masked value by flipping a
// single share with an all-ones mask.
func Not[T word.Word](a *mv.MV[T]) (*mv.MV[T], error) {
	if err := checkOne(a, domerr.FuncBoolNot); err != nil {
		return nil, err
	}
	out, err := mv.Clone[T](a)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolNot, 2)
	}
	out.Shares()[0] = ^out.Shares()[0]
	return out, nil
}

func shiftEach[T word.Word](a *mv.MV[T], n uint, left bool, fn domerr.Func) (*mv.MV[T], error) {
	if err := checkOne(a, fn); err != nil {
		return nil, err
	}
	bits := uint(word.Bits[T]())
	n %= bits
	out, err := mv.Clone[T](a)
	if err != nil {
		return nil, domerr.Located(err, fn, 2)
	}
	if n == 0 {
		return out, nil
	}
	s := out.Shares()
	for i := range s {
		if left {
			s[i] <<= n
		} else {
			s[i] >>= n
		}
	}
	return out, nil
}

// Shl shifts a masked value left by n bits (mod the word width), zero-
// filling vacated low bits.
func Shl[T word.Word](a *mv.MV[T], n uint) (*mv.MV[T], error) {
	return shiftEach(a, n, true, domerr.FuncBoolShl)
}

// Shr shifts a masked value right by n bits (mod the word width), zero-
// filling vacated high bits.
func Shr[T word.Word](a *mv.MV[T], n uint) (*mv.MV[T], error) {
	return shiftEach(a, n, false, domerr.FuncBoolShr)
}

func rotateEach[T word.Word](a *mv.MV[T], n uint, left bool, fn domerr.Func) (*mv.MV[T], error) {
	if err := checkOne(a, fn); err != nil {
		return nil, err
	}
	bits := uint(word.Bits[T]())
	n %= bits
	out, err := mv.Clone[T](a)
	if err != nil {
		return nil, domerr.Located(err, fn, 2)
	}
	if n == 0 {
		return out, nil
	}
	s := out.Shares()
	for i, v := range s {
		if left {
			s[i] = (v << n) | (v >> (bits - n))
		} else {
			s[i] = (v >> n) | (v << (bits - n))
		}
	}
	return out, nil
}

// Rotl rotates a masked value's bits left by n positions.
func Rotl[T word.Word](a *mv.MV[T], n uint) (*mv.MV[T], error) {
	return rotateEach(a, n, true, domerr.FuncBoolRotl)
}

// Rotr rotates a masked value's bits right by n positions.
func Rotr[T word.Word](a *mv.MV[T], n uint) (*mv.MV[T], error) {
	return rotateEach(a, n, false, domerr.FuncBoolRotr)
}

// And computes the masked bitwise AND of a and b via the DOM-indep gadget.
func And[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncBoolAnd); err != nil {
		return nil, err
	}
	return gadget.And[T](a, b, rng)
}

// Or computes the masked bitwise OR of a and b as (a AND b) XOR a XOR b.
// The XOR fold-in is linear and is applied directly to And's already-
// refreshed output rather than behind a second Refresh call: the second
// refresh would be redundant since XOR does not expose any new
// information about the AND gadget's internal random pairing, only about
// a and b themselves, which the caller already held shares of.
func Or[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncBoolOr); err != nil {
		return nil, err
	}
	out, err := gadget.And[T](a, b, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolOr, 3)
	}
	as, bs, os := a.Shares(), b.Shares(), out.Shares()
	for i := range os {
		os[i] ^= as[i] ^ bs[i]
	}
	return out, nil
}

// Add computes the masked sum of a and b modulo 2^w via the Kogge-Stone
// carry network: sum = (a XOR b) XOR Carry(a, b), where Carry already
// holds the carry into each bit position.
func Add[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncBoolAdd); err != nil {
		return nil, err
	}
	carry, err := ksa.Carry[T](a, b, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolAdd, 3)
	}
	defer mv.Free[T](carry)

	xorAB, err := Xor[T](a, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolAdd, 4)
	}
	defer mv.Free[T](xorAB)

	out, err := Xor[T](xorAB, carry)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolAdd, 5)
	}
	return out, nil
}

// Sub computes the masked difference of a and b modulo 2^w via the
// Kogge-Stone borrow network: diff = (a XOR b) XOR Borrow(a, b), where
// Borrow already holds the borrow into each bit position.
func Sub[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncBoolSub); err != nil {
		return nil, err
	}
	borrow, err := ksa.Borrow[T](a, b, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolSub, 3)
	}
	defer mv.Free[T](borrow)

	xorAB, err := Xor[T](a, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolSub, 4)
	}
	defer mv.Free[T](xorAB)

	out, err := Xor[T](xorAB, borrow)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncBoolSub, 5)
	}
	return out, nil
}
