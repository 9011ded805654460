// Package ksa implements the two Kogge-Stone prefix networks this module's
// masked adder and subtractor are built from: Carry, which produces the
// carry-into-each-bit vector for a+b, and Borrow, which produces the
// borrow-into-each-bit vector for a-b. Both run in O(log w) masked AND
// gadget rounds rather than the O(w) rounds a ripple-carry construction
// would need.
package ksa

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/gadget"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

func checkOperands[T word.Word](a, b *mv.MV[T], fn domerr.Func) error {
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

// xorShares computes a share-wise XOR. XOR commutes with secret sharing's
// combining operation, so this needs no randomness: it operates directly
// on the share arrays.
func xorShares[T word.Word](a, b *mv.MV[T]) (*mv.MV[T], error) {
	out, err := mv.Alloc[T](a.Order(), mv.Boolean)
	if err != nil {
		return nil, err
	}
	as, bs, os := a.Shares(), b.Shares(), out.Shares()
	for i := range os {
		os[i] = as[i] ^ bs[i]
	}
	return out, nil
}

// notShares computes a share-wise complement by flipping a single share
// with an all-ones mask; XOR-ing one share with a constant is linear in
// the same sense XOR of two shared values is.
func notShares[T word.Word](a *mv.MV[T]) (*mv.MV[T], error) {
	out, err := mv.Clone[T](a)
	if err != nil {
		return nil, err
	}
	out.Shares()[0] = ^out.Shares()[0]
	return out, nil
}

// shiftLeftShares shifts every share left by n bits. A bitwise shift
// commutes with XOR, so shifting each share independently shifts the
// secret the shares carry.
func shiftLeftShares[T word.Word](a *mv.MV[T], n uint) (*mv.MV[T], error) {
	out, err := mv.Clone[T](a)
	if err != nil {
		return nil, err
	}
	s := out.Shares()
	for i := range s {
		s[i] <<= n
	}
	return out, nil
}

// Carry computes the carry-into-each-bit-position vector for a+b: bit i of
// the result is 1 iff adding a and b produces a carry into bit i (the
// final left shift by one is already applied here). The caller recovers
// the full sum as (a XOR b) XOR Carry(a,b).
func Carry[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkOperands(a, b, domerr.FuncKSACarry); err != nil {
		return nil, err
	}
	p, err := xorShares(a, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncKSACarry, 3)
	}
	g, err := gadget.And[T](a, b, rng)
	if err != nil {
		mv.Free[T](p)
		return nil, domerr.Located(err, domerr.FuncKSACarry, 4)
	}

	bits := uint(word.Bits[T]())
	for dist := uint(1); dist < bits; dist <<= 1 {
		pShift, err := shiftLeftShares(p, dist)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			return nil, domerr.Located(err, domerr.FuncKSACarry, 5)
		}
		gShift, err := shiftLeftShares(g, dist)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSACarry, 6)
		}

		tmp, err := gadget.And[T](p, gShift, rng)
		mv.Free[T](gShift)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSACarry, 7)
		}

		newG, err := xorShares(g, tmp)
		mv.Free[T](tmp)
		mv.Free[T](g)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSACarry, 8)
		}
		g = newG

		newP, err := gadget.And[T](p, pShift, rng)
		mv.Free[T](pShift)
		mv.Free[T](p)
		if err != nil {
			mv.Free[T](g)
			return nil, domerr.Located(err, domerr.FuncKSACarry, 9)
		}
		p = newP
	}
	mv.Free[T](p)

	out, err := shiftLeftShares(g, 1)
	mv.Free[T](g)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncKSACarry, 10)
	}
	return out, nil
}

// Borrow computes the borrow-into-each-bit-position vector for a-b: bit i
// of the result is 1 iff subtracting b from a borrows into bit i (the
// final left shift by one is already applied here). The caller recovers
// the full difference as (a XOR b) XOR Borrow(a,b), which is how
// boolop.Sub builds it.
//
// The borrow network shares Carry's structure (generate/propagate folded
// through a Kogge-Stone prefix tree) but its propagate and generate terms
// are built from a's complement, and its per-round update uses one extra
// masked AND: g AND tmp is computed and XORed into g together with tmp,
// so g becomes g XOR tmp XOR (g AND tmp).
func Borrow[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkOperands(a, b, domerr.FuncKSABorrow); err != nil {
		return nil, err
	}
	aInv, err := notShares(a)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncKSABorrow, 3)
	}
	p, err := xorShares(aInv, b)
	if err != nil {
		mv.Free[T](aInv)
		return nil, domerr.Located(err, domerr.FuncKSABorrow, 4)
	}
	g, err := gadget.And[T](aInv, b, rng)
	mv.Free[T](aInv)
	if err != nil {
		mv.Free[T](p)
		return nil, domerr.Located(err, domerr.FuncKSABorrow, 5)
	}

	bits := uint(word.Bits[T]())
	for dist := uint(1); dist < bits; dist <<= 1 {
		pShift, err := shiftLeftShares(p, dist)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 6)
		}
		gShift, err := shiftLeftShares(g, dist)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 7)
		}

		tmp, err := gadget.And[T](p, gShift, rng)
		mv.Free[T](gShift)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 8)
		}

		gTmp, err := gadget.And[T](g, tmp, rng)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](g)
			mv.Free[T](pShift)
			mv.Free[T](tmp)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 9)
		}

		newG, err := xorShares(g, tmp)
		mv.Free[T](tmp)
		mv.Free[T](g)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](pShift)
			mv.Free[T](gTmp)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 10)
		}

		newG2, err := xorShares(newG, gTmp)
		mv.Free[T](newG)
		mv.Free[T](gTmp)
		if err != nil {
			mv.Free[T](p)
			mv.Free[T](pShift)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 11)
		}
		g = newG2

		newP, err := gadget.And[T](p, pShift, rng)
		mv.Free[T](pShift)
		mv.Free[T](p)
		if err != nil {
			mv.Free[T](g)
			return nil, domerr.Located(err, domerr.FuncKSABorrow, 12)
		}
		p = newP
	}
	mv.Free[T](p)

	out, err := shiftLeftShares(g, 1)
	mv.Free[T](g)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncKSABorrow, 13)
	}
	return out, nil
}
