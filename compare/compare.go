// Package compare implements the masked comparators and selectors this
// module exposes: Lt/Le/Gt/Ge produce a masked boolean truth value (or,
// with fullMask, an all-bits mask) from two operands, and Select/
// SelectLt/SelectLe/SelectGt/SelectGe pick between two masked operands
// without ever branching on unmasked data.
package compare

import (
	"github.com/sidechannel/dom/boolop"
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
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

// Lt computes whether a < b (unsigned) as a masked boolean value, using
// the overflow-detection identity for unsigned subtraction:
//
//	lt = ((a ^ ((a^b) | ((a-b)^b))) >> (w-1)) & 1
//
// When fullMask is true the single truth bit is expanded to an all-ones
// (true) or all-zeros (false) mask spanning the whole word, suitable for
// feeding into Select; otherwise the result's only meaningful bit is its
// least-significant one.
func Lt[T word.Word](a, b *mv.MV[T], fullMask bool, rng csprng.Source) (*mv.MV[T], error) {
	if err := checkPair(a, b, domerr.FuncCmpLt); err != nil {
		return nil, err
	}

	diff, err := boolop.Sub[T](a, b, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 3)
	}
	defer mv.Free[T](diff)

	t0, err := boolop.Xor[T](a, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 4)
	}
	defer mv.Free[T](t0)

	t1, err := boolop.Xor[T](diff, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 5)
	}
	defer mv.Free[T](t1)

	t2, err := boolop.Or[T](t0, t1, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 6)
	}
	defer mv.Free[T](t2)

	t3, err := boolop.Xor[T](a, t2)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 7)
	}

	bits := uint(word.Bits[T]())
	shifted, err := boolop.Shr[T](t3, bits-1)
	mv.Free[T](t3)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLt, 8)
	}

	if fullMask {
		one, err := share.Mask[T](1, a.Order(), mv.Boolean, rng)
		if err != nil {
			mv.Free[T](shifted)
			return nil, domerr.Located(err, domerr.FuncCmpLt, 9)
		}
		minusOne, err := boolop.Sub[T](shifted, one, rng)
		mv.Free[T](one)
		mv.Free[T](shifted)
		if err != nil {
			return nil, domerr.Located(err, domerr.FuncCmpLt, 10)
		}
		out, err := boolop.Not[T](minusOne)
		mv.Free[T](minusOne)
		if err != nil {
			return nil, domerr.Located(err, domerr.FuncCmpLt, 11)
		}
		shifted = out
	}

	if err := share.Refresh[T](shifted, rng); err != nil {
		mv.Free[T](shifted)
		return nil, domerr.Located(err, domerr.FuncCmpLt, 12)
	}
	return shifted, nil
}

// flipSingleShare XORs a constant into out's lowest-index share, which
// flips the logical boolean value the shares combine to without touching
// any other share. This is how Le/Ge invert Lt's result in place.
func flipSingleShare[T word.Word](out *mv.MV[T], fullMask bool) {
	var mask T
	if fullMask {
		mask = ^mask
	} else {
		mask = 1
	}
	out.Shares()[0] ^= mask
}

// Le computes whether a <= b (unsigned) as NOT(b < a).
func Le[T word.Word](a, b *mv.MV[T], fullMask bool, rng csprng.Source) (*mv.MV[T], error) {
	out, err := Lt[T](b, a, fullMask, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpLe, 0)
	}
	flipSingleShare(out, fullMask)
	return out, nil
}

// Gt computes whether a > b (unsigned) as b < a.
func Gt[T word.Word](a, b *mv.MV[T], fullMask bool, rng csprng.Source) (*mv.MV[T], error) {
	out, err := Lt[T](b, a, fullMask, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpGt, 0)
	}
	return out, nil
}

// Ge computes whether a >= b (unsigned) as NOT(a < b).
func Ge[T word.Word](a, b *mv.MV[T], fullMask bool, rng csprng.Source) (*mv.MV[T], error) {
	out, err := Lt[T](a, b, fullMask, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncCmpGe, 0)
	}
	flipSingleShare(out, fullMask)
	return out, nil
}

func checkSelect[T word.Word](a, b, mask *mv.MV[T], fn domerr.Func) error {
	if a == nil || b == nil || mask == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if a.Domain() != mv.Boolean || b.Domain() != mv.Boolean || mask.Domain() != mv.Boolean {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	if a.Signature() != b.Signature() || a.Signature() != mask.Signature() {
		return domerr.New(domerr.SigMismatch, fn, 2)
	}
	return nil
}

// Select picks between a and b according to mask: where mask's bits are
// all ones the result takes a's bits, where mask's bits are all zero the
// result takes b's bits. It is computed as b XOR (mask AND (a XOR b)), a
// branchless multiplexer that never inspects mask in the clear.
func Select[T word.Word](a, b, mask *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkSelect(a, b, mask, domerr.FuncSelect); err != nil {
		return nil, err
	}
	t0, err := boolop.Xor[T](a, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncSelect, 3)
	}
	defer mv.Free[T](t0)

	t1, err := boolop.And[T](mask, t0, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncSelect, 4)
	}
	defer mv.Free[T](t1)

	out, err := boolop.Xor[T](t1, b)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncSelect, 5)
	}
	if err := share.Refresh[T](out, rng); err != nil {
		mv.Free[T](out)
		return nil, domerr.Located(err, domerr.FuncSelect, 6)
	}
	return out, nil
}

type cmpFunc[T word.Word] func(a, b *mv.MV[T], fullMask bool, rng csprng.Source) (*mv.MV[T], error)

func selectByCmp[T word.Word](cmp cmpFunc[T], aCmp, bCmp, truthSel, falseSel *mv.MV[T], rng csprng.Source, fn domerr.Func) (*mv.MV[T], error) {
	mask, err := cmp(aCmp, bCmp, true, rng)
	if err != nil {
		return nil, domerr.Located(err, fn, 0)
	}
	defer mv.Free[T](mask)
	out, err := Select[T](truthSel, falseSel, mask, rng)
	if err != nil {
		return nil, domerr.Located(err, fn, 1)
	}
	return out, nil
}

// SelectLt returns truthSel if aCmp < bCmp, else falseSel.
func SelectLt[T word.Word](aCmp, bCmp, truthSel, falseSel *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	return selectByCmp(Lt[T], aCmp, bCmp, truthSel, falseSel, rng, domerr.FuncSelectLt)
}

// SelectLe returns truthSel if aCmp <= bCmp, else falseSel.
func SelectLe[T word.Word](aCmp, bCmp, truthSel, falseSel *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	return selectByCmp(Le[T], aCmp, bCmp, truthSel, falseSel, rng, domerr.FuncSelectLe)
}

// SelectGt returns truthSel if aCmp > bCmp, else falseSel.
func SelectGt[T word.Word](aCmp, bCmp, truthSel, falseSel *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	return selectByCmp(Gt[T], aCmp, bCmp, truthSel, falseSel, rng, domerr.FuncSelectGt)
}

// SelectGe returns truthSel if aCmp >= bCmp, else falseSel.
func SelectGe[T word.Word](aCmp, bCmp, truthSel, falseSel *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	return selectByCmp(Ge[T], aCmp, bCmp, truthSel, falseSel, rng, domerr.FuncSelectGe)
}
