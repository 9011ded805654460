package conv

import (
	"github.com/sidechannel/dom/boolop"
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/ksa"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
	"github.com/sidechannel/dom/word"
)

// csa is a single carry-save full-adder step over three boolean-domain
// masked values: sum = x XOR y XOR z, carry = majority(x, y, z) shifted
// left by one bit. majority(x, y, z) is computed as x XOR ((x XOR y) AND
// (x XOR z)), the standard majority-from-XOR-and-AND identity.
func csa[T word.Word](x, y, z *mv.MV[T], rng csprng.Source) (sum, carry *mv.MV[T], err error) {
	a, err := boolop.Xor[T](x, y)
	if err != nil {
		return nil, nil, err
	}
	defer mv.Free[T](a)

	sum, err = boolop.Xor[T](a, z)
	if err != nil {
		return nil, nil, err
	}

	w, err := boolop.Xor[T](x, z)
	if err != nil {
		mv.Free[T](sum)
		return nil, nil, err
	}
	defer mv.Free[T](w)

	v, err := boolop.And[T](a, w, rng)
	if err != nil {
		mv.Free[T](sum)
		return nil, nil, err
	}
	defer mv.Free[T](v)

	c, err := boolop.Xor[T](x, v)
	if err != nil {
		mv.Free[T](sum)
		return nil, nil, err
	}
	carry, err = boolop.Shl[T](c, 1)
	mv.Free[T](c)
	if err != nil {
		mv.Free[T](sum)
		return nil, nil, err
	}
	return sum, carry, nil
}

// csaTree reduces vals (len(vals) >= 3 operands) to a single (sum, carry)
// pair by folding operands into a running carry-save compression one at a
// time, starting from a three-operand base case. This mirrors the
// reference recursion rather than a balanced tree: each fold only ever
// needs the previous (sum, carry) pair and the next raw operand.
func csaTree[T word.Word](vals []*mv.MV[T], rng csprng.Source) (sum, carry *mv.MV[T], err error) {
	if len(vals) == 3 {
		return csa[T](vals[0], vals[1], vals[2], rng)
	}
	s, c, err := csaTree[T](vals[:len(vals)-1], rng)
	if err != nil {
		return nil, nil, err
	}
	sum, carry, err = csa[T](s, c, vals[len(vals)-1], rng)
	mv.Free[T](s)
	mv.Free[T](c)
	if err != nil {
		return nil, nil, err
	}
	return sum, carry, nil
}

// ConvertAtoB converts an arithmetic-domain masked value into a boolean-
// domain masked value of the same order, following the recursive
// carry-save-adder plus Kogge-Stone approach of Liu et al., "A Low-Latency
// High-Order Arithmetic to Boolean Masking Conversion" (2024).
//
// Each of the d+1 arithmetic shares is re-masked as its own fresh
// boolean-domain secret; those d+1 boolean-masked numbers are then summed
// with a masked binary adder network (a carry-save-adder tree collapsing
// them to two operands, then a single Kogge-Stone carry-propagate add)
// entirely without ever reconstructing an arithmetic share in the clear.
func ConvertAtoB[T word.Word](m *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if m == nil {
		return nil, domerr.New(domerr.NullPointer, domerr.FuncConvAtoB, 0)
	}
	if m.Domain() == mv.Boolean {
		return mv.Clone[T](m)
	}

	order := m.Order()
	n := int(order) + 1
	vals := make([]*mv.MV[T], n)
	for i, a := range m.Shares() {
		v, err := share.Mask[T](a, order, mv.Boolean, rng)
		if err != nil {
			mv.FreeMany[T](vals[:i])
			return nil, domerr.Located(err, domerr.FuncConvAtoB, uint16(i+1))
		}
		vals[i] = v
	}

	var sRes, cRes *mv.MV[T]
	var err error
	if n == 2 {
		sRes, cRes = vals[0], vals[1]
	} else {
		sRes, cRes, err = csaTree[T](vals, rng)
		if err != nil {
			mv.FreeMany[T](vals)
			return nil, domerr.Located(err, domerr.FuncConvAtoB, 100)
		}
	}

	kOut, err := ksa.Carry[T](sRes, cRes, rng)
	if err != nil {
		if n != 2 {
			mv.Free[T](sRes)
			mv.Free[T](cRes)
		}
		mv.FreeMany[T](vals)
		return nil, domerr.Located(err, domerr.FuncConvAtoB, 101)
	}

	tmp, err := boolop.Xor[T](sRes, kOut)
	mv.Free[T](kOut)
	if err != nil {
		if n != 2 {
			mv.Free[T](sRes)
			mv.Free[T](cRes)
		}
		mv.FreeMany[T](vals)
		return nil, domerr.Located(err, domerr.FuncConvAtoB, 102)
	}

	out, err := boolop.Xor[T](cRes, tmp)
	mv.Free[T](tmp)
	if n != 2 {
		mv.Free[T](sRes)
		mv.Free[T](cRes)
	}
	mv.FreeMany[T](vals)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncConvAtoB, 103)
	}
	return out, nil
}
