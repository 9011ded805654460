// Package gadget implements the DOM-indep non-linear gadget of Gross et al.
// (CHES 2016, "Domain-Oriented Masking"), instantiated once for the
// boolean domain (AND) and once for the arithmetic domain (multiply).
// Every other non-linear operation in this module (bool_and, arith_mult,
// and the comparator/selector gadgets built on them) is expressed in terms
// of these two functions.
package gadget

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
	"github.com/sidechannel/dom/word"
)

func checkOperands[T word.Word](a, b *mv.MV[T], domain mv.Domain, fn domerr.Func) error {
	if a == nil || b == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if a.Domain() != domain || b.Domain() != domain {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	if a.Signature() != b.Signature() {
		return domerr.New(domerr.SigMismatch, fn, 2)
	}
	return nil
}

// And computes the DOM-indep AND gadget over two boolean-domain masked
// values of equal order, producing a fresh boolean-domain masked value.
//
// For every pair i < j of share indices, one random value r blinds the
// cross term (a_i & b_j) before it is folded into z_i, and the same r
// cancels when a_j & b_i is folded into z_j: each output share z_i depends
// only on a_i, the shares of b, and randomness, and every cross term is
// blinded before it is folded in. This is the defining property of a
// domain-oriented gadget and is what makes the construction's security
// order equal to its masking order.
func And[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkOperands(a, b, mv.Boolean, domerr.FuncBoolAnd); err != nil {
		return nil, err
	}
	z, err := nonlinear(a, b, mv.Boolean, rng, domerr.FuncBoolAnd)
	if err != nil {
		return nil, err
	}
	return z, nil
}

// Mult computes the DOM-indep multiply gadget over two arithmetic-domain
// masked values of equal order, producing a fresh arithmetic-domain masked
// value. The construction is identical to And, with AND replaced by
// multiplication mod 2^w and XOR replaced by addition mod 2^w.
func Mult[T word.Word](a, b *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if err := checkOperands(a, b, mv.Arithmetic, domerr.FuncArithMult); err != nil {
		return nil, err
	}
	z, err := nonlinear(a, b, mv.Arithmetic, rng, domerr.FuncArithMult)
	if err != nil {
		return nil, err
	}
	return z, nil
}

func nonlinear[T word.Word](a, b *mv.MV[T], domain mv.Domain, rng csprng.Source, fn domerr.Func) (*mv.MV[T], error) {
	order := a.Order()
	z, err := mv.Alloc[T](order, domain)
	if err != nil {
		return nil, domerr.Located(err, fn, 3)
	}
	as, bs := a.Shares(), b.Shares()
	zs := z.Shares()
	n := int(order) + 1

	for i := 0; i < n; i++ {
		zs[i] = combine(domain, as[i], bs[i])
	}

	buf := make([]byte, word.Bytes[T]())
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := rng.Read(buf); err != nil {
				mv.Free[T](z)
				return nil, domerr.New(domerr.CsprngFailed, fn, uint16(i*n+j))
			}
			var r T
			for _, byt := range buf {
				r = (r << 8) | T(byt)
			}

			termI := combine(domain, as[i], bs[j])
			termJ := combine(domain, as[j], bs[i])

			zs[i] = xorOrAdd(domain, zs[i], xorOrAdd(domain, termI, r))
			zs[j] = xorOrAdd(domain, zs[j], unblind(domain, termJ, r))
		}
	}

	// A final full refresh mixes the pairwise-blinded output shares once
	// more before they are ever used as an operand themselves, so a
	// subsequent gadget call never reuses the exact same share values an
	// adversary could have probed here.
	if err := share.Refresh[T](z, rng); err != nil {
		mv.Free[T](z)
		return nil, domerr.Located(err, fn, 11)
	}
	return z, nil
}

func combine[T word.Word](domain mv.Domain, x, y T) T {
	if domain == mv.Boolean {
		return x & y
	}
	return x * y
}

func xorOrAdd[T word.Word](domain mv.Domain, x, y T) T {
	if domain == mv.Boolean {
		return x ^ y
	}
	return x + y
}

// unblind computes the partner share's addend from the blinded cross-term
// sum and the randomizer applied to the other share of the pair, such that
// the randomizer cancels when the pair's two contributions are later
// combined. XOR is its own inverse, so the boolean domain blinds and
// unblinds with the same operation; the arithmetic domain needs the
// additive inverse instead.
func unblind[T word.Word](domain mv.Domain, crossSum, r T) T {
	if domain == mv.Boolean {
		return crossSum ^ r
	}
	return crossSum - r
}
