package conv

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

// psi is the affine map at the heart of Bettale et al.'s boolean-to-
// arithmetic conversion: psi(masked, mask) = (masked XOR mask) - mask.
func psi[T word.Word](masked, mask T) T {
	return (masked ^ mask) - mask
}

func randWord[T word.Word](rng csprng.Source) (T, error) {
	buf := make([]byte, word.Bytes[T]())
	if err := rng.Read(buf); err != nil {
		return 0, err
	}
	var v T
	for _, b := range buf {
		v = (v << 8) | T(b)
	}
	return v, nil
}

// convertRec is the recursive affine-psi decomposition of Bettale et al.,
// "Improved High-Order Conversion From Boolean to Arithmetic Masking"
// (2018). Given n+1 values whose XOR is some secret x, it returns n
// values whose sum mod 2^w is also x. It operates on plain scalars
// rather than masked values because the shares being converted are
// themselves the "secret" of this sub-algorithm; wrapping them in another
// layer of masking here would not add security, only recursion depth.
func convertRec[T word.Word](x []T, rng csprng.Source) ([]T, error) {
	n := len(x) - 1
	if n == 1 {
		return []T{x[0] ^ x[1]}, nil
	}

	rnd := make([]T, n)
	for i := range rnd {
		r, err := randWord[T](rng)
		if err != nil {
			return nil, err
		}
		rnd[i] = r
	}

	xMut := append([]T(nil), x...)
	for i := 1; i <= n; i++ {
		r := rnd[i-1]
		xMut[i] ^= r
		xMut[0] ^= r
	}

	y := make([]T, n)
	var firstTerm T
	if (n-1)&1 == 1 {
		firstTerm = xMut[0]
	}
	y[0] = firstTerm ^ psi(xMut[0], xMut[1])
	for i := 1; i < n; i++ {
		y[i] = psi(xMut[0], xMut[i+1])
	}

	first, err := convertRec[T](xMut[1:], rng)
	if err != nil {
		return nil, err
	}
	second, err := convertRec[T](y, rng)
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	for i := 0; i < n-2; i++ {
		out[i] = first[i] + second[i]
	}
	out[n-2] = first[n-2]
	out[n-1] = second[n-2]
	return out, nil
}

// ConvertBtoA converts a boolean-domain masked value into an arithmetic-
// domain masked value of the same order, following Bettale et al.'s
// affine-psi recursive decomposition.
func ConvertBtoA[T word.Word](m *mv.MV[T], rng csprng.Source) (*mv.MV[T], error) {
	if m == nil {
		return nil, domerr.New(domerr.NullPointer, domerr.FuncConvBtoA, 0)
	}
	if m.Domain() == mv.Arithmetic {
		return mv.Clone[T](m)
	}

	order := m.Order()
	if order < word.MinOrder {
		return nil, domerr.New(domerr.InvalidValue, domerr.FuncConvBtoA, 1)
	}
	n := int(order) + 1
	tmp := make([]T, n+1)
	copy(tmp, m.Shares())
	tmp[n] = 0

	res, err := convertRec[T](tmp, rng)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncConvBtoA, 2)
	}

	out, err := mv.Alloc[T](order, mv.Arithmetic)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncConvBtoA, 3)
	}
	copy(out.Shares(), res)
	return out, nil
}
