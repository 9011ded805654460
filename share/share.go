// Package share implements the three masking primitives every higher-level
// gadget in this module is built from: Mask, Unmask, and Refresh.
package share

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

// Mask splits secret into order+1 shares in the given domain. The first
// order shares are drawn uniformly at random; the last is fixed so the
// shares combine (XOR in the boolean domain, sum mod 2^w in the
// arithmetic domain) back to secret.
func Mask[T word.Word](secret T, order uint8, domain mv.Domain, rng csprng.Source) (*mv.MV[T], error) {
	m, err := mv.Alloc[T](order, domain)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncMask, 0)
	}
	shares := m.Shares()
	acc := secret
	for i := 0; i < int(order); i++ {
		r, err := randWord[T](rng)
		if err != nil {
			mv.Free[T](m)
			return nil, domerr.New(domerr.CsprngFailed, domerr.FuncMask, uint16(i))
		}
		shares[i] = r
		switch domain {
		case mv.Boolean:
			acc ^= r
		case mv.Arithmetic:
			acc -= r
		default:
			mv.Free[T](m)
			return nil, domerr.New(domerr.InvalidValue, domerr.FuncMask, uint16(i))
		}
	}
	shares[order] = acc
	return m, nil
}

// MaskMany masks each element of secrets at the given order and domain.
func MaskMany[T word.Word](secrets []T, order uint8, domain mv.Domain, rng csprng.Source) ([]*mv.MV[T], error) {
	out := make([]*mv.MV[T], len(secrets))
	for i, s := range secrets {
		m, err := Mask[T](s, order, domain, rng)
		if err != nil {
			mv.FreeMany[T](out[:i])
			return nil, domerr.Located(err, domerr.FuncMaskMany, uint16(i))
		}
		out[i] = m
	}
	return out, nil
}

// Unmask recombines m's shares into the secret they carry.
func Unmask[T word.Word](m *mv.MV[T]) (T, error) {
	if m == nil {
		return 0, domerr.New(domerr.NullPointer, domerr.FuncUnmask, 0)
	}
	var acc T
	switch m.Domain() {
	case mv.Boolean:
		for _, s := range m.Shares() {
			acc ^= s
		}
	case mv.Arithmetic:
		for _, s := range m.Shares() {
			acc += s
		}
	default:
		return 0, domerr.New(domerr.InvalidValue, domerr.FuncUnmask, 0)
	}
	return acc, nil
}

// UnmaskMany unmasks each element of ms.
func UnmaskMany[T word.Word](ms []*mv.MV[T]) ([]T, error) {
	out := make([]T, len(ms))
	for i, m := range ms {
		v, err := Unmask[T](m)
		if err != nil {
			return nil, domerr.Located(err, domerr.FuncUnmaskMany, uint16(i))
		}
		out[i] = v
	}
	return out, nil
}

// Refresh re-randomizes m's shares without changing the secret they carry.
// For each of the order non-zero-indexed shares, an independent random value
// is drawn and folded into that share and share 0: XORed into both in the
// boolean domain, added to share i and subtracted from share 0 in the
// arithmetic domain. This is the standard O(d) mask-refresh construction
// and is what every DOM gadget in this module calls between a non-linear
// operation and its next use of an operand, per this library's refresh
// policy (see design notes).
func Refresh[T word.Word](m *mv.MV[T], rng csprng.Source) error {
	if m == nil {
		return domerr.New(domerr.NullPointer, domerr.FuncRefresh, 0)
	}
	shares := m.Shares()
	for i := 1; i < len(shares); i++ {
		r, err := randWord[T](rng)
		if err != nil {
			return domerr.New(domerr.CsprngFailed, domerr.FuncRefresh, uint16(i))
		}
		switch m.Domain() {
		case mv.Boolean:
			shares[0] ^= r
			shares[i] ^= r
		case mv.Arithmetic:
			shares[0] -= r
			shares[i] += r
		}
	}
	return nil
}

// RefreshMany refreshes every element of ms.
func RefreshMany[T word.Word](ms []*mv.MV[T], rng csprng.Source) error {
	for i, m := range ms {
		if err := Refresh[T](m, rng); err != nil {
			return domerr.Located(err, domerr.FuncRefreshMany, uint16(i))
		}
	}
	return nil
}
