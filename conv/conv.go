// Package conv implements conversion between this module's two masking
// domains: ConvertAtoB (arithmetic to boolean, via a carry-save-adder
// tree plus a Kogge-Stone carry-propagate add) and ConvertBtoA (boolean
// to arithmetic, via Bettale et al.'s affine-psi recursion). Convert and
// ConvertMany dispatch to whichever direction a caller needs without the
// caller having to know the masked value's current domain.
package conv

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

// Convert produces a masked value in target domain carrying the same
// secret as m. If m is already in target domain, the result is a clone.
func Convert[T word.Word](m *mv.MV[T], target mv.Domain, rng csprng.Source) (*mv.MV[T], error) {
	if m == nil {
		return nil, domerr.New(domerr.NullPointer, domerr.FuncConv, 0)
	}
	switch target {
	case mv.Boolean:
		return ConvertAtoB[T](m, rng)
	case mv.Arithmetic:
		return ConvertBtoA[T](m, rng)
	default:
		return nil, domerr.New(domerr.InvalidValue, domerr.FuncConv, 1)
	}
}

// ConvertMany converts every element of ms into target. All elements must
// share the same signature (order and word width); a batch mixing
// signatures is rejected before any conversion is attempted.
func ConvertMany[T word.Word](ms []*mv.MV[T], target mv.Domain, rng csprng.Source) ([]*mv.MV[T], error) {
	if len(ms) == 0 {
		return nil, nil
	}
	if ms[0] == nil {
		return nil, domerr.New(domerr.NullPointer, domerr.FuncConvMany, 0)
	}
	sig := ms[0].Signature()
	for i, m := range ms[1:] {
		if m == nil {
			return nil, domerr.New(domerr.NullPointer, domerr.FuncConvMany, uint16(i+1))
		}
		if m.Signature() != sig {
			return nil, domerr.New(domerr.SigMismatch, domerr.FuncConvMany, uint16(i+1))
		}
	}

	out := make([]*mv.MV[T], len(ms))
	for i, m := range ms {
		c, err := Convert[T](m, target, rng)
		if err != nil {
			mv.FreeMany[T](out[:i])
			return nil, domerr.Located(err, domerr.FuncConvMany, uint16(i))
		}
		out[i] = c
	}
	return out, nil
}
