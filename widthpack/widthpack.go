// Package widthpack implements the width converters: packing several
// narrow masked values into one wide masked value lane-by-lane, and the
// inverse unpacking. Every share is copied with an explicit shift/mask
// pair, never through unsafe pointer reinterpretation, so the packing
// carries no alignment or endianness assumptions beyond the arithmetic
// itself.
package widthpack

import (
	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/word"
)

func checkPack[BLL, BLS word.Word](mvs []*mv.MV[BLS], ratio int, fn domerr.Func) error {
	if len(mvs) != ratio {
		return domerr.New(domerr.InvalidValue, fn, 0)
	}
	if word.Bits[BLL]() != ratio*word.Bits[BLS]() {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	for i, m := range mvs {
		if m == nil {
			return domerr.New(domerr.NullPointer, fn, uint16(2+i))
		}
	}
	sig, dom := mvs[0].Signature(), mvs[0].Domain()
	for i, m := range mvs[1:] {
		if m.Signature() != sig || m.Domain() != dom {
			return domerr.New(domerr.SigMismatch, fn, uint16(2+ratio+i))
		}
	}
	return nil
}

// pack interleaves ratio narrow masked values into one wide one, lane i of
// the output holding lane i of every input concatenated from the low
// operand (index 0) up through the high operand (index ratio-1), matching
// the reference implementation's s0 | s1<<dist | s2<<2*dist | ... layout.
func pack[BLL, BLS word.Word](mvs []*mv.MV[BLS], fn domerr.Func) (*mv.MV[BLL], error) {
	out, err := mv.Alloc[BLL](mvs[0].Order(), mvs[0].Domain())
	if err != nil {
		return nil, domerr.Located(err, fn, 3)
	}
	dist := uint(word.Bits[BLS]())
	shareCount := int(mvs[0].Order()) + 1
	for i := 0; i < shareCount; i++ {
		var v uint64
		for j := len(mvs) - 1; j >= 0; j-- {
			v = v<<dist | uint64(mvs[j].Shares()[i])
		}
		out.Shares()[i] = BLL(v)
	}
	return out, nil
}

func checkUnpack[BLL, BLS word.Word](m *mv.MV[BLL], ratio int, fn domerr.Func) error {
	if m == nil {
		return domerr.New(domerr.NullPointer, fn, 0)
	}
	if word.Bits[BLL]() != ratio*word.Bits[BLS]() {
		return domerr.New(domerr.InvalidValue, fn, 1)
	}
	return nil
}

// unpack splits one wide masked value into ratio narrow ones, the inverse
// of pack: lane i of output j holds bits [j*dist, (j+1)*dist) of lane i of
// the input.
func unpack[BLL, BLS word.Word](m *mv.MV[BLL], ratio int, fn domerr.Func) ([]*mv.MV[BLS], error) {
	outs, err := mv.AllocMany[BLS](m.Order(), m.Domain(), ratio)
	if err != nil {
		return nil, domerr.Located(err, fn, 2)
	}
	dist := uint(word.Bits[BLS]())
	mask := uint64(1)<<dist - 1
	shareCount := int(m.Order()) + 1
	for i := 0; i < shareCount; i++ {
		v := uint64(m.Shares()[i])
		for j := 0; j < ratio; j++ {
			outs[j].Shares()[i] = BLS(v & mask)
			v >>= dist
		}
	}
	return outs, nil
}

// Pack2to1 packs two masked values into one of twice the width, e.g. two
// uint32 masked values into one uint64 masked value.
func Pack2to1[BLL, BLS word.Word](mvs []*mv.MV[BLS]) (*mv.MV[BLL], error) {
	if err := checkPack[BLL](mvs, 2, domerr.FuncConvType2to1); err != nil {
		return nil, err
	}
	return pack[BLL](mvs, domerr.FuncConvType2to1)
}

// Unpack1to2 is the inverse of Pack2to1.
func Unpack1to2[BLL, BLS word.Word](m *mv.MV[BLL]) ([]*mv.MV[BLS], error) {
	if err := checkUnpack[BLL, BLS](m, 2, domerr.FuncConvType1to2); err != nil {
		return nil, err
	}
	return unpack[BLL, BLS](m, 2, domerr.FuncConvType1to2)
}

// Pack4to1 packs four masked values into one of four times the width, e.g.
// four uint16 masked values into one uint64 masked value.
func Pack4to1[BLL, BLS word.Word](mvs []*mv.MV[BLS]) (*mv.MV[BLL], error) {
	if err := checkPack[BLL](mvs, 4, domerr.FuncConvType4to1); err != nil {
		return nil, err
	}
	return pack[BLL](mvs, domerr.FuncConvType4to1)
}

// Unpack1to4 is the inverse of Pack4to1.
func Unpack1to4[BLL, BLS word.Word](m *mv.MV[BLL]) ([]*mv.MV[BLS], error) {
	if err := checkUnpack[BLL, BLS](m, 4, domerr.FuncConvType1to4); err != nil {
		return nil, err
	}
	return unpack[BLL, BLS](m, 4, domerr.FuncConvType1to4)
}

// Pack8to1 packs eight masked values into one of eight times the width,
// e.g. eight uint8 masked values into one uint64 masked value.
func Pack8to1[BLL, BLS word.Word](mvs []*mv.MV[BLS]) (*mv.MV[BLL], error) {
	if err := checkPack[BLL](mvs, 8, domerr.FuncConvType8to1); err != nil {
		return nil, err
	}
	return pack[BLL](mvs, domerr.FuncConvType8to1)
}

// Unpack1to8 is the inverse of Pack8to1.
func Unpack1to8[BLL, BLS word.Word](m *mv.MV[BLL]) ([]*mv.MV[BLS], error) {
	if err := checkUnpack[BLL, BLS](m, 8, domerr.FuncConvType1to8); err != nil {
		return nil, err
	}
	return unpack[BLL, BLS](m, 8, domerr.FuncConvType1to8)
}
