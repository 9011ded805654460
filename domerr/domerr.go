// Package domerr implements the error model described for this library: a
// small taxonomy of failure kinds, a dense per-operation function-id enum,
// and a 32-bit packed wire form for interop with callers that track errors
// by code rather than by Go's error interface.
package domerr

import (
	"fmt"
)

// Kind is the taxonomy of failures a masked-value operation can report.
type Kind uint8

const (
	// OK is the zero value; no package in this module ever returns it
	// wrapped in a *Code, since a nil error is used for success instead.
	OK Kind = iota
	OutOfMemory
	NullPointer
	InvalidValue
	CsprngFailed
	SigMismatch
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "no error"
	case OutOfMemory:
		return "out of memory"
	case NullPointer:
		return "null pointer"
	case InvalidValue:
		return "invalid value"
	case CsprngFailed:
		return "csprng failed"
	case SigMismatch:
		return "signature mismatch"
	default:
		return "unknown error"
	}
}

// Func identifies the public operation that produced an error. The grouping
// by hex nibble mirrors the reference implementation's func_id_t, which
// groups singular utilities (0x0), plural/batch utilities (0x1), converters
// (0x2), boolean math (0x3), arithmetic math (0x4), and comparators/
// selectors (0x5).
type Func uint8

const (
	FuncFree Func = 0x00 + iota
	FuncClear
	FuncAlloc
	FuncMask
	FuncUnmask
	FuncRefresh
	FuncClone
)

const (
	FuncFreeMany Func = 0x10 + iota
	FuncClearMany
	FuncAllocMany
	FuncMaskMany
	FuncUnmaskMany
	FuncRefreshMany
	FuncCloneMany
)

const (
	FuncConv Func = 0x20 + iota
	FuncConvMany
	FuncConvBtoA
	FuncConvAtoB
	FuncConvType2to1
	FuncConvType1to2
	FuncConvType4to1
	FuncConvType1to4
	FuncConvType8to1
	FuncConvType1to8
)

const (
	FuncKSACarry Func = 0x30 + iota
	FuncKSABorrow
	FuncBoolAnd
	FuncBoolOr
	FuncBoolXor
	FuncBoolNot
	FuncBoolShr
	FuncBoolShl
	FuncBoolRotr
	FuncBoolRotl
	FuncBoolAdd
	FuncBoolSub
)

const (
	FuncArithAdd Func = 0x40 + iota
	FuncArithSub
	FuncArithMult
)

const (
	FuncCmpLt Func = 0x50 + iota
	FuncCmpLe
	FuncCmpGt
	FuncCmpGe
	FuncSelect
	FuncSelectLt
	FuncSelectLe
	FuncSelectGt
	FuncSelectGe
)

var funcNames = map[Func]string{
	FuncFree: "free", FuncClear: "clear", FuncAlloc: "alloc",
	FuncMask: "mask", FuncUnmask: "unmask", FuncRefresh: "refresh", FuncClone: "clone",
	FuncFreeMany: "free_many", FuncClearMany: "clear_many", FuncAllocMany: "alloc_many",
	FuncMaskMany: "mask_many", FuncUnmaskMany: "unmask_many",
	FuncRefreshMany: "refresh_many", FuncCloneMany: "clone_many",
	FuncConv: "conv", FuncConvMany: "conv_many", FuncConvBtoA: "conv_btoa", FuncConvAtoB: "conv_atob",
	FuncConvType2to1: "conv_type_2to1", FuncConvType1to2: "conv_type_1to2",
	FuncConvType4to1: "conv_type_4to1", FuncConvType1to4: "conv_type_1to4",
	FuncConvType8to1: "conv_type_8to1", FuncConvType1to8: "conv_type_1to8",
	FuncKSACarry: "ksa_carry", FuncKSABorrow: "ksa_borrow",
	FuncBoolAnd: "bool_and", FuncBoolOr: "bool_or", FuncBoolXor: "bool_xor", FuncBoolNot: "bool_not",
	FuncBoolShr: "bool_shr", FuncBoolShl: "bool_shl", FuncBoolRotr: "bool_rotr", FuncBoolRotl: "bool_rotl",
	FuncBoolAdd: "bool_add", FuncBoolSub: "bool_sub",
	FuncArithAdd: "arith_add", FuncArithSub: "arith_sub", FuncArithMult: "arith_mult",
	FuncCmpLt: "cmp_lt", FuncCmpLe: "cmp_le", FuncCmpGt: "cmp_gt", FuncCmpGe: "cmp_ge",
	FuncSelect: "select", FuncSelectLt: "select_lt", FuncSelectLe: "select_le",
	FuncSelectGt: "select_gt", FuncSelectGe: "select_ge",
}

func (f Func) String() string {
	if s, ok := funcNames[f]; ok {
		return s
	}
	return "unknown function"
}

// Code is a masked-value operation error. It satisfies the standard error
// interface and additionally exposes the packed 32-bit wire form described
// in §6/§7 of this library's specification: byte 3 (MSB) is the Kind, byte
// 2 is the Func, and bytes 0-1 are a small call-site number chosen by the
// function that raised or re-stamped the error. Site numbers are local to
// each function and are reused across functions and files, so they are not
// unique within a file; a site is only meaningful together with Func.
type Code struct {
	Kind Kind
	Func Func
	Site uint16
}

// New constructs a Code for the given kind, function, and call site.
func New(kind Kind, fn Func, site uint16) *Code {
	return &Code{Kind: kind, Func: fn, Site: site}
}

// Located re-stamps the function and call site of an existing error while
// preserving its Kind, so the final error identifies the innermost failure
// site. If err is not a *Code, it is wrapped by fmt.Errorf with the
// function name and site prefixed and the original error preserved via %w;
// no Kind is attached in that case.
func Located(err error, fn Func, site uint16) error {
	if err == nil {
		return nil
	}
	var c *Code
	if asCode(err, &c) {
		return &Code{Kind: c.Kind, Func: fn, Site: site}
	}
	return fmt.Errorf("%s at site 0x%04X: %w", fn, site, err)
}

func asCode(err error, out **Code) bool {
	c, ok := err.(*Code)
	if ok {
		*out = c
	}
	return ok
}

func (c *Code) Error() string {
	return fmt.Sprintf("dom error: %s (code 0x%02X) in function %s (id 0x%02X) at site 0x%04X",
		c.Kind, uint8(c.Kind), c.Func, uint8(c.Func), c.Site)
}

// Pack encodes the error into the 32-bit wire form: kind<<24 | func<<16 | site.
func (c *Code) Pack() uint32 {
	return uint32(c.Kind)<<24 | uint32(c.Func)<<16 | uint32(c.Site)
}

// Unpack decodes a 32-bit wire value into a Code. A wire value of 0 decodes
// to a Code with Kind == OK, mirroring DOM_OK == 0 in the reference
// implementation.
func Unpack(wire uint32) *Code {
	return &Code{
		Kind: Kind(wire >> 24),
		Func: Func(wire >> 16),
		Site: uint16(wire),
	}
}
