// Package mv implements the masked-value lifecycle: allocation, cloning,
// clearing, and secure release of the d+1 shares backing a single masked
// integer. Every other package in this module operates on *MV[T] values
// produced here.
package mv

import (
	"runtime"

	"github.com/sidechannel/dom/domerr"
	"github.com/sidechannel/dom/word"
)

// Domain identifies which of the two masking domains a masked value's
// shares combine under.
type Domain uint8

const (
	// Boolean shares combine by XOR.
	Boolean Domain = iota
	// Arithmetic shares combine by addition modulo 2^w.
	Arithmetic
)

func (d Domain) String() string {
	switch d {
	case Boolean:
		return "boolean"
	case Arithmetic:
		return "arithmetic"
	default:
		return "unknown domain"
	}
}

// widthTag packs a word width into the low byte of a Signature.
func widthTag[T word.Word]() uint8 {
	switch word.Bits[T]() {
	case 8:
		return 0
	case 16:
		return 1
	case 32:
		return 2
	case 64:
		return 3
	default:
		return 0xff
	}
}

// MV is a masked value: order+1 shares of a single secret word, all living
// in the same domain. The zero value is not valid; construct one with
// Alloc.
type MV[T word.Word] struct {
	shares []T
	order  uint8
	domain Domain
}

// Order returns the masking order d; the value is carried by d+1 shares.
func (m *MV[T]) Order() uint8 { return m.order }

// Domain returns which domain this masked value's shares combine under.
func (m *MV[T]) Domain() Domain { return m.domain }

// Shares exposes the underlying share slice for read/write access by the
// packages implementing masking primitives and gadgets. Callers outside
// this module should not depend on share ordering beyond what §3 of the
// specification documents: shares[0..d] XOR (or sum, in the arithmetic
// domain) to the secret.
func (m *MV[T]) Shares() []T { return m.shares }

// Signature packs the order and word width into a single comparable value,
// used to reject mismatched operands before any computation begins.
func (m *MV[T]) Signature() uint16 {
	return uint16(m.order)<<8 | uint16(widthTag[T]())
}

func validateOrder(order uint8, fn domerr.Func, site uint16) error {
	if order < word.MinOrder || order > word.MaxOrder {
		return domerr.New(domerr.InvalidValue, fn, site)
	}
	return nil
}

func validateDomain(domain Domain, fn domerr.Func, site uint16) error {
	if domain != Boolean && domain != Arithmetic {
		return domerr.New(domerr.InvalidValue, fn, site)
	}
	return nil
}

// Alloc allocates a fresh masked value of the given order and domain, with
// all shares zeroed. The caller must Mask it (see package share) before
// the value is meaningful.
func Alloc[T word.Word](order uint8, domain Domain) (*MV[T], error) {
	if err := validateOrder(order, domerr.FuncAlloc, 0); err != nil {
		return nil, err
	}
	if err := validateDomain(domain, domerr.FuncAlloc, 1); err != nil {
		return nil, err
	}
	m := &MV[T]{
		shares: make([]T, int(order)+1),
		order:  order,
		domain: domain,
	}
	tryMlock(m.shares)
	return m, nil
}

// AllocMany allocates n masked values of the given order and domain.
func AllocMany[T word.Word](order uint8, domain Domain, n int) ([]*MV[T], error) {
	if n < 0 {
		return nil, domerr.New(domerr.InvalidValue, domerr.FuncAllocMany, 0)
	}
	out := make([]*MV[T], n)
	for i := 0; i < n; i++ {
		m, err := Alloc[T](order, domain)
		if err != nil {
			FreeMany(out[:i])
			return nil, domerr.Located(err, domerr.FuncAllocMany, uint16(i))
		}
		out[i] = m
	}
	return out, nil
}

// Clone allocates a new masked value and deep-copies src's shares into it.
func Clone[T word.Word](src *MV[T]) (*MV[T], error) {
	if src == nil {
		return nil, domerr.New(domerr.NullPointer, domerr.FuncClone, 0)
	}
	dst, err := Alloc[T](src.order, src.domain)
	if err != nil {
		return nil, domerr.Located(err, domerr.FuncClone, 1)
	}
	copy(dst.shares, src.shares)
	return dst, nil
}

// CloneMany clones every element of src.
func CloneMany[T word.Word](src []*MV[T]) ([]*MV[T], error) {
	out := make([]*MV[T], len(src))
	for i, s := range src {
		c, err := Clone[T](s)
		if err != nil {
			FreeMany(out[:i])
			return nil, domerr.Located(err, domerr.FuncCloneMany, uint16(i))
		}
		out[i] = c
	}
	return out, nil
}

// secureZero overwrites s with zeros in a way the compiler cannot elide,
// then hands the slice to runtime.KeepAlive so the zeroing store is not
// proven dead and removed by escape analysis or inlining. This is this
// module's equivalent of the reference implementation's volatile-qualified
// write loop.
func secureZero[T word.Word](s []T) {
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(s)
}

// Clear zeroes m's shares in place. m remains allocated at the same order
// and domain and can be reused by a subsequent Mask.
func Clear[T word.Word](m *MV[T]) error {
	if m == nil {
		return domerr.New(domerr.NullPointer, domerr.FuncClear, 0)
	}
	secureZero(m.shares)
	return nil
}

// ClearMany clears every element of ms.
func ClearMany[T word.Word](ms []*MV[T]) error {
	for i, m := range ms {
		if err := Clear[T](m); err != nil {
			return domerr.Located(err, domerr.FuncClearMany, uint16(i))
		}
	}
	return nil
}

// Free securely zeroes m's shares, releases any locked-memory pin taken at
// Alloc, and drops m's reference to its backing array so the garbage
// collector can reclaim it. m must not be used after Free returns.
func Free[T word.Word](m *MV[T]) error {
	if m == nil {
		return nil
	}
	secureZero(m.shares)
	tryMunlock(m.shares)
	m.shares = nil
	m.order = 0
	return nil
}

// FreeMany frees every non-nil element of ms.
func FreeMany[T word.Word](ms []*MV[T]) {
	for _, m := range ms {
		_ = Free[T](m)
	}
}
