// Package domtest collects the generators and harness helpers shared by
// this module's package-level test suites: canonical order/domain lists for
// the correctness-law tables of the specification, and small mask/unmask
// wrappers so behavioral specs don't each re-derive the same boilerplate
// around share.Mask/Unmask. It also carries a quick.Generator in the style
// of the teacher's open.State, for the rare property check that benefits
// from testing/quick driving the input space instead of a fixed table.
package domtest

import (
	"math/rand"
	"reflect"

	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
	"github.com/sidechannel/dom/word"
)

// Orders is the canonical set of masking orders this module's correctness
// tables are evaluated against: the minimum order, a handful of small
// orders, and the maximum.
func Orders() []uint8 {
	return []uint8{word.MinOrder, 2, 3, 6, 12, word.MaxOrder}
}

// Domains is both masking domains.
func Domains() []mv.Domain {
	return []mv.Domain{mv.Boolean, mv.Arithmetic}
}

// RandomSecret fills a T byte-by-byte from rnd, so every bit of a 64-bit
// secret gets exercised rather than just the low bits an Int63 truncation
// would give.
func RandomSecret[T word.Word](rnd *rand.Rand) T {
	var v uint64
	for i := 0; i < word.Bytes[T](); i++ {
		v = v<<8 | uint64(byte(rnd.Intn(256)))
	}
	return T(v)
}

// RandomOrder draws a masking order uniformly from [word.MinOrder, word.MaxOrder].
func RandomOrder(rnd *rand.Rand) uint8 {
	return word.MinOrder + uint8(rnd.Intn(word.MaxOrder-word.MinOrder+1))
}

// RandomDomain draws one of the two masking domains.
func RandomDomain(rnd *rand.Rand) mv.Domain {
	if rnd.Intn(2) == 0 {
		return mv.Boolean
	}
	return mv.Arithmetic
}

// MaskedCase is one property-test case: a secret to be masked at a given
// order and domain. It implements quick.Generator the way the teacher's
// open.State does for shamir.VerifiableShares, so testing/quick can drive
// the masking/unmasking law directly instead of a hand-rolled loop.
type MaskedCase[T word.Word] struct {
	Secret T
	Order  uint8
	Domain mv.Domain
}

// Generate implements testing/quick.Generator.
func (c MaskedCase[T]) Generate(rnd *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(MaskedCase[T]{
		Secret: RandomSecret[T](rnd),
		Order:  RandomOrder(rnd),
		Domain: RandomDomain(rnd),
	})
}

// Masker bundles an RNG and a domain so ginkgo specs can mask/unmask
// repeatedly without threading an rng and an error check through every
// table entry. Its Must* methods panic on error, which is appropriate only
// in test code that immediately wraps the call in a gomega Expect via
// closures, never in package code.
type Masker[T word.Word] struct {
	RNG    csprng.Source
	Domain mv.Domain
}

// MustMask masks secret at order and panics if masking fails.
func (m Masker[T]) MustMask(secret T, order uint8) *mv.MV[T] {
	v, err := share.Mask[T](secret, order, m.Domain, m.RNG)
	if err != nil {
		panic(err)
	}
	return v
}

// MustUnmask unmasks v and panics if unmasking fails.
func (m Masker[T]) MustUnmask(v *mv.MV[T]) T {
	got, err := share.Unmask[T](v)
	if err != nil {
		panic(err)
	}
	return got
}
