package compare_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/compare"
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
)

var _ = Describe("Comparators", func() {
	var rng *csprng.DRBG

	BeforeEach(func() {
		var err error
		rng, err = csprng.New()
		Expect(err).NotTo(HaveOccurred())
	})

	mask := func(x uint32, order uint8) *mv.MV[uint32] {
		m, err := share.Mask[uint32](x, order, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())
		return m
	}
	unmask := func(m *mv.MV[uint32]) uint32 {
		v, err := share.Unmask[uint32](m)
		Expect(err).NotTo(HaveOccurred())
		return v
	}

	DescribeTable("Lt/Le/Gt/Ge with fullMask agree with unsigned plaintext comparisons",
		func(x, y uint32, order uint8) {
			a, b := mask(x, order), mask(y, order)

			lt, err := compare.Lt[uint32](a, b, true, rng)
			Expect(err).NotTo(HaveOccurred())
			wantLt := uint32(0)
			if x < y {
				wantLt = ^uint32(0)
			}
			Expect(unmask(lt)).To(Equal(wantLt))

			le, err := compare.Le[uint32](a, b, true, rng)
			Expect(err).NotTo(HaveOccurred())
			wantLe := uint32(0)
			if x <= y {
				wantLe = ^uint32(0)
			}
			Expect(unmask(le)).To(Equal(wantLe))

			gt, err := compare.Gt[uint32](a, b, true, rng)
			Expect(err).NotTo(HaveOccurred())
			wantGt := uint32(0)
			if x > y {
				wantGt = ^uint32(0)
			}
			Expect(unmask(gt)).To(Equal(wantGt))

			ge, err := compare.Ge[uint32](a, b, true, rng)
			Expect(err).NotTo(HaveOccurred())
			wantGe := uint32(0)
			if x >= y {
				wantGe = ^uint32(0)
			}
			Expect(unmask(ge)).To(Equal(wantGe))
		},
		Entry("x<y", uint32(3), uint32(7), uint8(2)),
		Entry("x>y", uint32(100), uint32(4), uint8(2)),
		Entry("x==y", uint32(55), uint32(55), uint8(4)),
		Entry("order 6", uint32(0xdeadbeef), uint32(0xcafef00d), uint8(6)),
	)

	Specify("without fullMask, the truth value lives in the least-significant bit", func() {
		a, b := mask(2, 3), mask(9, 3)
		lt, err := compare.Lt[uint32](a, b, false, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(unmask(lt) & 1).To(Equal(uint32(1)))
	})

	Specify("Select picks a when mask is all-ones and b when mask is all-zeros", func() {
		a, b := mask(111, 3), mask(222, 3)
		allOnes := mask(^uint32(0), 3)
		allZeros := mask(0, 3)

		pickA, err := compare.Select[uint32](a, b, allOnes, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(unmask(pickA)).To(Equal(uint32(111)))

		pickB, err := compare.Select[uint32](a, b, allZeros, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(unmask(pickB)).To(Equal(uint32(222)))
	})

	Specify("SelectLt picks truthSel when aCmp < bCmp, falseSel otherwise", func() {
		aCmp, bCmp := mask(3, 3), mask(9, 3)
		truthSel, falseSel := mask(1, 3), mask(2, 3)

		got, err := compare.SelectLt[uint32](aCmp, bCmp, truthSel, falseSel, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(unmask(got)).To(Equal(uint32(1)))

		got, err = compare.SelectLt[uint32](bCmp, aCmp, truthSel, falseSel, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(unmask(got)).To(Equal(uint32(2)))
	})
})
