package ksa_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/ksa"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
)

var _ = Describe("Kogge-Stone prefix networks", func() {
	var rng *csprng.DRBG

	BeforeEach(func() {
		var err error
		rng, err = csprng.New()
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("Carry's output recombines with a XOR b into a plain binary sum",
		func(x, y uint32, order uint8) {
			a, err := share.Mask[uint32](x, order, mv.Boolean, rng)
			Expect(err).NotTo(HaveOccurred())
			b, err := share.Mask[uint32](y, order, mv.Boolean, rng)
			Expect(err).NotTo(HaveOccurred())

			carry, err := ksa.Carry[uint32](a, b, rng)
			Expect(err).NotTo(HaveOccurred())

			c, err := share.Unmask[uint32](carry)
			Expect(err).NotTo(HaveOccurred())

			Expect((x ^ y) ^ c).To(Equal(x + y))
		},
		Entry("order 1, no carry chain", uint32(1), uint32(2), uint8(1)),
		Entry("order 2, full ripple", uint32(0xffffffff), uint32(1), uint8(2)),
		Entry("order 6, mixed bits", uint32(0x5a5a5a5a), uint32(0xa5a5a5a5), uint8(6)),
	)

	DescribeTable("Borrow's output recombines with a XOR b into a plain binary difference",
		func(x, y uint16, order uint8) {
			a, err := share.Mask[uint16](x, order, mv.Boolean, rng)
			Expect(err).NotTo(HaveOccurred())
			b, err := share.Mask[uint16](y, order, mv.Boolean, rng)
			Expect(err).NotTo(HaveOccurred())

			borrow, err := ksa.Borrow[uint16](a, b, rng)
			Expect(err).NotTo(HaveOccurred())

			bw, err := share.Unmask[uint16](borrow)
			Expect(err).NotTo(HaveOccurred())

			Expect((x ^ y) ^ bw).To(Equal(x - y))
		},
		Entry("order 1, no borrow", uint16(3), uint16(1), uint8(1)),
		Entry("order 2, full borrow chain", uint16(0), uint16(1), uint8(2)),
		Entry("order 6, mixed", uint16(0x1234), uint16(0x5678), uint8(6)),
	)

	Specify("rejects operands in a non-boolean domain", func() {
		rng, err := csprng.New()
		Expect(err).NotTo(HaveOccurred())
		a, err := share.Mask[uint32](1, 2, mv.Arithmetic, rng)
		Expect(err).NotTo(HaveOccurred())
		b, err := share.Mask[uint32](2, 2, mv.Arithmetic, rng)
		Expect(err).NotTo(HaveOccurred())

		_, err = ksa.Carry[uint32](a, b, rng)
		Expect(err).To(HaveOccurred())
	})
})
