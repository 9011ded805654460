package arithop_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/arithop"
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
)

var _ = Describe("Arithmetic-domain operations", func() {
	var rng *csprng.DRBG

	BeforeEach(func() {
		var err error
		rng, err = csprng.New()
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("Add/Sub/Mult match their plaintext equivalents mod 2^w",
		func(x, y uint16, order uint8) {
			a, err := share.Mask[uint16](x, order, mv.Arithmetic, rng)
			Expect(err).NotTo(HaveOccurred())
			b, err := share.Mask[uint16](y, order, mv.Arithmetic, rng)
			Expect(err).NotTo(HaveOccurred())

			add, err := arithop.Add[uint16](a, b)
			Expect(err).NotTo(HaveOccurred())
			got, err := share.Unmask[uint16](add)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(x + y))

			sub, err := arithop.Sub[uint16](a, b)
			Expect(err).NotTo(HaveOccurred())
			got, err = share.Unmask[uint16](sub)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(x - y))

			mult, err := arithop.Mult[uint16](a, b, rng)
			Expect(err).NotTo(HaveOccurred())
			got, err = share.Unmask[uint16](mult)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(x * y))
		},
		Entry("order 1", uint16(100), uint16(50), uint8(1)),
		Entry("order 2 wraps", uint16(0xffff), uint16(2), uint8(2)),
		Entry("order 6", uint16(12345), uint16(6789), uint8(6)),
	)

	Specify("rejects operands in the boolean domain", func() {
		a, err := share.Mask[uint32](1, 2, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())
		b, err := share.Mask[uint32](2, 2, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())

		_, err = arithop.Add[uint32](a, b)
		Expect(err).To(HaveOccurred())
	})
})
