package share_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
)

var _ = Describe("Mask/Unmask/Refresh", func() {
	var rng *csprng.DRBG

	BeforeEach(func() {
		var err error
		rng, err = csprng.New()
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("round-trips a secret through Mask then Unmask",
		func(secret uint32, order uint8, domain mv.Domain) {
			m, err := share.Mask[uint32](secret, order, domain, rng)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Shares()).To(HaveLen(int(order) + 1))

			got, err := share.Unmask[uint32](m)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(secret))
		},
		Entry("order 1, boolean", uint32(0xcafef00d), uint8(1), mv.Boolean),
		Entry("order 1, arithmetic", uint32(0xcafef00d), uint8(1), mv.Arithmetic),
		Entry("order 6, boolean", uint32(12345), uint8(6), mv.Boolean),
		Entry("order 6, arithmetic", uint32(12345), uint8(6), mv.Arithmetic),
		Entry("zero secret, order 1", uint32(0), uint8(1), mv.Boolean),
	)

	Specify("Refresh does not change the secret a masked value carries", func() {
		m, err := share.Mask[uint64](0x1122334455667788, 4, mv.Arithmetic, rng)
		Expect(err).NotTo(HaveOccurred())

		before, err := share.Unmask[uint64](m)
		Expect(err).NotTo(HaveOccurred())

		Expect(share.Refresh[uint64](m, rng)).To(Succeed())

		after, err := share.Unmask[uint64](m)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
	})

	Specify("Refresh changes at least one share with overwhelming probability", func() {
		m, err := share.Mask[uint16](0xbeef, 3, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())
		before := append([]uint16(nil), m.Shares()...)

		Expect(share.Refresh[uint16](m, rng)).To(Succeed())

		Expect(m.Shares()).NotTo(Equal(before))
	})

	Specify("MaskMany/UnmaskMany round-trip a batch", func() {
		secrets := []uint8{1, 2, 3, 250}
		ms, err := share.MaskMany[uint8](secrets, 2, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())

		got, err := share.UnmaskMany[uint8](ms)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(secrets))
	})
})
