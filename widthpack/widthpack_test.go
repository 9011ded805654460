package widthpack_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/mv"
	"github.com/sidechannel/dom/share"
	"github.com/sidechannel/dom/widthpack"
)

var _ = Describe("Width converters", func() {
	var rng *csprng.DRBG

	BeforeEach(func() {
		var err error
		rng, err = csprng.New()
		Expect(err).NotTo(HaveOccurred())
	})

	mask16 := func(x uint16, order uint8) *mv.MV[uint16] {
		m, err := share.Mask[uint16](x, order, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())
		return m
	}
	mask8 := func(x uint8, order uint8) *mv.MV[uint8] {
		m, err := share.Mask[uint8](x, order, mv.Boolean, rng)
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	Specify("Pack2to1/Unpack1to2 round-trip uint16 lanes into a uint32", func() {
		lo, hi := mask16(0xbeef, 3), mask16(0xcafe, 3)

		wide, err := widthpack.Pack2to1[uint32, uint16]([]*mv.MV[uint16]{lo, hi})
		Expect(err).NotTo(HaveOccurred())

		got, err := share.Unmask[uint32](wide)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(uint32(0xcafebeef)))

		narrow, err := widthpack.Unpack1to2[uint32, uint16](wide)
		Expect(err).NotTo(HaveOccurred())
		Expect(narrow).To(HaveLen(2))

		gotLo, err := share.Unmask[uint16](narrow[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(gotLo).To(Equal(uint16(0xbeef)))

		gotHi, err := share.Unmask[uint16](narrow[1])
		Expect(err).NotTo(HaveOccurred())
		Expect(gotHi).To(Equal(uint16(0xcafe)))
	})

	Specify("Pack4to1/Unpack1to4 round-trip uint8 lanes into a uint32", func() {
		vals := []uint8{0x11, 0x22, 0x33, 0x44}
		mvs := make([]*mv.MV[uint8], 4)
		for i, v := range vals {
			mvs[i] = mask8(v, 2)
		}

		wide, err := widthpack.Pack4to1[uint32, uint8](mvs)
		Expect(err).NotTo(HaveOccurred())

		got, err := share.Unmask[uint32](wide)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(uint32(0x44332211)))

		narrow, err := widthpack.Unpack1to4[uint32, uint8](wide)
		Expect(err).NotTo(HaveOccurred())
		Expect(narrow).To(HaveLen(4))
		for i, v := range vals {
			got, err := share.Unmask[uint8](narrow[i])
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(v))
		}
	})

	Specify("Pack8to1/Unpack1to8 round-trip uint8 lanes into a uint64", func() {
		vals := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
		mvs := make([]*mv.MV[uint8], 8)
		for i, v := range vals {
			mvs[i] = mask8(v, 1)
		}

		wide, err := widthpack.Pack8to1[uint64, uint8](mvs)
		Expect(err).NotTo(HaveOccurred())

		narrow, err := widthpack.Unpack1to8[uint64, uint8](wide)
		Expect(err).NotTo(HaveOccurred())
		Expect(narrow).To(HaveLen(8))
		for i, v := range vals {
			got, err := share.Unmask[uint8](narrow[i])
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(v))
		}
	})

	Specify("Pack4to1 rejects two uint16 operands for a uint32 result", func() {
		lo, hi := mask16(1, 2), mask16(2, 2)
		_, err := widthpack.Pack4to1[uint32, uint16]([]*mv.MV[uint16]{lo, hi})
		Expect(err).To(HaveOccurred())
	})

	Specify("Pack2to1 rejects operands with mismatched order", func() {
		lo, hi := mask16(1, 2), mask16(2, 3)
		_, err := widthpack.Pack2to1[uint32, uint16]([]*mv.MV[uint16]{lo, hi})
		Expect(err).To(HaveOccurred())
	})
})
