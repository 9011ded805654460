package csprng_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sidechannel/dom/csprng"
)

var _ = Describe("DRBG", func() {
	Specify("fills buffers of varying length without error", func() {
		d, err := csprng.New()
		Expect(err).NotTo(HaveOccurred())

		for _, n := range []int{0, 1, 7, 32, 4096} {
			buf := make([]byte, n)
			Expect(d.Read(buf)).To(Succeed())
		}
	})

	Specify("does not repeat a keystream across consecutive reads", func() {
		d, err := csprng.New()
		Expect(err).NotTo(HaveOccurred())

		a := make([]byte, 64)
		b := make([]byte, 64)
		Expect(d.Read(a)).To(Succeed())
		Expect(d.Read(b)).To(Succeed())
		Expect(bytes.Equal(a, b)).To(BeFalse())
	})

	Specify("two independently constructed DRBGs do not produce the same stream", func() {
		d1, err := csprng.New()
		Expect(err).NotTo(HaveOccurred())
		d2, err := csprng.New()
		Expect(err).NotTo(HaveOccurred())

		a := make([]byte, 32)
		b := make([]byte, 32)
		Expect(d1.Read(a)).To(Succeed())
		Expect(d2.Read(b)).To(Succeed())
		Expect(bytes.Equal(a, b)).To(BeFalse())
	})

	Specify("the package-level Read draws from a lazily initialised default", func() {
		buf := make([]byte, 16)
		Expect(csprng.Read(buf)).To(Succeed())
	})
})
