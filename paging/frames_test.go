package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Frames", func() {
	var table frameTable

	BeforeEach(func() {
		table.clear()
	})

	It("should start empty", func() {
		Expect(table.snapshot()).To(Equal(FrameSnapshot{-1, -1, -1, -1}))
		Expect(table.snapshot().Occupied()).To(Equal(0))
	})

	It("should hand out the lowest free frame", func() {
		table.place(0, 8)
		table.place(2, 3)

		frame, found := table.freeFrame()

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(1))
	})

	It("should report no free frame when full", func() {
		for i := 0; i < NumFrames; i++ {
			table.place(i, i)
		}

		_, found := table.freeFrame()

		Expect(found).To(BeFalse())
	})

	It("should refuse to hold a page twice", func() {
		table.place(0, 5)

		Expect(func() { table.place(1, 5) }).To(Panic())
	})

	It("should list the addresses of a frame", func() {
		table.place(1, 12)
		snapshot := table.snapshot()

		Expect(snapshot.Addresses(1)).To(Equal(
			[]int{120, 121, 122, 123, 124, 125, 126, 127, 128, 129}))
		Expect(snapshot.Addresses(0)).To(BeEmpty())
	})

	It("should translate addresses", func() {
		Expect(PageOf(47)).To(Equal(4))
		Expect(PhysicalAddress(3, 47)).To(Equal(37))
	})
})

var _ = Describe("Policy", func() {
	It("should parse names", func() {
		p, err := ParsePolicy(" lru ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(LRU))

		p, err = ParsePolicy("FIFO")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(FIFO))
	})

	It("should reject unknown names", func() {
		_, err := ParsePolicy("clock")

		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should print", func() {
		Expect(LRU.String()).To(Equal("LRU"))
		Expect(Policy(9).String()).To(Equal("Policy(9)"))
	})
})
