package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("ReferenceGenerator", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockRandSource
		gen      *ReferenceGenerator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockRandSource(mockCtrl)
		gen = NewReferenceGenerator(source)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should draw the first instruction from the whole run", func() {
		source.EXPECT().IntN(100).Return(42)

		Expect(gen.First(100)).To(Equal(42))
	})

	It("should move on sequentially", func() {
		source.EXPECT().Float64().Return(0.3)

		Expect(gen.Next(50, 100)).To(Equal(51))
	})

	It("should wrap around at the end of the run", func() {
		source.EXPECT().Float64().Return(0.0)

		Expect(gen.Next(99, 100)).To(Equal(0))
	})

	It("should jump backward", func() {
		source.EXPECT().Float64().Return(0.6)
		source.EXPECT().IntN(50).Return(17)

		Expect(gen.Next(50, 100)).To(Equal(17))
	})

	It("should stay at 0 when jumping backward from 0", func() {
		source.EXPECT().Float64().Return(0.5)

		Expect(gen.Next(0, 100)).To(Equal(0))
	})

	It("should jump forward", func() {
		source.EXPECT().Float64().Return(0.9)
		source.EXPECT().IntN(49).Return(0)

		Expect(gen.Next(50, 100)).To(Equal(51))
	})

	It("should jump forward up to the last instruction", func() {
		source.EXPECT().Float64().Return(0.75)
		source.EXPECT().IntN(49).Return(48)

		Expect(gen.Next(50, 100)).To(Equal(99))
	})

	It("should stay at the last instruction when jumping forward from it",
		func() {
			source.EXPECT().Float64().Return(0.99)

			Expect(gen.Next(99, 100)).To(Equal(99))
		})

	DescribeTable("single-instruction runs",
		func(p float64) {
			source.EXPECT().Float64().Return(p)

			Expect(gen.Next(0, 1)).To(Equal(0))
		},
		Entry("sequential", 0.1),
		Entry("backward", 0.6),
		Entry("forward", 0.9),
	)

	Context("with a seeded source", func() {
		It("should stay in range and honor the jump directions", func() {
			gen = NewReferenceGenerator(NewRandSource(7))
			oracle := NewRandSource(7)

			current := 50
			for i := 0; i < 2000; i++ {
				p := oracle.Float64()
				next := gen.Next(current, 100)

				Expect(next).To(BeNumerically(">=", 0))
				Expect(next).To(BeNumerically("<", 100))

				switch {
				case p < SequentialProbability:
					Expect(next).To(Equal((current + 1) % 100))
				case p < SequentialProbability+BackwardProbability:
					if current > 0 {
						Expect(next).To(BeNumerically("<", current))
						oracle.IntN(current)
					}
				default:
					if current < 99 {
						Expect(next).To(BeNumerically(">", current))
						oracle.IntN(99 - current)
					}
				}

				current = next
			}
		})

		It("should be reproducible", func() {
			a := NewReferenceGenerator(NewRandSource(3))
			b := NewReferenceGenerator(NewRandSource(3))

			x, y := a.First(320), b.First(320)
			for i := 0; i < 100; i++ {
				Expect(x).To(Equal(y))
				x, y = a.Next(x, 320), b.Next(y, 320)
			}
		})
	})
})
