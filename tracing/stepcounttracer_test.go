package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/paging"
)

var _ = Describe("StepCountTracer", func() {
	var t *StepCountTracer

	BeforeEach(func() {
		t = NewStepCountTracer()
		t.StartRun(paging.RunInfo{ID: "run"})
	})

	It("should count hits, faults and evictions", func() {
		t.Step(paging.RunInfo{}, paging.StepResult{
			Page: 3, Evicted: paging.NoPage, Loaded: 3})
		t.Step(paging.RunInfo{}, paging.StepResult{
			Page: 3, Hit: true, Evicted: paging.NoPage, Loaded: paging.NoPage})
		t.Step(paging.RunInfo{}, paging.StepResult{
			Page: 1, Evicted: 3, Loaded: 1})
		t.Step(paging.RunInfo{}, paging.StepResult{
			Page: 3, Evicted: 1, Loaded: 3})

		Expect(t.RunID()).To(Equal("run"))
		Expect(t.Hits()).To(Equal(uint64(1)))
		Expect(t.Faults()).To(Equal(uint64(3)))
		Expect(t.Evictions()).To(Equal(uint64(2)))
		Expect(t.FaultsOfPage(3)).To(Equal(uint64(2)))
		Expect(t.EvictionsOfPage(1)).To(Equal(uint64(1)))
		Expect(t.FaultedPages()).To(Equal([]int{1, 3}))
	})

	It("should start over with a new run", func() {
		t.Step(paging.RunInfo{}, paging.StepResult{Page: 3, Evicted: paging.NoPage})

		t.StartRun(paging.RunInfo{ID: "next"})

		Expect(t.RunID()).To(Equal("next"))
		Expect(t.Faults()).To(BeZero())
		Expect(t.FaultedPages()).To(BeEmpty())
	})

	It("should agree with the engine", func() {
		engine := buildEngine(paging.MaxInstructions, paging.FIFO)
		CollectTrace(engine, t)

		engine.RunToCompletion()

		Expect(t.RunID()).To(Equal(engine.Run().ID))
		Expect(t.Faults()).To(Equal(uint64(engine.FaultCount())))
		Expect(t.Hits() + t.Faults()).To(Equal(uint64(paging.MaxInstructions)))
		Expect(t.Faults() - t.Evictions()).To(BeNumerically("<=", paging.NumFrames))
	})
})
