package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/paging"
)

var _ = Describe("Simulation", func() {
	var (
		out *bytes.Buffer
		cfg simConfig
	)

	BeforeEach(func() {
		out = new(bytes.Buffer)
		cfg = simConfig{Instructions: 30, Policy: paging.LRU, Seed: 21}
	})

	It("should print every step", func() {
		sim, err := newSimulation(cfg, out)
		Expect(err).NotTo(HaveOccurred())

		Expect(runSteps(sim.engine, 0, out)).To(Equal(30))
		Expect(sim.close()).To(Succeed())

		Expect(out.String()).To(HavePrefix("run "))
		Expect(strings.Count(out.String(), "physical address: ")).To(Equal(30))
		Expect(out.String()).To(ContainSubstring("30: instruction "))
	})

	It("should stop stepping at the end of the run", func() {
		cfg.Instructions = 3
		sim, err := newSimulation(cfg, out)
		Expect(err).NotTo(HaveOccurred())

		Expect(runSteps(sim.engine, 5, out)).To(Equal(3))
		Expect(out.String()).To(ContainSubstring(
			"notice: " + paging.ErrAlreadyComplete.Error()))
	})

	It("should record the steps and report them", func() {
		cfg.Record = filepath.Join(GinkgoT().TempDir(), "runs")
		sim, err := newSimulation(cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		runSteps(sim.engine, 0, out)
		Expect(sim.close()).To(Succeed())

		reader, err := datarecording.NewReader(cfg.Record)
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		summaries, err := reader.Summaries(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(summaries).To(HaveLen(1))
		Expect(summaries[0].RunID).To(Equal(sim.engine.Run().ID))
		Expect(summaries[0].Executed).To(Equal(30))
		Expect(summaries[0].Faults).To(Equal(sim.engine.FaultCount()))

		printSummaries(out, summaries)
		Expect(out.String()).To(ContainSubstring("30/30 instructions"))
	})

	It("should say when nothing was recorded", func() {
		printSummaries(out, nil)

		Expect(out.String()).To(Equal("no runs recorded\n"))
	})
})
