package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/paging"
	"go.uber.org/mock/gomock"
)

var _ = Describe("RecordingTracer", func() {
	var (
		mockCtrl *gomock.Controller
		backend  *MockDataRecorder
		tracer   *RecordingTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backend = NewMockDataRecorder(mockCtrl)

		backend.EXPECT().
			CreateTable(datarecording.RunTable, datarecording.RunEntry{})
		backend.EXPECT().
			CreateTable(datarecording.StepTable, datarecording.StepEntry{})

		tracer = NewRecordingTracer(backend)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record runs", func() {
		backend.EXPECT().InsertData(datarecording.RunTable,
			datarecording.RunEntry{
				RunID:             "r1",
				Engine:            "Engine",
				Policy:            "LRU",
				TotalInstructions: 100,
				FirstInstruction:  42,
			})

		tracer.StartRun(paging.RunInfo{
			ID:                "r1",
			EngineName:        "Engine",
			TotalInstructions: 100,
			Policy:            paging.LRU,
			FirstInstruction:  42,
		})
	})

	It("should record steps", func() {
		backend.EXPECT().InsertData(datarecording.StepTable,
			datarecording.StepEntry{
				RunID:           "r1",
				Seq:             5,
				Instruction:     45,
				Page:            4,
				Evicted:         0,
				Loaded:          4,
				Frame:           0,
				PhysicalAddress: 5,
				Frames:          "4,1,2,3",
				FaultCount:      5,
				ExecutedCount:   5,
			})

		tracer.Step(paging.RunInfo{ID: "r1"}, paging.StepResult{
			Seq:             5,
			Instruction:     45,
			Page:            4,
			Evicted:         0,
			Loaded:          4,
			FrameIndex:      0,
			PhysicalAddress: 5,
			Frames:          paging.FrameSnapshot{4, 1, 2, 3},
			FaultCount:      5,
			ExecutedCount:   5,
		})
	})

	It("should flush the backend", func() {
		backend.EXPECT().Flush()

		tracer.Flush()
	})

	It("should format frames", func() {
		Expect(FormatFrames(paging.FrameSnapshot{7, -1, 0, -1})).
			To(Equal("7,-1,0,-1"))
	})
})
