// Package monitoring turns a paging engine into a server so that a user
// interface can drive and observe the simulation over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor exposes a paging engine through an HTTP API. The engine is only
// touched while holding the monitor lock.
type Monitor struct {
	lock       sync.Mutex
	engine     *paging.Engine
	counter    *tracing.StepCountTracer
	portNumber int
	server     *http.Server

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		slog.Warn("port number not allowed for the monitoring server, "+
			"using a random port instead", "port", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine to serve.
func (m *Monitor) RegisterEngine(e *paging.Engine) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.engine = e
	m.counter = tracing.NewStepCountTracer()

	tracing.CollectTrace(e, m.counter)
	tracing.CollectTrace(e, m)
}

// StartRun creates a progress bar for the new run.
func (m *Monitor) StartRun(run paging.RunInfo) {
	bar := &ProgressBar{
		ID:        run.ID,
		Name:      fmt.Sprintf("%s (%s)", run.EngineName, run.Policy),
		StartTime: time.Now(),
		Total:     uint64(run.TotalInstructions),
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)
}

// Step advances the progress bar of the run.
func (m *Monitor) Step(run paging.RunInfo, step paging.StepResult) {
	bar := m.findProgressBar(run.ID)
	if bar == nil {
		return
	}

	bar.IncrementFinished(1)
	if !step.Hit {
		bar.IncrementFaults(1)
	}
}

func (m *Monitor) findProgressBar(id string) *ProgressBar {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	for i := len(m.progressBars) - 1; i >= 0; i-- {
		if m.progressBars[i].ID == id {
			return m.progressBars[i]
		}
	}

	return nil
}

// Router returns the handler that serves the API.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/state", m.state).Methods(http.MethodGet)
	r.HandleFunc("/api/step", m.step).Methods(http.MethodPost)
	r.HandleFunc("/api/run", m.run).Methods(http.MethodPost)
	r.HandleFunc("/api/reset", m.reset).Methods(http.MethodPost)
	r.HandleFunc("/api/frames", m.frames).Methods(http.MethodGet)
	r.HandleFunc("/api/frames/{frame:[0-9]+}", m.frame).
		Methods(http.MethodGet)
	r.HandleFunc("/api/stats", m.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/engine", m.engineDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.listProgressBars).
		Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts serving in the background and returns the address it
// listens on.
func (m *Monitor) StartServer() (*net.TCPAddr, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return nil, err
	}

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	addr := listener.Addr().(*net.TCPAddr)
	slog.Info("monitoring simulation",
		"url", fmt.Sprintf("http://localhost:%d", addr.Port))

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("monitoring server stopped", "error", err)
		}
	}()

	return addr, nil
}

// Stop shuts the server down.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

type stateRsp struct {
	Name              string  `json:"name"`
	RunID             string  `json:"run_id"`
	Policy            string  `json:"policy"`
	TotalInstructions int     `json:"total_instructions"`
	Executed          int     `json:"executed"`
	Faults            int     `json:"faults"`
	FaultRate         float64 `json:"fault_rate"`
	CurrentReference  int     `json:"current_reference"`
	Complete          bool    `json:"complete"`
	Frames            []int   `json:"frames"`
	ResidentOrder     []int   `json:"resident_order"`
}

type stepRsp struct {
	Seq             int    `json:"seq"`
	Instruction     int    `json:"instruction"`
	Page            int    `json:"page"`
	Hit             bool   `json:"hit"`
	Evicted         *int   `json:"evicted"`
	Loaded          *int   `json:"loaded"`
	Frame           int    `json:"frame"`
	PhysicalAddress int    `json:"physical_address"`
	Frames          []int  `json:"frames"`
	FaultCount      int    `json:"fault_count"`
	ExecutedCount   int    `json:"executed_count"`
	Log             string `json:"log"`
}

type frameRsp struct {
	Frame     int   `json:"frame"`
	Page      *int  `json:"page"`
	Addresses []int `json:"addresses"`
}

type statsRsp struct {
	Executed     int     `json:"executed"`
	Faults       int     `json:"faults"`
	FaultRate    float64 `json:"fault_rate"`
	Hits         uint64  `json:"hits"`
	Evictions    uint64  `json:"evictions"`
	FaultedPages []int   `json:"faulted_pages"`
	Summary      string  `json:"summary"`
}

type resetReq struct {
	Instructions int    `json:"instructions"`
	Policy       string `json:"policy"`
}

type errorRsp struct {
	Error string `json:"error"`
}

func pageOrNil(page int) *int {
	if page == paging.NoPage {
		return nil
	}

	return &page
}

func toStepRsp(step paging.StepResult) stepRsp {
	return stepRsp{
		Seq:             step.Seq,
		Instruction:     step.Instruction,
		Page:            step.Page,
		Hit:             step.Hit,
		Evicted:         pageOrNil(step.Evicted),
		Loaded:          pageOrNil(step.Loaded),
		Frame:           step.FrameIndex,
		PhysicalAddress: step.PhysicalAddress,
		Frames:          step.Frames[:],
		FaultCount:      step.FaultCount,
		ExecutedCount:   step.ExecutedCount,
		Log:             tracing.FormatStep(step),
	}
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	frames := m.engine.Frames()
	rsp := stateRsp{
		Name:              m.engine.Name(),
		RunID:             m.engine.Run().ID,
		Policy:            m.engine.Policy().String(),
		TotalInstructions: m.engine.TotalInstructions(),
		Executed:          m.engine.ExecutedCount(),
		Faults:            m.engine.FaultCount(),
		FaultRate:         m.engine.FaultRate(),
		CurrentReference:  m.engine.CurrentReference(),
		Complete:          m.engine.IsComplete(),
		Frames:            frames[:],
		ResidentOrder:     m.engine.ResidentOrder(),
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (m *Monitor) step(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	result, err := m.engine.Step()
	if errors.Is(err, paging.ErrAlreadyComplete) {
		writeJSON(w, http.StatusConflict, errorRsp{Error: err.Error()})
		return
	}
	dieOnErr(err)

	writeJSON(w, http.StatusOK, toStepRsp(result))
}

// run executes the remaining instructions, or at most the number given by
// the steps query parameter.
func (m *Monitor) run(w http.ResponseWriter, r *http.Request) {
	limit, err := parseStepLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	var results []paging.StepResult
	if limit == 0 {
		results = m.engine.RunToCompletion()
	} else {
		for i := 0; i < limit && !m.engine.IsComplete(); i++ {
			result, err := m.engine.Step()
			dieOnErr(err)
			results = append(results, result)
		}
	}

	rsp := make([]stepRsp, 0, len(results))
	for _, result := range results {
		rsp = append(rsp, toStepRsp(result))
	}

	writeJSON(w, http.StatusOK, rsp)
}

func parseStepLimit(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("steps")
	if limitStr == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid steps %q", limitStr)
	}

	return limit, nil
}

func (m *Monitor) reset(w http.ResponseWriter, r *http.Request) {
	req := resetReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	if req.Instructions < 1 || req.Instructions > paging.MaxInstructions {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: fmt.Sprintf(
			"instructions must be between 1 and %d",
			paging.MaxInstructions)})
		return
	}

	policy, err := paging.ParsePolicy(req.Policy)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	err = m.engine.Reset(req.Instructions, policy)
	dieOnErr(err)

	slog.Info("simulation reset", "run", m.engine.Run().ID,
		"instructions", req.Instructions, "policy", policy)

	w.WriteHeader(http.StatusNoContent)
}

func (m *Monitor) frames(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	snapshot := m.engine.Frames()
	rsp := make([]frameRsp, 0, paging.NumFrames)
	for i := range snapshot {
		rsp = append(rsp, toFrameRsp(snapshot, i))
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (m *Monitor) frame(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["frame"])
	if err != nil || index < 0 || index >= paging.NumFrames {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	writeJSON(w, http.StatusOK, toFrameRsp(m.engine.Frames(), index))
}

func toFrameRsp(snapshot paging.FrameSnapshot, frame int) frameRsp {
	addrs := snapshot.Addresses(frame)
	if addrs == nil {
		addrs = []int{}
	}

	return frameRsp{
		Frame:     frame,
		Page:      pageOrNil(snapshot[frame]),
		Addresses: addrs,
	}
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	rsp := statsRsp{
		Executed:     m.engine.ExecutedCount(),
		Faults:       m.engine.FaultCount(),
		FaultRate:    m.engine.FaultRate(),
		Hits:         m.counter.Hits(),
		Evictions:    m.counter.Evictions(),
		FaultedPages: m.counter.FaultedPages(),
		Summary: tracing.FormatStats(
			m.engine.FaultCount(), m.engine.ExecutedCount()),
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (m *Monitor) engineDetails(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.engineRegisteredOr503(w) {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.engine)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, http.StatusOK, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeJSON(w, http.StatusConflict, errorRsp{Error: err.Error()})
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

func (m *Monitor) engineRegisteredOr503(w http.ResponseWriter) bool {
	if m.engine != nil {
		return true
	}

	writeJSON(w, http.StatusServiceUnavailable,
		errorRsp{Error: "no engine registered"})

	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(bytes)
	if err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
