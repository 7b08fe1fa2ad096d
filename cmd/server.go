package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/deadlock"
	"github.com/inference-sim/os-sim/sim/memory"
	"github.com/inference-sim/os-sim/sim/workload"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// api serves the simulator over HTTP. Every request runs on its own Kernel,
// Banker or Detector, so handlers share no simulation state.
type api struct {
	log logrus.FieldLogger
}

// newRouter registers the JSON endpoints.
func newRouter(logger logrus.FieldLogger) *mux.Router {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	a := &api{log: logger.WithField("component", "api")}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)
	r.HandleFunc("/simulate", a.simulate).Methods(http.MethodPost)
	r.HandleFunc("/compare", a.compare).Methods(http.MethodPost)
	r.HandleFunc("/bankers/safety", a.bankersSafety).Methods(http.MethodPost)
	r.HandleFunc("/deadlock/detect", a.detectDeadlock).Methods(http.MethodPost)
	r.HandleFunc("/replacement/{policy}", a.replacement).Methods(http.MethodPost)
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("Encoding response: %v", err)
	}
}

func (a *api) writeError(w http.ResponseWriter, status int, err error) {
	a.log.Debugf("Request failed with %d: %v", status, err)
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// readWorkload parses a workload body. JSON bodies are accepted since JSON is valid YAML.
func readWorkload(r *http.Request) (*workload.WorkloadSpec, []*sim.Process, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("reading body: %w", err)
	}
	spec, err := workload.ParseWorkloadSpec(body)
	if err != nil {
		return nil, nil, err
	}
	procs, err := spec.BuildProcesses()
	if err != nil {
		return nil, nil, err
	}
	return spec, procs, nil
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// processView is the JSON form of a process after a run.
type processView struct {
	PID            int    `json:"pid"`
	Name           string `json:"name"`
	State          string `json:"state"`
	CompletionTime int64  `json:"completion_time"`
	TurnaroundTime int64  `json:"turnaround_time"`
	WaitingTime    int64  `json:"waiting_time"`
}

type simulateResponse struct {
	Scheduler string        `json:"scheduler"`
	Timeline  sim.Timeline  `json:"timeline"`
	Metrics   sim.Metrics   `json:"metrics"`
	Processes []processView `json:"processes"`
	Rejected  []int         `json:"rejected"`
}

func (a *api) simulate(w http.ResponseWriter, r *http.Request) {
	spec, procs, err := readWorkload(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	kernel := sim.NewKernel(spec.KernelConfig(), sim.NewMemoryManager(spec.Memory, a.log), a.log)
	kernel.SetScheduler(sim.NewScheduler(spec.Scheduler))
	resp := simulateResponse{Scheduler: kernel.Scheduler().Name(), Rejected: []int{}}
	for _, p := range procs {
		if !kernel.AddProcess(p) {
			resp.Rejected = append(resp.Rejected, p.PID)
		}
	}
	timeline, err := kernel.Dispatch()
	if err != nil {
		a.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	admitted := kernel.Processes()
	resp.Timeline = timeline
	resp.Metrics = sim.CalculateMetrics(admitted, timeline, kernel.Clock())
	resp.Processes = make([]processView, 0, len(admitted))
	for _, p := range admitted {
		resp.Processes = append(resp.Processes, processView{
			PID:            p.PID,
			Name:           p.Name,
			State:          string(p.State),
			CompletionTime: p.CompletionTime,
			TurnaroundTime: p.TurnaroundTime,
			WaitingTime:    p.WaitingTime,
		})
	}
	a.writeJSON(w, http.StatusOK, resp)
}

type compareResponse struct {
	RunID     string                  `json:"run_id"`
	Best      string                  `json:"best"`
	Order     []string                `json:"order"`
	Results   map[string]sim.Metrics  `json:"results"`
	Timelines map[string]sim.Timeline `json:"timelines"`
}

func (a *api) compare(w http.ResponseWriter, r *http.Request) {
	spec, procs, err := readWorkload(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	configs := spec.ComparisonSet()
	schedulers := make([]sim.Scheduler, 0, len(configs))
	for _, c := range configs {
		schedulers = append(schedulers, sim.NewScheduler(c))
	}
	cmp := sim.NewComparator(spec.KernelConfig(), spec.Memory, a.log).Compare(procs, schedulers)
	a.writeJSON(w, http.StatusOK, compareResponse{
		RunID:     cmp.RunID,
		Best:      cmp.Best(),
		Order:     cmp.Order,
		Results:   cmp.Results,
		Timelines: cmp.Timelines,
	})
}

type requestOutcome struct {
	PID     int              `json:"pid"`
	Amounts []int            `json:"amounts"`
	Outcome deadlock.Outcome `json:"outcome"`
}

type bankersResponse struct {
	Safe     bool              `json:"safe"`
	Sequence []int             `json:"sequence"`
	Outcomes []requestOutcome  `json:"outcomes"`
	Matrices deadlock.Matrices `json:"matrices"`
}

func (a *api) bankersSafety(w http.ResponseWriter, r *http.Request) {
	var spec workload.BankerSpec
	if err := decodeJSON(r, &spec); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	banker, err := spec.Build(a.log)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := bankersResponse{Outcomes: make([]requestOutcome, 0, len(spec.Requests))}
	resp.Safe, resp.Sequence = banker.SafeStateCheck()
	for _, req := range spec.Requests {
		resp.Outcomes = append(resp.Outcomes, requestOutcome{PID: req.PID, Amounts: req.Amounts, Outcome: banker.Request(req.PID, req.Amounts)})
	}
	resp.Matrices = banker.Matrices()
	a.writeJSON(w, http.StatusOK, resp)
}

type detectionResult struct {
	WaitForGraph deadlock.WaitForGraph `json:"wait_for_graph"`
	Deadlocked   []int                 `json:"deadlocked"`
}

func detect(spec *workload.DetectionSpec, logger logrus.FieldLogger) detectionResult {
	return detectionResult{
		WaitForGraph: deadlock.BuildWaitForGraph(spec.Allocation, spec.Request),
		Deadlocked:   deadlock.NewDetector(logger).Detect(spec.Allocation, spec.Request),
	}
}

func sortedPIDs(wfg deadlock.WaitForGraph) []int {
	pids := make([]int, 0, len(wfg))
	for pid := range wfg {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

func (a *api) detectDeadlock(w http.ResponseWriter, r *http.Request) {
	var spec workload.DetectionSpec
	if err := decodeJSON(r, &spec); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := spec.Validate(); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, detect(&spec, a.log))
}

type replacementRequest struct {
	References []int `json:"references"`
	Frames     int   `json:"frames"`
}

var errUnknownPolicy = errors.New("unknown replacement policy")

func (a *api) replacement(w http.ResponseWriter, r *http.Request) {
	policy := mux.Vars(r)["policy"]
	if !memory.IsValidReplacementPolicy(policy) {
		a.writeError(w, http.StatusNotFound, fmt.Errorf("%w %q", errUnknownPolicy, policy))
		return
	}
	var req replacementRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, memory.NewReplacementPolicy(policy).Run(req.References, req.Frames))
}
