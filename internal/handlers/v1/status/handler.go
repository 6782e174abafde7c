package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/networth-server/internal/logging"
	"github.com/carson-networks/networth-server/internal/scheduler"
)

// jobStatuses is the scheduler surface the handler needs.
type jobStatuses interface {
	Statuses() map[string]scheduler.Status
}

type jobStatus struct {
	LastRun     string `json:"lastRun,omitempty"`
	LastSummary string `json:"lastSummary,omitempty"`
	LastError   string `json:"lastError,omitempty"`
}

type response struct {
	Status string               `json:"status"`
	Jobs   map[string]jobStatus `json:"jobs"`
}

type Handler struct {
	Scheduler jobStatuses
}

func NewHandler(sched jobStatuses) Handler {
	return Handler{Scheduler: sched}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	resp := response{Status: "ok", Jobs: make(map[string]jobStatus)}
	for name, st := range h.Scheduler.Statuses() {
		js := jobStatus{LastSummary: st.LastSummary, LastError: st.LastError}
		if !st.LastRun.IsZero() {
			js.LastRun = st.LastRun.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		resp.Jobs[name] = js
	}
	logData.AddData("jobs", len(resp.Jobs))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}
