package handlers

import (
	"net/http"
	"time"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
)

type recordView struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Command   string            `json:"command"`
	Params    map[string]string `json:"params"`
	Transport string            `json:"transport"`
	Pending   bool              `json:"pending"`
	Success   *bool             `json:"success,omitempty"`
	Message   string            `json:"message,omitempty"`
	Display   string            `json:"display,omitempty"`
}

type HistoryHandler struct {
	ledger *devicecmd.Ledger
}

func NewHistoryHandler(ledger *devicecmd.Ledger) *HistoryHandler {
	return &HistoryHandler{ledger: ledger}
}

// List serves the full execution history, oldest first.
func (h *HistoryHandler) List(rw http.ResponseWriter, r *http.Request) {
	records := h.ledger.All()
	out := make([]recordView, 0, len(records))

	for _, rec := range records {
		v := recordView{
			ID:        rec.ID,
			Timestamp: rec.Timestamp,
			Command:   rec.Command.ID,
			Params:    rec.Params,
			Transport: string(rec.Transport),
			Pending:   rec.Pending(),
		}
		if rec.Outcome != nil {
			v.Success = &rec.Outcome.Success
			v.Message = rec.Outcome.Message
		}
		if devicecmd.HasDisplayableData(rec.Payload) {
			v.Display = devicecmd.Format(rec.Payload)
		}
		out = append(out, v)
	}

	writeJSON(rw, r, http.StatusOK, out)
}

// Clear empties the history.
func (h *HistoryHandler) Clear(rw http.ResponseWriter, r *http.Request) {
	h.ledger.Clear()
	rw.WriteHeader(http.StatusNoContent)
}
