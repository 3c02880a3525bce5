package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/dispatch"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

/*
 *   Read access to the command catalog, plus an invoke endpoint that
 *   drives the dispatcher and records the attempt on the ledger.
 */

type parameterView struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	HelpText    string `json:"helpText,omitempty"`
}

type commandView struct {
	ID                    string          `json:"id"`
	DisplayName           string          `json:"displayName"`
	Category              string          `json:"category"`
	Description           string          `json:"description"`
	Parameters            []parameterView `json:"parameters"`
	RequiresDeviceID      bool            `json:"requiresDeviceId"`
	HasCompletionCallback bool            `json:"hasCompletionCallback"`
}

type categoryView struct {
	Name     string        `json:"name"`
	Icon     string        `json:"icon"`
	Rank     int           `json:"rank"`
	Commands []commandView `json:"commands"`
}

func newCommandView(def devicecmd.CommandDefinition) commandView {
	params := make([]parameterView, 0, len(def.Parameters))
	for _, p := range def.Parameters {
		params = append(params, parameterView{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			Type:        p.Type.String(),
			Default:     p.DefaultValue,
			Placeholder: p.Placeholder,
			Required:    p.Required,
			HelpText:    p.HelpText,
		})
	}

	return commandView{
		ID:                    def.ID,
		DisplayName:           def.DisplayName,
		Category:              def.Category.Name(),
		Description:           def.Description,
		Parameters:            params,
		RequiresDeviceID:      def.RequiresDeviceID(),
		HasCompletionCallback: def.HasCompletionCallback,
	}
}

type CommandsHandler struct {
	runner *dispatch.Runner
	ledger *devicecmd.Ledger
}

func NewCommandsHandler(runner *dispatch.Runner, ledger *devicecmd.Ledger) *CommandsHandler {
	return &CommandsHandler{
		runner: runner,
		ledger: ledger,
	}
}

// List serves the full catalog grouped by category rank.
func (h *CommandsHandler) List(rw http.ResponseWriter, r *http.Request) {
	groups := devicecmd.CategoriesOrdered()
	out := make([]categoryView, 0, len(groups))

	for _, g := range groups {
		cv := categoryView{
			Name: g.Category.Name(),
			Icon: g.Category.Icon(),
			Rank: g.Category.Rank(),
		}
		for _, def := range g.Commands {
			cv.Commands = append(cv.Commands, newCommandView(def))
		}
		out = append(out, cv)
	}

	writeJSON(rw, r, http.StatusOK, out)
}

// Get serves one command definition.
func (h *CommandsHandler) Get(rw http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	def, err := devicecmd.Lookup(id)
	if err != nil {
		if errors.Is(err, devicecmd.ErrNotFound) {
			writeError(rw, r, http.StatusNotFound, err.Error())
			return
		}
		writeError(rw, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(rw, r, http.StatusOK, newCommandView(def))
}

type invokeRequest struct {
	DeviceID  string            `json:"deviceId"`
	Transport string            `json:"transport"`
	Params    map[string]string `json:"params"`
}

type invokeResponse struct {
	RecordID string `json:"recordId"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Display  string `json:"display,omitempty"`
}

// Invoke dispatches one command and returns the recorded outcome.
func (h *CommandsHandler) Invoke(rw http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	def, err := devicecmd.Lookup(id)
	if err != nil {
		writeError(rw, r, http.StatusNotFound, err.Error())
		return
	}

	var req invokeRequest
	if !readJSON(rw, r, &req) {
		return
	}

	transport := devicecmd.TransportCloud
	if req.Transport == string(devicecmd.TransportBLE) {
		transport = devicecmd.TransportBLE
	}

	values := devicecmd.NewParameterValues()
	for name, val := range req.Params {
		values.Set(name, val)
	}
	values.ApplyDefaults(def, req.DeviceID)

	ctx := logging.WithDeviceID(r.Context(), req.DeviceID)
	recordID := h.runner.RunOne(ctx, dispatch.Invocation{
		Command:   def,
		Params:    values.Snapshot(),
		Transport: transport,
	})

	for _, rec := range h.ledger.All() {
		if rec.ID != recordID {
			continue
		}

		resp := invokeResponse{
			RecordID: rec.ID,
			Success:  rec.Outcome.Success,
			Message:  rec.Outcome.Message,
		}
		if devicecmd.HasDisplayableData(rec.Payload) {
			resp.Display = devicecmd.Format(rec.Payload)
		}
		writeJSON(rw, r, http.StatusOK, resp)
		return
	}

	writeError(rw, r, http.StatusInternalServerError, "dispatched record not found")
}
