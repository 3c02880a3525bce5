package handlers

import (
	"net/http"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/rogoapi"
)

// BackendHandler surfaces the auxiliary entity lists fetched from the
// Rogo cloud.
type BackendHandler struct {
	backend rogoapi.Backend
}

func NewBackendHandler(backend rogoapi.Backend) *BackendHandler {
	return &BackendHandler{backend: backend}
}

func (h *BackendHandler) Locations(rw http.ResponseWriter, r *http.Request) {
	locs, err := h.backend.Locations()
	if err != nil {
		logging.Logger(r.Context()).WithError(err).Error("fetching locations")
		writeError(rw, r, http.StatusBadGateway, "backend unavailable")
		return
	}

	writeJSON(rw, r, http.StatusOK, locs)
}

func (h *BackendHandler) Groups(rw http.ResponseWriter, r *http.Request) {
	groups, err := h.backend.Groups()
	if err != nil {
		logging.Logger(r.Context()).WithError(err).Error("fetching groups")
		writeError(rw, r, http.StatusBadGateway, "backend unavailable")
		return
	}

	writeJSON(rw, r, http.StatusOK, groups)
}
