package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(rw http.ResponseWriter, r *http.Request, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(body); err != nil {
		logging.Logger(r.Context()).WithError(err).Error("encoding response")
	}
}

func writeError(rw http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(rw, r, status, errorResponse{Error: message})
}

func readJSON(rw http.ResponseWriter, r *http.Request, into any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(into); err != nil {
		writeError(rw, r, http.StatusBadRequest, "malformed request body: "+err.Error())
		return false
	}

	return true
}
