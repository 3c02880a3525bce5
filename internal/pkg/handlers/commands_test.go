package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/dispatch"
)

func newTestRouter() (*mux.Router, *devicecmd.Ledger) {
	ledger := devicecmd.NewLedger()
	runner := dispatch.NewRunner(dispatch.NewSimulated(), ledger)

	ch := NewCommandsHandler(runner, ledger)
	hh := NewHistoryHandler(ledger)

	r := mux.NewRouter()
	r.HandleFunc("/v1/commands", ch.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/commands/{id}", ch.Get).Methods(http.MethodGet)
	r.HandleFunc("/v1/commands/{id}/invoke", ch.Invoke).Methods(http.MethodPost)
	r.HandleFunc("/v1/history", hh.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/history", hh.Clear).Methods(http.MethodDelete)

	return r, ledger
}

func TestListCommands(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/commands", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var groups []categoryView
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Commands)
	}
	if total != 24 {
		t.Errorf("listing covers %d commands, want 24", total)
	}
}

func TestGetCommandNotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/commands/bogus", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInvokeRecordsHistory(t *testing.T) {
	r, ledger := newTestRouter()

	body := `{"deviceId": "dev-1", "transport": "ble", "params": {"count": "2"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/commands/ping-device/invoke", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp invokeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Errorf("invoke failed: %s", resp.Message)
	}

	records := ledger.All()
	if len(records) != 1 {
		t.Fatalf("ledger holds %d records, want 1", len(records))
	}
	if records[0].Transport != devicecmd.TransportBLE {
		t.Errorf("transport = %q, want ble", records[0].Transport)
	}
	if got := records[0].Params["devId"]; got != "dev-1" {
		t.Errorf("devId snapshot = %q, want dev-1 (auto-filled)", got)
	}
}

func TestClearHistory(t *testing.T) {
	r, ledger := newTestRouter()
	def, _ := devicecmd.Lookup("ping-device")
	ledger.Begin(def, nil, devicecmd.TransportCloud)

	req := httptest.NewRequest(http.MethodDelete, "/v1/history", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if n := len(ledger.All()); n != 0 {
		t.Errorf("ledger holds %d records after clear, want 0", n)
	}
}
