package devicecmd

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestLedgerBeginPending(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")

	id := l.Begin(def, map[string]string{"devId": "dev-1", "count": "3"}, TransportCloud)

	records := l.All()
	if len(records) != 1 {
		t.Fatalf("ledger holds %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != id {
		t.Errorf("record id = %q, want %q", rec.ID, id)
	}
	if !rec.Pending() {
		t.Error("fresh record is not pending")
	}
	if _, ok := rec.Payload.(EmptyPayload); !ok {
		t.Errorf("fresh record payload is %T, want EmptyPayload", rec.Payload)
	}
	if rec.Transport != TransportCloud {
		t.Errorf("record transport = %q, want cloud", rec.Transport)
	}
}

func TestLedgerComplete(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")
	id := l.Begin(def, nil, TransportBLE)

	if err := l.Complete(id, SuccessOutcome("ok"), AckCode{Code: 1}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	rec := l.All()[0]
	if rec.Pending() {
		t.Fatal("completed record still pending")
	}
	if !rec.Outcome.Success || rec.Outcome.Message != "ok" {
		t.Errorf("outcome = %+v, want success(ok)", rec.Outcome)
	}
	if ack, ok := rec.Payload.(AckCode); !ok || ack.Code != 1 {
		t.Errorf("payload = %#v, want AckCode{1}", rec.Payload)
	}
}

func TestLedgerDoubleCompleteFails(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")
	id := l.Begin(def, nil, TransportCloud)

	if err := l.Complete(id, SuccessOutcome("ok"), AckCode{Code: 1}); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	err := l.Complete(id, FailureOutcome("again"), EmptyPayload{})
	if !errors.Is(err, ErrInvalidRecordState) {
		t.Fatalf("second Complete: got %v, want ErrInvalidRecordState", err)
	}
}

func TestLedgerCompleteUnknownID(t *testing.T) {
	l := NewLedger()

	err := l.Complete("not-an-id", SuccessOutcome("ok"), EmptyPayload{})
	if !errors.Is(err, ErrInvalidRecordState) {
		t.Fatalf("Complete on unknown id: got %v, want ErrInvalidRecordState", err)
	}
}

func TestLedgerFailureIsTerminal(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("reboot-device")
	id := l.Begin(def, nil, TransportCloud)

	if err := l.Complete(id, FailureOutcome("device offline"), EmptyPayload{}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	rec := l.All()[0]
	if rec.Outcome.Success {
		t.Error("failed record reports success")
	}
	if rec.Outcome.Message != "device offline" {
		t.Errorf("failure message = %q", rec.Outcome.Message)
	}
}

func TestLedgerRetryCreatesNewRecord(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("reboot-device")

	first := l.Begin(def, nil, TransportCloud)
	_ = l.Complete(first, FailureOutcome("timeout"), EmptyPayload{})
	second := l.Begin(def, nil, TransportCloud)

	records := l.All()
	if len(records) != 2 {
		t.Fatalf("ledger holds %d records after retry, want 2", len(records))
	}
	if records[0].ID != first || records[1].ID != second {
		t.Error("retry reordered the history")
	}
	if records[0].Pending() || records[0].Outcome.Success {
		t.Error("retry mutated the original record")
	}
	if !records[1].Pending() {
		t.Error("retry record is not pending")
	}
}

func TestLedgerOrderPreserved(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, l.Begin(def, nil, TransportCloud))
	}

	records := l.All()
	for i, rec := range records {
		if rec.ID != ids[i] {
			t.Fatalf("record %d has id %q, want %q (insertion order)", i, rec.ID, ids[i])
		}
	}
}

func TestLedgerClearIdempotent(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")

	for i := 0; i < 5; i++ {
		l.Begin(def, nil, TransportCloud)
	}

	l.Clear()
	if n := len(l.All()); n != 0 {
		t.Fatalf("ledger holds %d records after Clear, want 0", n)
	}

	// Clearing an empty ledger is a no-op, not an error.
	l.Clear()
	if n := len(l.All()); n != 0 {
		t.Fatalf("ledger holds %d records after second Clear, want 0", n)
	}

	// The ledger is usable again after a clear.
	id := l.Begin(def, nil, TransportBLE)
	if err := l.Complete(id, SuccessOutcome("ok"), EmptyPayload{}); err != nil {
		t.Fatalf("Complete after Clear: %v", err)
	}
}

func TestLedgerConcurrentBeginComplete(t *testing.T) {
	l := NewLedger()
	def, _ := Lookup("ping-device")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := l.Begin(def, nil, TransportCloud)
			if err := l.Complete(id, SuccessOutcome("ok"), AckCode{Code: 0}); err != nil {
				t.Errorf("Complete: %v", err)
			}
		}()
	}
	wg.Wait()

	records := l.All()
	if len(records) != 50 {
		t.Fatalf("ledger holds %d records, want 50", len(records))
	}
	for _, rec := range records {
		if rec.Pending() {
			t.Errorf("record %s still pending", rec.ID)
		}
	}
}
