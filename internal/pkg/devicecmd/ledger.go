package devicecmd

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

/*
 *   Execution ledger: the ordered history of every attempted
 *   invocation.  Records are appended by Begin, completed in place
 *   exactly once by Complete, and only ever removed in bulk by
 *   Clear.  Begin and Complete run on different goroutines (Complete
 *   is driven by the dispatcher's callback), so all mutation is
 *   serialised behind one mutex.
 */

// ErrInvalidRecordState is returned when Complete is called twice for
// the same record, or for a record id Begin never issued.
var ErrInvalidRecordState = errors.New("invalid record state")

// Transport identifies which path carried an invocation.
type Transport string

const (
	TransportBLE   Transport = "ble"
	TransportCloud Transport = "cloud"
)

// Outcome is the terminal result of a completed invocation.  Failure
// is a normal terminal state of the record, not an error condition of
// the ledger.
type Outcome struct {
	Success bool
	Message string
}

func SuccessOutcome(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

func FailureOutcome(message string) Outcome {
	return Outcome{Success: false, Message: message}
}

type ExecutionRecord struct {
	ID        string
	Timestamp time.Time
	Command   CommandDefinition
	Params    map[string]string
	Transport Transport
	Outcome   *Outcome // nil while the invocation is pending
	Payload   ResponsePayload

	// Expanded is presentation state for the host UI.
	Expanded bool
}

// Pending reports whether the record is still awaiting its outcome.
func (r ExecutionRecord) Pending() bool {
	return r.Outcome == nil
}

type Ledger struct {
	mu      sync.Mutex
	records []ExecutionRecord
	index   map[string]int // record id -> position in records
}

func NewLedger() *Ledger {
	return &Ledger{
		index: make(map[string]int),
	}
}

// Begin appends a pending record for an invocation that is about to
// be dispatched and returns its id.
func (l *Ledger) Begin(def CommandDefinition, params map[string]string, transport Transport) string {
	snapshot := make(map[string]string, len(params))
	for k, v := range params {
		snapshot[k] = v
	}

	rec := ExecutionRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Command:   def,
		Params:    snapshot,
		Transport: transport,
		Payload:   EmptyPayload{},
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.index[rec.ID] = len(l.records)
	l.records = append(l.records, rec)

	return rec.ID
}

// Complete sets the outcome and payload of a pending record.  It may
// be called exactly once per record.
func (l *Ledger) Complete(id string, outcome Outcome, payload ResponsePayload) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return errors.Wrapf(ErrInvalidRecordState, "record %q does not exist", id)
	}
	if l.records[i].Outcome != nil {
		return errors.Wrapf(ErrInvalidRecordState, "record %q already completed", id)
	}

	l.records[i].Outcome = &outcome
	l.records[i].Payload = payload

	return nil
}

// All returns the complete history, oldest first.  The returned slice
// is a copy; callers cannot mutate ledger state through it.
func (l *Ledger) All() []ExecutionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ExecutionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Clear empties the ledger.  Clearing an empty ledger is a no-op.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
	l.index = make(map[string]int)
}
