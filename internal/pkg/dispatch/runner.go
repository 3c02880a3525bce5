package dispatch

import (
	"context"

	"github.com/korovkin/limiter"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

// Invocation is one unit of work for the runner.
type Invocation struct {
	Command   devicecmd.CommandDefinition
	Params    map[string]string
	Transport devicecmd.Transport
}

// Runner drives a dispatcher and records every attempt in the ledger.
// It is the only component that calls Begin and Complete; the ledger
// serialises the concurrent completions.
type Runner struct {
	dispatcher Dispatcher
	ledger     *devicecmd.Ledger
}

func NewRunner(d Dispatcher, l *devicecmd.Ledger) *Runner {
	return &Runner{
		dispatcher: d,
		ledger:     l,
	}
}

// RunOne dispatches a single invocation and returns the id of its
// ledger record, completed by the time RunOne returns.
func (r *Runner) RunOne(ctx context.Context, inv Invocation) string {
	id := r.ledger.Begin(inv.Command, inv.Params, inv.Transport)

	payload, err := r.dispatcher.Execute(ctx, inv.Command, inv.Params)

	var outcome devicecmd.Outcome
	if err != nil {
		outcome = devicecmd.FailureOutcome(err.Error())
	} else {
		outcome = devicecmd.SuccessOutcome("OK")
	}

	if cerr := r.ledger.Complete(id, outcome, payload); cerr != nil {
		logging.Logger(ctx).WithError(cerr).Errorf("completing record for %s", inv.Command.ID)
	}

	return id
}

// RunBatch dispatches a set of invocations with bounded concurrency
// and returns the ledger record ids in invocation order.
func (r *Runner) RunBatch(ctx context.Context, maxConcurrent int, invs []Invocation) []string {
	limit := limiter.NewConcurrencyLimiter(maxConcurrent)

	ids := make([]string, len(invs))
	for i, inv := range invs {
		i, inv := i, inv
		limit.ExecuteWithTicket(func(ticket int) {
			logging.Logger(ctx).Debugf("worker %d: dispatching %s", ticket, inv.Command.ID)
			ids[i] = r.RunOne(ctx, inv)
		})
	}

	limit.Wait()
	return ids
}
