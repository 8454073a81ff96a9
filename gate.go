package readygate

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Gate blocks until every registered probe reports ready in a single pass.
//
// There is deliberately no attempt limit: the gate runs once at container
// startup, and the orchestrator around it already bounds total startup time.
// A caller that needs a deadline passes it in through the context.
type Gate struct {
	Probes   []Probe
	Interval time.Duration
}

// Wait polls the probes until all of them succeed, pausing Interval between
// passes. It returns the number of passes it took. The only way out before
// readiness is context cancellation.
func (this *Gate) Wait(ctx context.Context) (int, error) {

	if len(this.Probes) == 0 {
		return 0, errors.New("no probes to wait for")
	}

	interval := this.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	for attempt := 1; ; attempt++ {

		if waitingOn := this.pass(ctx); waitingOn == "" {
			return attempt, nil
		} else {
			slog.Info("Waiting for " + waitingOn + "...")
		}

		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// pass probes every dependency in order and returns the ID of the first
// one that isn't ready, or an empty string when all of them are.
//
// Probe errors are not surfaced past the debug log: "host unreachable",
// "port closed" and "auth rejected" all mean the same thing here, which
// is "not yet".
func (this *Gate) pass(ctx context.Context) string {

	for _, probe := range this.Probes {

		if err := probe.Probe(ctx); err != nil {

			slog.Debug("probe not ready",
				slog.String("id", probe.ID()),
				slog.String("type", probe.Type()),
				slog.String("err", err.Error()))

			return probe.ID()
		}
	}

	return ""
}
