package engine

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ledger/account"
	"github.com/luxfi/ledger/event"
	"github.com/luxfi/ledger/telemetry"
)

// clientWorker owns exactly one client's Account and processes its
// events one at a time off a channel buffered to one event, preserving per-client
// order trivially since there is only one consumer.
type clientWorker struct {
	account *account.Account
	inbox   chan event.Incoming
}

// PerClient is the one-goroutine-per-client engine flavor. Unlike
// Sharded's fixed worker pool, the number of goroutines grows with the
// number of distinct clients seen; this makes it the natural extension
// point for per-client I/O (e.g. a future per-client outbound
// notification stream) since each client already has a dedicated
// goroutine and channel.
type PerClient struct {
	mu      sync.Mutex
	workers map[uint16]*clientWorker
	metrics *telemetry.EngineMetrics
}

// NewPerClient returns an empty PerClient engine.
func NewPerClient() *PerClient {
	return &PerClient{
		workers: make(map[uint16]*clientWorker),
		metrics: telemetry.NewEngineMetrics(),
	}
}

// worker returns (creating if necessary) the client's worker and
// spawns its goroutine under g. Must be called with mu held.
func (p *PerClient) worker(g *errgroup.Group, ctx context.Context, client uint16) *clientWorker {
	w, ok := p.workers[client]
	if ok {
		return w
	}
	w = &clientWorker{
		account: account.New(client),
		inbox:   make(chan event.Incoming, 1),
	}
	p.workers[client] = w
	g.Go(func() error {
		accounts := map[uint16]*account.Account{client: w.account}
		for {
			select {
			case ev, ok := <-w.inbox:
				if !ok {
					return nil
				}
				if err := dispatchOne(accounts, p.metrics, ev); err != nil {
					return err
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
	return w
}

func (p *PerClient) Process(ctx context.Context, events Source) error {
	g, gctx := errgroup.WithContext(ctx)

	producerErr := func() error {
		for ev, err := range events {
			if err != nil {
				p.metrics.ParseErrors.Inc()
				return fmt.Errorf("%w: %v", ErrParse, err)
			}
			p.mu.Lock()
			w := p.worker(g, gctx, ev.Client)
			p.mu.Unlock()
			select {
			case w.inbox <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	}()

	p.mu.Lock()
	for _, w := range p.workers {
		close(w.inbox)
	}
	p.mu.Unlock()

	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}
	return producerErr
}

func (p *PerClient) Output() iter.Seq[account.Summary] {
	p.mu.Lock()
	accounts := make(map[uint16]*account.Account, len(p.workers))
	for id, w := range p.workers {
		accounts[id] = w.account
	}
	p.mu.Unlock()
	return collectSummaries(accounts)
}

func (p *PerClient) Stats() Stats {
	snap := p.metrics.Snapshot()
	return Stats{
		EventsProcessed: uint64(snap["ledger_events_processed_total"]),
		AccountsFrozen:  uint64(snap["ledger_accounts_frozen_total"]),
		ParseErrors:     uint64(snap["ledger_parse_errors_total"]),
	}
}
