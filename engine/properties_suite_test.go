package engine_test

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/ledger/account"
	"github.com/luxfi/ledger/engine"
	"github.com/luxfi/ledger/event"
	"github.com/luxfi/ledger/money"
)

func TestProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "engine property suite")
}

// randomEvents generates a pseudo-random, deterministic (seeded) mix
// of events across a small pool of clients and tx ids, used to check
// that the three engine flavors agree on arbitrary input, not just the
// hand-picked scenarios in engine_test.go.
func randomEvents(seed int64, n int) []event.Incoming {
	r := rand.New(rand.NewSource(seed))
	clients := []uint16{1, 2, 3}
	txs := []uint32{1, 2, 3, 4, 5}
	kinds := []event.Type{event.TypeDeposit, event.TypeWithdrawal, event.TypeDispute, event.TypeResolve, event.TypeChargeback}

	events := make([]event.Incoming, 0, n)
	for i := 0; i < n; i++ {
		typ := kinds[r.Intn(len(kinds))]
		ev := event.Incoming{Type: typ, Client: clients[r.Intn(len(clients))], Tx: txs[r.Intn(len(txs))]}
		if typ == event.TypeDeposit || typ == event.TypeWithdrawal {
			ev.Amount = money.MustParse(fmt.Sprintf("%d.%02d", r.Intn(20), r.Intn(100)))
			ev.HasAmount = true
		}
		events = append(events, ev)
	}
	return events
}

func seqFrom(events []event.Incoming) engine.Source {
	return func(yield func(event.Incoming, error) bool) {
		for _, ev := range events {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

func summariesOf(eng engine.Engine) []account.Summary {
	var out []account.Summary
	for s := range eng.Output() {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

var _ = Describe("cross-flavor agreement", func() {
	It("produces identical summary sets for Basic, Sharded, and PerClient on the same input", func() {
		for seed := int64(0); seed < 25; seed++ {
			events := randomEvents(seed, 60)

			basic := engine.NewBasic()
			Expect(basic.Process(context.Background(), seqFrom(events))).To(Succeed())

			sharded := engine.NewSharded(3)
			Expect(sharded.Process(context.Background(), seqFrom(events))).To(Succeed())

			perClient := engine.NewPerClient()
			Expect(perClient.Process(context.Background(), seqFrom(events))).To(Succeed())

			want := summariesOf(basic)
			Expect(summariesOf(sharded)).To(Equal(want), "seed %d", seed)
			Expect(summariesOf(perClient)).To(Equal(want), "seed %d", seed)
		}
	})
})

var _ = Describe("account invariants", func() {
	It("never lets held go negative", func() {
		for seed := int64(100); seed < 110; seed++ {
			eng := engine.NewBasic()
			Expect(eng.Process(context.Background(), seqFrom(randomEvents(seed, 40)))).To(Succeed())
			for s := range eng.Output() {
				Expect(money.Cmp(s.Held, money.Zero)).To(BeNumerically(">=", 0))
				Expect(money.Cmp(s.Available, money.Zero)).To(BeNumerically(">=", 0))
			}
		}
	})

	It("freezes terminally: a locked account's fields never change again", func() {
		eng := engine.NewBasic()
		events := []event.Incoming{
			{Type: event.TypeDeposit, Client: 1, Tx: 1, Amount: money.MustParse("10"), HasAmount: true},
			{Type: event.TypeDispute, Client: 1, Tx: 1},
			{Type: event.TypeChargeback, Client: 1, Tx: 1},
		}
		Expect(eng.Process(context.Background(), seqFrom(events))).To(Succeed())

		before := summariesOf(eng)
		more := []event.Incoming{
			{Type: event.TypeDeposit, Client: 1, Tx: 2, Amount: money.MustParse("500"), HasAmount: true},
			{Type: event.TypeWithdrawal, Client: 1, Tx: 3, Amount: money.MustParse("1"), HasAmount: true},
		}
		Expect(eng.Process(context.Background(), seqFrom(more))).To(Succeed())
		after := summariesOf(eng)

		Expect(after).To(Equal(before))
	})
})
