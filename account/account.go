// Package account implements the per-client ledger state machine:
// available/held balances, the frozen flag, and the per-transaction log
// that tracks which transaction ids this client has already seen.
package account

import (
	"errors"

	"github.com/luxfi/ledger/event"
	"github.com/luxfi/ledger/money"
	"github.com/luxfi/ledger/txn"
)

// Status is the lifecycle state of an Account. Frozen is absorbing.
type Status uint8

const (
	StatusActive Status = iota
	StatusFrozen
)

// Result is the two-valued outcome of Apply, replacing the
// error-as-control-flow rendering of the original implementation (see
// DESIGN.md's Open Question notes) with a plain enum the caller switches
// on.
type Result uint8

const (
	// ResultOK means the event was accepted or legitimately ignored; the
	// caller keeps routing further events to this account.
	ResultOK Result = iota
	// ResultFrozen means this call (or a previous one) transitioned the
	// account to Frozen; the caller must stop routing events to it.
	ResultFrozen
)

// logSlot is a present-but-possibly-empty entry in an Account's
// transaction log. A present slot with ok=false marks a transaction id
// that has reached a terminal state (a successful withdrawal or a
// resolved dispute) and must never be disputed again, while still
// rejecting reuse of that id for a new deposit. A chargeback clears the
// whole log instead of marking a slot.
type logSlot struct {
	record txn.Record
	ok     bool
}

// Account is the per-client ledger state machine. It is never shared
// across goroutines; every Engine flavor partitions accounts by client
// id so that Apply never needs a lock.
type Account struct {
	id        uint16
	status    Status
	available money.Money
	held      money.Money
	log       map[uint32]logSlot
}

// New returns a fresh, active account for the given client id.
func New(id uint16) *Account {
	return &Account{
		id:  id,
		log: make(map[uint32]logSlot),
	}
}

// ID returns the client id this account belongs to.
func (a *Account) ID() uint16 { return a.id }

// Locked reports whether the account is frozen.
func (a *Account) Locked() bool { return a.status == StatusFrozen }

// Available returns the current available balance.
func (a *Account) Available() money.Money { return a.available }

// Held returns the current held balance.
func (a *Account) Held() money.Money { return a.held }

// Summary is the AccountSummary snapshot emitted at finalize time.
type Summary struct {
	Client    uint16
	Available money.Money
	Held      money.Money
	Total     money.Money
	Locked    bool
}

// Summarize returns the current state as an output row. Total is derived
// at call time, never stored redundantly on the Account itself.
func (a *Account) Summarize() (Summary, error) {
	total, err := money.Add(a.available, a.held)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Client:    a.id,
		Available: a.available,
		Held:      a.held,
		Total:     total,
		Locked:    a.Locked(),
	}, nil
}

// Apply advances the account's state machine by one event. The event's
// Client field is the caller's responsibility to have already routed
// to this Account; Apply does not re-check it.
func (a *Account) Apply(ev event.Incoming) (Result, error) {
	if a.status == StatusFrozen {
		return ResultFrozen, nil
	}

	slot, known := a.log[ev.Tx]
	if !known {
		return a.applyFresh(ev)
	}
	if !slot.ok {
		// Terminal tx id: further events on it are ignored.
		return ResultOK, nil
	}
	return a.applyToRecord(ev, slot.record)
}

// applyFresh handles an event referencing a transaction id never before
// seen by this client.
func (a *Account) applyFresh(ev event.Incoming) (Result, error) {
	switch ev.Type {
	case event.TypeDeposit:
		if !ev.HasAmount {
			return ResultOK, nil // malformed input: ignore
		}
		sum, err := money.Add(a.available, ev.Amount)
		if err != nil {
			return ResultOK, err
		}
		a.available = sum
		a.log[ev.Tx] = logSlot{record: txn.NewDeposit(ev.Amount), ok: true}
		return ResultOK, nil

	case event.TypeWithdrawal:
		if !ev.HasAmount {
			return ResultOK, nil // malformed input: ignore
		}
		if !money.GreaterThanOrEqual(a.available, ev.Amount) {
			// Insufficient funds: no state change, and — preserving the
			// source's observed (if surprising) behavior — the tx id is
			// NOT recorded, so a later retry with sufficient funds can
			// still succeed. See DESIGN.md Open Question.
			return ResultOK, nil
		}
		diff, err := money.Sub(a.available, ev.Amount)
		if err != nil {
			return ResultOK, err
		}
		a.available = diff
		a.log[ev.Tx] = logSlot{ok: false} // terminal immediately
		return ResultOK, nil

	case event.TypeDispute, event.TypeResolve, event.TypeChargeback:
		// No referent transaction exists for this client: ignore.
		return ResultOK, nil

	default:
		return ResultOK, nil
	}
}

// applyToRecord handles an event referencing a known, non-terminal
// transaction id whose current state is record.
func (a *Account) applyToRecord(ev event.Incoming, record txn.Record) (Result, error) {
	if ev.Type == event.TypeDeposit || ev.Type == event.TypeWithdrawal {
		// Duplicate tx id on a known, still-open record: ignore.
		return ResultOK, nil
	}

	next, terminal, err := txn.Transition(record, ev.Type)
	if err != nil {
		if errors.Is(err, txn.ErrIllegalTransition) {
			return ResultOK, nil // leave record intact
		}
		return ResultOK, err
	}

	switch {
	case !terminal && next.Kind() == txn.KindDispute:
		diff, err := money.Sub(a.available, next.Amount())
		if err != nil {
			return ResultOK, err
		}
		sum, err := money.Add(a.held, next.Amount())
		if err != nil {
			return ResultOK, err
		}
		a.available = diff
		a.held = sum
		a.log[ev.Tx] = logSlot{record: next, ok: true}
		return ResultOK, nil

	case terminal && ev.Type == event.TypeResolve:
		diff, err := money.Sub(a.held, record.Amount())
		if err != nil {
			return ResultOK, err
		}
		sum, err := money.Add(a.available, record.Amount())
		if err != nil {
			return ResultOK, err
		}
		a.held = diff
		a.available = sum
		a.log[ev.Tx] = logSlot{ok: false}
		return ResultOK, nil

	case terminal && ev.Type == event.TypeChargeback:
		diff, err := money.Sub(a.held, record.Amount())
		if err != nil {
			return ResultOK, err
		}
		a.held = diff
		a.status = StatusFrozen
		// Memory optimization justified by terminality: once frozen, no
		// further event will ever be looked up in this log again.
		a.log = nil
		return ResultFrozen, nil

	default:
		return ResultOK, nil
	}
}
