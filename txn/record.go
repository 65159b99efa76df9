// Package txn implements the per-transaction record state machine: the
// tagged variant an Account keeps for each transaction id it has seen,
// and the legal-transition table between states.
package txn

import (
	"errors"

	"github.com/luxfi/ledger/event"
	"github.com/luxfi/ledger/money"
)

// ErrIllegalTransition is returned by Transition when the requested
// target type is not a legal move from the record's current kind. It is
// a recoverable signal: callers leave the record unchanged and continue.
var ErrIllegalTransition = errors.New("txn: illegal transition")

// Kind tags the two representable, non-terminal states of a transaction
// record. Terminal state is represented by the absence of a record in
// the Account's log (see package account), not by a third Kind value.
type Kind uint8

const (
	// KindDeposit is a recorded deposit that is not currently disputed.
	KindDeposit Kind = iota
	// KindDispute is a deposit whose amount has been moved to held funds
	// pending resolution.
	KindDispute
)

// Record is the current state of a single transaction id within one
// client's account. It is only ever constructed via NewDeposit; no
// exported constructor builds a KindDispute record directly, since the
// only legal way to reach it is through Transition.
type Record struct {
	kind   Kind
	amount money.Money
}

// NewDeposit returns the record stored the moment a fresh deposit is
// accepted.
func NewDeposit(amount money.Money) Record {
	return Record{kind: KindDeposit, amount: amount}
}

// Kind reports the record's current tag.
func (r Record) Kind() Kind { return r.kind }

// Amount reports the amount the record was opened with. This is the
// deposit amount regardless of whether the record is currently disputed.
func (r Record) Amount() money.Money { return r.amount }

// Transition applies target to r and returns the new record to store.
// A nil returned error with terminal=true means the
// record is now terminal and the caller should clear its log slot
// rather than store the returned Record.
//
// Legal transitions (all others return ErrIllegalTransition):
//
//	Deposit --Dispute-->    Dispute
//	Dispute --Resolve-->    terminal
//	Dispute --Chargeback--> terminal
func Transition(r Record, target event.Type) (next Record, terminal bool, err error) {
	switch {
	case r.kind == KindDeposit && target == event.TypeDispute:
		return Record{kind: KindDispute, amount: r.amount}, false, nil
	case r.kind == KindDispute && target == event.TypeResolve:
		return Record{}, true, nil
	case r.kind == KindDispute && target == event.TypeChargeback:
		return Record{}, true, nil
	default:
		return r, false, ErrIllegalTransition
	}
}
