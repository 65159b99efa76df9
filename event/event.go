// Package event defines the wire-level shape of a single ledger input
// record, shared by the ingestion adapter and the engine dispatcher.
package event

import "github.com/luxfi/ledger/money"

// Type is the tag of an incoming ledger event.
type Type uint8

const (
	// TypeUnknown is the zero value and is never valid on the wire.
	TypeUnknown Type = iota
	TypeDeposit
	TypeWithdrawal
	TypeDispute
	TypeResolve
	TypeChargeback
)

// String renders the event type using the lowercase spelling the CSV
// format uses. Unlike money.Money this carries no sensitive data, so a
// Stringer is fine.
func (t Type) String() string {
	switch t {
	case TypeDeposit:
		return "deposit"
	case TypeWithdrawal:
		return "withdrawal"
	case TypeDispute:
		return "dispute"
	case TypeResolve:
		return "resolve"
	case TypeChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// ParseType maps the lowercase CSV token to a Type. ok is false for any
// unrecognized token.
func ParseType(s string) (Type, bool) {
	switch s {
	case "deposit":
		return TypeDeposit, true
	case "withdrawal":
		return TypeWithdrawal, true
	case "dispute":
		return TypeDispute, true
	case "resolve":
		return TypeResolve, true
	case "chargeback":
		return TypeChargeback, true
	default:
		return TypeUnknown, false
	}
}

// Incoming is a single parsed input record. Amount is present only for
// Deposit and Withdrawal; its zero value (HasAmount=false) represents the
// CSV's empty amount column for Dispute/Resolve/Chargeback rows.
type Incoming struct {
	Type   Type
	Client uint16
	Tx     uint32
	Amount money.Money
	// HasAmount distinguishes "amount column was empty" (false) from
	// "amount column parsed to exactly zero" (true, Amount.IsZero()).
	HasAmount bool
}
