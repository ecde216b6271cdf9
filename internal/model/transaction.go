package model

import (
	"github.com/shopspring/decimal"
)

// Direction says whether money came in or went out.
type Direction string

const (
	// DirectionIncome represents money received.
	DirectionIncome Direction = "income"
	// DirectionExpense represents money spent.
	DirectionExpense Direction = "expense"
)

// UnknownCounterparty is used when no counterparty can be read from a message.
const UnknownCounterparty = "Unknown"

// Transaction is a transaction extracted from a notification message.
type Transaction struct {
	Raw          string // Original message text
	Counterparty string
	Direction    Direction
	Amount       decimal.Decimal
}

// RawRecord is one ledger line before its amount has been validated.
type RawRecord struct {
	Date        string
	Description string
	Amount      string
}

// ExpenseRecord is a validated expense line. Category stays empty until the
// record has been classified.
type ExpenseRecord struct {
	Description string
	Category    string
	Amount      decimal.Decimal
}

// IsClassified reports whether a category has been assigned.
func (r ExpenseRecord) IsClassified() bool {
	return r.Category != ""
}

// AsExpense turns an outgoing transaction into an expense record keyed by its
// counterparty. Income transactions return false.
func (t Transaction) AsExpense() (ExpenseRecord, bool) {
	if t.Direction != DirectionExpense {
		return ExpenseRecord{}, false
	}
	return ExpenseRecord{
		Description: t.Counterparty,
		Amount:      t.Amount,
	}, true
}
