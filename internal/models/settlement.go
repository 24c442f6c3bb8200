package models

import "github.com/shopspring/decimal"

// Settlement is money handed from a debtor to a creditor outside the ledger, recorded so
// that it offsets what they owe each other. It counts as the sender having paid and the
// receiver having been paid back.
type Settlement struct {
	ID      string
	GroupID string

	FromUserID string // debtor
	ToUserID   string // creditor
	Amount     decimal.Decimal

	CreatedAt int64  // unix seconds
	CreatedBy string // user who recorded it; may differ from either party
	Note      string
}

// Validate checks the parties and the amount. Group membership is checked by the caller.
func (s *Settlement) Validate() error {
	switch {
	case s.GroupID == "":
		return &ValidationError{Field: "group_id", Reason: "is required"}
	case s.FromUserID == "":
		return &ValidationError{Field: "from_user_id", Reason: "is required"}
	case s.ToUserID == "":
		return &ValidationError{Field: "to_user_id", Reason: "is required"}
	case s.FromUserID == s.ToUserID:
		return &ValidationError{Field: "to_user_id", Reason: "cannot settle with yourself"}
	case !s.Amount.IsPositive():
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	case !s.Amount.Equal(s.Amount.Truncate(2)):
		return &ValidationError{Field: "amount", Reason: "at most 2 fraction digits allowed"}
	}
	return nil
}
