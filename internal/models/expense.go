package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType is the rule used to divide an expense among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly; leftover minor units go to the first participants.
	SplitEqual SplitType = "equal"
	// SplitPercentage divides the amount by per-participant percentages summing to 100.
	SplitPercentage SplitType = "percentage"
)

// ParseSplitType converts a wire value into a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	switch SplitType(s) {
	case SplitEqual, SplitPercentage:
		return SplitType(s), nil
	default:
		return "", &ValidationError{Field: "split_type", Reason: fmt.Sprintf("unknown split type %q", s)}
	}
}

// Expense is an amount paid by one member of a group and shared among participants.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g. "Dinner").
	Description string

	// Amount is the total paid, with two fraction digits.
	Amount decimal.Decimal

	// PaidBy is the user ID of the payer.
	PaidBy string

	// SplitType is the policy that produced the Splits.
	SplitType SplitType

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// CreatedBy is the authenticated user who recorded the expense, if any.
	CreatedBy string

	// Splits are the owed shares. They always sum to Amount.
	Splits []Split
}

// Split is one participant's owed share of an expense.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the participant who owes Amount.
	UserID string

	// Amount is the owed share, with two fraction digits.
	Amount decimal.Decimal

	// Percentage is set only for percentage splits.
	Percentage decimal.NullDecimal
}
