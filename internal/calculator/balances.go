package calculator

import (
	"github.com/shopspring/decimal"
)

// Totals is an insertion-ordered map of participant ID to amount.
// Order is significant: ReduceToTransactions pairs debtors and creditors in the order
// participants were first added.
type Totals struct {
	order  []string
	values map[string]decimal.Decimal
}

// NewTotals returns an empty Totals.
func NewTotals() *Totals {
	return &Totals{values: make(map[string]decimal.Decimal)}
}

// Touch registers id with a zero amount if it is not present yet.
func (t *Totals) Touch(id string) {
	if _, ok := t.values[id]; !ok {
		t.order = append(t.order, id)
		t.values[id] = decimal.Zero
	}
}

// Add accumulates amount for id.
func (t *Totals) Add(id string, amount decimal.Decimal) {
	t.Touch(id)
	t.values[id] = t.values[id].Add(amount)
}

// Get returns the amount for id, zero if absent.
func (t *Totals) Get(id string) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if v, ok := t.values[id]; ok {
		return v
	}
	return decimal.Zero
}

// Keys returns participant IDs in insertion order.
func (t *Totals) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of participants.
func (t *Totals) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Sum returns the sum of all amounts.
func (t *Totals) Sum() decimal.Decimal {
	sum := decimal.Zero
	if t == nil {
		return sum
	}
	for _, id := range t.order {
		sum = sum.Add(t.values[id])
	}
	return sum
}

// NetBalance is a participant's paid total minus owed total.
// Positive means the participant is owed money, negative means they owe money.
type NetBalance struct {
	ParticipantID string
	Amount        decimal.Decimal
}

// Transaction is a proposed payment from a debtor to a creditor.
type Transaction struct {
	From   string // debtor
	To     string // creditor
	Amount decimal.Decimal
}

// ComputeNetBalances returns paid - owed for the union of participants in paid and owed,
// rounded to currency precision. Participants keep paid's order, followed by owed-only
// participants in owed's order.
func ComputeNetBalances(paid, owed *Totals) []NetBalance {
	keys := paid.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range owed.Keys() {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	balances := make([]NetBalance, len(keys))
	for i, k := range keys {
		balances[i] = NetBalance{
			ParticipantID: k,
			Amount:        paid.Get(k).Sub(owed.Get(k)).Round(Places),
		}
	}
	return balances
}

// ReduceToTransactions turns net balances into point-to-point payments.
//
// It scans debtors in input order and, for each, creditors in input order, settling
// min(|debt|, credit) whenever both still have an outstanding amount. The result is
// deterministic and conserves every balance exactly, but it is not guaranteed to use the
// fewest possible transactions.
func ReduceToTransactions(balances []NetBalance) []Transaction {
	working := make([]decimal.Decimal, len(balances))
	for i, b := range balances {
		working[i] = b.Amount
	}

	var txs []Transaction
	for i := range balances {
		for j := range balances {
			if !working[i].IsNegative() {
				break
			}
			if !working[j].IsPositive() {
				continue
			}
			amount := decimal.Min(working[i].Neg(), working[j])
			txs = append(txs, Transaction{
				From:   balances[i].ParticipantID,
				To:     balances[j].ParticipantID,
				Amount: amount,
			})
			working[i] = working[i].Add(amount)
			working[j] = working[j].Sub(amount)
		}
	}
	return txs
}

// ExpenseForBalance is an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PaidBy string
	Amount decimal.Decimal
	Splits []SplitForBalance
}

// SplitForBalance is one owed share of an expense.
type SplitForBalance struct {
	UserID string
	Amount decimal.Decimal
}

// SettlementForBalance represents a settlement with the minimal information needed for balance calculations.
type SettlementForBalance struct {
	FromUserID string // Who paid (debtor settling up)
	ToUserID   string // Who received (creditor being paid)
	Amount     decimal.Decimal
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID   string
	TotalPaid  decimal.Decimal // Expenses paid plus settlements sent
	TotalOwed  decimal.Decimal // Split shares plus settlements received
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// Aggregate folds expenses and settlements into paid and owed totals.
// Members are registered first, in order, so they lead the insertion order.
//
// - For each expense: the payer paid the amount, each split's user owes their share
// - For each settlement: the sender counts as having paid, the receiver as having been paid
func Aggregate(members []string, expenses []ExpenseForBalance, settlements []SettlementForBalance) (paid, owed *Totals) {
	paid, owed = NewTotals(), NewTotals()
	for _, m := range members {
		paid.Touch(m)
		owed.Touch(m)
	}

	for _, e := range expenses {
		paid.Add(e.PaidBy, e.Amount)
		for _, s := range e.Splits {
			owed.Add(s.UserID, s.Amount)
		}
	}

	for _, s := range settlements {
		paid.Add(s.FromUserID, s.Amount)
		owed.Add(s.ToUserID, s.Amount)
	}
	return paid, owed
}

// CalculateGroupBalances computes per-member balances and the settlement transactions
// for a closed group snapshot. Balances are returned in member order.
func CalculateGroupBalances(members []string, expenses []ExpenseForBalance, settlements []SettlementForBalance) ([]MemberBalance, []Transaction) {
	paid, owed := Aggregate(members, expenses, settlements)
	nets := ComputeNetBalances(paid, owed)

	memberBalances := make([]MemberBalance, len(nets))
	for i, n := range nets {
		memberBalances[i] = MemberBalance{
			MemberID:   n.ParticipantID,
			TotalPaid:  paid.Get(n.ParticipantID),
			TotalOwed:  owed.Get(n.ParticipantID),
			NetBalance: n.Amount,
		}
	}
	return memberBalances, ReduceToTransactions(nets)
}

// UserSummary is one user's totals across every group they belong to.
type UserSummary struct {
	UserID     string
	TotalPaid  decimal.Decimal
	TotalOwed  decimal.Decimal
	NetBalance decimal.Decimal
}

// CalculateUserSummary totals what userID paid and owes across the given expenses and
// settlements. Only the user's own payments and shares count.
func CalculateUserSummary(userID string, expenses []ExpenseForBalance, settlements []SettlementForBalance) UserSummary {
	paid, owed := Aggregate([]string{userID}, expenses, settlements)
	return UserSummary{
		UserID:     userID,
		TotalPaid:  paid.Get(userID),
		TotalOwed:  owed.Get(userID),
		NetBalance: paid.Get(userID).Sub(owed.Get(userID)).Round(Places),
	}
}
