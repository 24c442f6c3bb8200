package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
)

// Places is the number of fraction digits in a currency amount.
const Places = 2

var hundred = decimal.NewFromInt(100)

type options struct {
	percentEpsilon decimal.Decimal
}

// Option tunes ComputeSplits.
type Option func(*options)

// WithPercentEpsilon accepts percentage lists whose sum is within eps of 100.
// The default is zero: percentages must sum to exactly 100.
func WithPercentEpsilon(eps decimal.Decimal) Option {
	return func(o *options) {
		o.percentEpsilon = eps.Abs()
	}
}

// ComputeSplits divides amount among participants according to policy.
//
// For SplitEqual every participant gets amount/n; leftover minor units go one each to
// the first participants in input order. For SplitPercentage, percentages pairs 1:1 with
// participants, each share is amount*p/100 rounded half-up, and any residual cent is
// reconciled by largest remainder. In both cases the shares sum to amount exactly.
//
// Returned splits carry UserID, Amount and (for percentage) Percentage; IDs are left for
// the store to assign.
func ComputeSplits(amount decimal.Decimal, policy models.SplitType, participants []string, percentages []decimal.Decimal, opts ...Option) ([]models.Split, error) {
	o := options{percentEpsilon: decimal.Zero}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}

	switch policy {
	case models.SplitEqual:
		return equalSplits(amount, participants), nil
	case models.SplitPercentage:
		if err := validatePercentages(participants, percentages, o.percentEpsilon); err != nil {
			return nil, err
		}
		return percentageSplits(amount, participants, percentages), nil
	default:
		return nil, &models.ValidationError{Field: "split_type", Reason: fmt.Sprintf("unknown split type %q", policy)}
	}
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !amount.Equal(amount.Truncate(Places)) {
		return &models.ValidationError{Field: "amount", Reason: fmt.Sprintf("at most %d fraction digits allowed", Places)}
	}
	return nil
}

func validateParticipants(participants []string) error {
	if len(participants) == 0 {
		return &models.ValidationError{Field: "participants", Reason: "must have at least one participant"}
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return &models.ValidationError{Field: "participants", Reason: "participant id cannot be empty"}
		}
		if seen[p] {
			return &models.ValidationError{Field: "participants", Reason: fmt.Sprintf("duplicate participant %q", p)}
		}
		seen[p] = true
	}
	return nil
}

func validatePercentages(participants []string, percentages []decimal.Decimal, eps decimal.Decimal) error {
	if len(percentages) != len(participants) {
		return &models.ValidationError{
			Field:  "percentages",
			Reason: fmt.Sprintf("got %d percentages for %d participants", len(percentages), len(participants)),
		}
	}
	total := decimal.Zero
	for _, p := range percentages {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return &models.ValidationError{Field: "percentages", Reason: fmt.Sprintf("percentage %s out of range 0-100", p)}
		}
		total = total.Add(p)
	}
	if total.Sub(hundred).Abs().GreaterThan(eps) {
		return &models.ValidationError{Field: "percentages", Reason: fmt.Sprintf("percentages sum to %s, must be 100", total)}
	}
	return nil
}

// toCents converts a validated amount to a whole number of minor units. The result stays a
// decimal so no amount is too large to split.
func toCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(Places)
}

func fromCents(c decimal.Decimal) decimal.Decimal {
	return c.Shift(-Places)
}

var one = decimal.NewFromInt(1)

func equalSplits(amount decimal.Decimal, participants []string) []models.Split {
	base, rem := toCents(amount).QuoRem(decimal.NewFromInt(int64(len(participants))), 0)
	extra := rem.IntPart() // < len(participants)

	splits := make([]models.Split, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < extra {
			share = share.Add(one)
		}
		splits[i] = models.Split{UserID: p, Amount: fromCents(share)}
	}
	return splits
}

func percentageSplits(amount decimal.Decimal, participants []string, percentages []decimal.Decimal) []models.Split {
	n := len(participants)
	exact := make([]decimal.Decimal, n)
	shares := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i, p := range percentages {
		exact[i] = amount.Mul(p).Shift(-2) // amount * p / 100, exact
		shares[i] = toCents(exact[i].Round(Places))
		sum = sum.Add(shares[i])
	}

	// each share is off by at most half a cent, so the residual is below n cents
	if residual := toCents(amount).Sub(sum).IntPart(); residual != 0 {
		reconcile(shares, exact, residual)
	}

	splits := make([]models.Split, n)
	for i, p := range participants {
		splits[i] = models.Split{
			UserID:     p,
			Amount:     fromCents(shares[i]),
			Percentage: decimal.NewNullDecimal(percentages[i]),
		}
	}
	return splits
}

// reconcile moves residual cents onto (or off) the shares whose rounding lost (or gained)
// the most, one cent at a time. Ties keep input order.
func reconcile(shares []decimal.Decimal, exact []decimal.Decimal, residual int64) {
	step := int64(1)
	if residual < 0 {
		step = -1
	}
	delta := decimal.NewFromInt(step)

	// gap > 0 means the share was rounded down; that share is first in line for a positive
	// residual and last in line for a negative one.
	gap := make([]decimal.Decimal, len(shares))
	order := make([]int, len(shares))
	for i := range shares {
		gap[i] = exact[i].Sub(fromCents(shares[i])).Mul(delta)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return gap[order[a]].GreaterThan(gap[order[b]])
	})

	for residual != 0 {
		moved := false
		for _, i := range order {
			if residual == 0 {
				break
			}
			if step < 0 && shares[i].IsZero() {
				continue
			}
			shares[i] = shares[i].Add(delta)
			residual -= step
			moved = true
		}
		if !moved {
			return
		}
	}
}
