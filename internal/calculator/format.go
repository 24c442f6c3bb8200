package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency glyph used in balance lines.
const DefaultSymbol = "₹"

// Formatter renders transactions and balances as human-readable lines.
type Formatter struct {
	// Symbol prefixes every amount. Empty means DefaultSymbol.
	Symbol string

	// Names maps participant IDs to display names. Unknown IDs are printed as-is.
	Names map[string]string
}

func (f Formatter) symbol() string {
	if f.Symbol == "" {
		return DefaultSymbol
	}
	return f.Symbol
}

func (f Formatter) name(id string) string {
	if n, ok := f.Names[id]; ok && n != "" {
		return n
	}
	return id
}

// Money renders an amount with the currency glyph and exactly two fraction digits.
func (f Formatter) Money(d decimal.Decimal) string {
	return f.symbol() + d.StringFixed(Places)
}

// Transaction renders "<debtor> owes <creditor> ₹<amount>".
func (f Formatter) Transaction(tx Transaction) string {
	return fmt.Sprintf("%s owes %s %s", f.name(tx.From), f.name(tx.To), f.Money(tx.Amount))
}

// Transactions renders every transaction in order.
func (f Formatter) Transactions(txs []Transaction) []string {
	lines := make([]string, len(txs))
	for i, tx := range txs {
		lines[i] = f.Transaction(tx)
	}
	return lines
}

// MemberStatus renders one member's standing in a group:
// "<name> owes ₹x", "<name> is owed ₹x" or "<name> is settled up".
func (f Formatter) MemberStatus(id string, net decimal.Decimal) string {
	switch net.Sign() {
	case -1:
		return fmt.Sprintf("%s owes %s", f.name(id), f.Money(net.Abs()))
	case 1:
		return fmt.Sprintf("%s is owed %s", f.name(id), f.Money(net))
	default:
		return fmt.Sprintf("%s is settled up", f.name(id))
	}
}
