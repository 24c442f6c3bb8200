// Package models defines the domain models for the expense ledger.
//
// # Models
//
//   - User: a participant who can pay or owe money within a group
//   - Group: a set of members sharing expenses; member order is join order
//   - Expense: an amount paid by one member, divided into Splits by a split policy
//   - Split: one member's owed share of an Expense
//   - Settlement: a recorded payment between two members that clears debt
//
// # Money
//
// All amounts are decimal.Decimal values with two fraction digits. Amounts are never
// represented as float64, so sums of shares and balances are exact.
//
// # Relationships
//
// Models refer to each other by ID strings instead of pointers. An Expense owns its Splits:
// deleting the expense deletes them. Users are referenced, never owned.
package models
