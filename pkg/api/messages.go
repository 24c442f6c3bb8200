// Package api holds the request and response messages of the splitledger.v1 RPC services.
//
// Messages are plain structs encoded with Codec. Amounts in requests are decimals and
// accept either a JSON string ("90.00") or a number; amounts in responses are strings
// with exactly two fraction digits.
package api

import "github.com/shopspring/decimal"

// User is the public view of a registered participant.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// Group is a set of members sharing expenses. Members are user IDs in join order.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

// Split is one participant's owed share of an expense.
type Split struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"user_id"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage,omitempty"`
}

// Expense is an amount paid by one member and divided into splits.
type Expense struct {
	ID          string   `json:"id"`
	GroupID     string   `json:"group_id"`
	Description string   `json:"description"`
	Amount      string   `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	SplitType   string   `json:"split_type"`
	CreatedAt   int64    `json:"created_at"`
	CreatedBy   string   `json:"created_by,omitempty"`
	Splits      []*Split `json:"splits"`
}

// Settlement is a recorded payment from a debtor to a creditor.
type Settlement struct {
	ID         string `json:"id"`
	GroupID    string `json:"group_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
	CreatedAt  int64  `json:"created_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	Note       string `json:"note,omitempty"`
}

// MemberBalance is one member's position within a group.
type MemberBalance struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalPaid   string `json:"total_paid"`
	TotalOwed   string `json:"total_owed"`
	NetBalance  string `json:"net_balance"` // positive = is owed, negative = owes
}

// Transaction is a proposed payment that settles part of a group's debts.
type Transaction struct {
	FromUserID string `json:"from_user_id"`
	FromName   string `json:"from_name"`
	ToUserID   string `json:"to_user_id"`
	ToName     string `json:"to_name"`
	Amount     string `json:"amount"`
}

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// GroupService

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// ListGroupsRequest lists every group, or only the caller's groups when MineOnly is set.
type ListGroupsRequest struct {
	MineOnly bool `json:"mine_only,omitempty"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddGroupMembersRequest struct {
	GroupID string   `json:"group_id"`
	UserIDs []string `json:"user_ids"`
}

type AddGroupMembersResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

// GetGroupBalancesResponse carries the settling transactions both as
// "<debtor> owes <creditor> ₹<amount>" lines and as structured values.
type GetGroupBalancesResponse struct {
	GroupID        string           `json:"group_id"`
	Balances       []string         `json:"balances"`
	MemberBalances []*MemberBalance `json:"member_balances"`
	Transactions   []*Transaction   `json:"transactions"`
	MemberStatus   []string         `json:"member_status"`
}

// ExpenseService

// PreviewSplitRequest computes splits without storing anything.
type PreviewSplitRequest struct {
	Amount       decimal.Decimal   `json:"amount"`
	SplitType    string            `json:"split_type"`
	Participants []string          `json:"participants"`
	Percentages  []decimal.Decimal `json:"percentages,omitempty"`
}

type PreviewSplitResponse struct {
	Splits []*Split `json:"splits"`
}

// CreateExpenseRequest records an expense. Percentages pair 1:1 with Participants
// and are only used when SplitType is "percentage".
type CreateExpenseRequest struct {
	GroupID      string            `json:"group_id"`
	Description  string            `json:"description"`
	Amount       decimal.Decimal   `json:"amount"`
	PaidBy       string            `json:"paid_by"`
	SplitType    string            `json:"split_type"`
	Participants []string          `json:"participants"`
	Percentages  []decimal.Decimal `json:"percentages,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesByGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesByGroupResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type RecordSettlementRequest struct {
	GroupID    string          `json:"group_id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

// UserService

// GetUserBalancesRequest asks for a user's totals across their groups.
// An empty UserID means the authenticated caller.
type GetUserBalancesRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// GetUserBalancesResponse lists the user's totals and, per group, the settling
// transactions the user takes part in.
type GetUserBalancesResponse struct {
	User         *User    `json:"user"`
	TotalPaid    string   `json:"total_paid"`
	TotalOwed    string   `json:"total_owed"`
	NetBalance   string   `json:"net_balance"`
	Transactions []string `json:"transactions"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	GroupCount     int        `json:"group_count"`
	UserCount      int        `json:"user_count"`
	RecentExpenses []*Expense `json:"recent_expenses"`
}
