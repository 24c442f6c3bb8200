package service

import (
	"context"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/calculator"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	settings
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, opts ...Option) *GroupService {
	return &GroupService{settings: newSettings(opts), store: store}
}

// CreateGroup creates a new group with the requested members in order. A caller
// missing from the list joins first.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	s.logger.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if err := requireField("name", name); err != nil {
		return nil, toConnectError(s.logger, "CreateGroup", err)
	}

	members := req.Msg.Members
	if caller := callerID(ctx); caller != "" && !slices.Contains(members, caller) {
		members = append([]string{caller}, members...)
	}

	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, toConnectError(s.logger, "CreateGroup", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "GetGroup", err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetGroup", err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups, or the caller's groups when MineOnly is set.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	var (
		groups []*models.Group
		err    error
	)
	if req.Msg.MineOnly {
		caller := callerID(ctx)
		if caller == "" {
			return nil, toConnectError(s.logger, "ListGroups", errUnauthenticated)
		}
		groups, err = s.store.ListGroupsForUser(ctx, caller)
	} else {
		groups, err = s.store.ListGroups(ctx)
	}
	if err != nil {
		return nil, toConnectError(s.logger, "ListGroups", err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	s.logger.Debug("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddGroupMembers appends users to a group in the given order.
func (s *GroupService) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	s.logger.Info("AddGroupMembers request received",
		"group_id", req.Msg.GroupID,
		"users", len(req.Msg.UserIDs),
	)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "AddGroupMembers", err)
	}

	group, err := s.store.AddGroupMembers(ctx, req.Msg.GroupID, req.Msg.UserIDs)
	if err != nil {
		return nil, toConnectError(s.logger, "AddGroupMembers", err)
	}

	return connect.NewResponse(&api.AddGroupMembersResponse{Group: toAPIGroup(group)}), nil
}

// DeleteGroup removes a group with everything recorded in it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	s.logger.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "DeleteGroup", err)
	}
	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "DeleteGroup", err)
	}

	s.logger.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances computes every member's net position from a consistent snapshot of
// the group, and the payments that would settle the group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	s.logger.Info("GetGroupBalances request received", "group_id", groupID)

	if err := requireField("group_id", groupID); err != nil {
		return nil, toConnectError(s.logger, "GetGroupBalances", err)
	}

	ledger, err := s.store.GroupLedger(ctx, groupID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetGroupBalances", err)
	}

	users, err := s.store.GetUsersByIDs(ctx, ledger.Group.Members)
	if err != nil {
		return nil, toConnectError(s.logger, "GetGroupBalances", err)
	}
	f := s.formatter
	f.Names = displayNames(users)

	expenses, settlements := forBalance(ledger.Expenses, ledger.Settlements)
	balances, txs := calculator.CalculateGroupBalances(ledger.Group.Members, expenses, settlements)

	resp := &api.GetGroupBalancesResponse{
		GroupID:        groupID,
		Balances:       f.Transactions(txs),
		MemberBalances: make([]*api.MemberBalance, len(balances)),
		Transactions:   make([]*api.Transaction, len(txs)),
		MemberStatus:   make([]string, len(balances)),
	}
	for i, b := range balances {
		resp.MemberBalances[i] = &api.MemberBalance{
			UserID:      b.MemberID,
			DisplayName: f.Names[b.MemberID],
			TotalPaid:   money(b.TotalPaid),
			TotalOwed:   money(b.TotalOwed),
			NetBalance:  money(b.NetBalance),
		}
		resp.MemberStatus[i] = f.MemberStatus(b.MemberID, b.NetBalance)
	}
	for i, tx := range txs {
		resp.Transactions[i] = &api.Transaction{
			FromUserID: tx.From,
			FromName:   f.Names[tx.From],
			ToUserID:   tx.To,
			ToName:     f.Names[tx.To],
			Amount:     money(tx.Amount),
		}
	}

	s.logger.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses", len(ledger.Expenses),
		"settlements", len(ledger.Settlements),
		"transactions", len(txs),
	)
	return connect.NewResponse(resp), nil
}
