package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = PackageName + ".UserService"

const (
	UserServiceGetUserBalancesProcedure = "/" + UserServiceName + "/GetUserBalances"
	UserServiceGetDashboardProcedure    = "/" + UserServiceName + "/GetDashboard"
)

// UserServiceHandler is implemented by the server side of UserService.
type UserServiceHandler interface {
	GetUserBalances(context.Context, *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewUserServiceHandler builds an HTTP handler for svc. It returns the path to mount it on.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + UserServiceName + "/", router{
		UserServiceGetUserBalancesProcedure: connect.NewUnaryHandler(UserServiceGetUserBalancesProcedure, svc.GetUserBalances, opts...),
		UserServiceGetDashboardProcedure:    connect.NewUnaryHandler(UserServiceGetDashboardProcedure, svc.GetDashboard, opts...),
	}
}

// UserServiceClient is a client for UserService.
type UserServiceClient interface {
	GetUserBalances(context.Context, *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewUserServiceClient constructs a client for UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &userServiceClient{
		getUserBalances: connect.NewClient[api.GetUserBalancesRequest, api.GetUserBalancesResponse](httpClient, baseURL+UserServiceGetUserBalancesProcedure, opts...),
		getDashboard:    connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+UserServiceGetDashboardProcedure, opts...),
	}
}

type userServiceClient struct {
	getUserBalances *connect.Client[api.GetUserBalancesRequest, api.GetUserBalancesResponse]
	getDashboard    *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
}

func (c *userServiceClient) GetUserBalances(ctx context.Context, req *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	return c.getUserBalances.CallUnary(ctx, req)
}

func (c *userServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) GetUserBalances(context.Context, *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.GetUserBalances is not implemented"))
}

func (UnimplementedUserServiceHandler) GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.GetDashboard is not implemented"))
}
