package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/auth"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/events"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/middleware"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage/sqlite"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.Name
	}
	return names
}

// testServer runs every ledger service behind the same interceptors as cmd/server.
type testServer struct {
	auth      apiconnect.AuthServiceClient
	groups    apiconnect.GroupServiceClient
	expenses  apiconnect.ExpenseServiceClient
	users     apiconnect.UserServiceClient
	published *recordingPublisher
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	published := &recordingPublisher{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, auth.WithBcryptCost(bcrypt.MinCost))

	opts := []Option{WithLogger(logger), WithPublisher(published)}
	interceptors := connect.WithInterceptors(
		middleware.Authenticate(jwtManager, PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, opts...),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, opts...), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, opts...), interceptors))
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store, opts...), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		auth:      apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		groups:    apiconnect.NewGroupServiceClient(server.Client(), server.URL),
		expenses:  apiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		users:     apiconnect.NewUserServiceClient(server.Client(), server.URL),
		published: published,
	}
}

type member struct {
	ID    string
	Token string
}

// register signs up a user whose email is derived from name.
func (s *testServer) register(t *testing.T, name string) member {
	t.Helper()
	resp, err := s.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       name + "@example.com",
		Password:    "password123",
		DisplayName: name,
	}))
	require.NoError(t, err)
	return member{ID: resp.Msg.User.ID, Token: resp.Msg.Token}
}

// as builds a request carrying m's token.
func as[T any](m member, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if m.Token != "" {
		req.Header().Set("Authorization", "Bearer "+m.Token)
	}
	return req
}

// trio registers Alice, Bob and Carol and lets Alice create a group holding all three.
func (s *testServer) trio(t *testing.T) (alice, bob, carol member, groupID string) {
	t.Helper()
	alice = s.register(t, "Alice")
	bob = s.register(t, "Bob")
	carol = s.register(t, "Carol")

	resp, err := s.groups.CreateGroup(context.Background(), as(alice, &api.CreateGroupRequest{
		Name:    "Goa Trip",
		Members: []string{bob.ID, carol.ID},
	}))
	require.NoError(t, err)
	return alice, bob, carol, resp.Msg.Group.ID
}

func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
