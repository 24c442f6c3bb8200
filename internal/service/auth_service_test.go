package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
)

func TestAuthService(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	alice := s.register(t, "Alice")
	assert.NotEmpty(t, alice.ID)
	assert.NotEmpty(t, alice.Token)

	t.Run("login is case insensitive on email", func(t *testing.T) {
		resp, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email:    "ALICE@example.com",
			Password: "password123",
		}))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, resp.Msg.User.ID)
		assert.NotEmpty(t, resp.Msg.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email:    "alice@example.com",
			Password: "not-the-password",
		}))
		requireCode(t, connect.CodeUnauthenticated, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com"}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email:       "alice@example.com",
			Password:    "password123",
			DisplayName: "Other Alice",
		}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email:       "dave@example.com",
			Password:    "short",
			DisplayName: "Dave",
		}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("current user", func(t *testing.T) {
		resp, err := s.auth.GetCurrentUser(ctx, as(alice, &api.GetCurrentUserRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "Alice", resp.Msg.User.DisplayName)
		assert.Equal(t, "alice@example.com", resp.Msg.User.Email)
	})

	t.Run("current user without token", func(t *testing.T) {
		_, err := s.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		requireCode(t, connect.CodeUnauthenticated, err)
	})
}
