package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kritanta/cartmates/internal/auth"
	"github.com/kritanta/cartmates/internal/email"
	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
	"github.com/kritanta/cartmates/internal/storage/sqlite"
)

type testEnv struct {
	store      storage.Store
	jwt        *auth.JWTManager
	activities *ActivityService
	groups     *GroupService
	invites    *InviteService
	items      *ItemService
	auth       *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cartmates-svc-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	activities := NewActivityService(store)
	groups := NewGroupService(store, activities)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store:      store,
		jwt:        jwtManager,
		activities: activities,
		groups:     groups,
		invites:    NewInviteService(store, groups),
		items:      NewItemService(store, activities),
		auth: NewAuthService(
			auth.NewPasswordAuthenticator(store),
			jwtManager, store, groups,
			email.LogMailer{}, "http://localhost:3000", logger,
		),
	}
}

// register creates an account through the real registration path so each test
// user comes with a linked personal group.
func (e *testEnv) register(t *testing.T, username, emailAddr string) *Session {
	t.Helper()
	session, err := e.auth.Register(context.Background(), username, emailAddr, "password123")
	require.NoError(t, err)
	return session
}

func (e *testEnv) sharedGroup(t *testing.T, ownerID, name string) *models.Group {
	t.Helper()
	group, err := e.groups.Create(context.Background(), ownerID, name, false)
	require.NoError(t, err)
	return group
}

// groupActivities reads the raw activity log, bypassing membership checks.
func (e *testEnv) groupActivities(t *testing.T, groupID string) []*models.Activity {
	t.Helper()
	activities, err := e.store.ListActivities(context.Background(), groupID, 0, 100)
	require.NoError(t, err)
	return activities
}

func countActions(activities []*models.Activity, action models.Action) int {
	n := 0
	for _, a := range activities {
		if a.Action == action {
			n++
		}
	}
	return n
}
