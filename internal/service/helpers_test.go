package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forum/backend/internal/auth"
	"forum/backend/internal/database/dbtest"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

type notification struct {
	UserID uint
	Event  hub.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Notify(userID uint, event hub.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{UserID: userID, Event: event})
}

func (n *recordingNotifier) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.events...)
}

type testEnv struct {
	db       *gorm.DB
	svc      *Services
	notifier *recordingNotifier
	ctx      context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.NewDB(t)
	notifier := &recordingNotifier{}
	svc := New(db, notifier)
	svc.Auth.hashCost = bcrypt.MinCost
	return &testEnv{db: db, svc: svc, notifier: notifier, ctx: context.Background()}
}

func (e *testEnv) user(t *testing.T, username string, role models.Role) auth.Caller {
	t.Helper()
	hash, err := HashPassword("password", bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role}
	require.NoError(t, e.db.Create(&u).Error)
	return auth.Caller{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (e *testEnv) member(t *testing.T, username string) auth.Caller {
	return e.user(t, username, models.RoleMember)
}

func (e *testEnv) category(t *testing.T, name string) uint {
	t.Helper()
	c, err := e.svc.Categories.Create(e.ctx, CategoryInput{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (e *testEnv) post(t *testing.T, author auth.Caller, title string, categoryIDs ...uint) uint {
	t.Helper()
	p, err := e.svc.Posts.Create(e.ctx, author.ID, PostInput{Title: title, CategoryIDs: categoryIDs})
	require.NoError(t, err)
	return p.ID
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
