package dao

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"uiforge/uiforge/sources/psql"
	"uiforge/uiforge/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := psql.Open(context.Background(), sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(db.Close)
	return db.DB
}

func mustUser(t *testing.T, users *UserDAO, email string) *models.User {
	t.Helper()
	u, err := users.CreateUser(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := NewUserDAO(setupDB(t))
	mustUser(t, users, "a@example.com")

	_, err := users.CreateUser(context.Background(), "a@example.com", "other")
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestGetUserByEmailMissing(t *testing.T) {
	users := NewUserDAO(setupDB(t))
	u, err := users.GetUserByEmail(context.Background(), "nobody@example.com")
	if err != nil || u != nil {
		t.Fatalf("expected nil, nil; got %v, %v", u, err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := setupDB(t)
	users := NewUserDAO(db)
	sessions := NewSessionDAO(db)
	ctx := context.Background()
	owner := mustUser(t, users, "owner@example.com")

	s, err := sessions.CreateSession(ctx, owner.ID, "Landing page")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if s.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	s.Chat = models.NewChat([]models.ChatMessage{{Role: models.RoleUser, Content: "a button", Timestamp: time.Now().UTC()}})
	s.Code = models.NewCode(models.Code{MarkupText: "<button/>", StyleText: "button{}"})
	s.UIState = models.NewUIState(map[string]interface{}{"tab": "style"})
	if err := sessions.SaveSession(ctx, s); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, err := sessions.GetSession(ctx, owner.ID, s.ID)
	if err != nil || got == nil {
		t.Fatalf("get session: %v, %v", got, err)
	}
	if len(got.Chat) != 1 || got.Chat[0].Content != "a button" {
		t.Errorf("unexpected chat %+v", got.Chat)
	}
	if got.Code.Data().MarkupText != "<button/>" {
		t.Errorf("unexpected code %+v", got.Code.Data())
	}
	if got.UIState["tab"] != "style" {
		t.Errorf("unexpected ui state %v", got.UIState)
	}
}

func TestSessionOwnerScoping(t *testing.T) {
	db := setupDB(t)
	users := NewUserDAO(db)
	sessions := NewSessionDAO(db)
	ctx := context.Background()
	a := mustUser(t, users, "a@example.com")
	b := mustUser(t, users, "b@example.com")

	s, err := sessions.CreateSession(ctx, a.ID, "mine")
	if err != nil {
		t.Fatal(err)
	}
	got, err := sessions.GetSession(ctx, b.ID, s.ID)
	if err != nil || got != nil {
		t.Fatalf("expected other owner to see nothing, got %v, %v", got, err)
	}
	deleted, err := sessions.DeleteSession(ctx, b.ID, s.ID)
	if err != nil || deleted {
		t.Fatalf("expected other owner delete to be a no-op, got %v, %v", deleted, err)
	}
	deleted, err = sessions.DeleteSession(ctx, a.ID, s.ID)
	if err != nil || !deleted {
		t.Fatalf("expected owner delete, got %v, %v", deleted, err)
	}
}

func TestListSessionsOrderedByUpdatedAt(t *testing.T) {
	db := setupDB(t)
	users := NewUserDAO(db)
	sessions := NewSessionDAO(db)
	ctx := context.Background()
	owner := mustUser(t, users, "owner@example.com")

	first, _ := sessions.CreateSession(ctx, owner.ID, "first")
	second, _ := sessions.CreateSession(ctx, owner.ID, "second")

	list, err := sessions.ListSessions(ctx, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := sessions.SaveSession(ctx, first); err != nil {
		t.Fatal(err)
	}
	list, _ = sessions.ListSessions(ctx, owner.ID)
	if list[0].ID != first.ID {
		t.Errorf("expected updated session at index 0, got %s", list[0].Title)
	}
}

func TestTimestampStrictlyIncreases(t *testing.T) {
	frozen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	dao := &SessionDAO{now: func() time.Time { return frozen }}

	first := dao.Timestamp(time.Time{})
	second := dao.Timestamp(first)
	if !second.After(first) {
		t.Errorf("expected %v after %v", second, first)
	}
}
