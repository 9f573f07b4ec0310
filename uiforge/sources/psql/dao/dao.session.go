package dao

import (
	"context"
	"errors"
	"sync"
	"time"

	"uiforge/uiforge/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionDAO struct {
	DB  *gorm.DB
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db, now: time.Now}
}

// Timestamp returns the write time for a document last written at prev.
// Postgres keeps microseconds, so times are truncated to that and bumped
// past prev (and past the previous stamp this DAO issued) when the clock
// has not moved.
func (dao *SessionDAO) Timestamp(prev time.Time) time.Time {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	ts := dao.now().UTC().Truncate(time.Microsecond)
	for _, floor := range []time.Time{prev, dao.last} {
		if !ts.After(floor) {
			ts = floor.Add(time.Microsecond)
		}
	}
	dao.last = ts
	return ts
}

func (dao *SessionDAO) CreateSession(ctx context.Context, userID int, title string) (*models.Session, error) {
	now := dao.Timestamp(time.Time{})
	session := models.Session{
		UserID:    userID,
		Title:     title,
		Chat:      models.NewChat(nil),
		Code:      models.NewCode(models.Code{}),
		UIState:   models.NewUIState(nil),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := dao.DB.WithContext(ctx).Omit(clause.Associations).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns nil, nil when the session is missing or owned by someone else.
func (dao *SessionDAO) GetSession(ctx context.Context, userID int, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (dao *SessionDAO) ListSessions(ctx context.Context, userID int) ([]models.Session, error) {
	sessions := []models.Session{}
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// SaveSession writes every column of session and refreshes UpdatedAt.
// Concurrent saves of the same session are last-writer-wins.
func (dao *SessionDAO) SaveSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = dao.Timestamp(session.UpdatedAt)
	if session.Chat == nil {
		session.Chat = models.NewChat(nil)
	}
	if session.UIState == nil {
		session.UIState = models.NewUIState(nil)
	}
	return dao.DB.WithContext(ctx).Omit(clause.Associations).Save(session).Error
}

// DeleteSession reports whether a session owned by userID was removed.
func (dao *SessionDAO) DeleteSession(ctx context.Context, userID int, id uuid.UUID) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Session{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
