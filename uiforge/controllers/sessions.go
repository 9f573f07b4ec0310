package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uiforge/uiforge/services/archive"
	"uiforge/uiforge/sources/psql/dao"
	"uiforge/uiforge/sources/psql/models"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"
	"uiforge/uiforge/utils/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArchiveStore keeps exported archives and hands back a download URL.
type ArchiveStore interface {
	UploadArchive(ctx context.Context, key string, data []byte) (string, error)
}

type SessionController struct {
	sessionDAO *dao.SessionDAO
	store      ArchiveStore
}

// NewSessionController builds the controller. store may be nil, which disables Export.
func NewSessionController(sessionDAO *dao.SessionDAO, store ArchiveStore) *SessionController {
	return &SessionController{sessionDAO: sessionDAO, store: store}
}

func notFound() error {
	return fmt.Errorf("%w: session not found", apperr.ErrNotFound)
}

// load fetches a session owned by userID. Sessions owned by anyone else
// look exactly like missing ones.
func (c *SessionController) load(ctx context.Context, userID int, rawID string) (*models.Session, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, notFound()
	}
	session, err := c.sessionDAO.GetSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFound()
	}
	return session, nil
}

func (c *SessionController) CreateSession(ctx context.Context, userID int, req types.CreateSessionRequest) (*models.Session, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = models.DefaultSessionTitle
	}
	session, err := c.sessionDAO.CreateSession(ctx, userID, title)
	if err != nil {
		return nil, err
	}
	logging.AppLogger.Info("session created",
		zap.Int("user_id", userID),
		zap.String("session_id", session.ID.String()),
	)
	return session, nil
}

func (c *SessionController) ListSessions(ctx context.Context, userID int) ([]models.Session, error) {
	return c.sessionDAO.ListSessions(ctx, userID)
}

func (c *SessionController) GetSession(ctx context.Context, userID int, id string) (*models.Session, error) {
	return c.load(ctx, userID, id)
}

// UpdateSession overwrites whichever fields the patch carries and always
// refreshes updated_at.
func (c *SessionController) UpdateSession(ctx context.Context, userID int, id string, patch types.SessionPatch) (*models.Session, error) {
	session, err := c.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		session.Title = *patch.Title
	}
	if patch.Chat != nil {
		chat, err := normalizeChat(*patch.Chat, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		session.Chat = models.NewChat(chat)
	}
	if patch.Code != nil {
		session.Code = models.NewCode(*patch.Code)
	}
	if patch.UIState != nil {
		session.UIState = models.NewUIState(*patch.UIState)
	}
	if err := c.sessionDAO.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *SessionController) DeleteSession(ctx context.Context, userID int, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return notFound()
	}
	deleted, err := c.sessionDAO.DeleteSession(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound()
	}
	logging.AppLogger.Info("session deleted",
		zap.Int("user_id", userID),
		zap.String("session_id", rawID),
	)
	return nil
}

// Archive zips the session's current markup and stylesheet.
func (c *SessionController) Archive(ctx context.Context, userID int, id string) ([]byte, error) {
	session, err := c.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	code := session.Code.Data()
	return archive.Build(code.MarkupText, code.StyleText, session.UpdatedAt)
}

// Export uploads the session archive to object storage.
func (c *SessionController) Export(ctx context.Context, userID int, id string) (*types.ExportResponse, error) {
	if c.store == nil {
		return nil, fmt.Errorf("%w: export storage not configured", apperr.ErrInternal)
	}
	data, err := c.Archive(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("exports/%d/%s/%d-%s", userID, id, time.Now().Unix(), archive.FileName)
	url, err := c.store.UploadArchive(ctx, key, data)
	if err != nil {
		return nil, err
	}
	return &types.ExportResponse{Key: key, URL: url}, nil
}

func normalizeChat(chat []models.ChatMessage, now time.Time) ([]models.ChatMessage, error) {
	out := make([]models.ChatMessage, 0, len(chat))
	for i, msg := range chat {
		switch msg.Role {
		case models.RoleUser, models.RoleAssistant:
		case "ai":
			msg.Role = models.RoleAssistant
		default:
			return nil, fmt.Errorf("%w: chat[%d] has unknown role %q", apperr.ErrInvalidInput, i, msg.Role)
		}
		if msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		out = append(out, msg)
	}
	return out, nil
}
