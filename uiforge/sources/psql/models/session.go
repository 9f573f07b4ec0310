package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	DefaultSessionTitle = "Untitled Session"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Code struct {
	MarkupText string `json:"markup_text"`
	StyleText  string `json:"style_text"`
}

// Session is one chat transcript plus the code it produced. Chat, code and
// UI state live in JSON columns so the whole document is written at once.
type Session struct {
	ID        uuid.UUID                        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    int                              `json:"user_id" gorm:"not null;index"`
	User      User                             `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title     string                           `json:"title" gorm:"type:varchar(255);not null"`
	Chat      datatypes.JSONSlice[ChatMessage] `json:"chat"`
	Code      datatypes.JSONType[Code]         `json:"code"`
	UIState   datatypes.JSONMap                `json:"ui_state"`
	CreatedAt time.Time                        `json:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time                        `json:"updated_at" gorm:"not null;index;autoUpdateTime:false"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func NewChat(msgs []ChatMessage) datatypes.JSONSlice[ChatMessage] {
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	return datatypes.JSONSlice[ChatMessage](msgs)
}

func NewCode(code Code) datatypes.JSONType[Code] {
	return datatypes.NewJSONType(code)
}

func NewUIState(state map[string]interface{}) datatypes.JSONMap {
	if state == nil {
		state = map[string]interface{}{}
	}
	return datatypes.JSONMap(state)
}
