package types

import "uiforge/uiforge/sources/psql/models"

type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// SessionPatch carries the fields an update replaces. Absent fields are left alone.
type SessionPatch struct {
	Title   *string                 `json:"title,omitempty"`
	Chat    *[]models.ChatMessage   `json:"chat,omitempty"`
	Code    *models.Code            `json:"code,omitempty"`
	UIState *map[string]interface{} `json:"ui_state,omitempty"`
}

type ExportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
