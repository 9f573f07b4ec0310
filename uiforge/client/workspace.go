package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uiforge/uiforge/services/archive"
	"uiforge/uiforge/services/preview"
	"uiforge/uiforge/utils/apperr"

	"github.com/atotto/clipboard"
)

const (
	TabMarkup = "markup"
	TabStyle  = "style"

	// SendFailedMessage is the only text shown when a send is rolled back.
	SendFailedMessage = "AI error or failed to update session"
)

// SendError reports a rolled-back Send. Cause keeps the underlying failure
// for logs.
type SendError struct {
	Cause error
}

func (e *SendError) Error() string { return SendFailedMessage }

func (e *SendError) Unwrap() error { return e.Cause }

// Workspace holds one open session. Send applies the user's message
// tentatively and either confirms it with the server's copy or reverts.
type Workspace struct {
	api       *Client
	session   Session
	clipboard func(string) error
	now       func() time.Time
}

func NewWorkspace(api *Client, session Session) *Workspace {
	return &Workspace{
		api:       api,
		session:   session,
		clipboard: clipboard.WriteAll,
		now:       time.Now,
	}
}

// OpenWorkspace loads a session by id.
func OpenWorkspace(ctx context.Context, api *Client, id string) (*Workspace, error) {
	s, err := api.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewWorkspace(api, *s), nil
}

// Session returns a copy of the current state.
func (w *Workspace) Session() Session {
	return w.session.clone()
}

// Send runs one generation round trip. On any failure the workspace is left
// exactly as it was and the error is a *SendError.
func (w *Workspace) Send(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("%w: prompt is required", apperr.ErrInvalidInput)
	}
	snapshot := w.session.clone()

	// tentative
	w.session.Chat = append(w.session.Chat, ChatMessage{Role: "user", Content: prompt, Timestamp: w.now().UTC()})

	result, err := w.api.Generate(ctx, prompt)
	if err != nil {
		w.session = snapshot
		return &SendError{Cause: err}
	}

	reply := result.ExplanationText
	if reply == "" {
		reply = "Updated the component."
	}
	chat := append(w.session.Chat, ChatMessage{Role: "assistant", Content: reply, Timestamp: w.now().UTC()})
	code := Code{MarkupText: result.MarkupText, StyleText: result.StyleText}
	w.session.Chat = chat
	w.session.Code = code

	updated, err := w.api.UpdateSession(ctx, w.session.ID, SessionUpdate{Chat: &chat, Code: &code})
	if err != nil {
		w.session = snapshot
		return &SendError{Cause: err}
	}
	// confirmed
	w.session = *updated
	return nil
}

// Copy puts the markup or style text on the system clipboard.
func (w *Workspace) Copy(tab string) error {
	switch tab {
	case TabMarkup:
		return w.clipboard(w.session.Code.MarkupText)
	case TabStyle:
		return w.clipboard(w.session.Code.StyleText)
	default:
		return fmt.Errorf("%w: unknown tab %q", apperr.ErrInvalidInput, tab)
	}
}

// Archive zips the current code locally.
func (w *Workspace) Archive() ([]byte, error) {
	return archive.Build(w.session.Code.MarkupText, w.session.Code.StyleText, w.session.UpdatedAt)
}

// Preview renders the current code as a standalone HTML page. The component
// runs with script access inside a sandboxed iframe; do not preview output
// you do not trust.
func (w *Workspace) Preview() (string, error) {
	return preview.Render(w.session.Title, w.session.Code.MarkupText, w.session.Code.StyleText)
}

func (w *Workspace) Rename(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", apperr.ErrInvalidInput)
	}
	updated, err := w.api.UpdateSession(ctx, w.session.ID, SessionUpdate{Title: &title})
	if err != nil {
		return err
	}
	w.session = *updated
	return nil
}

// SetTab remembers which code tab was last shown.
func (w *Workspace) SetTab(ctx context.Context, tab string) error {
	if tab != TabMarkup && tab != TabStyle {
		return fmt.Errorf("%w: unknown tab %q", apperr.ErrInvalidInput, tab)
	}
	state := map[string]interface{}{}
	for k, v := range w.session.UIState {
		state[k] = v
	}
	state["active_tab"] = tab
	updated, err := w.api.UpdateSession(ctx, w.session.ID, SessionUpdate{UIState: &state})
	if err != nil {
		return err
	}
	w.session = *updated
	return nil
}

// ActiveTab is the last tab stored in ui_state, defaulting to markup.
func (w *Workspace) ActiveTab() string {
	if tab, ok := w.session.UIState["active_tab"].(string); ok && tab == TabStyle {
		return TabStyle
	}
	return TabMarkup
}

func (w *Workspace) Delete(ctx context.Context) error {
	return w.api.DeleteSession(ctx, w.session.ID)
}

// IsSendError reports whether err came from a rolled-back Send.
func IsSendError(err error) bool {
	var se *SendError
	return errors.As(err, &se)
}

func (s Session) clone() Session {
	out := s
	out.Chat = append([]ChatMessage(nil), s.Chat...)
	if s.UIState != nil {
		out.UIState = make(map[string]interface{}, len(s.UIState))
		for k, v := range s.UIState {
			out.UIState[k] = v
		}
	}
	return out
}
