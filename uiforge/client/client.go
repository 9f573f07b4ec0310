// Package client talks to the uiforge HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"uiforge/uiforge/services/generation"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/types"

	"github.com/go-resty/resty/v2"
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Code struct {
	MarkupText string `json:"markup_text"`
	StyleText  string `json:"style_text"`
}

type Session struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Chat      []ChatMessage          `json:"chat"`
	Code      Code                   `json:"code"`
	UIState   map[string]interface{} `json:"ui_state"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SessionUpdate lists the fields to overwrite. Nil fields are left alone.
type SessionUpdate struct {
	Title   *string                 `json:"title,omitempty"`
	Chat    *[]ChatMessage          `json:"chat,omitempty"`
	Code    *Code                   `json:"code,omitempty"`
	UIState *map[string]interface{} `json:"ui_state,omitempty"`
}

// APIError is a non-2xx response. errors.Is matches it against the apperr kinds.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case apperr.ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	case apperr.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case apperr.ErrNotFound:
		return e.Status == http.StatusNotFound
	case apperr.ErrConflict:
		return e.Status == http.StatusConflict
	case apperr.ErrUpstream:
		return e.Status == http.StatusBadGateway
	case apperr.ErrInternal:
		return e.Status >= http.StatusInternalServerError && e.Status != http.StatusBadGateway
	}
	return false
}

type tokenKey struct{}

// WithToken returns a context whose requests authenticate as token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(90 * time.Second),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&types.MessageResponse{})
	if tok, ok := TokenFrom(ctx); ok {
		req.SetAuthToken(tok)
	}
	return req
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	switch body := resp.Error().(type) {
	case *types.MessageResponse:
		apiErr.Message = body.Message
	case *types.GenerateErrorResponse:
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	var out types.TokenResponse
	resp, err := c.request(ctx).
		SetBody(types.CredentialsRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/api/auth/signup")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out types.TokenResponse
	resp, err := c.request(ctx).
		SetBody(types.CredentialsRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	resp, err := c.request(ctx).SetResult(&out).Get("/api/auth/me")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSession(ctx context.Context, title string) (*Session, error) {
	var out Session
	resp, err := c.request(ctx).
		SetBody(types.CreateSessionRequest{Title: title}).
		SetResult(&out).
		Post("/api/sessions")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var out []Session
	resp, err := c.request(ctx).SetResult(&out).Get("/api/sessions")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var out Session
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/api/sessions/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSession(ctx context.Context, id string, update SessionUpdate) (*Session, error) {
	var out Session
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(update).
		SetResult(&out).
		Put("/api/sessions/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("id", id).Delete("/api/sessions/{id}")
	return check(resp, err)
}

// Archive downloads the server-built zip for a session.
func (c *Client) Archive(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetHeader("Accept", "application/zip").
		Get("/api/sessions/{id}/archive")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) Export(ctx context.Context, id string) (*types.ExportResponse, error) {
	var out types.ExportResponse
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Post("/api/sessions/{id}/export")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate asks the server for a component. When every model fails the
// returned result still holds the server's error display block.
func (c *Client) Generate(ctx context.Context, prompt string) (generation.Result, error) {
	var out generation.Result
	failure := &types.GenerateErrorResponse{}
	resp, err := c.request(ctx).
		SetBody(types.GenerateRequest{Prompt: prompt}).
		SetResult(&out).
		SetError(failure).
		Post("/api/ai/generate")
	if err := check(resp, err); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadGateway {
			return failure.Result, err
		}
		return generation.Result{}, err
	}
	return out, nil
}
