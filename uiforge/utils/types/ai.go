package types

import "uiforge/uiforge/services/generation"

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateErrorResponse is returned with 502 when no model variant answered.
// It still carries a displayable result.
type GenerateErrorResponse struct {
	Message string `json:"message"`
	generation.Result
}

// GenerateFrame is one websocket request. Token is only read when the
// connection is not yet authenticated.
type GenerateFrame struct {
	Token  string `json:"token,omitempty"`
	Prompt string `json:"prompt"`
}
