package controllers

import (
	"context"
	"encoding/json"
	"errors"

	"uiforge/uiforge/services/generation"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"
	"uiforge/uiforge/utils/types"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

type AIController struct {
	generator *generation.Generator
	auth      *AuthController
}

func NewAIController(generator *generation.Generator, auth *AuthController) *AIController {
	return &AIController{generator: generator, auth: auth}
}

func (c *AIController) Generate(ctx context.Context, userID int, req types.GenerateRequest) (generation.Result, error) {
	result, err := c.generator.Generate(ctx, req.Prompt)
	if err != nil {
		logging.AppLogger.Warn("generation failed", zap.Int("user_id", userID), zap.Error(err))
	}
	return result, err
}

// ErrorPayload is the body written for a failed generation.
func ErrorPayload(result generation.Result, err error) any {
	if errors.Is(err, apperr.ErrUpstream) {
		return types.GenerateErrorResponse{Message: apperr.Message(err), Result: result}
	}
	return types.MessageResponse{Message: apperr.Message(err)}
}

// GenerateWebSocket answers each prompt frame with one result frame. userID is
// zero when the upgrade request carried no valid bearer token; the first frame
// must then include one.
func (c *AIController) GenerateWebSocket(ctx context.Context, conn *websocket.Conn, userID int) {
	defer conn.Close(websocket.StatusInternalError, "internal error")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				logging.ErrorLogger.Error("websocket read error", zap.Error(err))
			}
			return
		}
		if typ != websocket.MessageText {
			writeFrame(ctx, conn, types.MessageResponse{Message: "unsupported data"})
			continue
		}

		var frame types.GenerateFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			writeFrame(ctx, conn, types.MessageResponse{Message: "invalid json"})
			continue
		}

		if userID == 0 {
			id, err := c.auth.Verify(frame.Token)
			if err != nil {
				writeFrame(ctx, conn, types.MessageResponse{Message: apperr.Message(err)})
				conn.Close(websocket.StatusPolicyViolation, "invalid token")
				return
			}
			userID = id
		}

		result, err := c.Generate(ctx, userID, types.GenerateRequest{Prompt: frame.Prompt})
		var out any = result
		if err != nil {
			out = ErrorPayload(result, err)
		}
		if err := writeFrame(ctx, conn, out); err != nil {
			logging.ErrorLogger.Error("websocket write error", zap.Error(err))
			return
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
