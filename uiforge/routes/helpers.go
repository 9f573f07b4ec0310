package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"uiforge/uiforge/middlewares"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"
	"uiforge/uiforge/utils/types"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusCode(err)
	if status == http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.MessageResponse{Message: apperr.Message(err)})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", apperr.ErrInvalidInput)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints where the body may be absent.
func decodeOptionalJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: malformed request body", apperr.ErrInvalidInput)
	}
	return nil
}

func userID(r *http.Request) (int, error) {
	id, ok := middlewares.UserID(r.Context())
	if !ok {
		return 0, fmt.Errorf("%w: missing user", apperr.ErrUnauthorized)
	}
	return id, nil
}
