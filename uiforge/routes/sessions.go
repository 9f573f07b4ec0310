package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"uiforge/uiforge/controllers"
	"uiforge/uiforge/middlewares"
	"uiforge/uiforge/services/archive"
	"uiforge/uiforge/utils/types"

	"github.com/go-chi/chi/v5"
)

func SessionRoutes(ctrl *controllers.SessionController, verifier middlewares.TokenVerifier) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(verifier))

	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := userID(r)
		if err != nil {
			return nil, 0, err
		}
		var req types.CreateSessionRequest
		if err := decodeOptionalJSON(r, &req); err != nil {
			return nil, 0, err
		}
		session, err := ctrl.CreateSession(r.Context(), id, req)
		if err != nil {
			return nil, 0, err
		}
		return session, http.StatusCreated, nil
	}))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := userID(r)
		if err != nil {
			return nil, 0, err
		}
		sessions, err := ctrl.ListSessions(r.Context(), id)
		if err != nil {
			return nil, 0, err
		}
		return sessions, http.StatusOK, nil
	}))

	r.Route("/{session_id}", func(sr chi.Router) {
		sr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := userID(r)
			if err != nil {
				return nil, 0, err
			}
			session, err := ctrl.GetSession(r.Context(), id, chi.URLParam(r, "session_id"))
			if err != nil {
				return nil, 0, err
			}
			return session, http.StatusOK, nil
		}))

		sr.Put("/", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := userID(r)
			if err != nil {
				return nil, 0, err
			}
			var patch types.SessionPatch
			if err := decodeJSON(r, &patch); err != nil {
				return nil, 0, err
			}
			session, err := ctrl.UpdateSession(r.Context(), id, chi.URLParam(r, "session_id"), patch)
			if err != nil {
				return nil, 0, err
			}
			return session, http.StatusOK, nil
		}))

		sr.Delete("/", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := userID(r)
			if err != nil {
				return nil, 0, err
			}
			if err := ctrl.DeleteSession(r.Context(), id, chi.URLParam(r, "session_id")); err != nil {
				return nil, 0, err
			}
			return types.MessageResponse{Message: "Session deleted"}, http.StatusOK, nil
		}))

		sr.Get("/archive", func(w http.ResponseWriter, r *http.Request) {
			id, err := userID(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			data, err := ctrl.Archive(r.Context(), id, chi.URLParam(r, "session_id"))
			if err != nil {
				writeError(w, r, err)
				return
			}
			w.Header().Set("Content-Type", archive.ContentType)
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.FileName))
			w.Header().Set("Content-Length", strconv.Itoa(len(data)))
			w.WriteHeader(http.StatusOK)
			w.Write(data)
		})

		sr.Post("/export", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := userID(r)
			if err != nil {
				return nil, 0, err
			}
			res, err := ctrl.Export(r.Context(), id, chi.URLParam(r, "session_id"))
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))
	})
	return r
}
