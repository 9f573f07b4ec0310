package routes

import (
	"net/http"

	"uiforge/uiforge/controllers"
	"uiforge/uiforge/middlewares"
	"uiforge/uiforge/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.CredentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, 0, err
		}
		token, err := ctrl.Signup(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return types.TokenResponse{Token: token}, http.StatusCreated, nil
	}))
	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.CredentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, 0, err
		}
		token, err := ctrl.Login(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return types.TokenResponse{Token: token}, http.StatusOK, nil
	}))
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(ctrl))
		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := userID(r)
			if err != nil {
				return nil, 0, err
			}
			user, err := ctrl.Me(r.Context(), id)
			if err != nil {
				return nil, 0, err
			}
			return user, http.StatusOK, nil
		}))
	})
	return r
}
