package routes

import (
	"net/http"
	"net/url"
	"time"

	"uiforge/uiforge/controllers"
	"uiforge/uiforge/middlewares"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"
	"uiforge/uiforge/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AIRoutes serves generation. timeout bounds /generate only; websocket
// connections live until either side closes them.
func AIRoutes(ctrl *controllers.AIController, auth *controllers.AuthController, allowedOrigins []string, timeout time.Duration) chi.Router {
	originPatterns := originHosts(allowedOrigins)
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(timeout))
		gr.Use(middlewares.AuthMiddleware(auth))
		gr.Post("/generate", func(w http.ResponseWriter, r *http.Request) {
			id, err := userID(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			var req types.GenerateRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, r, err)
				return
			}
			result, err := ctrl.Generate(r.Context(), id, req)
			if err != nil {
				writeJSON(w, apperr.StatusCode(err), controllers.ErrorPayload(result, err))
				return
			}
			writeJSON(w, http.StatusOK, result)
		})
	})

	// browsers cannot set headers on a websocket upgrade, so the token may
	// also arrive in the first frame
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		var id int
		if token, ok := middlewares.BearerToken(r); ok {
			uid, err := auth.Verify(token)
			if err != nil {
				writeError(w, r, err)
				return
			}
			id = uid
		}
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		ctrl.GenerateWebSocket(r.Context(), conn, id)
	})
	return r
}

// originHosts turns CORS origins into the host patterns websocket.Accept checks.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
