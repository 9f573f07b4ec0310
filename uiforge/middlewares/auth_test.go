package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubVerifier map[string]int

func (s stubVerifier) Verify(token string) (int, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func TestAuthMiddleware(t *testing.T) {
	var seen int
	h := AuthMiddleware(stubVerifier{"good": 7})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Token good", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer good", http.StatusNoContent},
		{"bearer good", http.StatusNoContent},
	}
	for _, c := range cases {
		seen = 0
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != c.want {
			t.Errorf("%q: expected %d, got %d", c.header, c.want, rr.Code)
		}
		if c.want == http.StatusUnauthorized {
			if !strings.Contains(rr.Body.String(), `"message"`) {
				t.Errorf("%q: expected json message, got %q", c.header, rr.Body.String())
			}
			if seen != 0 {
				t.Errorf("%q: handler ran for rejected request", c.header)
			}
		} else if seen != 7 {
			t.Errorf("%q: expected user 7 in context, got %d", c.header, seen)
		}
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("tea"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pot", nil))
	if rr.Code != http.StatusTeapot || rr.Body.String() != "tea" {
		t.Errorf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}
