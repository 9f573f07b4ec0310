package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad email", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: token expired", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: session", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: email taken", ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: all models failed", ErrUpstream), http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Errorf("StatusCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestMessageHidesInternalDetail(t *testing.T) {
	if got := Message(errors.New("pq: connection refused")); got != "Server error" {
		t.Errorf("expected generic message, got %q", got)
	}
	err := fmt.Errorf("%w: session", ErrNotFound)
	if got := Message(err); got != err.Error() {
		t.Errorf("expected %q, got %q", err.Error(), got)
	}
}
