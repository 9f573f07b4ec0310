package controllers

import (
	"context"
	"errors"
	"testing"

	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/types"
)

func TestSignupOnce(t *testing.T) {
	ctrl := newAuthController(setupDB(t))
	ctx := context.Background()

	token, err := ctrl.Signup(ctx, types.CredentialsRequest{Email: "Ada@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	_, err = ctrl.Signup(ctx, types.CredentialsRequest{Email: "ada@example.com", Password: "other-pass"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on second signup, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	ctrl := newAuthController(setupDB(t))
	cases := []types.CredentialsRequest{
		{Email: "", Password: "hunter22"},
		{Email: "not-an-email", Password: "hunter22"},
		{Email: "a@example.com", Password: "123"},
	}
	for _, c := range cases {
		if _, err := ctrl.Signup(context.Background(), c); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("%+v: expected invalid input, got %v", c, err)
		}
	}
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	ctrl := newAuthController(setupDB(t))
	ctx := context.Background()
	creds := types.CredentialsRequest{Email: "grace@example.com", Password: "cobol-rules"}
	if _, err := ctrl.Signup(ctx, creds); err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, err := ctrl.Login(ctx, creds)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	userID, err := ctrl.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	me, err := ctrl.Me(ctx, userID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Email != creds.Email {
		t.Errorf("expected %q, got %q", creds.Email, me.Email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctrl := newAuthController(setupDB(t))
	ctx := context.Background()
	if _, err := ctrl.Signup(ctx, types.CredentialsRequest{Email: "a@example.com", Password: "right-pass"}); err != nil {
		t.Fatal(err)
	}
	for _, c := range []types.CredentialsRequest{
		{Email: "a@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "right-pass"},
	} {
		if _, err := ctrl.Login(ctx, c); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("%+v: expected unauthorized, got %v", c, err)
		}
	}
}

func TestMeForDeletedUser(t *testing.T) {
	ctrl := newAuthController(setupDB(t))
	if _, err := ctrl.Me(context.Background(), 4242); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
