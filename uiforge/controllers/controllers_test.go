package controllers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"uiforge/uiforge/services/auth"
	"uiforge/uiforge/sources/psql"
	"uiforge/uiforge/sources/psql/dao"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := psql.Open(context.Background(), sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(db.Close)
	return db.DB
}

func newAuthController(db *gorm.DB) *AuthController {
	ctrl := NewAuthController(dao.NewUserDAO(db), auth.NewTokenService("test-secret", time.Hour))
	ctrl.cost = bcrypt.MinCost
	return ctrl
}
