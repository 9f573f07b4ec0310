package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uiforge/uiforge/services/auth"
	"uiforge/uiforge/sources/psql/dao"
	"uiforge/uiforge/sources/psql/models"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"
	"uiforge/uiforge/utils/types"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	userDAO  *dao.UserDAO
	tokens   *auth.TokenService
	validate *validator.Validate
	cost     int
}

func NewAuthController(userDAO *dao.UserDAO, tokens *auth.TokenService) *AuthController {
	return &AuthController{
		userDAO:  userDAO,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cost:     bcrypt.DefaultCost,
	}
}

func (c *AuthController) credentials(req types.CredentialsRequest) (types.CredentialsRequest, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Email":
				return req, fmt.Errorf("%w: a valid email is required", apperr.ErrInvalidInput)
			case "Password":
				return req, fmt.Errorf("%w: password must be 6 to 72 characters", apperr.ErrInvalidInput)
			}
		}
		return req, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return req, nil
}

// Signup registers a new user and returns a token for them.
func (c *AuthController) Signup(ctx context.Context, req types.CredentialsRequest) (string, error) {
	defer logging.LogDuration(ctx, "auth_signup")()

	req, err := c.credentials(req)
	if err != nil {
		return "", err
	}
	existing, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), c.cost)
	if err != nil {
		return "", err
	}
	user, err := c.userDAO.CreateUser(ctx, req.Email, string(hash))
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent signup
		return "", fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}
	if err != nil {
		return "", err
	}
	logging.AppLogger.Info("user signed up", zap.Int("user_id", user.ID))
	return c.tokens.Issue(user.ID)
}

// Login checks the password and returns a fresh token.
func (c *AuthController) Login(ctx context.Context, req types.CredentialsRequest) (string, error) {
	defer logging.LogDuration(ctx, "auth_login")()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", apperr.ErrInvalidInput)
	}
	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	return c.tokens.Issue(user.ID)
}

// Verify resolves a bearer token to its user id.
func (c *AuthController) Verify(token string) (int, error) {
	return c.tokens.Verify(token)
}

func (c *AuthController) Me(ctx context.Context, userID int) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// token outlived its user
		return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrUnauthorized)
	}
	return user, nil
}
