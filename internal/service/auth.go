package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avoronin/shop_api/internal/models"
	"github.com/avoronin/shop_api/internal/repo"
	pkghash "github.com/avoronin/shop_api/pkg/hash"
	jwthelp "github.com/avoronin/shop_api/pkg/jwt"
	"github.com/avoronin/shop_api/pkg/logging"
	"github.com/avoronin/shop_api/pkg/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) CreateAccessToken(role, sub string, accessExp time.Time) (string, error) {
	claims := tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func (s *AuthService) CreateRefreshToken(sub string, refreshExp time.Time) (string, string, error) {
	jti := jwthelp.NewJTI()
	claims := tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        jti,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.RefreshSecret)
	return token, jti, err
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	pwHash, err := pkghash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.UserExist(ctx, username, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return nil, repo.ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	return s.issueTokens(ctx, user, "")
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, repo.ErrInvalidCredentials
	}

	usable, err := s.Repo.RefreshUsable(ctx, refreshToken, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	if !usable {
		return nil, repo.ErrInvalidCredentials
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, repo.ErrInvalidCredentials
	}
	user, err := s.Repo.GetUserByID(ctx, uint(id))
	if err != nil {
		return nil, repo.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user, refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

// issueTokens creates an access/refresh pair. A non-empty rotateFrom is the
// presented refresh token; it is revoked in the same transaction that saves
// the new one.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User, rotateFrom string) (*LoginResult, error) {
	sub := strconv.FormatUint(uint64(user.ID), 10)

	accessExp := time.Now().Add(accessTTL)
	accessToken, err := s.CreateAccessToken(user.Role, sub, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTTL)
	refreshToken, jti, err := s.CreateRefreshToken(sub, refreshExp)
	if err != nil {
		return nil, err
	}

	if rotateFrom != "" {
		err = s.Repo.RotateRefreshToken(ctx, rotateFrom, refreshToken, user.ID, jti, refreshExp.Unix())
	} else {
		err = s.Repo.SaveRefreshToken(ctx, refreshToken, user.ID, jti, refreshExp.Unix())
	}
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.Role == "admin",
	}, nil
}
