package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/pkg/config"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

// AuthService authenticates the shelter admin and issues access tokens.
// The admin account is provisioned through configuration, there is no user
// table.
type AuthService struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

// Login verifies the admin credentials and returns a signed token.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if !strings.EqualFold(req.Email, s.cfg.AdminEmail) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("admin login rejected", zap.String("email", req.Email))
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := s.generateToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("admin logged in", zap.String("email", s.cfg.AdminEmail))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      s.cfg.AdminName,
		Email:     s.cfg.AdminEmail,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken() (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.cfg.TokenExpiration)
	claims := &models.AdminClaims{
		Email: s.cfg.AdminEmail,
		Name:  s.cfg.AdminName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shelter-api",
			Subject:   s.cfg.AdminEmail,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
