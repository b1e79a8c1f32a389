// File: internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"roadsuite_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Claims holds the JWT claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService signs and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID uuid.UUID, email string, roles []string) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type jwtService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT token service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) TokenService {
	return &jwtService{cfg: cfg, logger: logger}
}

func (s *jwtService) GenerateAccessToken(userID uuid.UUID, email string, roles []string) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.cfg.JWTExpiry)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "roadsuite_backend",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign access token: %w", err)
	}
	return tokenString, expirationTime, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, errors.New("invalid token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
