package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/utils"
)

const tokenTTL = 12 * time.Hour

const (
	ClaimSubject = "sub"
	ClaimRole    = "role"
)

type AuthService interface {
	Login(ctx context.Context, input models.Credentials) (string, error)
	// ParseToken validates a signed token and returns its claims.
	ParseToken(tokenString string) (jwt.MapClaims, error)
}

type authService struct {
	admin     models.User
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService configures the single admin account. passwordHash is a bcrypt
// hash.
func NewAuthService(username, passwordHash, jwtSecret string) AuthService {
	return &authService{
		admin: models.User{
			Username:     username,
			Role:         models.RoleAdmin,
			PasswordHash: passwordHash,
		},
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (string, error) {
	if strings.TrimSpace(input.Username) != s.admin.Username || !utils.CheckPasswordHash(input.Password, s.admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		ClaimSubject: s.admin.Username,
		ClaimRole:    string(s.admin.Role),
		"exp":        now.Add(tokenTTL).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("%w: token expired", ErrAuthenticationFailed)
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrAuthenticationFailed
	}
	return claims, nil
}
