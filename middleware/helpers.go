package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/tournament-results/models"
)

// Имена JWT claims.
const (
	jwtClaimSubject = "sub"
	jwtClaimRole    = "role"
)

var ErrNoClaims = errors.New("user claims not found in context or invalid type")

// WithClaims stores claims in ctx the way Authenticate does.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func GetUsernameFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", ErrNoClaims
	}
	sub, ok := claims[jwtClaimSubject].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSubject)
	}
	return sub, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", ErrNoClaims
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RoleViewer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
