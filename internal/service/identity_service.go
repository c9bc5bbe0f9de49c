package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/pkg/config"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

// IdentityClaims are the bearer token claims issued by the identity provider.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IdentityService verifies identity-provider tokens. It never issues tokens.
type IdentityService struct {
	cfg    config.AuthConfig
	parser *jwt.Parser
}

// NewIdentityService constructs an identity verifier.
func NewIdentityService(cfg config.AuthConfig) *IdentityService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &IdentityService{cfg: cfg, parser: jwt.NewParser(opts...)}
}

// Verify parses a bearer token and returns the caller identity.
func (s *IdentityService) Verify(tokenString string) (*models.Identity, error) {
	claims := &IdentityClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return &models.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   strings.TrimSpace(claims.Name),
		Role:   models.ParseUserRole(claims.Role),
	}, nil
}

// Sign issues a token for the given identity using the shared secret. Used by tooling and tests.
func (s *IdentityService) Sign(identity models.Identity, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = identity.UserID
	if s.cfg.Issuer != "" && claims.Issuer == "" {
		claims.Issuer = s.cfg.Issuer
	}
	if s.cfg.Audience != "" && len(claims.Audience) == 0 {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{Email: identity.Email, Name: identity.Name, Role: string(identity.Role), RegisteredClaims: claims})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
