package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/MKhiriev/identra-vault/models"
)

// authService verifies bearer tokens issued by the identity provider.
// Accounts live there; the escrow server only needs the "sub" claim.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim every accepted token must carry.
	tokenIssuer string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the server app settings.
// The returned service is safe for concurrent use.
func NewAuthService(cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// CreateToken issues a signed JWT for userID valid for ttl. The server uses
// it for operator tooling; regular clients get their tokens from the
// identity provider.
func (a *authService) CreateToken(ctx context.Context, userID string, ttl time.Duration) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, ttl, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates the signature, issuer and expiry of tokenString.
// Every failure is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
