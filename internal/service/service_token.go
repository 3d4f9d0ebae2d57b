package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// tokenService signs HS256 tokens with a key fixed at construction.
type tokenService struct {
	signKey  string
	issuer   string
	duration time.Duration

	// now is the clock used for iat/exp and for expiry checks.
	now func() time.Time

	logger *logger.Logger
}

// NewTokenService returns a [TokenService] configured from cfg. A nil now
// uses time.Now. Fails with [ErrTokenSignKeyMissing] when cfg has no sign key.
func NewTokenService(cfg config.App, now func() time.Time, logger *logger.Logger) (TokenService, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrTokenSignKeyMissing
	}
	if now == nil {
		now = time.Now
	}

	duration := cfg.TokenDuration
	if duration <= 0 {
		duration = config.DefaultTokenDuration
	}
	issuer := cfg.TokenIssuer
	if issuer == "" {
		issuer = config.DefaultTokenIssuer
	}

	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   issuer,
		duration: duration,
		now:      now,
		logger:   logger,
	}, nil
}

func (t *tokenService) Issue(ctx context.Context, subjectID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.issuer, subjectID, t.duration, t.signKey, t.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Msg("failed to sign token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify maps jwt failures onto the service sentinels. Anything other than
// a bad signature or an elapsed expiry counts as malformed.
func (t *tokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.signKey, t.issuer, t.now)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Token{}, ErrTokenIsExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return models.Token{}, ErrTokenBadSignature
	default:
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
