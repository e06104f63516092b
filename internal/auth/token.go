package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/company-directory-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultValidFor - срок жизни токена, если в настройках он не задан
const DefaultValidFor = 180 * time.Minute

var ErrEmptyUsername = errors.New("username is required to issue a token")

// Principal - проверенные данные владельца токена
type Principal struct {
	Subject   string
	TokenID   string
	Issuer    string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer выпускает подписанные токены
type Issuer struct {
	issuer   string
	audience string
	key      []byte
	validFor time.Duration
	now      func() time.Time
}

// IssuerOption настраивает Issuer
type IssuerOption func(*Issuer)

// WithIssuerClock подменяет часы, от которых считаются iat и exp
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer создаёт выпускающего токены по настройкам JWT
func NewIssuer(cfg config.JWTConfig, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		key:      []byte(cfg.SecretKey),
		validFor: cfg.ValidFor,
		now:      time.Now,
	}
	if i.validFor <= 0 {
		i.validFor = DefaultValidFor
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// EncodeToken выпускает токен HS256 для пользователя
func (i *Issuer) EncodeToken(username string) (string, error) {
	if username == "" {
		return "", ErrEmptyUsername
	}

	issuedAt := i.now().UTC().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		Issuer:    i.issuer,
		Audience:  jwt.ClaimStrings{i.audience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.validFor)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidationParams - ожидаемые параметры токена
type ValidationParams struct {
	Issuer    string
	Audience  string
	SecretKey string
	Algorithm string
	Leeway    time.Duration
}

// ParamsFromConfig возвращает параметры проверки, совпадающие с параметрами выпуска
func ParamsFromConfig(cfg config.JWTConfig) ValidationParams {
	return ValidationParams{
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		SecretKey: cfg.SecretKey,
		Algorithm: jwt.SigningMethodHS256.Alg(),
	}
}

// Validator проверяет токены. Ошибки проверки логируются и наружу не передаются.
type Validator struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewValidator создаёт валидатор токенов
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{logger: logger, now: time.Now}
}

// ValidateToken возвращает владельца токена или nil, если токен не прошёл проверку
func (v *Validator) ValidateToken(token string, params ValidationParams) *Principal {
	alg := params.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) {
			return []byte(params.SecretKey), nil
		},
		jwt.WithValidMethods([]string{alg}),
		jwt.WithIssuer(params.Issuer),
		jwt.WithAudience(params.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(params.Leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		v.logger.Warn("token validation failed", slog.Any("error", err))
		return nil
	}

	p := &Principal{
		Subject:  claims.Subject,
		TokenID:  claims.ID,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.UTC()
	}
	return p
}
