// Package crypto содержит криптографические примитивы,
// используемые сервером notekeeper.
//
// В частности, пакет отвечает за:
//   - подпись и проверку JWT-токенов сессии (HS256);
//   - хэширование паролей (bcrypt, argon2id) и их проверку.
package crypto

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// ErrInvalidToken возвращается на любую проблему с токеном: подпись, формат,
// алгоритм, срок действия. Причины не различаем. Это разновидность
// serr.ErrUnauthenticated.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", serr.ErrUnauthenticated)

// JWTConfig описывает параметры выпуска и проверки токена.
type JWTConfig struct {
	// Issuer: значение поля iss (опционально, проверяется если задано).
	Issuer string
	// Audience: значение поля aud (опционально, проверяется если задано).
	Audience string
	// SigningKey: секретный ключ для подписи токена (HS256).
	SigningKey string
	// TTL: срок жизни токена. 0: токен без exp.
	TTL time.Duration
}

// UserClaim: полезная нагрузка о пользователе внутри токена.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims: claims токена сессии: {"user":{"id":"..."}} плюс стандартные поля.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec подписывает и проверяет токены сессии.
// Ключ передаётся при создании, глобального состояния нет.
type TokenCodec struct {
	cfg    JWTConfig
	parser *jwt.Parser
}

// NewTokenCodec создаёт TokenCodec с заданными параметрами.
func NewTokenCodec(cfg JWTConfig) *TokenCodec {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &TokenCodec{cfg: cfg, parser: jwt.NewParser(opts...)}
}

// Issue создаёт и подписывает токен для пользователя.
//
// Токен содержит:
//   - user.id (userID)
//   - iat (IssuedAt)
//   - iss/aud, если заданы в конфиге
//   - exp, если TTL > 0
func (c *TokenCodec) Issue(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   c.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{c.cfg.Audience}
	}
	if c.cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.cfg.TTL))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(c.cfg.SigningKey))
}

// Parse проверяет подпись и claims токена и возвращает user.id.
//
// Любая ошибка проверки сводится к ErrInvalidToken.
func (c *TokenCodec) Parse(tokenStr string) (string, error) {
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(c.cfg.SigningKey), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.User.ID)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
