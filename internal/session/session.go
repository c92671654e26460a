package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSecretMissing = errors.New("session secret missing")
	ErrTokenInvalid  = errors.New("session token invalid")
)

const defaultExpireHours = 720

// Claims 购物车会话 JWT 声明
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager 签发与校验购物车会话令牌
type Manager struct {
	secret []byte
	expire time.Duration
}

// NewManager 创建会话管理器
func NewManager(secret string, expireHours int) *Manager {
	if expireHours <= 0 {
		expireHours = defaultExpireHours
	}
	return &Manager{
		secret: []byte(strings.TrimSpace(secret)),
		expire: time.Duration(expireHours) * time.Hour,
	}
}

// NewSessionID 生成新的会话ID
func NewSessionID() string {
	return uuid.NewString()
}

// Expire 令牌有效期
func (m *Manager) Expire() time.Duration {
	return m.expire
}

// Issue 为会话签发令牌
func (m *Manager) Issue(sessionID string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, ErrSecretMissing
	}
	now := time.Now()
	expiresAt := now.Add(m.expire)
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse 校验令牌并返回会话ID
func (m *Manager) Parse(tokenString string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretMissing
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrTokenInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", errors.Join(ErrTokenInvalid, err)
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", ErrTokenInvalid
	}
	return claims.SessionID, nil
}
