package api

import (
	"errors"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that does not verify
var ErrInvalidToken = errors.New("invalid token")

// PlayerClaims identify a player inside one room
type PlayerClaims struct {
	RoomCode models.RoomCode `json:"roomCode"`
	Name     string          `json:"name"`
	jwt.RegisteredClaims
}

// PlayerID is the subject of the token
func (c *PlayerClaims) PlayerID() models.PlayerID {
	return models.PlayerID(c.Subject)
}

// TokenManager issues and verifies player tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewTokenManager creates a token manager signing with secret
func NewTokenManager(secret string, ttl time.Duration, clk clock.Clock) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	if clk == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}, nil
}

// Generate signs a token for player in code
func (m *TokenManager) Generate(code models.RoomCode, player models.PlayerID, name string) (string, error) {
	now := m.clock.Now()
	claims := PlayerClaims{
		RoomCode: code,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(player),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token and returns its claims
func (m *TokenManager) Verify(raw string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &PlayerClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.RoomCode == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
