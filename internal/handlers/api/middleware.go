package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const claimsKey = "player"

// tokenFrom returns the raw player token of a request, or "" when there is
// none. Browsers cannot set headers on a websocket handshake, so the token
// may also come as ?token=.
func tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && scheme == "Bearer" {
			return token
		}
		return ""
	}
	return c.Query("token")
}

// requireAuth rejects requests without a valid player token
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			s.abortWithError(c, http.StatusUnauthorized, messaging.ErrorTypeUnauthorized)
			return
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			s.abortWithError(c, http.StatusUnauthorized, messaging.ErrorTypeUnauthorized)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// optionalClaims verifies the token of a request that may be anonymous.
// ok is false when a token was sent but did not verify; the request has
// then been aborted.
func (s *Server) optionalClaims(c *gin.Context) (claims *PlayerClaims, ok bool) {
	raw := tokenFrom(c)
	if raw == "" {
		return nil, true
	}

	claims, err := s.tokens.Verify(raw)
	if err != nil {
		s.abortWithError(c, http.StatusUnauthorized, messaging.ErrorTypeUnauthorized)
		return nil, false
	}
	return claims, true
}

// requireRoom only lets a token act on the room it was issued for
func (s *Server) requireRoom() gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := room.ParseRoomCode(c.Param("code"))
		if err != nil {
			s.abortWithError(c, http.StatusBadRequest, messaging.ErrorTypeBadRequest)
			return
		}
		if playerFrom(c).RoomCode != code {
			s.abortWithError(c, http.StatusForbidden, messaging.ErrorTypeNotAllowed)
			return
		}
		c.Next()
	}
}

func playerFrom(c *gin.Context) *PlayerClaims {
	return c.MustGet(claimsKey).(*PlayerClaims)
}

// requestLogger logs every request through zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
