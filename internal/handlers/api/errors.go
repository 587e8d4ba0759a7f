package api

import (
	"context"
	"errors"
	"net/http"

	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// retryAfterSeconds is sent with 409s for rooms that were too busy to update
const retryAfterSeconds = "1"

// errorResponse is the body of every failed request
type errorResponse struct {
	Error     messaging.ErrorType `json:"error"`
	Message   string              `json:"message"`
	Retryable bool                `json:"retryable,omitempty"`
}

// classify maps a service error to a status code and the error copy to show
func classify(err error) (int, messaging.ErrorType) {
	switch errType := room.ErrorTypeOf(err); errType {
	case messaging.ErrorTypeRoomNotFound:
		return http.StatusNotFound, errType
	case messaging.ErrorTypeRoomBusy:
		return http.StatusConflict, errType
	case messaging.ErrorTypeBadRequest:
		return http.StatusBadRequest, errType
	}

	switch {
	case errors.Is(err, notification.ErrInvalidInput):
		return http.StatusBadRequest, messaging.ErrorTypeBadRequest
	case errors.Is(err, notification.ErrNotRecipient):
		return http.StatusForbidden, messaging.ErrorTypeNotAllowed
	case errors.Is(err, inviteRepo.ErrFriendRequestNotFound):
		return http.StatusNotFound, messaging.ErrorTypeBadRequest
	case errors.Is(err, inviteRepo.ErrFriendRequestExists), errors.Is(err, inviteRepo.ErrFriendRequestAnswered):
		return http.StatusConflict, messaging.ErrorTypeNotAllowed
	case errors.Is(err, inviteRepo.ErrTooManyConflicts):
		return http.StatusConflict, messaging.ErrorTypeRoomBusy
	}

	return http.StatusInternalServerError, ""
}

// errorBody builds the response for errType with player-facing copy
func (s *Server) errorBody(ctx context.Context, errType messaging.ErrorType) errorResponse {
	body := errorResponse{Error: errType, Retryable: errType == messaging.ErrorTypeRoomBusy}

	text, err := s.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType:     errType,
		PreferredTone: messaging.ToneNeutral,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to get error message")
		body.Message = http.StatusText(http.StatusInternalServerError)
		return body
	}
	body.Message = text.Message
	return body
}

func (s *Server) abortWithError(c *gin.Context, status int, errType messaging.ErrorType) {
	body := s.errorBody(c.Request.Context(), errType)
	if body.Retryable {
		c.Header("Retry-After", retryAfterSeconds)
	}
	c.AbortWithStatusJSON(status, body)
}

// abortWithServiceError answers with the status that matches err
func (s *Server) abortWithServiceError(c *gin.Context, err error) {
	status, errType := classify(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	s.abortWithError(c, status, errType)
}
