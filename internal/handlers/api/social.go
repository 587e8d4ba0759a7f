package api

import (
	"net/http"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/gin-gonic/gin"
)

type inviteRequest struct {
	ToPlayerID models.PlayerID `json:"toPlayerId" binding:"required"`
}

type inviteResponse struct {
	Invite    *models.GameInvite `json:"invite"`
	Delivered bool               `json:"delivered"`
	Link      string             `json:"link"`
}

type pushTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type friendRequestRequest struct {
	ToPlayerID models.PlayerID `json:"toPlayerId" binding:"required"`
}

type friendRequestResponse struct {
	Request   *models.FriendRequest `json:"request"`
	Delivered bool                  `json:"delivered,omitempty"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) sendInvite(c *gin.Context) {
	var req inviteRequest
	if !s.bind(c, &req) {
		return
	}

	claims := playerFrom(c)
	out, err := s.notifier.SendInvite(c.Request.Context(), &notification.SendInviteInput{
		RoomCode:     claims.RoomCode,
		FromPlayerID: claims.PlayerID(),
		FromName:     claims.Name,
		ToPlayerID:   req.ToPlayerID,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inviteResponse{
		Invite:    out.Invite,
		Delivered: out.Delivered,
		Link:      s.joinLink(claims.RoomCode),
	})
}

func (s *Server) registerPushToken(c *gin.Context) {
	var req pushTokenRequest
	if !s.bind(c, &req) {
		return
	}

	if _, err := s.notifier.RegisterPushToken(c.Request.Context(), &notification.RegisterPushTokenInput{
		PlayerID: playerFrom(c).PlayerID(),
		Token:    req.Token,
	}); err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) sendFriendRequest(c *gin.Context) {
	var req friendRequestRequest
	if !s.bind(c, &req) {
		return
	}

	claims := playerFrom(c)
	out, err := s.notifier.SendFriendRequest(c.Request.Context(), &notification.SendFriendRequestInput{
		FromPlayerID: claims.PlayerID(),
		FromName:     claims.Name,
		ToPlayerID:   req.ToPlayerID,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, friendRequestResponse{Request: out.Request, Delivered: out.Delivered})
}

func (s *Server) respondToFriendRequest(c *gin.Context) {
	var req respondRequest
	if !s.bind(c, &req) {
		return
	}

	out, err := s.notifier.RespondToFriendRequest(c.Request.Context(), &notification.RespondToFriendRequestInput{
		RequestID: c.Param("id"),
		PlayerID:  playerFrom(c).PlayerID(),
		Accept:    req.Accept,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, friendRequestResponse{Request: out.Request})
}
