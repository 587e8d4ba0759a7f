package api

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Player IDs are never taken from a request body. A new player gets one
// from the server, a returning player proves theirs with a token.
type createRoomRequest struct {
	Name     string           `json:"name" binding:"required"`
	Settings *models.Settings `json:"settings"`
}

type joinRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// sessionResponse hands a player the room and the token for acting in it
type sessionResponse struct {
	Room     *models.GameRoom `json:"room"`
	PlayerID models.PlayerID  `json:"playerId"`
	Token    string           `json:"token"`
}

type mutationResponse struct {
	Room     *models.GameRoom `json:"room"`
	Changed  bool             `json:"changed"`
	Headline string           `json:"headline,omitempty"`
}

type presenceEntry struct {
	LastSeen time.Time             `json:"lastSeen"`
	Status   models.PresenceStatus `json:"status"`
}

type presenceResponse struct {
	Players map[models.PlayerID]presenceEntry `json:"players"`
	Now     time.Time                         `json:"now"`
}

func presenceView(presence models.Presence, now time.Time) presenceResponse {
	players := make(map[models.PlayerID]presenceEntry, len(presence))
	for id, lastSeen := range presence {
		players[id] = presenceEntry{
			LastSeen: lastSeen,
			Status:   models.PresenceStatusOf(lastSeen, now),
		}
	}
	return presenceResponse{Players: players, Now: now}
}

func (s *Server) newPlayerID() models.PlayerID {
	return models.PlayerID(s.uuid.NewUUID())
}

func (s *Server) issue(c *gin.Context, status int, r *models.GameRoom, player models.PlayerID, name string) {
	token, err := s.tokens.Generate(r.RoomCode, player, name)
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(status, sessionResponse{Room: r, PlayerID: player, Token: token})
}

func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, http.StatusBadRequest, messaging.ErrorTypeBadRequest)
		return
	}

	claims, ok := s.optionalClaims(c)
	if !ok {
		return
	}

	// a signed token proves who the caller is, whichever room it was for
	player := s.newPlayerID()
	if claims != nil {
		player = claims.PlayerID()
	}

	out, err := s.rooms.CreateRoom(c.Request.Context(), &room.CreateRoomInput{
		HostID:   player,
		HostName: req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}

	s.issue(c, http.StatusCreated, out.Room, player, req.Name)
}

func (s *Server) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, http.StatusBadRequest, messaging.ErrorTypeBadRequest)
		return
	}

	claims, ok := s.optionalClaims(c)
	if !ok {
		return
	}

	code := models.RoomCode(c.Param("code"))
	if parsed, err := room.ParseRoomCode(c.Param("code")); err == nil {
		code = parsed
	}

	// only a token for this room brings a player back under their old ID
	returning := claims != nil && claims.RoomCode == code
	player := s.newPlayerID()
	if returning {
		player = claims.PlayerID()
	}

	out, err := s.rooms.JoinRoom(c.Request.Context(), &room.JoinRoomInput{
		RoomCode:   code,
		PlayerID:   player,
		PlayerName: req.Name,
	})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	if !out.Joined {
		// full or already playing
		s.abortWithError(c, http.StatusConflict, messaging.ErrorTypeNotAllowed)
		return
	}
	if !returning && !out.Changed {
		// the ID already belonged to a member and the caller holds no token for it
		log.Warn().
			Str("room_code", string(code)).
			Str("player_id", string(player)).
			Msg("join reused a member ID without a token")
		s.abortWithError(c, http.StatusConflict, messaging.ErrorTypeNotAllowed)
		return
	}

	s.issue(c, http.StatusOK, out.Room, player, req.Name)
}

func (s *Server) getRoom(c *gin.Context) {
	out, err := s.rooms.GetRoom(c.Request.Context(), &room.GetRoomInput{RoomCode: playerFrom(c).RoomCode})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Room)
}

func (s *Server) getPresence(c *gin.Context) {
	out, err := s.rooms.GetPresence(c.Request.Context(), &room.GetPresenceInput{RoomCode: playerFrom(c).RoomCode})
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, presenceView(out.Presence, out.Now))
}

func (s *Server) heartbeat(c *gin.Context) {
	claims := playerFrom(c)
	if err := s.rooms.Heartbeat(c.Request.Context(), &room.HeartbeatInput{
		RoomCode: claims.RoomCode,
		PlayerID: claims.PlayerID(),
	}); err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respond writes the result of a room mutation
func (s *Server) respond(c *gin.Context, out *room.MutationOutput, err error) {
	if err != nil {
		s.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mutationResponse{Room: out.Room, Changed: out.Changed, Headline: out.Headline})
}

type settingsRequest struct {
	Settings models.Settings `json:"settings" binding:"required"`
}

type imageRequest struct {
	URL string `json:"url" binding:"required"`
}

type targetRequest struct {
	TargetID models.PlayerID `json:"targetId" binding:"required"`
}

type drawingRequest struct {
	Drawing string `json:"drawing"`
}

type sabotageRequest struct {
	TargetID models.PlayerID       `json:"targetId" binding:"required"`
	Effect   models.SabotageEffect `json:"effect" binding:"required"`
}

// bind decodes the body into req, answering 400 when it does not fit
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("bad request body")
		s.abortWithError(c, http.StatusBadRequest, messaging.ErrorTypeBadRequest)
		return false
	}
	return true
}

func (s *Server) readyUp(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.ReadyUp(c.Request.Context(), &room.ReadyUpInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}

func (s *Server) updateSettings(c *gin.Context) {
	var req settingsRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.UpdateSettings(c.Request.Context(), &room.UpdateSettingsInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID(), Settings: req.Settings})
	s.respond(c, out, err)
}

func (s *Server) uploadImage(c *gin.Context) {
	var req imageRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.UploadImage(c.Request.Context(), &room.UploadImageInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID(), URL: req.URL})
	s.respond(c, out, err)
}

func (s *Server) kickPlayer(c *gin.Context) {
	var req targetRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.KickPlayer(c.Request.Context(), &room.KickPlayerInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID(), TargetID: req.TargetID})
	s.respond(c, out, err)
}

func (s *Server) startRound(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.StartRound(c.Request.Context(), &room.StartRoundInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}

func (s *Server) playerReady(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.PlayerReady(c.Request.Context(), &room.PlayerReadyInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}

func (s *Server) submitDrawing(c *gin.Context) {
	var req drawingRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.SubmitDrawing(c.Request.Context(), &room.SubmitDrawingInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID(), Drawing: req.Drawing})
	s.respond(c, out, err)
}

func (s *Server) submitVote(c *gin.Context) {
	var req targetRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.SubmitVote(c.Request.Context(), &room.SubmitVoteInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID(), TargetID: req.TargetID})
	s.respond(c, out, err)
}

func (s *Server) triggerSabotage(c *gin.Context) {
	var req sabotageRequest
	if !s.bind(c, &req) {
		return
	}
	claims := playerFrom(c)
	out, err := s.rooms.TriggerSabotage(c.Request.Context(), &room.TriggerSabotageInput{
		RoomCode: claims.RoomCode,
		PlayerID: claims.PlayerID(),
		TargetID: req.TargetID,
		Effect:   req.Effect,
	})
	s.respond(c, out, err)
}

func (s *Server) nextRound(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.NextRound(c.Request.Context(), &room.NextRoundInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}

func (s *Server) endGame(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.EndGame(c.Request.Context(), &room.EndGameInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}

func (s *Server) resetGame(c *gin.Context) {
	claims := playerFrom(c)
	out, err := s.rooms.ResetGame(c.Request.Context(), &room.ResetGameInput{RoomCode: claims.RoomCode, PlayerID: claims.PlayerID()})
	s.respond(c, out, err)
}
