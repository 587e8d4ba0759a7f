package api

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/client"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// drawings travel inline, so frames can be large
	maxFrameSize = 1 << 20
)

// Outbound frame types
const (
	FrameRoom     = "room"
	FramePresence = "presence"
	FrameGone     = "gone"
	FrameResult   = "result"
	FrameError    = "error"
)

// Inbound actions
const (
	ActionReadyUp        = "ready_up"
	ActionUpdateSettings = "update_settings"
	ActionUploadImage    = "upload_image"
	ActionKick           = "kick"
	ActionStartRound     = "start_round"
	ActionPlayerReady    = "player_ready"
	ActionDraft          = "draft"
	ActionSubmitDrawing  = "submit_drawing"
	ActionVote           = "vote"
	ActionSabotage       = "sabotage"
	ActionNextRound      = "next_round"
	ActionEndGame        = "end_game"
	ActionResetGame      = "reset_game"
)

type frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type actionFrame struct {
	Action   string                `json:"action"`
	Settings *models.Settings      `json:"settings,omitempty"`
	URL      string                `json:"url,omitempty"`
	TargetID models.PlayerID       `json:"targetId,omitempty"`
	Effect   models.SabotageEffect `json:"effect,omitempty"`
	Drawing  string                `json:"drawing,omitempty"`
}

type resultPayload struct {
	Action   string `json:"action"`
	Changed  bool   `json:"changed"`
	Headline string `json:"headline,omitempty"`
}

// wsConn serializes writes to a websocket and renders a session onto it
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var _ client.Renderer = (*wsConn)(nil)

func newWSConn(conn *websocket.Conn) *wsConn {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &wsConn{conn: conn}
}

func (w *wsConn) write(f frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.conn.WriteJSON(f); err != nil {
		log.Debug().Err(err).Str("frame", f.Type).Msg("failed to write websocket frame")
	}
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// close says goodbye with reason and drops the connection
func (w *wsConn) close(code int, reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	_ = w.conn.Close()
}

func (w *wsConn) RenderRoom(r *models.GameRoom) {
	w.write(frame{Type: FrameRoom, Payload: r})
}

func (w *wsConn) RenderPresence(presence models.Presence, now time.Time) {
	w.write(frame{Type: FramePresence, Payload: presenceView(presence, now)})
}

func (w *wsConn) RoomGone() {
	w.write(frame{Type: FrameGone})
}

// serveWebSocket streams the room and presence to one player and takes their
// actions. Every state change, including the player's own, arrives as a push.
func (s *Server) serveWebSocket(c *gin.Context) {
	claims := playerFrom(c)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already answered
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	ws := newWSConn(conn)

	// the hijacked connection outlives the request context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := client.NewMemoryStore()
	if err := client.SaveIntent(ctx, store, client.Intent{
		RoomCode:   claims.RoomCode,
		PlayerID:   claims.PlayerID(),
		PlayerName: claims.Name,
	}); err != nil {
		ws.close(websocket.CloseInternalServerErr, "session")
		return
	}

	session, err := client.New(&client.Config{
		Rooms:             s.rooms,
		Store:             store,
		Renderer:          ws,
		Clock:             s.clock,
		HeartbeatInterval: s.heartbeatInterval,
		TickInterval:      s.tickInterval,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		ws.close(websocket.CloseInternalServerErr, "session")
		return
	}

	if err := session.Open(ctx); err != nil {
		_, errType := classify(err)
		ws.write(frame{Type: FrameError, Payload: s.errorBody(ctx, errType)})
		ws.close(websocket.ClosePolicyViolation, string(errType))
		return
	}
	defer session.Close()

	log.Info().
		Str("room_code", string(claims.RoomCode)).
		Str("player_id", string(claims.PlayerID())).
		Msg("websocket connected")

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-session.Done():
				ws.close(websocket.CloseNormalClosure, FrameGone)
				return
			case <-ticker.C:
				if err := ws.ping(); err != nil {
					return
				}
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(s.wsRateLimit), s.wsRateBurst)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("room_code", string(claims.RoomCode)).Msg("websocket closed")
			}
			return
		}

		if !limiter.Allow() {
			ws.write(frame{Type: FrameError, Payload: s.errorBody(ctx, messaging.ErrorTypeSlowDown)})
			continue
		}

		var action actionFrame
		if err := json.Unmarshal(data, &action); err != nil {
			ws.write(frame{Type: FrameError, Payload: s.errorBody(ctx, messaging.ErrorTypeBadRequest)})
			continue
		}

		s.handleAction(ctx, session, ws, action)
	}
}

// handleAction runs one inbound action. Only the outcome is written back, the
// room itself arrives on the subscription.
func (s *Server) handleAction(ctx context.Context, session *client.Session, ws *wsConn, action actionFrame) {
	var (
		out *room.MutationOutput
		err error
	)

	switch action.Action {
	case ActionDraft:
		session.SetDraft(action.Drawing)
		return
	case ActionReadyUp:
		out, err = session.ReadyUp(ctx)
	case ActionUpdateSettings:
		if action.Settings == nil {
			err = room.ErrInvalidSettings
			break
		}
		out, err = session.UpdateSettings(ctx, *action.Settings)
	case ActionUploadImage:
		out, err = session.UploadImage(ctx, action.URL)
	case ActionKick:
		out, err = session.KickPlayer(ctx, action.TargetID)
	case ActionStartRound:
		out, err = session.StartRound(ctx)
	case ActionPlayerReady:
		out, err = session.PlayerReady(ctx)
	case ActionSubmitDrawing:
		out, err = session.SubmitDrawing(ctx, action.Drawing)
	case ActionVote:
		out, err = session.SubmitVote(ctx, action.TargetID)
	case ActionSabotage:
		out, err = session.TriggerSabotage(ctx, action.TargetID, action.Effect)
	case ActionNextRound:
		out, err = session.NextRound(ctx)
	case ActionEndGame:
		out, err = session.EndGame(ctx)
	case ActionResetGame:
		out, err = session.ResetGame(ctx)
	default:
		err = room.ErrInvalidInput
	}

	if err != nil {
		status, errType := classify(err)
		if errType == "" {
			log.Error().Err(err).Int("status", status).Str("action", action.Action).Msg("websocket action failed")
		}
		ws.write(frame{Type: FrameError, Payload: s.errorBody(ctx, errType)})
		return
	}

	ws.write(frame{Type: FrameResult, Payload: resultPayload{
		Action:   action.Action,
		Changed:  out.Changed,
		Headline: out.Headline,
	}})
}
