package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/common/uuid"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultWSRateLimit is how many inbound websocket frames a connection may send per second
	DefaultWSRateLimit = 10

	// DefaultWSRateBurst is how many frames may arrive at once on top of the rate
	DefaultWSRateBurst = 20
)

// Config holds configuration for the HTTP gateway
type Config struct {
	Addr string

	// BaseURL is where join links point
	BaseURL string

	// AllowedOrigins are the browser origins allowed to call the API,
	// defaults to BaseURL
	AllowedOrigins []string

	RoomService         room.Service
	NotificationService notification.Service
	MessagingService    messaging.Service

	Tokens        *TokenManager
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// WSRateLimit and WSRateBurst throttle inbound websocket frames per connection
	WSRateLimit float64
	WSRateBurst int

	// HeartbeatInterval and TickInterval tune the session behind each websocket
	HeartbeatInterval time.Duration
	TickInterval      time.Duration
}

// Server is the HTTP and websocket front door to the room service
type Server struct {
	baseURL   string
	origins   []string
	rooms     room.Service
	notifier  notification.Service
	messaging messaging.Service
	tokens    *TokenManager
	clock     clock.Clock
	uuid      uuid.UUID

	wsRateLimit       float64
	wsRateBurst       int
	heartbeatInterval time.Duration
	tickInterval      time.Duration

	upgrader websocket.Upgrader
	engine   *gin.Engine
	http     *http.Server
}

// New creates a new gateway
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}
	if cfg.NotificationService == nil {
		return nil, errors.New("notification service cannot be nil")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token manager cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	s := &Server{
		baseURL:           cfg.BaseURL,
		origins:           cfg.AllowedOrigins,
		rooms:             cfg.RoomService,
		notifier:          cfg.NotificationService,
		messaging:         cfg.MessagingService,
		tokens:            cfg.Tokens,
		clock:             cfg.Clock,
		uuid:              cfg.UUIDGenerator,
		wsRateLimit:       cfg.WSRateLimit,
		wsRateBurst:       cfg.WSRateBurst,
		heartbeatInterval: cfg.HeartbeatInterval,
		tickInterval:      cfg.TickInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the cors middleware has already rejected foreign origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	if len(s.origins) == 0 {
		s.origins = []string{strings.TrimRight(cfg.BaseURL, "/")}
	}
	if s.wsRateLimit <= 0 {
		s.wsRateLimit = DefaultWSRateLimit
	}
	if s.wsRateBurst <= 0 {
		s.wsRateBurst = DefaultWSRateBurst
	}

	s.engine = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders:  []string{"Authorization", "Content-Type", "Origin"},
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/rooms", s.createRoom)
	r.POST("/rooms/:code/join", s.joinRoom)

	rooms := r.Group("/rooms/:code", s.requireAuth(), s.requireRoom())
	{
		rooms.GET("", s.getRoom)
		rooms.GET("/presence", s.getPresence)
		rooms.GET("/ws", s.serveWebSocket)
		rooms.POST("/heartbeat", s.heartbeat)
		rooms.POST("/invites", s.sendInvite)

		rooms.POST("/ready", s.readyUp)
		rooms.POST("/settings", s.updateSettings)
		rooms.POST("/image", s.uploadImage)
		rooms.POST("/kick", s.kickPlayer)
		rooms.POST("/start", s.startRound)
		rooms.POST("/player-ready", s.playerReady)
		rooms.POST("/drawing", s.submitDrawing)
		rooms.POST("/vote", s.submitVote)
		rooms.POST("/sabotage", s.triggerSabotage)
		rooms.POST("/next", s.nextRound)
		rooms.POST("/end", s.endGame)
		rooms.POST("/reset", s.resetGame)
	}

	me := r.Group("/me", s.requireAuth())
	{
		me.PUT("/push-token", s.registerPushToken)
		me.POST("/friend-requests", s.sendFriendRequest)
		me.POST("/friend-requests/:id/respond", s.respondToFriendRequest)
	}

	return r
}

func (s *Server) joinLink(code models.RoomCode) string {
	return notification.JoinLink(s.baseURL, code)
}

// Start serves until Stop is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests. Hijacked websocket connections are not
// tracked and end when their process does.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("stopping HTTP server")
	return s.http.Shutdown(ctx)
}
