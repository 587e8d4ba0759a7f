package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/common/logger"
	"github.com/KirkDiggler/sketchparty/internal/common/uuid"
	"github.com/KirkDiggler/sketchparty/internal/config"
	"github.com/KirkDiggler/sketchparty/internal/dice"
	"github.com/KirkDiggler/sketchparty/internal/handlers/api"
	"github.com/KirkDiggler/sketchparty/internal/handlers/discord"
	"github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	"github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	"github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	"github.com/KirkDiggler/sketchparty/internal/repositories/pushtoken"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/KirkDiggler/sketchparty/internal/roomstate"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	roomService "github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	clk := clock.New()
	roller := dice.New(&dice.Config{})
	ids := uuid.New()

	// Initialize repositories
	rooms, err := roomRepo.NewRedis(&roomRepo.Config{
		RedisClient: redisClient,
		MaxRetries:  cfg.TxMaxRetries,
		Clock:       clk,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room repository")
	}

	presenceRepo, err := presence.NewRedis(&presence.Config{
		RedisClient: redisClient,
		Clock:       clk,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create presence repository")
	}

	inviteRepo, err := invite.NewRedis(&invite.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create invite repository")
	}

	eventRepo, err := gameevent.NewRedis(&gameevent.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game event repository")
	}

	tokenRepo, err := pushtoken.NewRedis(&pushtoken.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create push token repository")
	}

	// Initialize services
	machine, err := roomstate.New(&roomstate.Config{
		Clock:      clk,
		Roller:     roller,
		MaxPlayers: cfg.MaxPlayers,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room state machine")
	}

	messagingSvc, err := messaging.New(&messaging.Config{Roller: roller})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create messaging service")
	}

	// Pushes are always logged, and sent as Discord DMs when a bot token is set
	dispatchers := notification.MultiDispatcher{notification.NewLogDispatcher()}
	var discordSession *discordgo.Session
	if cfg.DiscordToken != "" {
		discordSession, err = discord.NewSession(cfg.DiscordToken)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Discord session")
		}
		dm, err := discord.NewDispatcher(discordSession)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Discord dispatcher")
		}
		dispatchers = append(dispatchers, dm)
	}

	notificationSvc, err := notification.New(&notification.Config{
		BaseURL:       cfg.BaseURL,
		EventRepo:     eventRepo,
		PushTokenRepo: tokenRepo,
		InviteRepo:    inviteRepo,
		Messaging:     messagingSvc,
		Dispatcher:    dispatchers,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create notification service")
	}

	roomSvc, err := roomService.New(&roomService.Config{
		RoomRepo:     rooms,
		PresenceRepo: presenceRepo,
		Machine:      machine,
		Notifier:     notificationSvc,
		Messaging:    messagingSvc,
		Clock:        clk,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room service")
	}

	tokens, err := api.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, clk)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token manager")
	}

	server, err := api.New(&api.Config{
		Addr:                cfg.HTTPAddr,
		BaseURL:             cfg.BaseURL,
		AllowedOrigins:      cfg.Origins(),
		RoomService:         roomSvc,
		NotificationService: notificationSvc,
		MessagingService:    messagingSvc,
		Tokens:              tokens,
		Clock:               clk,
		UUIDGenerator:       ids,
		WSRateLimit:         cfg.WSRateLimit,
		WSRateBurst:         cfg.WSRateBurst,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server")
	}

	var bot *discord.Bot
	if discordSession != nil {
		bot, err = discord.New(discordSession, &discord.Config{
			Token:               cfg.DiscordToken,
			ApplicationID:       cfg.DiscordApplicationID,
			GuildID:             cfg.DiscordGuildID,
			BaseURL:             cfg.BaseURL,
			RoomService:         roomSvc,
			NotificationService: notificationSvc,
			MessagingService:    messagingSvc,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Discord bot")
		}
		if err := bot.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start Discord bot")
		}
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error stopping HTTP server")
	}
	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error().Err(err).Msg("error stopping bot")
		}
	}

	log.Info().Msg("sketchparty has been shut down")
}
