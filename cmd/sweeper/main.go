package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/common/logger"
	"github.com/KirkDiggler/sketchparty/internal/config"
	"github.com/KirkDiggler/sketchparty/internal/housekeeping"
	"github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	"github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	"github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	"github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	once := flag.Bool("once", false, "sweep a single time and exit")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	clk := clock.New()

	rooms, err := room.NewRedis(&room.Config{RedisClient: redisClient, MaxRetries: cfg.TxMaxRetries, Clock: clk})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room repository")
	}
	presenceRepo, err := presence.NewRedis(&presence.Config{RedisClient: redisClient, Clock: clk})
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

	sweeper, err := housekeeping.New(&housekeeping.Config{
		RoomRepo:     rooms,
		PresenceRepo: presenceRepo,
		InviteRepo:   inviteRepo,
		EventRepo:    eventRepo,
		Clock:        clk,
		MaxAge:       cfg.SweepMaxAge,
		Interval:     cfg.SweepInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create sweeper")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if _, err := sweeper.Sweep(ctx); err != nil {
			log.Fatal().Err(err).Msg("sweep failed")
		}
		return
	}

	if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("sweeper stopped")
	}
	log.Info().Msg("sweeper has been shut down")
}
