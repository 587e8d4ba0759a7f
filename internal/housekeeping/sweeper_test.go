package housekeeping

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/sketchparty/internal/common/clock/mocks"
	"github.com/KirkDiggler/sketchparty/internal/models"
	gameEventRepo "github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	pushTokenRepo "github.com/KirkDiggler/sketchparty/internal/repositories/pushtoken"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SweeperTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockClock    *clockMocks.MockClock
	mr           *miniredis.Miniredis
	client       *redis.Client
	roomRepo     roomRepo.Repository
	presenceRepo presenceRepo.Repository
	inviteRepo   inviteRepo.Repository
	eventRepo    gameEventRepo.Repository
	tokenRepo    pushTokenRepo.Repository
	sweeper      *Sweeper
	ctx          context.Context
	testNow      time.Time
	now          time.Time
}

func (s *SweeperTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)
	s.now = s.testNow

	// heartbeats are stamped by the clock, so tests move it around
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	s.roomRepo, err = roomRepo.NewRedis(&roomRepo.Config{RedisClient: s.client, Clock: s.mockClock})
	s.Require().NoError(err)
	s.presenceRepo, err = presenceRepo.NewRedis(&presenceRepo.Config{RedisClient: s.client, Clock: s.mockClock})
	s.Require().NoError(err)
	s.inviteRepo, err = inviteRepo.NewRedis(&inviteRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.eventRepo, err = gameEventRepo.NewRedis(&gameEventRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.tokenRepo, err = pushTokenRepo.NewRedis(&pushTokenRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.sweeper, err = New(&Config{
		RoomRepo:     s.roomRepo,
		PresenceRepo: s.presenceRepo,
		InviteRepo:   s.inviteRepo,
		EventRepo:    s.eventRepo,
		Clock:        s.mockClock,
		MaxAge:       24 * time.Hour,
	})
	s.Require().NoError(err)
}

func (s *SweeperTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func (s *SweeperTestSuite) createRoom(code models.RoomCode, age time.Duration) {
	s.Require().NoError(s.roomRepo.CreateRoom(s.ctx, &roomRepo.CreateRoomInput{Room: &models.GameRoom{
		RoomCode:  code,
		HostID:    "P1",
		Players:   []models.Player{{ID: "P1", Name: "Alice"}},
		Status:    models.RoomStatusLobby,
		Settings:  models.DefaultSettings(),
		CreatedAt: s.testNow.Add(-age),
	}}))
}

func (s *SweeperTestSuite) heartbeat(code models.RoomCode, age time.Duration) {
	s.now = s.testNow.Add(-age)
	defer func() { s.now = s.testNow }()

	s.Require().NoError(s.presenceRepo.Heartbeat(s.ctx, &presenceRepo.HeartbeatInput{RoomCode: code, PlayerID: "P1"}))
}

func (s *SweeperTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{RoomRepo: s.roomRepo})
	s.Error(err)

	sweeper, err := New(&Config{
		RoomRepo:     s.roomRepo,
		PresenceRepo: s.presenceRepo,
		InviteRepo:   s.inviteRepo,
		EventRepo:    s.eventRepo,
		Clock:        s.mockClock,
	})
	s.Require().NoError(err)
	s.Equal(DefaultMaxAge, sweeper.maxAge)
	s.Equal(DefaultInterval, sweeper.interval)
}

func (s *SweeperTestSuite) TestSweep() {
	old := 48 * time.Hour
	recent := time.Hour

	s.createRoom("ABC234", old)
	s.createRoom("DEF567", recent)
	s.createRoom("GHJ892", recent)

	s.heartbeat("ABC234", old)
	s.heartbeat("DEF567", 30*time.Hour)
	s.heartbeat("GHJ892", recent)
	// a room created after the room scan still has fresh heartbeats to keep
	s.heartbeat("KMN345", 0)
	// presence left behind by a room that is long gone
	s.heartbeat("PQR678", old)

	for _, invite := range []*models.GameInvite{
		{ID: "inv-old", RoomCode: "ABC234", FromPlayerID: "P1", ToPlayerID: "P2", CreatedAt: s.testNow.Add(-old)},
		{ID: "inv-new", RoomCode: "GHJ892", FromPlayerID: "P1", ToPlayerID: "P2", CreatedAt: s.testNow},
	} {
		s.Require().NoError(s.inviteRepo.SaveInvite(s.ctx, &inviteRepo.SaveInviteInput{Invite: invite}))
	}
	for _, request := range []*models.FriendRequest{
		{ID: "fr-old", FromPlayerID: "P1", ToPlayerID: "P2", CreatedAt: s.testNow.Add(-old), UpdatedAt: s.testNow.Add(-old)},
		{ID: "fr-new", FromPlayerID: "P1", ToPlayerID: "P3", CreatedAt: s.testNow.Add(-old), UpdatedAt: s.testNow},
	} {
		s.Require().NoError(s.inviteRepo.SaveFriendRequest(s.ctx, &inviteRepo.SaveFriendRequestInput{Request: request}))
	}
	for _, event := range []*models.GameEvent{
		{ID: "game_started:ABC234:1", Type: models.GameEventStarted, RoomCode: "ABC234", RoundNumber: 1, CreatedAt: s.testNow.Add(-old)},
		{ID: "game_started:GHJ892:1", Type: models.GameEventStarted, RoomCode: "GHJ892", RoundNumber: 1, CreatedAt: s.testNow},
	} {
		_, err := s.eventRepo.RecordEvent(s.ctx, &gameEventRepo.RecordEventInput{Event: event})
		s.Require().NoError(err)
	}
	s.Require().NoError(s.tokenRepo.SaveToken(s.ctx, &pushTokenRepo.SaveTokenInput{Token: &models.PushToken{
		PlayerID:  "P1",
		Token:     "device-1",
		UpdatedAt: s.testNow.Add(-old),
	}}))

	report, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)

	want := &Report{Rooms: 1, Presence: 3, Invites: 1, FriendRequests: 1, Events: 1}
	s.Empty(cmp.Diff(want, report))

	rooms, err := s.roomRepo.ListRooms(s.ctx, &roomRepo.ListRoomsInput{})
	s.Require().NoError(err)
	codes := make([]models.RoomCode, 0, len(rooms.Rooms))
	for _, r := range rooms.Rooms {
		codes = append(codes, r.RoomCode)
	}
	s.ElementsMatch([]models.RoomCode{"DEF567", "GHJ892"}, codes)

	presence, err := s.presenceRepo.ListPresence(s.ctx, &presenceRepo.ListPresenceInput{})
	s.Require().NoError(err)
	s.Len(presence.Rooms, 2)
	s.Contains(presence.Rooms, models.RoomCode("GHJ892"))
	s.Contains(presence.Rooms, models.RoomCode("KMN345"))

	_, err = s.inviteRepo.GetInvite(s.ctx, &inviteRepo.GetInviteInput{InviteID: "inv-old"})
	s.ErrorIs(err, inviteRepo.ErrInviteNotFound)
	_, err = s.inviteRepo.GetFriendRequest(s.ctx, &inviteRepo.GetFriendRequestInput{RequestID: "fr-new"})
	s.NoError(err)
	_, err = s.eventRepo.GetEvent(s.ctx, &gameEventRepo.GetEventInput{EventID: "game_started:ABC234:1"})
	s.ErrorIs(err, gameEventRepo.ErrEventNotFound)

	// push tokens belong to players, not games
	s.True(s.mr.Exists("push_token:P1"))
}

func (s *SweeperTestSuite) TestSweepNothing() {
	s.createRoom("ABC234", time.Minute)

	report, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(&Report{}, report))
}

func (s *SweeperTestSuite) TestRunStopsWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(s.sweeper.Run(ctx), context.Canceled)
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}
