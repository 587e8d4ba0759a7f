package presence

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock/mocks"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	mockClock *mocks.MockClock
	repo      Repository
	testNow   time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	ctrl := gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(ctrl)
	s.testNow = time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) heartbeat(id models.PlayerID, at time.Time) {
	s.mockClock.EXPECT().Now().Return(at)
	s.Require().NoError(s.repo.Heartbeat(context.Background(), &HeartbeatInput{
		RoomCode: "ABC234",
		PlayerID: id,
	}))
}

func (s *RedisRepositoryTestSuite) TestHeartbeatAndGet() {
	s.heartbeat("P1", s.testNow)
	s.heartbeat("P2", s.testNow.Add(-30*time.Second))

	presence, err := s.repo.GetPresence(context.Background(), &GetPresenceInput{RoomCode: "ABC234"})
	s.Require().NoError(err)
	s.Len(presence, 2)
	s.True(s.testNow.Equal(presence["P1"]))

	s.Equal(models.PresenceOnline, presence.StatusOf("P1", s.testNow))
	s.Equal(models.PresenceIdle, presence.StatusOf("P2", s.testNow))
	s.Equal(models.PresenceOffline, presence.StatusOf("P3", s.testNow))
}

func (s *RedisRepositoryTestSuite) TestHeartbeat_LastWriteWins() {
	s.heartbeat("P1", s.testNow)
	s.heartbeat("P1", s.testNow.Add(5*time.Second))

	presence, err := s.repo.GetPresence(context.Background(), &GetPresenceInput{RoomCode: "ABC234"})
	s.Require().NoError(err)
	s.True(s.testNow.Add(5 * time.Second).Equal(presence["P1"]))
}

func (s *RedisRepositoryTestSuite) TestGetPresence_EmptyRoom() {
	presence, err := s.repo.GetPresence(context.Background(), &GetPresenceInput{RoomCode: "NOBODY"})
	s.Require().NoError(err)
	s.NotNil(presence)
	s.Empty(presence)
}

func (s *RedisRepositoryTestSuite) TestRemovePlayerAndDelete() {
	s.heartbeat("P1", s.testNow)
	s.heartbeat("P2", s.testNow)

	s.Require().NoError(s.repo.RemovePlayer(context.Background(), &RemovePlayerInput{RoomCode: "ABC234", PlayerID: "P2"}))
	presence, err := s.repo.GetPresence(context.Background(), &GetPresenceInput{RoomCode: "ABC234"})
	s.Require().NoError(err)
	s.Len(presence, 1)

	s.Require().NoError(s.repo.DeletePresence(context.Background(), &DeletePresenceInput{RoomCode: "ABC234"}))
	s.False(s.mr.Exists("presence:ABC234"))
}

func (s *RedisRepositoryTestSuite) TestListPresence() {
	s.heartbeat("P1", s.testNow)

	out, err := s.repo.ListPresence(context.Background(), &ListPresenceInput{})
	s.Require().NoError(err)
	s.Require().Contains(out.Rooms, models.RoomCode("ABC234"))
	s.True(s.testNow.Equal(out.Rooms["ABC234"]["P1"]))
}

func (s *RedisRepositoryTestSuite) next(updates <-chan models.Presence) models.Presence {
	select {
	case p := <-updates:
		return p
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for presence update")
		return nil
	}
}

func (s *RedisRepositoryTestSuite) TestSubscribePresence() {
	s.heartbeat("P1", s.testNow)

	updates := make(chan models.Presence, 16)
	sub, err := s.repo.SubscribePresence(context.Background(), &SubscribePresenceInput{
		RoomCode: "ABC234",
		Callback: func(p models.Presence) { updates <- p },
	})
	s.Require().NoError(err)
	defer sub.Close()

	initial := s.next(updates)
	s.Len(initial, 1)

	s.heartbeat("P2", s.testNow.Add(time.Second))
	merged := s.next(updates)
	s.Len(merged, 2)
	s.True(s.testNow.Add(time.Second).Equal(merged["P2"]))

	// the first delivery is a copy and does not see later heartbeats
	s.Len(initial, 1)

	s.Require().NoError(s.repo.RemovePlayer(context.Background(), &RemovePlayerInput{RoomCode: "ABC234", PlayerID: "P1"}))
	s.Len(s.next(updates), 1)

	s.Require().NoError(s.repo.DeletePresence(context.Background(), &DeletePresenceInput{RoomCode: "ABC234"}))
	s.Empty(s.next(updates))
}
