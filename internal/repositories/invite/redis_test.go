package invite

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) saveInvite(id string, to models.PlayerID) {
	s.Require().NoError(s.repo.SaveInvite(context.Background(), &SaveInviteInput{
		Invite: &models.GameInvite{
			ID:           id,
			RoomCode:     "ABC234",
			FromPlayerID: "P1",
			ToPlayerID:   to,
			CreatedAt:    s.testNow,
		},
	}))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetInvite() {
	s.saveInvite("inv-1", "P2")

	invite, err := s.repo.GetInvite(context.Background(), &GetInviteInput{InviteID: "inv-1"})
	s.Require().NoError(err)
	s.Equal(models.RoomCode("ABC234"), invite.RoomCode)
	s.Equal(models.PlayerID("P2"), invite.ToPlayerID)
	s.False(invite.NotificationSent)
}

func (s *RedisRepositoryTestSuite) TestGetInvite_NotFound() {
	_, err := s.repo.GetInvite(context.Background(), &GetInviteInput{InviteID: "nope"})
	s.ErrorIs(err, ErrInviteNotFound)
}

func (s *RedisRepositoryTestSuite) TestMarkInviteSent_Once() {
	s.saveInvite("inv-1", "P2")

	first, err := s.repo.MarkInviteSent(context.Background(), &MarkInviteSentInput{InviteID: "inv-1"})
	s.Require().NoError(err)
	s.True(first.Marked)

	second, err := s.repo.MarkInviteSent(context.Background(), &MarkInviteSentInput{InviteID: "inv-1"})
	s.Require().NoError(err)
	s.False(second.Marked)

	_, err = s.repo.MarkInviteSent(context.Background(), &MarkInviteSentInput{InviteID: "nope"})
	s.ErrorIs(err, ErrInviteNotFound)
}

func (s *RedisRepositoryTestSuite) TestListInvites_FilterByRecipient() {
	s.saveInvite("inv-1", "P2")
	s.saveInvite("inv-2", "P3")
	s.saveInvite("inv-3", "P2")

	all, err := s.repo.ListInvites(context.Background(), &ListInvitesInput{})
	s.Require().NoError(err)
	s.Len(all.Invites, 3)

	forP2, err := s.repo.ListInvites(context.Background(), &ListInvitesInput{ToPlayerID: "P2"})
	s.Require().NoError(err)
	s.Len(forP2.Invites, 2)

	s.Require().NoError(s.repo.DeleteInvite(context.Background(), &DeleteInviteInput{InviteID: "inv-1"}))
	forP2, err = s.repo.ListInvites(context.Background(), &ListInvitesInput{ToPlayerID: "P2"})
	s.Require().NoError(err)
	s.Len(forP2.Invites, 1)
}

func (s *RedisRepositoryTestSuite) saveRequest(id string) {
	s.Require().NoError(s.repo.SaveFriendRequest(context.Background(), &SaveFriendRequestInput{
		Request: &models.FriendRequest{
			ID:           id,
			FromPlayerID: "P1",
			ToPlayerID:   "P2",
			CreatedAt:    s.testNow,
			UpdatedAt:    s.testNow,
		},
	}))
}

func (s *RedisRepositoryTestSuite) TestSaveFriendRequest_DefaultsToPending() {
	s.saveRequest("fr-1")

	request, err := s.repo.GetFriendRequest(context.Background(), &GetFriendRequestInput{RequestID: "fr-1"})
	s.Require().NoError(err)
	s.Equal(models.FriendRequestPending, request.Status)

	err = s.repo.SaveFriendRequest(context.Background(), &SaveFriendRequestInput{
		Request: &models.FriendRequest{ID: "fr-1", FromPlayerID: "P9", ToPlayerID: "P2"},
	})
	s.ErrorIs(err, ErrFriendRequestExists)
}

func (s *RedisRepositoryTestSuite) TestRespondToFriendRequest() {
	s.saveRequest("fr-1")
	later := s.testNow.Add(time.Hour)

	request, err := s.repo.RespondToFriendRequest(context.Background(), &RespondToFriendRequestInput{
		RequestID: "fr-1",
		Status:    models.FriendRequestAccepted,
		At:        later,
	})
	s.Require().NoError(err)
	s.Equal(models.FriendRequestAccepted, request.Status)
	s.True(later.Equal(request.UpdatedAt))

	_, err = s.repo.RespondToFriendRequest(context.Background(), &RespondToFriendRequestInput{
		RequestID: "fr-1",
		Status:    models.FriendRequestDeclined,
		At:        later,
	})
	s.ErrorIs(err, ErrFriendRequestAnswered)

	stored, err := s.repo.GetFriendRequest(context.Background(), &GetFriendRequestInput{RequestID: "fr-1"})
	s.Require().NoError(err)
	s.Equal(models.FriendRequestAccepted, stored.Status)
}

func (s *RedisRepositoryTestSuite) TestRespondToFriendRequest_Invalid() {
	s.saveRequest("fr-1")

	_, err := s.repo.RespondToFriendRequest(context.Background(), &RespondToFriendRequestInput{
		RequestID: "fr-1",
		Status:    models.FriendRequestPending,
	})
	s.ErrorIs(err, ErrInvalidFriendRequestStatus)

	_, err = s.repo.RespondToFriendRequest(context.Background(), &RespondToFriendRequestInput{
		RequestID: "missing",
		Status:    models.FriendRequestAccepted,
	})
	s.ErrorIs(err, ErrFriendRequestNotFound)
}

func (s *RedisRepositoryTestSuite) TestListAndDeleteFriendRequests() {
	s.saveRequest("fr-1")
	s.saveRequest("fr-2")

	out, err := s.repo.ListFriendRequests(context.Background(), &ListFriendRequestsInput{ToPlayerID: "P2"})
	s.Require().NoError(err)
	s.Len(out.Requests, 2)

	s.Require().NoError(s.repo.DeleteFriendRequest(context.Background(), &DeleteFriendRequestInput{RequestID: "fr-1"}))

	out, err = s.repo.ListFriendRequests(context.Background(), &ListFriendRequestsInput{})
	s.Require().NoError(err)
	s.Len(out.Requests, 1)
}
