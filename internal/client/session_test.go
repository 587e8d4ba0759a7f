package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/client/mocks"
	clockMocks "github.com/KirkDiggler/sketchparty/internal/common/clock/mocks"
	"github.com/KirkDiggler/sketchparty/internal/models"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	roomMocks "github.com/KirkDiggler/sketchparty/internal/services/room/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const waitFor = time.Second

type fakeSubscription struct {
	closed atomic.Bool
}

func (f *fakeSubscription) Close() error {
	f.closed.Store(true)
	return nil
}

type SessionTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRooms    *roomMocks.MockService
	mockRenderer *mocks.MockRenderer
	mockClock    *clockMocks.MockClock
	store        *MemoryStore
	session      *Session
	ctx          context.Context
	testNow      time.Time

	roomCallback     roomRepo.Callback
	presenceCallback presenceRepo.Callback
	roomSub          *fakeSubscription
	presenceSub      *fakeSubscription
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRooms = roomMocks.NewMockService(s.mockCtrl)
	s.mockRenderer = mocks.NewMockRenderer(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.store = NewMemoryStore()
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)
	s.roomSub = &fakeSubscription{}
	s.presenceSub = &fakeSubscription{}

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	var err error
	s.session, err = New(&Config{
		Rooms:             s.mockRooms,
		Store:             s.store,
		Renderer:          s.mockRenderer,
		Clock:             s.mockClock,
		HeartbeatInterval: time.Hour,
		TickInterval:      5 * time.Millisecond,
	})
	s.Require().NoError(err)
}

func (s *SessionTestSuite) TearDownTest() {
	s.session.Close()
	s.mockCtrl.Finish()
}

func (s *SessionTestSuite) remember() {
	s.Require().NoError(SaveIntent(s.ctx, s.store, Intent{
		RoomCode:   "ABC234",
		PlayerID:   "P2",
		PlayerName: "Bob",
	}))
}

// open opens the session with subscriptions whose callbacks the test drives
func (s *SessionTestSuite) open() {
	s.remember()

	s.mockRooms.EXPECT().
		SubscribeRoom(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *room.SubscribeRoomInput) (room.Subscription, error) {
			s.Equal(models.RoomCode("ABC234"), input.RoomCode)
			s.roomCallback = input.Callback
			return s.roomSub, nil
		})
	s.mockRooms.EXPECT().
		SubscribePresence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *room.SubscribePresenceInput) (room.Subscription, error) {
			s.presenceCallback = input.Callback
			return s.presenceSub, nil
		})
	s.mockRooms.EXPECT().
		Heartbeat(gomock.Any(), &room.HeartbeatInput{RoomCode: "ABC234", PlayerID: "P2"}).
		Return(nil).
		AnyTimes()

	s.Require().NoError(s.session.Open(s.ctx))
}

func (s *SessionTestSuite) lobby() *models.GameRoom {
	return &models.GameRoom{
		RoomCode: "ABC234",
		HostID:   "P1",
		Players: []models.Player{
			{ID: "P1", Name: "Alice"},
			{ID: "P2", Name: "Bob"},
		},
		Status:   models.RoomStatusLobby,
		Settings: models.DefaultSettings(),
	}
}

// drawing returns a room where P2's timer started startedAgo before now
func (s *SessionTestSuite) drawing(startedAgo time.Duration) *models.GameRoom {
	r := s.lobby()
	r.Status = models.RoomStatusDrawing
	r.RoundNumber = 1
	r.PlayerStates = map[models.PlayerID]models.PlayerState{
		"P1": models.WaitingState(),
		"P2": models.DrawingState(s.testNow.Add(-startedAgo)),
	}
	return r
}

func (s *SessionTestSuite) waitClosed() {
	select {
	case <-s.session.Done():
	case <-time.After(waitFor):
		s.Fail("session did not stop")
	}
}

func (s *SessionTestSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Store: s.store, Renderer: s.mockRenderer, Clock: s.mockClock})
	s.Error(err)

	session, err := New(&Config{Rooms: s.mockRooms, Store: s.store, Renderer: s.mockRenderer, Clock: s.mockClock})
	s.Require().NoError(err)
	s.Equal(DefaultHeartbeatInterval, session.heartbeatInterval)
	s.Equal(DefaultTickInterval, session.tickInterval)
}

func (s *SessionTestSuite) TestOpenWithoutRoom() {
	s.ErrorIs(s.session.Open(s.ctx), ErrNoSession)
}

func (s *SessionTestSuite) TestOpenTwice() {
	s.open()

	s.ErrorIs(s.session.Open(s.ctx), ErrAlreadyOpen)
}

func (s *SessionTestSuite) TestOpenSubscribeFailure() {
	s.remember()
	s.mockRooms.EXPECT().
		SubscribeRoom(gomock.Any(), gomock.Any()).
		Return(nil, room.ErrRoomNotFound)

	s.ErrorIs(s.session.Open(s.ctx), room.ErrRoomNotFound)

	// a failed open can be retried
	s.mockRooms.EXPECT().
		SubscribeRoom(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("still down"))
	s.EqualError(s.session.Open(s.ctx), "still down")
}

func (s *SessionTestSuite) TestRendersEveryPush() {
	s.open()

	rendered := make(chan *models.GameRoom, 2)
	s.mockRenderer.EXPECT().
		RenderRoom(gomock.Any()).
		Do(func(r *models.GameRoom) { rendered <- r }).
		Times(2)

	first := s.lobby()
	second := s.lobby()
	second.PlayerStates = map[models.PlayerID]models.PlayerState{"P2": models.ReadyState()}

	s.roomCallback(first)
	s.roomCallback(second)

	s.Same(first, <-rendered)
	s.Same(second, <-rendered)
}

func (s *SessionTestSuite) TestRendersPresence() {
	s.open()

	presence := models.Presence{"P1": s.testNow.Add(-20 * time.Second)}
	rendered := make(chan struct{})
	s.mockRenderer.EXPECT().
		RenderPresence(presence, s.testNow).
		Do(func(models.Presence, time.Time) { close(rendered) })

	s.presenceCallback(presence)

	select {
	case <-rendered:
	case <-time.After(waitFor):
		s.Fail("presence was not rendered")
	}
}

func (s *SessionTestSuite) TestRoomDeleted() {
	s.open()
	s.mockRenderer.EXPECT().RoomGone()

	s.roomCallback(nil)
	s.waitClosed()

	_, err := LoadIntent(s.ctx, s.store)
	s.ErrorIs(err, ErrNoSession)
	s.True(s.roomSub.closed.Load())
	s.True(s.presenceSub.closed.Load())
}

func (s *SessionTestSuite) TestKicked() {
	s.open()
	s.mockRenderer.EXPECT().RenderRoom(gomock.Any())
	s.mockRenderer.EXPECT().RoomGone()

	s.roomCallback(s.lobby())

	kicked := s.lobby()
	kicked.Players = kicked.Players[:1]
	s.roomCallback(kicked)

	s.waitClosed()
	_, err := LoadIntent(s.ctx, s.store)
	s.ErrorIs(err, ErrNoSession)
}

func (s *SessionTestSuite) TestAutosubmitOnExpiry() {
	s.open()
	s.session.SetDraft("strokes")

	submitted := make(chan struct{})
	s.mockRenderer.EXPECT().RenderRoom(gomock.Any())
	s.mockRooms.EXPECT().
		SubmitDrawing(gomock.Any(), &room.SubmitDrawingInput{
			RoomCode: "ABC234",
			PlayerID: "P2",
			Drawing:  "strokes",
		}).
		DoAndReturn(func(context.Context, *room.SubmitDrawingInput) (*room.MutationOutput, error) {
			close(submitted)
			return &room.MutationOutput{Changed: true}, nil
		})

	s.roomCallback(s.drawing(61 * time.Second))

	select {
	case <-submitted:
	case <-time.After(waitFor):
		s.Fail("drawing was not submitted")
	}

	// later ticks for the same round do not submit again
	time.Sleep(50 * time.Millisecond)
}

func (s *SessionTestSuite) TestNoAutosubmitWhileTimeRemains() {
	s.open()
	s.mockRenderer.EXPECT().RenderRoom(gomock.Any())

	s.roomCallback(s.drawing(10 * time.Second))

	time.Sleep(50 * time.Millisecond)
}

func (s *SessionTestSuite) TestCloseKeepsRoom() {
	s.open()

	s.session.Close()
	s.waitClosed()

	intent, err := LoadIntent(s.ctx, s.store)
	s.Require().NoError(err)
	s.Equal(models.RoomCode("ABC234"), intent.RoomCode)
	s.True(s.roomSub.closed.Load())
}

func (s *SessionTestSuite) TestLeave() {
	s.open()

	s.Require().NoError(s.session.Leave(s.ctx))

	_, err := LoadIntent(s.ctx, s.store)
	s.ErrorIs(err, ErrNoSession)
	s.True(s.presenceSub.closed.Load())
}

func (s *SessionTestSuite) TestActionsUseRememberedRoom() {
	s.remember()
	out := &room.MutationOutput{Changed: true}

	s.mockRooms.EXPECT().
		ReadyUp(s.ctx, &room.ReadyUpInput{RoomCode: "ABC234", PlayerID: "P2"}).
		Return(out, nil)
	s.mockRooms.EXPECT().
		SubmitVote(s.ctx, &room.SubmitVoteInput{RoomCode: "ABC234", PlayerID: "P2", TargetID: "P1"}).
		Return(out, nil)
	s.mockRooms.EXPECT().
		TriggerSabotage(s.ctx, &room.TriggerSabotageInput{RoomCode: "ABC234", PlayerID: "P2", TargetID: "P1", Effect: models.SabotageEffect("shake")}).
		Return(out, nil)

	got, err := s.session.ReadyUp(s.ctx)
	s.Require().NoError(err)
	s.Same(out, got)

	_, err = s.session.SubmitVote(s.ctx, "P1")
	s.NoError(err)

	_, err = s.session.TriggerSabotage(s.ctx, "P1", "shake")
	s.NoError(err)
}

func (s *SessionTestSuite) TestSubmitDrawingFallsBackToDraft() {
	s.remember()
	s.session.SetDraft("draft")

	s.mockRooms.EXPECT().
		SubmitDrawing(s.ctx, &room.SubmitDrawingInput{RoomCode: "ABC234", PlayerID: "P2", Drawing: "draft"}).
		Return(&room.MutationOutput{}, nil)

	_, err := s.session.SubmitDrawing(s.ctx, "")
	s.NoError(err)
}

func (s *SessionTestSuite) TestActionsWithoutRoom() {
	_, err := s.session.StartRound(s.ctx)
	s.ErrorIs(err, ErrNoSession)

	_, err = s.session.NextRound(s.ctx)
	s.ErrorIs(err, ErrNoSession)
}

func (s *SessionTestSuite) TestCreateRoomRemembersIt() {
	created := s.lobby()
	s.mockRooms.EXPECT().
		CreateRoom(s.ctx, &room.CreateRoomInput{HostID: "P1", HostName: "Alice"}).
		Return(&room.CreateRoomOutput{Room: created}, nil)

	got, err := s.session.CreateRoom(s.ctx, "P1", "Alice", nil)
	s.Require().NoError(err)
	s.Same(created, got)

	intent, err := LoadIntent(s.ctx, s.store)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(Intent{RoomCode: "ABC234", PlayerID: "P1", PlayerName: "Alice"}, intent))
}

func (s *SessionTestSuite) TestJoinRoomNotJoined() {
	s.mockRooms.EXPECT().
		JoinRoom(s.ctx, gomock.Any()).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: false}, nil)

	out, err := s.session.JoinRoom(s.ctx, "ABC234", "P3", "Cleo")
	s.Require().NoError(err)
	s.False(out.Joined)

	_, err = LoadIntent(s.ctx, s.store)
	s.ErrorIs(err, ErrNoSession)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, KeyRoomCode)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, KeyRoomCode, "ABC234"))
	got, err := store.Get(ctx, KeyRoomCode)
	require.NoError(t, err)
	assert.Equal(t, "ABC234", got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx, KeyRoomCode)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSaveIntentRequiresRoomAndPlayer(t *testing.T) {
	err := SaveIntent(context.Background(), NewMemoryStore(), Intent{RoomCode: "ABC234"})
	assert.Error(t, err)
}

func TestLoadIntentStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	boom := errors.New("storage unavailable")

	store.EXPECT().Get(gomock.Any(), KeyRoomCode).Return("", boom)

	_, err := LoadIntent(context.Background(), store)
	assert.ErrorIs(t, err, boom)
}

func TestLoadIntentWithoutName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyRoomCode, "ABC234"))
	require.NoError(t, store.Set(ctx, KeyPlayerID, "P1"))

	intent, err := LoadIntent(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Intent{RoomCode: "ABC234", PlayerID: "P1"}, intent)
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)
	r := &models.GameRoom{
		Status:   models.RoomStatusDrawing,
		Settings: models.DefaultSettings(),
		PlayerStates: map[models.PlayerID]models.PlayerState{
			"P1": models.DrawingState(now.Add(-15 * time.Second)),
			"P2": models.DrawingState(now.Add(-90 * time.Second)),
			"P3": models.WaitingState(),
		},
	}

	assert.Equal(t, 45*time.Second, TimeRemaining(r, "P1", now))
	assert.Equal(t, time.Duration(0), TimeRemaining(r, "P2", now))
	assert.Equal(t, time.Duration(0), TimeRemaining(r, "P3", now))
	assert.Equal(t, time.Duration(0), TimeRemaining(nil, "P1", now))
}
