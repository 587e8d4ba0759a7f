package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/sketchparty/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/sketchparty/internal/common/uuid/mocks"
	"github.com/KirkDiggler/sketchparty/internal/models"
	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/sketchparty/internal/services/messaging/mocks"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	notificationMocks "github.com/KirkDiggler/sketchparty/internal/services/notification/mocks"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	roomMocks "github.com/KirkDiggler/sketchparty/internal/services/room/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServerTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRooms     *roomMocks.MockService
	mockNotifier  *notificationMocks.MockService
	mockMessaging *messagingMocks.MockService
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	tokens        *TokenManager
	server        *Server
	testNow       time.Time
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockRooms = roomMocks.NewMockService(s.mockCtrl)
	s.mockNotifier = notificationMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.testNow = time.Date(2025, 4, 19, 10, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()
	// the copy is the error type itself so bodies are easy to check
	s.mockMessaging.EXPECT().
		GetErrorMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *messaging.GetErrorMessageInput) (*messaging.GetErrorMessageOutput, error) {
			return &messaging.GetErrorMessageOutput{Message: "copy:" + string(input.ErrorType)}, nil
		}).
		AnyTimes()

	var err error
	s.tokens, err = NewTokenManager("test-secret", time.Hour, s.mockClock)
	s.Require().NoError(err)

	s.server, err = New(&Config{
		BaseURL:             "https://sketch.party",
		RoomService:         s.mockRooms,
		NotificationService: s.mockNotifier,
		MessagingService:    s.mockMessaging,
		Tokens:              s.tokens,
		Clock:               s.mockClock,
		UUIDGenerator:       s.mockUUID,
		WSRateLimit:         0.001,
		WSRateBurst:         2,
		HeartbeatInterval:   time.Hour,
		TickInterval:        time.Hour,
	})
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ServerTestSuite) lobby() *models.GameRoom {
	return &models.GameRoom{
		RoomCode: "ABC234",
		HostID:   "P1",
		Players:  []models.Player{{ID: "P1", Name: "Alice"}, {ID: "P2", Name: "Bob"}},
		Status:   models.RoomStatusLobby,
		Settings: models.DefaultSettings(),
	}
}

func (s *ServerTestSuite) token(code models.RoomCode, player models.PlayerID) string {
	token, err := s.tokens.Generate(code, player, "Alice")
	s.Require().NoError(err)
	return token
}

func (s *ServerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decodeError(rec *httptest.ResponseRecorder) errorResponse {
	var body errorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *ServerTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{BaseURL: "https://sketch.party"})
	s.Error(err)
}

func (s *ServerTestSuite) TestCreateRoom() {
	s.mockUUID.EXPECT().NewUUID().Return("P1")
	s.mockRooms.EXPECT().
		CreateRoom(gomock.Any(), &room.CreateRoomInput{HostID: "P1", HostName: "Alice"}).
		Return(&room.CreateRoomOutput{Room: s.lobby()}, nil)

	rec := s.do(http.MethodPost, "/rooms", "", map[string]string{"name": "Alice"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(models.PlayerID("P1"), body.PlayerID)
	s.Equal(models.RoomCode("ABC234"), body.Room.RoomCode)

	claims, err := s.tokens.Verify(body.Token)
	s.Require().NoError(err)
	s.Equal(models.RoomCode("ABC234"), claims.RoomCode)
	s.Equal(models.PlayerID("P1"), claims.PlayerID())
	s.Equal("Alice", claims.Name)
}

func (s *ServerTestSuite) TestCreateRoomIgnoresPlayerIDInBody() {
	s.mockUUID.EXPECT().NewUUID().Return("fresh-1")
	s.mockRooms.EXPECT().
		CreateRoom(gomock.Any(), &room.CreateRoomInput{HostID: "fresh-1", HostName: "Alice"}).
		Return(&room.CreateRoomOutput{Room: s.lobby()}, nil)

	rec := s.do(http.MethodPost, "/rooms", "", map[string]any{"name": "Alice", "playerId": "discord-1"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(models.PlayerID("fresh-1"), body.PlayerID)
}

func (s *ServerTestSuite) TestCreateRoomKeepsTokenHolderID() {
	settings := models.Settings{TimerDuration: 30, TotalRounds: 2}
	s.mockRooms.EXPECT().
		CreateRoom(gomock.Any(), &room.CreateRoomInput{HostID: "P2", HostName: "Bob", Settings: &settings}).
		Return(&room.CreateRoomOutput{Room: s.lobby()}, nil)

	rec := s.do(http.MethodPost, "/rooms", s.token("XYZ789", "P2"), map[string]any{"name": "Bob", "settings": settings})
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ServerTestSuite) TestCreateRoomBadToken() {
	rec := s.do(http.MethodPost, "/rooms", "not-a-jwt", map[string]string{"name": "Alice"})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(messaging.ErrorTypeUnauthorized, s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestCreateRoomBadBody() {
	rec := s.do(http.MethodPost, "/rooms", "", `{"name":`)

	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decodeError(rec)
	s.Equal(messaging.ErrorTypeBadRequest, body.Error)
	s.Equal("copy:bad_request", body.Message)
}

func (s *ServerTestSuite) TestCreateRoomNoCodeLeft() {
	s.mockUUID.EXPECT().NewUUID().Return("P1")
	s.mockRooms.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).Return(nil, room.ErrNoRoomCodeLeft)

	rec := s.do(http.MethodPost, "/rooms", "", map[string]string{"name": "Alice"})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("1", rec.Header().Get("Retry-After"))
	s.True(s.decodeError(rec).Retryable)
}

func (s *ServerTestSuite) TestJoinRoom() {
	s.mockUUID.EXPECT().NewUUID().Return("P2")
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), &room.JoinRoomInput{RoomCode: "ABC234", PlayerID: "P2", PlayerName: "Bob"}).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: true, Changed: true}, nil)

	rec := s.do(http.MethodPost, "/rooms/abc234/join", "", map[string]string{"name": "Bob"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	claims, err := s.tokens.Verify(body.Token)
	s.Require().NoError(err)
	s.Equal(models.PlayerID("P2"), claims.PlayerID())
}

func (s *ServerTestSuite) TestJoinRoomCannotClaimHostID() {
	s.mockUUID.EXPECT().NewUUID().Return("fresh-3")
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), &room.JoinRoomInput{RoomCode: "ABC234", PlayerID: "fresh-3", PlayerName: "Mallory"}).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: true, Changed: true}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/join", "", map[string]string{"name": "Mallory", "playerId": "P1"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	claims, err := s.tokens.Verify(body.Token)
	s.Require().NoError(err)
	s.Equal(models.PlayerID("fresh-3"), claims.PlayerID())
	s.NotEqual(s.lobby().HostID, claims.PlayerID())

	// the token it got cannot act as the host
	s.mockRooms.EXPECT().
		StartRound(gomock.Any(), &room.StartRoundInput{RoomCode: "ABC234", PlayerID: "fresh-3"}).
		Return(&room.MutationOutput{Room: s.lobby(), Changed: false}, nil)
	rec = s.do(http.MethodPost, "/rooms/ABC234/start", body.Token, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"changed":false`)
}

func (s *ServerTestSuite) TestJoinRoomExistingMemberWithoutToken() {
	s.mockUUID.EXPECT().NewUUID().Return("P1")
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), gomock.Any()).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: true, Changed: false}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/join", "", map[string]string{"name": "Mallory"})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(messaging.ErrorTypeNotAllowed, s.decodeError(rec).Error)
	s.NotContains(rec.Body.String(), "token")
}

func (s *ServerTestSuite) TestJoinRoomRejoinWithToken() {
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), &room.JoinRoomInput{RoomCode: "ABC234", PlayerID: "P2", PlayerName: "Bob"}).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: true, Changed: false}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/join", s.token("ABC234", "P2"), map[string]string{"name": "Bob"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(models.PlayerID("P2"), body.PlayerID)
}

func (s *ServerTestSuite) TestJoinRoomTokenForOtherRoomGetsNewID() {
	s.mockUUID.EXPECT().NewUUID().Return("fresh-4")
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), &room.JoinRoomInput{RoomCode: "ABC234", PlayerID: "fresh-4", PlayerName: "Bob"}).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: true, Changed: true}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/join", s.token("XYZ789", "P1"), map[string]string{"name": "Bob"})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestJoinRoomBadToken() {
	rec := s.do(http.MethodPost, "/rooms/ABC234/join", "not-a-jwt", map[string]string{"name": "Bob"})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestJoinRoomNotJoined() {
	s.mockUUID.EXPECT().NewUUID().Return("P3")
	s.mockRooms.EXPECT().
		JoinRoom(gomock.Any(), gomock.Any()).
		Return(&room.JoinRoomOutput{Room: s.lobby(), Joined: false}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/join", "", map[string]string{"name": "Cleo"})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(messaging.ErrorTypeNotAllowed, s.decodeError(rec).Error)
	s.Empty(rec.Header().Get("Retry-After"))
}

func (s *ServerTestSuite) TestJoinRoomNotFound() {
	s.mockUUID.EXPECT().NewUUID().Return("P3")
	s.mockRooms.EXPECT().JoinRoom(gomock.Any(), gomock.Any()).Return(nil, room.ErrRoomNotFound)

	rec := s.do(http.MethodPost, "/rooms/ZZZ999/join", "", map[string]string{"name": "Cleo"})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(messaging.ErrorTypeRoomNotFound, s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestActionsRequireToken() {
	rec := s.do(http.MethodPost, "/rooms/ABC234/start", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(messaging.ErrorTypeUnauthorized, s.decodeError(rec).Error)

	rec = s.do(http.MethodPost, "/rooms/ABC234/start", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestTokenOnlyWorksForItsRoom() {
	rec := s.do(http.MethodPost, "/rooms/XYZ789/start", s.token("ABC234", "P1"), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/rooms/abc!/start", s.token("ABC234", "P1"), nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestLowercaseCodeMatchesToken() {
	s.mockRooms.EXPECT().
		GetRoom(gomock.Any(), &room.GetRoomInput{RoomCode: "ABC234"}).
		Return(&room.GetRoomOutput{Room: s.lobby()}, nil)

	rec := s.do(http.MethodGet, "/rooms/abc234", s.token("ABC234", "P2"), nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestStartRound() {
	started := s.lobby()
	started.Status = models.RoomStatusDrawing
	s.mockRooms.EXPECT().
		StartRound(gomock.Any(), &room.StartRoundInput{RoomCode: "ABC234", PlayerID: "P1"}).
		Return(&room.MutationOutput{Room: started, Changed: true}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/start", s.token("ABC234", "P1"), nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body mutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.True(body.Changed)
	s.Equal(models.RoomStatusDrawing, body.Room.Status)
}

func (s *ServerTestSuite) TestMutationBusy() {
	s.mockRooms.EXPECT().
		SubmitVote(gomock.Any(), &room.SubmitVoteInput{RoomCode: "ABC234", PlayerID: "P2", TargetID: "P1"}).
		Return(nil, room.ErrRoomBusy)

	rec := s.do(http.MethodPost, "/rooms/ABC234/vote", s.token("ABC234", "P2"), map[string]string{"targetId": "P1"})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("1", rec.Header().Get("Retry-After"))
	body := s.decodeError(rec)
	s.Equal(messaging.ErrorTypeRoomBusy, body.Error)
	s.True(body.Retryable)
}

func (s *ServerTestSuite) TestMutationBadBody() {
	rec := s.do(http.MethodPost, "/rooms/ABC234/sabotage", s.token("ABC234", "P2"), map[string]string{"targetId": "P1"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestMutationUnexpectedError() {
	s.mockRooms.EXPECT().
		EndGame(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis went away"))

	rec := s.do(http.MethodPost, "/rooms/ABC234/end", s.token("ABC234", "P1"), nil)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "redis")
}

func (s *ServerTestSuite) TestPresence() {
	presence := models.Presence{
		"P1": s.testNow.Add(-2 * time.Second),
		"P2": s.testNow.Add(-30 * time.Second),
	}
	s.mockRooms.EXPECT().
		GetPresence(gomock.Any(), &room.GetPresenceInput{RoomCode: "ABC234"}).
		Return(&room.GetPresenceOutput{Presence: presence, Now: s.testNow}, nil)

	rec := s.do(http.MethodGet, "/rooms/ABC234/presence", s.token("ABC234", "P1"), nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body presenceResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(models.PresenceStatusOf(presence["P1"], s.testNow), body.Players["P1"].Status)
	s.Equal(models.PresenceStatusOf(presence["P2"], s.testNow), body.Players["P2"].Status)
}

func (s *ServerTestSuite) TestHeartbeat() {
	s.mockRooms.EXPECT().
		Heartbeat(gomock.Any(), &room.HeartbeatInput{RoomCode: "ABC234", PlayerID: "P2"}).
		Return(nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/heartbeat", s.token("ABC234", "P2"), nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestSendInvite() {
	s.mockNotifier.EXPECT().
		SendInvite(gomock.Any(), &notification.SendInviteInput{
			RoomCode:     "ABC234",
			FromPlayerID: "P1",
			FromName:     "Alice",
			ToPlayerID:   "P9",
		}).
		Return(&notification.SendInviteOutput{Invite: &models.GameInvite{ID: "inv-1"}}, nil)

	rec := s.do(http.MethodPost, "/rooms/ABC234/invites", s.token("ABC234", "P1"), map[string]string{"toPlayerId": "P9"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body inviteResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.False(body.Delivered)
	s.Equal("https://sketch.party/?join=ABC234", body.Link)
}

func (s *ServerTestSuite) TestRegisterPushToken() {
	s.mockNotifier.EXPECT().
		RegisterPushToken(gomock.Any(), &notification.RegisterPushTokenInput{PlayerID: "P2", Token: "device-1"}).
		Return(&notification.RegisterPushTokenOutput{}, nil)

	rec := s.do(http.MethodPut, "/me/push-token", s.token("ABC234", "P2"), map[string]string{"token": "device-1"})
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestFriendRequests() {
	s.mockNotifier.EXPECT().
		SendFriendRequest(gomock.Any(), &notification.SendFriendRequestInput{FromPlayerID: "P1", FromName: "Alice", ToPlayerID: "P2"}).
		Return(nil, inviteRepo.ErrFriendRequestExists)
	s.mockNotifier.EXPECT().
		RespondToFriendRequest(gomock.Any(), &notification.RespondToFriendRequestInput{RequestID: "fr-1", PlayerID: "P1", Accept: true}).
		Return(nil, notification.ErrNotRecipient)

	rec := s.do(http.MethodPost, "/me/friend-requests", s.token("ABC234", "P1"), map[string]string{"toPlayerId": "P2"})
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/me/friend-requests/fr-1/respond", s.token("ABC234", "P1"), map[string]bool{"accept": true})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), "ok"))
}

func (s *ServerTestSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://sketch.party")
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("https://sketch.party", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusForbidden, rec.Code)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
