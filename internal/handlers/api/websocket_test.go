package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/gorilla/websocket"
	"go.uber.org/mock/gomock"
)

type nopSubscription struct{}

func (nopSubscription) Close() error { return nil }

type receivedFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// dial connects P2 to ABC234 and returns the callbacks feeding the session
func (s *ServerTestSuite) dial() (*websocket.Conn, roomRepo.Callback, presenceRepo.Callback) {
	roomCallbacks := make(chan roomRepo.Callback, 1)
	presenceCallbacks := make(chan presenceRepo.Callback, 1)

	s.mockRooms.EXPECT().
		SubscribeRoom(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *room.SubscribeRoomInput) (room.Subscription, error) {
			roomCallbacks <- input.Callback
			return nopSubscription{}, nil
		})
	s.mockRooms.EXPECT().
		SubscribePresence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *room.SubscribePresenceInput) (room.Subscription, error) {
			presenceCallbacks <- input.Callback
			return nopSubscription{}, nil
		})
	s.mockRooms.EXPECT().Heartbeat(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	srv := httptest.NewServer(s.server.Handler())
	s.T().Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rooms/ABC234/ws?token=" + s.token("ABC234", "P2")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { conn.Close() })

	var onRoom roomRepo.Callback
	var onPresence presenceRepo.Callback
	select {
	case onRoom = <-roomCallbacks:
	case <-time.After(time.Second):
		s.FailNow("room was never subscribed")
	}
	select {
	case onPresence = <-presenceCallbacks:
	case <-time.After(time.Second):
		s.FailNow("presence was never subscribed")
	}

	return conn, onRoom, onPresence
}

func (s *ServerTestSuite) read(conn *websocket.Conn) receivedFrame {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var f receivedFrame
	s.Require().NoError(conn.ReadJSON(&f))
	return f
}

func (s *ServerTestSuite) TestWebSocketStreamsRoomAndPresence() {
	conn, onRoom, onPresence := s.dial()

	onRoom(s.lobby())
	f := s.read(conn)
	s.Equal(FrameRoom, f.Type)
	var r models.GameRoom
	s.Require().NoError(json.Unmarshal(f.Payload, &r))
	s.Equal(models.RoomCode("ABC234"), r.RoomCode)

	onPresence(models.Presence{"P2": s.testNow})
	f = s.read(conn)
	s.Equal(FramePresence, f.Type)
	var p presenceResponse
	s.Require().NoError(json.Unmarshal(f.Payload, &p))
	s.Equal(models.PresenceOnline, p.Players["P2"].Status)
}

func (s *ServerTestSuite) TestWebSocketActions() {
	conn, _, _ := s.dial()

	s.mockRooms.EXPECT().
		ReadyUp(gomock.Any(), &room.ReadyUpInput{RoomCode: "ABC234", PlayerID: "P2"}).
		Return(&room.MutationOutput{Room: s.lobby(), Changed: true}, nil)

	s.Require().NoError(conn.WriteJSON(actionFrame{Action: ActionReadyUp}))
	f := s.read(conn)
	s.Equal(FrameResult, f.Type)
	var result resultPayload
	s.Require().NoError(json.Unmarshal(f.Payload, &result))
	s.Equal(ActionReadyUp, result.Action)
	s.True(result.Changed)

	s.Require().NoError(conn.WriteJSON(actionFrame{Action: "dance"}))
	f = s.read(conn)
	s.Equal(FrameError, f.Type)
	var body errorResponse
	s.Require().NoError(json.Unmarshal(f.Payload, &body))
	s.Equal(messaging.ErrorTypeBadRequest, body.Error)

	// the burst of two is spent, the next frame is throttled
	s.Require().NoError(conn.WriteJSON(actionFrame{Action: ActionReadyUp}))
	f = s.read(conn)
	s.Equal(FrameError, f.Type)
	s.Require().NoError(json.Unmarshal(f.Payload, &body))
	s.Equal(messaging.ErrorTypeSlowDown, body.Error)
}

func (s *ServerTestSuite) TestWebSocketRoomGone() {
	conn, onRoom, _ := s.dial()

	onRoom(nil)

	f := s.read(conn)
	s.Equal(FrameGone, f.Type)

	_, _, err := conn.ReadMessage()
	s.True(websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func (s *ServerTestSuite) TestWebSocketRequiresToken() {
	srv := httptest.NewServer(s.server.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rooms/ABC234/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Error(err)
	s.Require().NotNil(resp)
	s.Equal(401, resp.StatusCode)
}
