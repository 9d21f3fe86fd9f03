package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/session"
	sessionmock "github.com/KirkDiggler/rpg-arena/internal/orchestrators/session/mock"
)

const waitTimeout = 2 * time.Second

type fakeArena struct {
	mu      sync.Mutex
	castErr error
	casts   chan *world.CastInput
	moves   chan arena.Vec3
}

func (f *fakeArena) Cast(_ context.Context, input *world.CastInput) (*combat.CastOutput, error) {
	f.casts <- input
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.castErr != nil {
		return nil, f.castErr
	}
	return &combat.CastOutput{AbilityID: input.AbilityID}, nil
}

func (f *fakeArena) Move(_ context.Context, _ string, point arena.Vec3) error {
	f.moves <- point
	return nil
}

func (f *fakeArena) Snapshots() []*combat.Snapshot {
	return []*combat.Snapshot{{ID: "entity_1", Health: 42, Alive: true}}
}

type HubTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	sessions *sessionmock.MockService
	arena    *fakeArena
	hub      *ws.Hub
	server   *httptest.Server
	joined   chan string
	left     chan string
}

func (s *HubTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessions = sessionmock.NewMockService(s.ctrl)
	s.arena = &fakeArena{
		casts: make(chan *world.CastInput, 4),
		moves: make(chan arena.Vec3, 4),
	}
	s.joined = make(chan string, 4)
	s.left = make(chan string, 4)

	s.sessions.EXPECT().Join(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *session.JoinInput) (*session.JoinOutput, error) {
			s.joined <- input.ConnectionID
			return &session.JoinOutput{Player: &arena.Player{ConnectionID: input.ConnectionID}}, nil
		}).AnyTimes()
	s.sessions.EXPECT().Leave(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *session.LeaveInput) (*session.LeaveOutput, error) {
			s.left <- input.ConnectionID
			return &session.LeaveOutput{Removed: true}, nil
		}).AnyTimes()

	hub, err := ws.NewHub(&ws.HubConfig{Sessions: s.sessions, Arena: s.arena})
	s.Require().NoError(err)
	s.hub = hub
	s.server = httptest.NewServer(hub.Routes())
}

func (s *HubTestSuite) TearDownTest() {
	s.hub.Close()
	s.server.Close()
}

func (s *HubTestSuite) dial(id string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?id=" + id
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	s.T().Cleanup(func() { _ = conn.Close() })

	select {
	case joined := <-s.joined:
		s.Equal(id, joined)
	case <-time.After(waitTimeout):
		s.FailNow("join was not called")
	}
	return conn
}

func (s *HubTestSuite) read(conn *websocket.Conn) (string, json.RawMessage) {
	_ = conn.SetReadDeadline(time.Now().Add(waitTimeout))
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	s.Require().NoError(conn.ReadJSON(&msg))
	return msg.Type, msg.Payload
}

func (s *HubTestSuite) TestNewHub_Validation() {
	_, err := ws.NewHub(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = ws.NewHub(&ws.HubConfig{Arena: s.arena})
	s.Error(err)
}

func (s *HubTestSuite) TestServeWS_RequiresID() {
	resp, err := http.Get(s.server.URL + "/ws")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HubTestSuite) TestHealth() {
	s.dial("conn-1")

	resp, err := http.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("ok", body.Status)
	s.Equal(1, body.Clients)
}

func (s *HubTestSuite) TestSelectAndReadyRouteToSession() {
	// Arrange
	conn := s.dial("conn-1")
	done := make(chan struct{}, 2)

	s.sessions.EXPECT().
		SubmitSelection(gomock.Any(), &session.SubmitSelectionInput{ConnectionID: "conn-1", CharacterID: "knight"}).
		DoAndReturn(func(context.Context, *session.SubmitSelectionInput) (*session.SubmitSelectionOutput, error) {
			done <- struct{}{}
			return &session.SubmitSelectionOutput{}, nil
		})
	s.sessions.EXPECT().
		SetReady(gomock.Any(), &session.SetReadyInput{ConnectionID: "conn-1", Ready: true}).
		DoAndReturn(func(context.Context, *session.SetReadyInput) (*session.SetReadyOutput, error) {
			done <- struct{}{}
			return &session.SetReadyOutput{}, nil
		})

	// Act
	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageSelect, CharacterID: "knight"}))
	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageReady}))

	// Assert
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(waitTimeout):
			s.FailNow("session was not called")
		}
	}
}

func (s *HubTestSuite) TestRespawnRoutesToSession() {
	conn := s.dial("conn-1")
	done := make(chan struct{}, 1)
	s.sessions.EXPECT().
		RequestRespawn(gomock.Any(), &session.RequestRespawnInput{ConnectionID: "conn-1"}).
		DoAndReturn(func(context.Context, *session.RequestRespawnInput) (*session.RequestRespawnOutput, error) {
			done <- struct{}{}
			return &session.RequestRespawnOutput{Respawned: true}, nil
		})

	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageRespawn}))

	select {
	case <-done:
	case <-time.After(waitTimeout):
		s.FailNow("respawn was not requested")
	}
}

func (s *HubTestSuite) TestCastResult() {
	conn := s.dial("conn-1")

	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageCast, AbilityID: "fireball", Point: arena.Vec3{X: 3}}))

	msgType, payload := s.read(conn)
	s.Equal(ws.MessageCastResult, msgType)
	var out combat.CastOutput
	s.Require().NoError(json.Unmarshal(payload, &out))
	s.Equal("fireball", out.AbilityID)

	cast := <-s.arena.casts
	s.Equal("conn-1", cast.OwnerID)
	s.Equal(arena.Vec3{X: 3}, cast.Point)
}

func (s *HubTestSuite) TestRejectedCastAnswersSenderWithError() {
	s.arena.mu.Lock()
	s.arena.castErr = errors.FailedPrecondition("caster is stunned")
	s.arena.mu.Unlock()
	conn := s.dial("conn-1")

	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageCast, AbilityID: "fireball"}))

	msgType, payload := s.read(conn)
	s.Equal(ws.MessageError, msgType)
	var body ws.ErrorPayload
	s.Require().NoError(json.Unmarshal(payload, &body))
	s.Equal(ws.MessageCast, body.Request)
	s.Equal(errors.CodeFailedPrecondition.String(), body.Code)
	s.Equal("caster is stunned", body.Message)
}

func (s *HubTestSuite) TestUnknownAndMalformedMessages() {
	conn := s.dial("conn-1")

	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: "dance"}))
	msgType, _ := s.read(conn)
	s.Equal(ws.MessageError, msgType)

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("{nope")))
	msgType, _ = s.read(conn)
	s.Equal(ws.MessageError, msgType)
}

func (s *HubTestSuite) TestMove() {
	conn := s.dial("conn-1")

	s.Require().NoError(conn.WriteJSON(ws.ClientMessage{Type: ws.MessageMove, Point: arena.Vec3{Z: 7}}))

	select {
	case point := <-s.arena.moves:
		s.Equal(arena.Vec3{Z: 7}, point)
	case <-time.After(waitTimeout):
		s.FailNow("move was not routed")
	}
}

func (s *HubTestSuite) TestNotificationsReachEveryClient() {
	// Arrange
	first := s.dial("conn-1")
	second := s.dial("conn-2")

	// Act
	s.hub.DamageDealt(arena.DamageEvent{TargetID: "entity_1", Raw: 50, Absorbed: 30, Applied: 20, HealthAfter: 80})
	s.hub.BroadcastState(7)

	// Assert
	for _, conn := range []*websocket.Conn{first, second} {
		msgType, payload := s.read(conn)
		s.Equal(ws.MessageDamage, msgType)
		var event arena.DamageEvent
		s.Require().NoError(json.Unmarshal(payload, &event))
		s.Equal(20.0, event.Applied)
		s.Equal(30.0, event.Absorbed)

		msgType, payload = s.read(conn)
		s.Equal(ws.MessageState, msgType)
		var state ws.StatePayload
		s.Require().NoError(json.Unmarshal(payload, &state))
		s.Equal(uint64(7), state.Frame)
		s.Require().Len(state.Entities, 1)
		s.Equal(42.0, state.Entities[0].Health)
	}
}

func (s *HubTestSuite) TestDisconnectLeavesSession() {
	conn := s.dial("conn-1")

	s.Require().NoError(conn.Close())

	select {
	case id := <-s.left:
		s.Equal("conn-1", id)
	case <-time.After(waitTimeout):
		s.FailNow("leave was not called")
	}
}

func (s *HubTestSuite) TestReconnectReplacesOldConnectionWithoutLeaving() {
	old := s.dial("conn-1")
	s.dial("conn-1")

	// the old socket is closed by the server
	_ = old.SetReadDeadline(time.Now().Add(waitTimeout))
	for {
		if _, _, err := old.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case id := <-s.left:
		s.Failf("unexpected leave", "connection %s left", id)
	case <-time.After(100 * time.Millisecond):
	}
	s.Equal(1, s.hub.Len())
}

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}
