package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"zombie-outbreak/server/messages"
	"zombie-outbreak/server/models"
	"zombie-outbreak/server/persistence"
	"zombie-outbreak/server/render"
	"zombie-outbreak/server/services"
)

type envelope struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

type testServer struct {
	url     string
	manager *ClientManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	manager := NewClientManager()
	srv := httptest.NewServer(NewWebSocketHandler(services.NewRunService(store), manager))
	t.Cleanup(srv.Close)
	return &testServer{
		url:     "ws" + strings.TrimPrefix(srv.URL, "http"),
		manager: manager,
	}
}

func (s *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// waitForClients blocks until n clients are registered.
func (s *testServer) waitForClients(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.manager.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, s.manager.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func send(t *testing.T, ws *websocket.Conn, msgType messages.MessageType, payload interface{}) {
	t.Helper()
	if err := ws.WriteJSON(messages.BaseMessage{Type: msgType, Payload: payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func receive(t *testing.T, ws *websocket.Conn) envelope {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := ws.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func expect(t *testing.T, ws *websocket.Conn, want messages.MessageType, v interface{}) {
	t.Helper()
	env := receive(t, ws)
	if env.Type != want {
		t.Fatalf("expected %s message, got %s: %s", want, env.Type, env.Payload)
	}
	if v != nil {
		if err := json.Unmarshal(env.Payload, v); err != nil {
			t.Fatalf("decode %s: %v", want, err)
		}
	}
}

var exampleRun = messages.RunMessage{
	Size:      4,
	Zombie:    "(3,1)",
	Creatures: "(0,1) (1,2) (1,1)",
	Moves:     "RDRU",
}

func TestRunStreamsEventsThenResult(t *testing.T) {
	s := newTestServer(t)
	runner := s.dial(t)
	watcher := s.dial(t)
	s.waitForClients(t, 2)

	send(t, runner, messages.MessageTypeRun, exampleRun)

	var infections int
	for i := 0; i < 19; i++ {
		var ev messages.EventMessage
		expect(t, runner, messages.MessageTypeEvent, &ev)
		if ev.Index != i {
			t.Errorf("event %d has index %d", i, ev.Index)
		}
		if ev.Event.Kind == models.EventCreatureInfected {
			infections++
		}
		if i == 0 && ev.Text != "zombie 0 moved to (0,1)" {
			t.Errorf("first event text %q", ev.Text)
		}
	}
	if infections != 3 {
		t.Errorf("expected 3 infection events, got %d", infections)
	}

	var result messages.ResultMessage
	expect(t, runner, messages.MessageTypeResult, &result)
	want := []models.Position{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 1}}
	if diff := cmp.Diff(want, result.Zombies); diff != "" {
		t.Errorf("zombies (-want +got):\n%s", diff)
	}
	if result.Output != "zombies' positions: (1,1) (2,1) (3,2) (3,1)\ncreatures' positions: none" {
		t.Errorf("output %q", result.Output)
	}
	if result.RunID == "" || !strings.Contains(result.Map, "Final State:") {
		t.Errorf("incomplete result: %+v", result)
	}

	var done messages.RunCompletedMessage
	expect(t, watcher, messages.MessageTypeRunCompleted, &done)
	if done.RunID != result.RunID || done.Zombies != 4 || done.Survivors != 0 || done.Infections != 3 {
		t.Errorf("unexpected run_completed: %+v", done)
	}

	send(t, watcher, messages.MessageTypeHistory, nil)
	var history messages.RunsMessage
	expect(t, watcher, messages.MessageTypeRuns, &history)
	if len(history.Runs) != 1 || history.Runs[0].RunID != result.RunID || history.Runs[0].Moves != "RDRU" {
		t.Errorf("unexpected history: %+v", history)
	}

	send(t, watcher, messages.MessageTypeLoad, messages.LoadMessage{RunID: result.RunID})
	var loaded messages.ResultMessage
	expect(t, watcher, messages.MessageTypeResult, &loaded)
	if diff := cmp.Diff(result, loaded); diff != "" {
		t.Errorf("loaded result differs (-run +loaded):\n%s", diff)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	ws := s.dial(t)

	bad := exampleRun
	bad.Moves = "RDX"
	send(t, ws, messages.MessageTypeRun, bad)
	var errMsg messages.ErrorMessage
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeInvalidConfig {
		t.Errorf("expected %s, got %+v", messages.CodeInvalidConfig, errMsg)
	}

	bad = exampleRun
	bad.Size = 0
	send(t, ws, messages.MessageTypeRun, bad)
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeInvalidConfig {
		t.Errorf("expected %s, got %+v", messages.CodeInvalidConfig, errMsg)
	}
}

func TestErrorReplies(t *testing.T) {
	s := newTestServer(t)
	ws := s.dial(t)

	tests := []struct {
		msgType messages.MessageType
		payload interface{}
		code    string
	}{
		{"dance", nil, messages.CodeUnknownType},
		{messages.MessageTypeLoad, messages.LoadMessage{RunID: "missing"}, messages.CodeRunNotFound},
		{messages.MessageTypeLoad, nil, messages.CodeBadMessage},
		{messages.MessageTypeGameMove, messages.GameMoveMessage{Key: "d"}, messages.CodeNoGame},
		{messages.MessageTypeGameReset, nil, messages.CodeNoGame},
	}
	for _, tt := range tests {
		send(t, ws, tt.msgType, tt.payload)
		var errMsg messages.ErrorMessage
		expect(t, ws, messages.MessageTypeError, &errMsg)
		if errMsg.Code != tt.code {
			t.Errorf("%s: expected code %s, got %+v", tt.msgType, tt.code, errMsg)
		}
	}

	if err := ws.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	var errMsg messages.ErrorMessage
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeBadMessage {
		t.Errorf("expected %s, got %+v", messages.CodeBadMessage, errMsg)
	}
}

func TestFreePlayGame(t *testing.T) {
	s := newTestServer(t)
	ws := s.dial(t)

	send(t, ws, messages.MessageTypeGameStart, messages.GameStartMessage{
		Size:      4,
		Zombie:    "(3,1)",
		Creatures: "(0,1) (1,2) (1,1)",
	})
	var state messages.GameStateMessage
	expect(t, ws, messages.MessageTypeGameState, &state)
	if len(state.Zombies) != 1 || len(state.Creatures) != 3 || state.RecentMoves != "(none)" {
		t.Errorf("unexpected initial state: %+v", state)
	}

	send(t, ws, messages.MessageTypeGameMove, messages.GameMoveMessage{Key: "d"})
	expect(t, ws, messages.MessageTypeGameState, &state)
	if state.Message != "Moved Right - Infected 1 creature(s)!" || len(state.Zombies) != 2 {
		t.Errorf("unexpected state after d: %+v", state)
	}

	send(t, ws, messages.MessageTypeGameMove, messages.GameMoveMessage{Key: "x"})
	var errMsg messages.ErrorMessage
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeUnknownGameMove {
		t.Errorf("expected %s, got %+v", messages.CodeUnknownGameMove, errMsg)
	}

	send(t, ws, messages.MessageTypeGameReset, nil)
	expect(t, ws, messages.MessageTypeGameState, &state)
	if state.Message != "Game reset!" || len(state.Zombies) != 1 || len(state.Creatures) != 3 {
		t.Errorf("unexpected state after reset: %+v", state)
	}
}

func TestOversizedGridRejected(t *testing.T) {
	s := newTestServer(t)
	ws := s.dial(t)

	huge := exampleRun
	huge.Size = 1 << 20
	huge.Zombie = "0,0"
	huge.Creatures = ""
	huge.Moves = "R"
	send(t, ws, messages.MessageTypeRun, huge)
	var errMsg messages.ErrorMessage
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeInvalidConfig {
		t.Errorf("expected %s for an oversized run, got %+v", messages.CodeInvalidConfig, errMsg)
	}

	send(t, ws, messages.MessageTypeGameStart, messages.GameStartMessage{Size: render.MaxMapSize + 1, Zombie: "0,0"})
	expect(t, ws, messages.MessageTypeError, &errMsg)
	if errMsg.Code != messages.CodeInvalidConfig {
		t.Errorf("expected %s for an oversized game, got %+v", messages.CodeInvalidConfig, errMsg)
	}

	// the largest allowed grid still runs
	edge := huge
	edge.Size = render.MaxMapSize
	send(t, ws, messages.MessageTypeRun, edge)
	expect(t, ws, messages.MessageTypeEvent, nil)
	var result messages.ResultMessage
	expect(t, ws, messages.MessageTypeResult, &result)
	if result.Map == "" {
		t.Error("a grid at the limit should still be drawn")
	}
}
