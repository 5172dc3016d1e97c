package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"zombie-outbreak/server/messages"
	"zombie-outbreak/server/models"
	"zombie-outbreak/server/network"
	"zombie-outbreak/server/parser"
	"zombie-outbreak/server/persistence"
	"zombie-outbreak/server/render"
	"zombie-outbreak/server/services"
)

// ClientHandler manages a single client connection. Messages are handled on
// the read pump goroutine, so the free-play game needs no locking.
type ClientHandler struct {
	id            string
	conn          *network.Connection
	runService    *services.RunService
	clientManager *ClientManager
	game          *services.GameState
}

// HandleClientConnection serves a client until it disconnects
func HandleClientConnection(wsConn *websocket.Conn, runService *services.RunService, clientManager *ClientManager) {
	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		id:            ulid.Make().String(),
		conn:          conn,
		runService:    runService,
		clientManager: clientManager,
	}

	clientManager.AddClient(handler.id, handler)
	log.Printf("Client %s connected from %s", handler.id, wsConn.RemoteAddr())

	go conn.WritePump()
	conn.ReadPump(handler)

	clientManager.RemoveClient(handler.id)
	log.Printf("Client %s disconnected", handler.id)
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var msg messages.IncomingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message from %s: %v", h.id, err)
		h.sendError(messages.CodeBadMessage, "Malformed message")
		return
	}

	switch msg.Type {
	case messages.MessageTypeRun:
		h.handleRun(msg.Payload)
	case messages.MessageTypeHistory:
		h.handleHistory()
	case messages.MessageTypeLoad:
		h.handleLoad(msg.Payload)
	case messages.MessageTypeGameStart:
		h.handleGameStart(msg.Payload)
	case messages.MessageTypeGameMove:
		h.handleGameMove(msg.Payload)
	case messages.MessageTypeGameReset:
		h.handleGameReset()
	default:
		log.Printf("Unknown message type: %s", msg.Type)
		h.sendError(messages.CodeUnknownType, "Unknown message type received")
	}
}

// decodePayload unmarshals payload into v, replying with an error on failure
func (h *ClientHandler) decodePayload(payload json.RawMessage, v interface{}) bool {
	if len(payload) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		h.sendError(messages.CodeBadMessage, "Missing payload")
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		log.Printf("Error unmarshaling payload from %s: %v", h.id, err)
		h.sendError(messages.CodeBadMessage, "Malformed payload")
		return false
	}
	return true
}

// checkSize rejects grids too large to draw
func (h *ClientHandler) checkSize(size int) bool {
	if size > render.MaxMapSize {
		h.sendError(messages.CodeInvalidConfig, fmt.Sprintf("grid size %d exceeds the limit of %d", size, render.MaxMapSize))
		return false
	}
	return true
}

// handleRun executes a simulation and streams its events
func (h *ClientHandler) handleRun(payload json.RawMessage) {
	var runMsg messages.RunMessage
	if !h.decodePayload(payload, &runMsg) {
		return
	}

	if !h.checkSize(runMsg.Size) {
		return
	}
	cfg, err := parser.ParseConfig(runMsg.Size, runMsg.Zombie, runMsg.Creatures, runMsg.Moves)
	if err != nil {
		h.sendError(messages.CodeInvalidConfig, err.Error())
		return
	}

	index := 0
	observer := models.EventHandlerFunc(func(event models.Event) error {
		msg := messages.BaseMessage{
			Type: messages.MessageTypeEvent,
			Payload: messages.EventMessage{
				Index: index,
				Event: models.NewEventRecord(event),
				Text:  event.String(),
			},
		}
		index++
		return h.conn.SendMessage(msg)
	})

	run, result, err := h.runService.Execute(cfg, observer)
	if err != nil {
		if errors.Is(err, network.ErrConnectionClosed) {
			log.Printf("Client %s left during a run", h.id)
			return
		}
		log.Printf("Run failed for %s: %v", h.id, err)
		code := messages.CodeRunFailed
		if errors.Is(err, models.ErrInvalidConfig) || errors.Is(err, models.ErrInvalidInput) {
			code = messages.CodeInvalidConfig
		}
		h.sendError(code, err.Error())
		return
	}

	h.sendResult(run, result)

	h.clientManager.BroadcastToOthers(h.id, messages.BaseMessage{
		Type: messages.MessageTypeRunCompleted,
		Payload: messages.RunCompletedMessage{
			RunID:      run.ID,
			Zombies:    len(result.Zombies),
			Survivors:  len(result.Creatures),
			Infections: result.Infections,
		},
	})
}

// handleHistory lists stored runs
func (h *ClientHandler) handleHistory() {
	runs, err := h.runService.ListRuns()
	if err != nil {
		log.Printf("Error listing runs: %v", err)
		h.sendError(messages.CodeHistoryFailed, err.Error())
		return
	}

	summaries := make([]messages.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, messages.RunSummary{
			RunID:      run.ID,
			GridSize:   run.Config.GridSize,
			Moves:      run.Config.Moves,
			Zombies:    len(run.Zombies),
			Survivors:  len(run.Survivors),
			Infections: run.Infections(),
			CreatedAt:  run.CreatedAt.Format(time.RFC3339),
		})
	}

	h.send(messages.BaseMessage{
		Type:    messages.MessageTypeRuns,
		Payload: messages.RunsMessage{Runs: summaries},
	})
}

// handleLoad replays the result of a stored run
func (h *ClientHandler) handleLoad(payload json.RawMessage) {
	var loadMsg messages.LoadMessage
	if !h.decodePayload(payload, &loadMsg) {
		return
	}

	run, err := h.runService.GetRun(loadMsg.RunID)
	if err != nil {
		if errors.Is(err, persistence.ErrRunNotFound) {
			h.sendError(messages.CodeRunNotFound, err.Error())
			return
		}
		log.Printf("Error loading run %s: %v", loadMsg.RunID, err)
		h.sendError(messages.CodeHistoryFailed, err.Error())
		return
	}

	h.sendResult(run, services.ResultFromRecord(run))
}

// handleGameStart starts a free-play game for this connection
func (h *ClientHandler) handleGameStart(payload json.RawMessage) {
	var startMsg messages.GameStartMessage
	if !h.decodePayload(payload, &startMsg) {
		return
	}

	if !h.checkSize(startMsg.Size) {
		return
	}
	world, err := models.NewWorld(startMsg.Size)
	if err != nil {
		h.sendError(messages.CodeInvalidConfig, err.Error())
		return
	}
	zombie, err := parser.ParsePosition(startMsg.Zombie)
	if err != nil {
		h.sendError(messages.CodeInvalidConfig, err.Error())
		return
	}
	creatures, err := parser.ParsePositions(startMsg.Creatures)
	if err != nil {
		h.sendError(messages.CodeInvalidConfig, err.Error())
		return
	}

	game, err := services.NewGameState(world, zombie, creatures)
	if err != nil {
		h.sendError(messages.CodeInvalidConfig, err.Error())
		return
	}
	h.game = game
	h.sendGameState()
}

// handleGameMove applies one key press to the free-play game
func (h *ClientHandler) handleGameMove(payload json.RawMessage) {
	if h.game == nil {
		h.sendError(messages.CodeNoGame, "No game in progress")
		return
	}

	var moveMsg messages.GameMoveMessage
	if !h.decodePayload(payload, &moveMsg) {
		return
	}
	if !h.game.Move(moveMsg.Key) {
		h.sendError(messages.CodeUnknownGameMove, "Use w, a, s or d to move")
		return
	}
	h.sendGameState()
}

func (h *ClientHandler) handleGameReset() {
	if h.game == nil {
		h.sendError(messages.CodeNoGame, "No game in progress")
		return
	}
	h.game.Reset()
	h.game.SetMessage("Game reset!")
	h.sendGameState()
}

func (h *ClientHandler) sendGameState() {
	g := h.game
	h.send(messages.BaseMessage{
		Type: messages.MessageTypeGameState,
		Payload: messages.GameStateMessage{
			Zombies:     g.Zombies(),
			Creatures:   g.Creatures(),
			Message:     g.Message(),
			RecentMoves: g.RecentMoves(20),
			AllInfected: g.AllInfected(),
			Map:         render.DrawMap(g.World().Size(), g.Zombies(), g.Creatures(), "Current State:"),
		},
	})
}

func (h *ClientHandler) sendResult(run *models.RunRecord, result *services.SimulationResult) {
	var grid string
	if run.Config.GridSize <= render.MaxMapSize {
		grid = render.DrawResult(run.Config.GridSize, result)
	}
	h.send(messages.BaseMessage{
		Type: messages.MessageTypeResult,
		Payload: messages.ResultMessage{
			RunID:      run.ID,
			Zombies:    result.Zombies,
			Creatures:  result.Creatures,
			Moves:      result.Moves,
			Infections: result.Infections,
			Output:     result.FormatOutput(),
			Map:        grid,
		},
	})
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.NewError(code, message))
}

func (h *ClientHandler) send(msg messages.BaseMessage) {
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending %s to %s: %v", msg.Type, h.id, err)
	}
}
