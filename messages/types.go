package messages

import (
	"encoding/json"

	"zombie-outbreak/server/models"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	// client -> server
	MessageTypeRun       MessageType = "run"
	MessageTypeHistory   MessageType = "history"
	MessageTypeLoad      MessageType = "load"
	MessageTypeGameStart MessageType = "game_start"
	MessageTypeGameMove  MessageType = "game_move"
	MessageTypeGameReset MessageType = "game_reset"

	// server -> client
	MessageTypeEvent        MessageType = "event"
	MessageTypeResult       MessageType = "result"
	MessageTypeRunCompleted MessageType = "run_completed"
	MessageTypeRuns         MessageType = "runs"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypeError        MessageType = "error"
)

// Error codes sent in ErrorMessage.Code
const (
	CodeBadMessage      = "BAD_MESSAGE"
	CodeUnknownType     = "UNKNOWN_MESSAGE_TYPE"
	CodeInvalidConfig   = "INVALID_CONFIG"
	CodeRunFailed       = "RUN_FAILED"
	CodeRunNotFound     = "RUN_NOT_FOUND"
	CodeHistoryFailed   = "HISTORY_FAILED"
	CodeNoGame          = "NO_GAME"
	CodeUnknownGameMove = "UNKNOWN_GAME_MOVE"
)

// BaseMessage is the envelope for outgoing messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// IncomingMessage is the envelope for client messages. The payload is decoded
// once the type is known.
type IncomingMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RunMessage requests a full simulation run. Positions use the "(x,y)" text
// format, several separated by spaces or ';'.
type RunMessage struct {
	Size      int    `json:"size"`
	Zombie    string `json:"zombie"`
	Creatures string `json:"creatures"`
	Moves     string `json:"moves"`
}

// LoadMessage requests a stored run
type LoadMessage struct {
	RunID string `json:"run_id"`
}

// GameStartMessage starts a free-play game on the connection
type GameStartMessage struct {
	Size      int    `json:"size"`
	Zombie    string `json:"zombie"`
	Creatures string `json:"creatures"`
}

// GameMoveMessage carries one w/a/s/d key
type GameMoveMessage struct {
	Key string `json:"key"`
}

// EventMessage streams one engine event
type EventMessage struct {
	Index int                `json:"index"`
	Event models.EventRecord `json:"event"`
	Text  string             `json:"text"`
}

// ResultMessage is sent at the end of a run, or when a stored run is loaded
type ResultMessage struct {
	RunID      string            `json:"run_id"`
	Zombies    []models.Position `json:"zombies"`
	Creatures  []models.Position `json:"creatures"`
	Moves      int               `json:"moves"`
	Infections int               `json:"infections"`
	Output     string            `json:"output"`
	Map        string            `json:"map"`
}

// RunCompletedMessage tells other clients that someone finished a run
type RunCompletedMessage struct {
	RunID      string `json:"run_id"`
	Zombies    int    `json:"zombies"`
	Survivors  int    `json:"survivors"`
	Infections int    `json:"infections"`
}

// RunSummary is one entry of a history reply
type RunSummary struct {
	RunID      string `json:"run_id"`
	GridSize   int    `json:"grid_size"`
	Moves      string `json:"moves"`
	Zombies    int    `json:"zombies"`
	Survivors  int    `json:"survivors"`
	Infections int    `json:"infections"`
	CreatedAt  string `json:"created_at"`
}

// RunsMessage answers a history request
type RunsMessage struct {
	Runs []RunSummary `json:"runs"`
}

// GameStateMessage describes the free-play game after each request
type GameStateMessage struct {
	Zombies     []models.Position `json:"zombies"`
	Creatures   []models.Position `json:"creatures"`
	Message     string            `json:"message"`
	RecentMoves string            `json:"recent_moves"`
	AllInfected bool              `json:"all_infected"`
	Map         string            `json:"map"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an error envelope
func NewError(code, message string) BaseMessage {
	return BaseMessage{
		Type:    MessageTypeError,
		Payload: ErrorMessage{Code: code, Message: message},
	}
}
