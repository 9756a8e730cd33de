package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
)

const (
	MsgSnapshot = "snapshot"
	MsgClosed   = "closed"

	sendBuffer = 32
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Envelope is every frame a mirror client receives.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Snapshot is the committed state after a transition plus the events it
// produced, so clients can animate and then render.
type Snapshot struct {
	GameID string       `json:"game_id"`
	State  *game.State  `json:"state"`
	Events []game.Event `json:"events,omitempty"`
}

type client struct {
	id       string
	gameID   string
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	once     sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans committed snapshots out to the mirror clients of each game.
// The stream is read-only; inbound frames are drained and ignored.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
}

func New() *Hub {
	return &Hub{rooms: map[string]map[*client]struct{}{}}
}

// Serve registers the connection, sends the current snapshot as seen by
// playerID and blocks until the client goes away. A finished game gets its
// final snapshot and a closed frame, and is not registered.
func (h *Hub) Serve(conn *websocket.Conn, gameID, playerID string, current *game.State) {
	c := &client{
		id:       uuid.NewString(),
		gameID:   gameID,
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}
	fields := logging.Fields{
		constants.LogFieldGameID:   gameID,
		constants.LogFieldPlayerID: playerID,
		constants.LogFieldClientID: c.id,
	}
	if msg, err := encode(MsgSnapshot, Snapshot{GameID: gameID, State: current.ViewFor(playerID)}); err == nil {
		c.send <- msg
	}
	if current != nil && current.Finished() {
		if msg, err := encode(MsgClosed, nil); err == nil {
			c.send <- msg
		}
		c.close()
		go c.writer()
		c.reader()
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[gameID]
	if !ok {
		room = map[*client]struct{}{}
		h.rooms[gameID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()
	logging.Info("mirror client connected", fields)

	go c.writer()
	c.reader()

	h.remove(c)
	logging.Info("mirror client disconnected", fields)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.gameID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			c.close()
		}
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
	h.mu.Unlock()
}

// Publish sends one committed transition to every client of the game,
// each seeing only its own pending selection. A client whose buffer is
// full is dropped rather than blocking the caller.
func (h *Hub) Publish(gameID string, s *game.State, events []game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	views := map[string][]byte{}
	for c := range h.rooms[gameID] {
		msg, ok := views[c.playerID]
		if !ok {
			var err error
			msg, err = encode(MsgSnapshot, Snapshot{GameID: gameID, State: s.ViewFor(c.playerID), Events: events})
			if err != nil {
				logging.Error("failed to encode snapshot", err, logging.Fields{constants.LogFieldGameID: gameID})
				return
			}
			views[c.playerID] = msg
		}
		select {
		case c.send <- msg:
		default:
			logging.Warn("dropping slow mirror client", logging.Fields{
				constants.LogFieldGameID:   gameID,
				constants.LogFieldClientID: c.id,
			})
			delete(h.rooms[gameID], c)
			c.close()
		}
	}
}

// CloseGame tells every client of the game the table is gone and drops them.
func (h *Hub) CloseGame(gameID string) {
	msg, _ := encode(MsgClosed, nil)
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[gameID]
	for c := range room {
		select {
		case c.send <- msg:
		default:
		}
		c.close()
	}
	delete(h.rooms, gameID)
	if len(room) > 0 {
		logging.Info("mirror room closed", logging.Fields{
			constants.LogFieldGameID: gameID,
			"clients":                len(room),
		})
	}
}

func (h *Hub) subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gameID])
}

func (c *client) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) reader() {
	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func encode(typ string, v any) ([]byte, error) {
	env := Envelope{Type: typ}
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		env.Data = b
	}
	return json.Marshal(env)
}
