package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"chemquest/internal/app"
	"chemquest/internal/domain"
)

// Message types exchanged with room clients.
const (
	msgJoined       = "joined"
	msgAnswer       = "answer"
	msgAnswerResult = "answerResult"
	msgLeaderboard  = "leaderboard"
	msgLeave        = "leave"
	msgError        = "error"
)

// WSHandler serves live multiplayer rooms over websockets.
type WSHandler struct {
	service  *app.MultiplayerService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.MultiplayerService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string  `json:"questionId"`
	OptionID   string  `json:"optionId"`
	TimeTaken  float64 `json:"timeTaken"`
}

// answerResultPayload is the scored answer plus the standings it produced.
type answerResultPayload struct {
	domain.AnswerResult
	Rank int `json:"rank"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// roomConn is one participant's connection to a room.
type roomConn struct {
	conn    *websocket.Conn
	service *app.MultiplayerService
	quizID  string
	userID  string

	send       chan outboundMessage
	writerDone chan struct{}
}

// ServeWS upgrades the request and keeps the participant in the room until the socket closes or they leave.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if quizID == "" || userID == "" || displayName == "" {
		http.Error(w, "missing quizId, userId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	joined, err := h.service.Join(ctx, quizID, userID, displayName)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: msgError, Payload: errorPayload{Message: err.Error()}})
		return
	}
	updates, cancel, err := h.service.Subscribe(ctx, quizID)
	if err != nil {
		h.service.Leave(ctx, quizID, userID)
		_ = conn.WriteJSON(outboundMessage{Type: msgError, Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()
	defer h.service.Leave(ctx, quizID, userID)

	rc := &roomConn{
		conn:       conn,
		service:    h.service,
		quizID:     quizID,
		userID:     userID,
		send:       make(chan outboundMessage, 16),
		writerDone: make(chan struct{}),
	}
	go rc.writeLoop()

	// Queued before the forwarder starts so clients always see joined first.
	rc.push(msgJoined, joined)

	stopForward := make(chan struct{})
	forwardDone := make(chan struct{})
	go func() {
		defer close(forwardDone)
		rc.forward(updates, stopForward)
	}()

	rc.readLoop(ctx)

	close(stopForward)
	<-forwardDone
	close(rc.send)
	<-rc.writerDone
}

// writeLoop is the only writer; gorilla connections do not support concurrent writes.
func (rc *roomConn) writeLoop() {
	defer close(rc.writerDone)
	for msg := range rc.send {
		if err := rc.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write to %s failed: %v", rc.userID, err)
			// Drain so producers never block on a dead socket.
			for range rc.send {
			}
			return
		}
	}
}

func (rc *roomConn) push(typ string, payload any) {
	rc.send <- outboundMessage{Type: typ, Payload: payload}
}

// forward relays room leaderboard updates until stop is closed.
func (rc *roomConn) forward(updates <-chan domain.Leaderboard, stop <-chan struct{}) {
	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			select {
			case rc.send <- outboundMessage{Type: msgLeaderboard, Payload: lb}:
			case <-stop:
				return
			}
		case <-stop:
			return
		}
	}
}

// readLoop handles client messages until the socket fails or the client leaves.
func (rc *roomConn) readLoop(ctx context.Context) {
	for {
		var inbound inboundMessage
		if err := rc.conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case msgAnswer:
			rc.answer(ctx, inbound.Payload)
		case msgLeave:
			return
		default:
			rc.push(msgError, errorPayload{Message: "unsupported message type"})
		}
	}
}

// answer scores one answer. Standings reach every participant, this one included, through the room subscription.
func (rc *roomConn) answer(ctx context.Context, raw json.RawMessage) {
	var payload answerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		rc.push(msgError, errorPayload{Message: "invalid answer payload"})
		return
	}
	lb, res, err := rc.service.SubmitAnswer(ctx, rc.quizID, rc.userID, domain.AnswerSubmission{
		QuestionID: payload.QuestionID,
		OptionID:   payload.OptionID,
		TimeTaken:  payload.TimeTaken,
	})
	if err != nil {
		rc.push(msgError, errorPayload{Message: err.Error()})
		return
	}
	rc.push(msgAnswerResult, answerResultPayload{AnswerResult: res, Rank: rankOf(lb, rc.userID)})
}

// rankOf returns the 1-based position of userID in lb, or 0 when absent.
func rankOf(lb domain.Leaderboard, userID string) int {
	for i, e := range lb.Entries {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}
