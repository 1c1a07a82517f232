package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"chemquest/internal/app"
	"chemquest/internal/domain"
	"chemquest/internal/infra/memory"
)

func TestWebSocketAnswerFlow(t *testing.T) {
	store := memory.NewRoomStore()
	quizzes := memory.NewQuizCache(memory.NewStaticQuizLoader(sampleQuiz()), time.Minute)
	service := app.NewMultiplayerService(store, quizzes)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizId=quiz-1&userId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect joined event first.
	msgType, payload := readNext(conn, t, "joined")
	if msgType != "joined" {
		t.Fatalf("expected joined, got %s", msgType)
	}
	if payload == nil {
		t.Fatalf("expected joined payload, got nil")
	}

	// Send an answer.
	answer := map[string]any{
		"type": "answer",
		"payload": map[string]any{
			"questionId": "q1",
			"optionId":   "o2",
		},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	// Expect answerResult then leaderboard.
	answerSeen := false
	leaderboardSeen := false
	for i := 0; i < 3; i++ {
		typ, body := readNext(conn, t, "")
		switch typ {
		case "answerResult":
			answerSeen = true
			if body["pointsEarned"] != float64(100) || body["correctOptionId"] != "o2" || body["rank"] != float64(1) {
				t.Fatalf("unexpected answer result %v", body)
			}
		case "leaderboard":
			leaderboardSeen = true
		}
		if answerSeen && leaderboardSeen {
			break
		}
	}
	if !answerSeen || !leaderboardSeen {
		t.Fatalf("expected answerResult and leaderboard, got answerResult=%v leaderboard=%v", answerSeen, leaderboardSeen)
	}
}

func TestWebSocketLeaveEndsSession(t *testing.T) {
	store := memory.NewRoomStore()
	quizzes := memory.NewQuizCache(memory.NewStaticQuizLoader(sampleQuiz()), time.Minute)
	wsHandler := NewWSHandler(app.NewMultiplayerService(store, quizzes))

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizId=quiz-1&userId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "joined")

	if err := conn.WriteJSON(map[string]any{"type": "shout"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		typ, body := readNext(conn, t, "")
		if typ == "error" {
			if body["message"] != "unsupported message type" {
				t.Fatalf("unexpected error %v", body)
			}
			break
		}
	}

	if err := conn.WriteJSON(map[string]any{"type": "leave"}); err != nil {
		t.Fatalf("write leave: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := store.Get("quiz-1"); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected room to be dropped after leave")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func sampleQuiz() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID: "quiz-1",
			Questions: []domain.Question{
				{
					ID:     "q1",
					Prompt: "Which gas makes up most of Earth's atmosphere?",
					Options: []domain.Option{
						{ID: "o1", Text: "Oxygen", Correct: false},
						{ID: "o2", Text: "Nitrogen", Correct: true},
						{ID: "o3", Text: "Argon", Correct: false},
					},
					Points: 1,
				},
			},
		},
	}
}
