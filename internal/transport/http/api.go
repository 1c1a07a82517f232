package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"chemquest/internal/app"
	"chemquest/internal/domain"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

// API exposes the solo game, campaign and progress use cases as JSON over HTTP.
type API struct {
	games    *app.GameService
	campaign *app.CampaignService
	progress *app.ProgressService
}

func NewAPI(games *app.GameService, campaign *app.CampaignService, progress *app.ProgressService) *API {
	return &API{games: games, campaign: campaign, progress: progress}
}

// NewRouter mounts the REST API, the websocket endpoint and the health check.
func NewRouter(api *API, ws *WSHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)

	mux.HandleFunc("POST /api/game/start", api.startGame)
	mux.HandleFunc("GET /api/game/{id}/question", api.nextQuestion)
	mux.HandleFunc("POST /api/game/answer", api.submitAnswer)
	mux.HandleFunc("POST /api/game/finish", api.finishGame)

	mux.HandleFunc("GET /api/campaign/bosses", api.listBosses)
	mux.HandleFunc("POST /api/campaign/boss/start", api.startBattle)
	mux.HandleFunc("GET /api/campaign/boss/{id}", api.getBattle)
	mux.HandleFunc("POST /api/campaign/boss/turn", api.takeTurn)
	mux.HandleFunc("POST /api/campaign/boss/attempt", api.finishBattle)

	mux.HandleFunc("GET /api/leaderboard", api.leaderboard)
	mux.HandleFunc("GET /api/players/{id}", api.profile)
	mux.HandleFunc("GET /api/players/{id}/report.pdf", api.report)

	return logRequests(mux)
}

type answerRequest struct {
	GameID     string  `json:"gameId"`
	BattleID   string  `json:"battleId"`
	QuestionID string  `json:"questionId"`
	OptionID   string  `json:"optionId"`
	TimeTaken  float64 `json:"timeTaken"`
}

func (a answerRequest) submission() domain.AnswerSubmission {
	return domain.AnswerSubmission{QuestionID: a.QuestionID, OptionID: a.OptionID, TimeTaken: a.TimeTaken}
}

type finishRequest struct {
	GameID   string `json:"gameId"`
	BattleID string `json:"battleId"`
}

func (a *API) startGame(w http.ResponseWriter, r *http.Request) {
	var req app.StartGameRequest
	if !decode(w, r, &req) {
		return
	}
	game, err := a.games.StartGame(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

func (a *API) nextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := a.games.NextQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (a *API) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := a.games.SubmitAnswer(r.Context(), req.GameID, req.submission())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) finishGame(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if !decode(w, r, &req) {
		return
	}
	summary, err := a.games.FinishGame(r.Context(), req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) listBosses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"bosses": a.campaign.Bosses()})
}

func (a *API) startBattle(w http.ResponseWriter, r *http.Request) {
	var req app.StartBattleRequest
	if !decode(w, r, &req) {
		return
	}
	view, err := a.campaign.StartBattle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) getBattle(w http.ResponseWriter, r *http.Request) {
	view, err := a.campaign.Battle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) takeTurn(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := a.campaign.TakeTurn(r.Context(), req.BattleID, req.submission())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) finishBattle(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if !decode(w, r, &req) {
		return
	}
	summary, err := a.campaign.FinishBattle(r.Context(), req.BattleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit must be a number", domain.ErrInvalidInput))
			return
		}
		limit = n
	}
	entries, err := a.progress.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.progress.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (a *API) report(w http.ResponseWriter, r *http.Request) {
	// Render fully before writing so errors can still become a JSON response.
	var buf bytes.Buffer
	if err := a.progress.Report(r.Context(), r.PathValue("id"), &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", r.PathValue("id")+"-report.pdf"))
	_, _ = buf.WriteTo(w)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidInput))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrOutOfOrder),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrBossNotFound),
		errors.Is(err, domain.ErrBattleNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGameFinished),
		errors.Is(err, domain.ErrNoMoreQuestions),
		errors.Is(err, domain.ErrBattleOver),
		errors.Is(err, domain.ErrBattleFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack passes websocket upgrades through to the underlying connection.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
