package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/LavinLeo/tennis-data/internal/bulk"
	"github.com/LavinLeo/tennis-data/internal/cache"
	"github.com/LavinLeo/tennis-data/internal/charting"
	"github.com/LavinLeo/tennis-data/internal/match"
	"github.com/LavinLeo/tennis-data/internal/storage"
)

// Handler exposes the decoder and the point store over HTTP. This is an
// integration surface for the tabular and statistics layers, which consume
// and produce already-parsed rows.
type Handler struct {
	store   storage.MatchStore
	decoder *bulk.Decoder
	cache   *cache.Cache[*matchSummaryResponse]
	logger  *slog.Logger
}

// NewHandler wires the decode endpoints onto their collaborators.
func NewHandler(store storage.MatchStore, decoder *bulk.Decoder, summaries *cache.Cache[*matchSummaryResponse], logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		decoder: decoder,
		cache:   summaries,
		logger:  logger,
	}
}

// NewSummaryCache constructs the memoizing cache match summaries are served
// through.
func NewSummaryCache(ttl time.Duration) *cache.Cache[*matchSummaryResponse] {
	return cache.New[*matchSummaryResponse](nil, ttl)
}

// Register mounts the handler's routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/v1/points/decode", h.handleDecodePoint)
	r.Post("/v1/matches", h.handleCreateMatch)
	r.Post("/v1/matches/{matchID}/points", h.handleAddPoints)
	r.Get("/v1/matches/{matchID}/summary", h.handleMatchSummary)
}

type decodePointRequest struct {
	Server     string `json:"server"`
	Returner   string `json:"returner"`
	ServerWon  bool   `json:"server_won"`
	FirstCode  string `json:"first_code"`
	SecondCode string `json:"second_code,omitempty"`
}

type createMatchRequest struct {
	ID         string    `json:"id,omitempty"`
	P1         string    `json:"p1"`
	P2         string    `json:"p2"`
	Winner     string    `json:"winner"`
	Date       time.Time `json:"date"`
	Tournament string    `json:"tournament"`
	Surface    string    `json:"surface,omitempty"`
	Round      int       `json:"round"`
	Score      string    `json:"score"`
}

type matchSummaryResponse struct {
	MatchID string         `json:"match_id"`
	Summary *match.Summary `json:"summary"`
	Decoded int            `json:"decoded"`
	Dropped int            `json:"dropped"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Offending string `json:"offending,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDecodePoint(w http.ResponseWriter, r *http.Request) {
	var req decodePointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON", "")
		return
	}
	if req.Server == "" || req.Returner == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "server and returner are required", "")
		return
	}

	seq, err := charting.FromCode(req.Server, req.Returner, req.ServerWon, req.FirstCode, req.SecondCode)
	if err != nil {
		AddError(r.Context(), err)
		writeParseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seq)
}

func (h *Handler) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON", "")
		return
	}

	// Validate the row the way the bulk loader does: a malformed score is a
	// rejected row, not a stored one.
	if _, err := match.NewCompletedMatch(req.P1, req.P2, req.Winner, req.Date, req.Tournament, req.Surface, req.Round, req.Score, nil); err != nil {
		AddError(r.Context(), err)
		writeError(w, http.StatusUnprocessableEntity, "invalid_match", err.Error(), "")
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	m := &storage.Match{
		ID:         req.ID,
		P1:         req.P1,
		P2:         req.P2,
		Winner:     req.Winner,
		Date:       req.Date,
		Tournament: req.Tournament,
		Surface:    req.Surface,
		Round:      req.Round,
		Score:      req.Score,
	}
	if err := h.store.CreateMatch(r.Context(), m); err != nil {
		AddError(r.Context(), err)
		writeError(w, http.StatusConflict, "conflict", err.Error(), "")
		return
	}

	h.logger.Info("match registered",
		slog.String("match_id", m.ID),
		slog.String("tournament", m.Tournament),
	)

	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleAddPoints(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	var rows []bulk.PointRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON", "")
		return
	}
	for i := range rows {
		rows[i].MatchID = matchID
	}

	if err := h.store.AddPoints(r.Context(), matchID, rows); err != nil {
		AddError(r.Context(), err)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "match not found", "")
			return
		}
		writeError(w, http.StatusConflict, "conflict", err.Error(), "")
		return
	}

	// New rows change the summary.
	h.cache.Invalidate(cache.Key{ID: matchID})

	writeJSON(w, http.StatusAccepted, map[string]int{"stored": len(rows)})
}

func (h *Handler) handleMatchSummary(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	if _, err := h.store.GetMatch(r.Context(), matchID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "match not found", "")
			return
		}
		AddError(r.Context(), err)
		writeError(w, http.StatusInternalServerError, "server_error", err.Error(), "")
		return
	}

	summary, err := h.cache.Get(r.Context(), cache.Key{ID: matchID}, func(ctx context.Context) (*matchSummaryResponse, error) {
		rows, err := h.store.ListPoints(ctx, matchID)
		if err != nil {
			return nil, err
		}
		result, err := h.decoder.DecodeRows(ctx, rows)
		if err != nil {
			return nil, err
		}
		return &matchSummaryResponse{
			MatchID: matchID,
			Summary: match.Summarize(result.Sequences),
			Decoded: result.Decoded,
			Dropped: result.Dropped,
		}, nil
	})
	if err != nil {
		AddError(r.Context(), err)
		writeError(w, http.StatusInternalServerError, "server_error", err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// writeParseError maps a notation decoding failure to an HTTP response:
// unknown vocabulary is the client's data, structural violations are
// unprocessable rows.
func writeParseError(w http.ResponseWriter, err error) {
	perr, ok := charting.AsParseError(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error(), "")
		return
	}

	status := http.StatusUnprocessableEntity
	if perr.Type == charting.ErrorTypeUnknownCode {
		status = http.StatusBadRequest
	}
	writeError(w, status, string(perr.Type), perr.Message, perr.Offending)
}

func writeError(w http.ResponseWriter, status int, errType, message, offending string) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Type:      errType,
		Message:   message,
		Offending: offending,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
