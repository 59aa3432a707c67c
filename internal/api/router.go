// Package api exposes the board manager as a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gmllt/bboard/internal/board"
)

type handler struct {
	m      *board.Manager
	logger *log.Logger
}

type createBoardRequest struct {
	Name string `json:"name"`
}

type switchBoardRequest struct {
	ID string `json:"id"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type refreshResponse struct {
	RemoteBoards int `json:"remote_boards"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the API routes. When staticDir is set, everything outside
// /api is served from it.
func NewRouter(m *board.Manager, staticDir string, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{m: m, logger: logger}
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/boards", h.listBoards).Methods("GET")
	api.HandleFunc("/boards", h.createBoard).Methods("POST")
	api.HandleFunc("/boards/current", h.currentBoard).Methods("GET")
	api.HandleFunc("/boards/current", h.switchBoard).Methods("PUT")
	api.HandleFunc("/boards/current/cards", h.currentCards).Methods("GET")
	api.HandleFunc("/boards/current/query", h.setCardQuery).Methods("PUT")
	api.HandleFunc("/boards/{id}", h.deleteBoard).Methods("DELETE")
	api.HandleFunc("/boards/{id}/cards", h.listCards).Methods("GET")
	api.HandleFunc("/boards/{id}/cards", h.addCard).Methods("POST")
	api.HandleFunc("/boards/{id}/cards/{cardID}", h.editCard).Methods("PUT")
	api.HandleFunc("/boards/{id}/cards/{cardID}", h.deleteCard).Methods("DELETE")
	api.HandleFunc("/remote/refresh", h.refreshRemote).Methods("POST")

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
	return r
}

func (h *handler) listBoards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.logger.Printf("[GET] /api/boards q=%q", q)
	writeJSON(w, http.StatusOK, h.m.SearchBoards(q))
}

func (h *handler) createBoard(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[POST] /api/boards")
	var req createBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Printf("Error decoding board: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := h.m.CreateBoard(r.Context(), req.Name)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Printf("Board created: %s", b.ID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *handler) currentBoard(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[GET] /api/boards/current")
	if err := h.m.EnsureDefaultBoardSeeded(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	b, ok := h.m.CurrentBoard()
	if !ok {
		writeError(w, http.StatusNotFound, board.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handler) switchBoard(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[PUT] /api/boards/current")
	var req switchBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.m.SwitchCurrentBoard(r.Context(), req.ID); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) currentCards(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[GET] /api/boards/current/cards")
	if err := h.m.EnsureDefaultBoardSeeded(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.m.CurrentCards())
}

func (h *handler) setCardQuery(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[PUT] /api/boards/current/query")
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.m.SetCardQuery(req.Query)
	writeJSON(w, http.StatusOK, h.m.CurrentCards())
}

// deleteBoard requires ?confirm=true; without it a deletable board is left
// in place and 409 is returned. Forbidden deletions are reported first.
func (h *handler) deleteBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.logger.Printf("[DELETE] /api/boards/%s", id)
	if err := h.m.CanDelete(id); err != nil {
		h.fail(w, err)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		if _, ok := h.m.Board(id); ok {
			h.fail(w, board.ErrCanceled)
			return
		}
	}
	if err := h.m.DeleteBoard(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Printf("Board deleted: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listCards(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	q := r.URL.Query().Get("q")
	h.logger.Printf("[GET] /api/boards/%s/cards q=%q", id, q)
	if id == board.DefaultBoardID {
		if err := h.m.EnsureDefaultBoardSeeded(r.Context()); err != nil {
			h.fail(w, err)
			return
		}
	}
	b, ok := h.m.Board(id)
	if !ok {
		writeError(w, http.StatusNotFound, board.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, board.FilterCards(b.Cards, q))
}

func (h *handler) addCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.logger.Printf("[POST] /api/boards/%s/cards", id)
	var in board.CardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Printf("Error decoding card: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := h.m.AddCard(r.Context(), id, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Printf("Card created: %s", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) editCard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, cardID := vars["id"], vars["cardID"]
	h.logger.Printf("[PUT] /api/boards/%s/cards/%s", id, cardID)
	var in board.CardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Printf("Error decoding update: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := h.m.EditCard(r.Context(), id, cardID, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Printf("Card updated: %s", cardID)
	writeJSON(w, http.StatusOK, c)
}

func (h *handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, cardID := vars["id"], vars["cardID"]
	h.logger.Printf("[DELETE] /api/boards/%s/cards/%s", id, cardID)
	if err := h.m.DeleteCard(r.Context(), id, cardID); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) refreshRemote(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("[POST] /api/remote/refresh")
	n := h.m.RefreshRemoteBoards(r.Context())
	writeJSON(w, http.StatusOK, refreshResponse{RemoteBoards: n})
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("Error: %v", err)
	}
	writeError(w, status, err)
}

// StatusFor maps model errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrCanceled):
		return http.StatusConflict
	case errors.Is(err, board.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
