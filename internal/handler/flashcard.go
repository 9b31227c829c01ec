package handler

import (
	"log/slog"
	"net/http"

	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
	"cfahub/internal/httputil"
)

// FlashcardHandler handles flashcard HTTP requests. The set id in the path
// refers to a flashcard_sets row; access checks happen in the service.
type FlashcardHandler struct {
	flashcardService services.FlashcardService
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(flashcardService services.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           logger,
	}
}

// ListCards lists a set's cards in position order.
// GET /api/flashcards/{id}/cards
func (h *FlashcardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.flashcardService.ListCards(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cards)
}

// AddCard appends a card to the set.
// POST /api/flashcards/{id}/cards
func (h *FlashcardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req models.AddFlashcardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.flashcardService.AddCard(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, card)
}

// DeleteCard removes a card.
// DELETE /api/flashcards/{id}/cards/{cardID}
func (h *FlashcardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	err := h.flashcardService.DeleteCard(r.Context(), httputil.GetUserID(r),
		r.PathValue("id"), r.PathValue("cardID"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import appends cards parsed from tab-separated text. The body is raw
// text, one "front TAB back" pair per line.
// POST /api/flashcards/{id}/cards/import
func (h *FlashcardHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.flashcardService.ImportCards(r.Context(), httputil.GetUserID(r), r.PathValue("id"), string(body))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// Export renders the set as tab-separated text.
// GET /api/flashcards/{id}/cards/export
func (h *FlashcardHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.flashcardService.ExportCards(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
