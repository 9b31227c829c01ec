package handler

import (
	"log/slog"
	"net/http"

	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
	"cfahub/internal/httputil"
)

// QuizHandler handles quiz question and attempt HTTP requests. The set id in
// the path refers to a quiz_sets row; access checks happen in the service.
type QuizHandler struct {
	quizService services.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService services.QuizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

// ListQuestions lists a set's questions in position order.
// GET /api/quizzes/{id}/questions
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizService.ListQuestions(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, questions)
}

// AddQuestion appends a question to the set.
// POST /api/quizzes/{id}/questions
func (h *QuizHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var input models.QuestionInput
	if err := httputil.ParseJSON(w, r, &input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.quizService.AddQuestion(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &input)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, question)
}

// UpdateQuestion edits a question in place.
// PATCH /api/quizzes/{id}/questions/{questionID}
func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var input models.QuestionInput
	if err := httputil.ParseJSON(w, r, &input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.quizService.UpdateQuestion(r.Context(), httputil.GetUserID(r),
		r.PathValue("id"), r.PathValue("questionID"), &input)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, question)
}

// DeleteQuestion removes a question and closes the position gap.
// DELETE /api/quizzes/{id}/questions/{questionID}
func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.quizService.DeleteQuestion(r.Context(), httputil.GetUserID(r),
		r.PathValue("id"), r.PathValue("questionID"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import replaces the set's questions from a versioned JSON payload.
// POST /api/quizzes/{id}/questions/import
func (h *QuizHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.quizService.ImportQuestions(r.Context(), httputil.GetUserID(r), r.PathValue("id"), payload)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// Export returns the set's questions as the JSON interchange payload.
// GET /api/quizzes/{id}/questions/export
func (h *QuizHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.quizService.ExportQuestions(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, export)
}

// SubmitAttempt grades the submitted answers and records the attempt.
// POST /api/quizzes/{id}/attempts
func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers         []int `json:"answers"`
		DurationSeconds *int  `json:"duration_seconds,omitempty"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	attempt, err := h.quizService.SubmitAttempt(r.Context(), httputil.GetUserID(r),
		r.PathValue("id"), req.Answers, req.DurationSeconds)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, attempt)
}
