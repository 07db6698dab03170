package handler

import (
	"log/slog"
	"net/http"

	"codolio/internal/domain/models"
	"codolio/internal/httputil"
	"codolio/internal/service"
)

// QuestionHandler handles question HTTP requests. Question routes are
// mounted twice, once under a topic and once under a sub-topic; the owner
// is reconstructed from whichever path parameters are present.
type QuestionHandler struct {
	questionService service.QuestionService
	logger          *slog.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService service.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

func ownerFromRequest(r *http.Request) models.Owner {
	return models.OwnerFromPath(r.PathValue("topicId"), r.PathValue("subTopicId"))
}

// CreateQuestion creates a question under the owner in the path
// POST /api/topics/{topicId}/questions
// POST /api/topics/{topicId}/subtopics/{subTopicId}/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner.TopicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	var req service.CreateQuestionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.questionService.CreateQuestion(r.Context(), owner, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, question)
}

// UpdateQuestion applies a partial update
// PUT .../questions/{questionId}
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	var req service.UpdateQuestionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.questionService.UpdateQuestion(r.Context(), questionID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, models.TreeQuestionFrom(question))
}

// ToggleSolved flips the solved flag
// PATCH .../questions/{questionId}/toggle
func (h *QuestionHandler) ToggleSolved(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	question, err := h.questionService.ToggleSolved(r.Context(), questionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"_id":      question.ID,
		"isSolved": question.IsSolved,
	})
}

// ToggleStarred flips the starred flag
// PATCH .../questions/{questionId}/star
func (h *QuestionHandler) ToggleStarred(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	question, err := h.questionService.ToggleStarred(r.Context(), questionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"_id":       question.ID,
		"isStarred": question.IsStarred,
	})
}

// SetNotes replaces the free-text notes
// PATCH .../questions/{questionId}/notes
func (h *QuestionHandler) SetNotes(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	var req service.NotesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.questionService.SetNotes(r.Context(), questionID, req.Notes)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"_id":   question.ID,
		"notes": question.Notes,
	})
}

// DeleteQuestion removes a question from the owner in the path
// DELETE .../questions/{questionId}
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	questionID := r.PathValue("questionId")
	if owner.TopicID == "" || questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic and question IDs are required")
		return
	}

	if err := h.questionService.DeleteQuestion(r.Context(), owner, questionID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Question deleted")
}

// ReorderQuestions overwrites the owner's question order
// PUT .../questions/reorder
func (h *QuestionHandler) ReorderQuestions(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner.TopicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	var req service.ReorderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.questionService.ReorderQuestions(r.Context(), owner, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Questions reordered")
}
