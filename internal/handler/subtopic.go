package handler

import (
	"log/slog"
	"net/http"

	"codolio/internal/httputil"
	"codolio/internal/service"
)

// SubTopicHandler handles sub-topic HTTP requests
type SubTopicHandler struct {
	subTopicService service.SubTopicService
	logger          *slog.Logger
}

// NewSubTopicHandler creates a new sub-topic handler
func NewSubTopicHandler(subTopicService service.SubTopicService, logger *slog.Logger) *SubTopicHandler {
	return &SubTopicHandler{
		subTopicService: subTopicService,
		logger:          logger,
	}
}

// CreateSubTopic creates a sub-topic under a topic
// POST /api/topics/{topicId}/subtopics
func (h *SubTopicHandler) CreateSubTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicId")
	if topicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	var req service.CreateSubTopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	subTopic, err := h.subTopicService.CreateSubTopic(r.Context(), topicID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, subTopic)
}

// UpdateSubTopic renames a sub-topic
// PUT /api/topics/{topicId}/subtopics/{subTopicId}
func (h *SubTopicHandler) UpdateSubTopic(w http.ResponseWriter, r *http.Request) {
	subTopicID := r.PathValue("subTopicId")
	if subTopicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Sub-topic ID is required")
		return
	}

	var req service.UpdateSubTopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	subTopic, err := h.subTopicService.UpdateSubTopic(r.Context(), subTopicID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"id":    subTopic.ID,
		"title": subTopic.Title,
	})
}

// DeleteSubTopic cascade-deletes a sub-topic and its questions
// DELETE /api/topics/{topicId}/subtopics/{subTopicId}
func (h *SubTopicHandler) DeleteSubTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicId")
	subTopicID := r.PathValue("subTopicId")
	if topicID == "" || subTopicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic and sub-topic IDs are required")
		return
	}

	if err := h.subTopicService.DeleteSubTopic(r.Context(), topicID, subTopicID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Sub-topic deleted")
}

// ReorderSubTopics overwrites a topic's sub-topic order
// PUT /api/topics/{topicId}/subtopics/reorder
func (h *SubTopicHandler) ReorderSubTopics(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicId")
	if topicID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	var req service.ReorderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.subTopicService.ReorderSubTopics(r.Context(), topicID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Sub-topics reordered")
}
